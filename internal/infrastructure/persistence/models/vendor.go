package models

import (
	"github.com/storefront/backend/internal/domain/vendor"
)

// VendorModel is the persistence model for the Vendor domain entity.
// It carries only the password hash; the domain keeps any staged plaintext
// out of reach of the mapper.
type VendorModel struct {
	AggregateModel
	Name         string `gorm:"type:varchar(200);not null"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex:idx_vendors_email"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *vendor.Vendor {
	return &vendor.Vendor{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
	}
}

// FromDomain populates the persistence model from a domain Vendor entity.
func (m *VendorModel) FromDomain(v *vendor.Vendor) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.Name = v.Name
	m.Email = v.Email
	m.PasswordHash = v.PasswordHash
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor entity.
func VendorModelFromDomain(v *vendor.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}
