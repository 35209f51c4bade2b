package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/vendor"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorRepository implements vendor.Repository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// Create creates a new vendor. It refuses to write a vendor whose staged
// password has not been hashed, and maps unique violations on the email
// column to shared.ErrAlreadyExists.
func (r *GormVendorRepository) Create(ctx context.Context, v *vendor.Vendor) error {
	if v.PasswordModified() {
		return shared.NewDomainError("UNPREPARED_WRITE", "Vendor has an unhashed password; call PrepareForPersist first")
	}

	model := models.VendorModelFromDomain(v)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateVendorError(err)
	}
	return nil
}

// Update updates an existing vendor
func (r *GormVendorRepository) Update(ctx context.Context, v *vendor.Vendor) error {
	if v.PasswordModified() {
		return shared.NewDomainError("UNPREPARED_WRITE", "Vendor has an unhashed password; call PrepareForPersist first")
	}

	// Save falls back to an upsert when the row is gone; an explicit update
	// keeps the zero-rows case observable instead of re-inserting the record.
	model := models.VendorModelFromDomain(v)
	result := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return translateVendorError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a vendor by ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a vendor by email
func (r *GormVendorRepository) FindByEmail(ctx context.Context, email string) (*vendor.Vendor, error) {
	if email == "" {
		return nil, shared.ErrNotFound
	}
	var model models.VendorModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks if an email is already registered
func (r *GormVendorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateVendorError maps driver-level unique violations to the domain error
func translateVendorError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Ensure GormVendorRepository implements vendor.Repository
var _ vendor.Repository = (*GormVendorRepository)(nil)
