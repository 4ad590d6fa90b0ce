package repository

import (
	"errors"

	"leave-registry/internal/models"

	"gorm.io/gorm"
)

type OriginReferenceRepository interface {
	Create(ref *models.OriginReference) error
	GetByOrigin(kind, localID string) (*models.OriginReference, error)
	WithTx(tx *gorm.DB) OriginReferenceRepository
}

type GormOriginReferenceRepository struct {
	db *gorm.DB
}

func NewGormOriginReferenceRepository(db *gorm.DB) (OriginReferenceRepository, error) {
	if err := db.AutoMigrate(&models.OriginReference{}); err != nil {
		return nil, err
	}
	return &GormOriginReferenceRepository{db: db}, nil
}

func (r *GormOriginReferenceRepository) WithTx(tx *gorm.DB) OriginReferenceRepository {
	return &GormOriginReferenceRepository{db: tx}
}

// Create inserts the reference. The unique index on (kind, local_id) makes
// the database reject a second insert for the same origin event; callers
// see that as gorm.ErrDuplicatedKey.
func (r *GormOriginReferenceRepository) Create(ref *models.OriginReference) error {
	return r.db.Create(ref).Error
}

func (r *GormOriginReferenceRepository) GetByOrigin(kind, localID string) (*models.OriginReference, error) {
	var ref models.OriginReference
	err := r.db.Where("kind = ? AND local_id = ?", kind, localID).First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
