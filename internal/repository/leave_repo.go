package repository

import (
	"errors"
	"time"

	"leave-registry/internal/models"

	"gorm.io/gorm"
)

// ListFilter narrows and pages a leave listing. Zero values mean "no
// constraint" (PerPage falls back to a default).
type ListFilter struct {
	PersonID string
	Year     int
	Quarter  int // 1..4, only meaningful together with Year
	Page     int
	PerPage  int
}

const defaultPerPage = 50

type LeaveRepository interface {
	Create(leave *models.Leave) error
	Save(leave *models.Leave) error
	GetByID(id uint) (*models.Leave, error)
	FindOverlapping(personID string, startDate, endDate time.Time, excludeLeaveID uint) ([]models.Leave, error)
	List(filter ListFilter) ([]models.Leave, int64, error)
	WithTx(tx *gorm.DB) LeaveRepository
}

type GormLeaveRepository struct {
	db *gorm.DB
}

func NewGormLeaveRepository(db *gorm.DB) (LeaveRepository, error) {
	if err := db.AutoMigrate(&models.Leave{}); err != nil {
		return nil, err
	}
	return &GormLeaveRepository{db: db}, nil
}

// WithTx returns a repository bound to the given transaction handle, so a
// service can group several writes into one commit.
func (r *GormLeaveRepository) WithTx(tx *gorm.DB) LeaveRepository {
	return &GormLeaveRepository{db: tx}
}

func (r *GormLeaveRepository) Create(leave *models.Leave) error {
	return r.db.Create(leave).Error
}

func (r *GormLeaveRepository) Save(leave *models.Leave) error {
	return r.db.Save(leave).Error
}

func (r *GormLeaveRepository) GetByID(id uint) (*models.Leave, error) {
	var leave models.Leave
	err := r.db.Preload("OriginReferences").First(&leave, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

// FindOverlapping returns every leave for the person whose inclusive date
// range intersects [startDate, endDate]. excludeLeaveID (0 = none) keeps a
// leave from colliding with itself when it is being updated.
func (r *GormLeaveRepository) FindOverlapping(personID string, startDate, endDate time.Time, excludeLeaveID uint) ([]models.Leave, error) {
	var leaves []models.Leave
	q := r.db.Where("person_id = ? AND start_date <= ? AND end_date >= ?",
		personID, endDate, startDate)
	if excludeLeaveID != 0 {
		q = q.Where("id <> ?", excludeLeaveID)
	}
	err := q.Order("start_date ASC").Find(&leaves).Error
	return leaves, err
}

func (r *GormLeaveRepository) List(filter ListFilter) ([]models.Leave, int64, error) {
	q := r.db.Model(&models.Leave{})
	if filter.PersonID != "" {
		q = q.Where("person_id = ?", filter.PersonID)
	}
	if filter.Year != 0 {
		from := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(1, 0, 0).AddDate(0, 0, -1)
		if filter.Quarter >= 1 && filter.Quarter <= 4 {
			from = time.Date(filter.Year, time.Month(3*(filter.Quarter-1)+1), 1, 0, 0, 0, 0, time.UTC)
			to = from.AddDate(0, 3, 0).AddDate(0, 0, -1)
		}
		// A leave belongs to the period if any of its days fall inside it.
		q = q.Where("start_date <= ? AND end_date >= ?", to, from)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var leaves []models.Leave
	err := q.Preload("OriginReferences").
		Order("start_date DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&leaves).Error
	return leaves, total, err
}
