package service

import (
	"time"

	"leave-registry/internal/models"
	"leave-registry/internal/repository"
)

// OverlapDetector answers "which persisted leaves for this person intersect
// this date range". Pure query, no side effects; the ingestion service runs
// it both for new leaves and, with the leave's own id excluded, for updates.
type OverlapDetector struct {
	leaves repository.LeaveRepository
}

func NewOverlapDetector(leaves repository.LeaveRepository) *OverlapDetector {
	return &OverlapDetector{leaves: leaves}
}

// FindOverlapping returns all leaves for personID whose inclusive range
// intersects [startDate, endDate], excluding excludeLeaveID (0 = none).
func (d *OverlapDetector) FindOverlapping(personID string, startDate, endDate time.Time, excludeLeaveID uint) ([]models.Leave, error) {
	return d.leaves.FindOverlapping(personID, startDate, endDate, excludeLeaveID)
}
