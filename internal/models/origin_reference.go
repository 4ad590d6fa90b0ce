package models

import (
	"fmt"
	"time"
)

// Origin kinds. Each kind names the source system a leave notification
// arrived from.
const (
	OriginKindWeb       = "web"
	OriginKindSlack     = "slack"
	OriginKindCalendar  = "calendar"
	OriginKindTimesheet = "timesheet"
)

// OriginReference ties a source system's local identifier to the leave it
// created or updated. The (kind, local_id) pair is the idempotency key:
// repeated notifications carrying the same pair land on the same leave.
type OriginReference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"type:varchar(20);not null;uniqueIndex:ux_origin_kind_local,priority:1" json:"kind"`
	LocalID   string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_origin_kind_local,priority:2" json:"local_id"`
	LeaveID   uint      `gorm:"not null;index" json:"leave_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (OriginReference) TableName() string {
	return "origin_references"
}

func ValidOriginKind(kind string) bool {
	switch kind {
	case OriginKindWeb, OriginKindSlack, OriginKindCalendar, OriginKindTimesheet:
		return true
	}
	return false
}

func (r *OriginReference) Validate() error {
	if !ValidOriginKind(r.Kind) {
		return fmt.Errorf("unknown origin kind: %q", r.Kind)
	}
	if r.LocalID == "" {
		return fmt.Errorf("origin local id is required")
	}
	return nil
}
