package models

import (
	"fmt"
	"time"
)

// Leave categories
const (
	CategoryAnnualLeave = "annual_leave"
	CategorySickLeave   = "sick_leave"
)

// Leave lifecycle statuses
const (
	StatusRequested = "requested"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// Duration granularity within the requested days
const (
	DayPartFull       = "full_day"
	DayPartFirstHalf  = "first_half"
	DayPartSecondHalf = "second_half"
)

type Leave struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PersonID  string    `gorm:"type:varchar(64);not null;index" json:"person_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Category  string    `gorm:"type:varchar(20);not null" json:"category"` // annual_leave, sick_leave
	Status    string    `gorm:"type:varchar(20);not null" json:"status"`   // requested, approved, cancelled
	DayPart   string    `gorm:"type:varchar(20);not null;default:'full_day'" json:"day_part"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OriginReferences []OriginReference `gorm:"foreignKey:LeaveID" json:"origin_references"`
}

func (Leave) TableName() string {
	return "leaves"
}

// NormalizeDate truncates a timestamp to day precision in UTC. All leave
// dates are stored at day precision so the overlap SQL can compare them
// directly.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func validCategory(c string) bool {
	return c == CategoryAnnualLeave || c == CategorySickLeave
}

func validStatus(s string) bool {
	return s == StatusRequested || s == StatusApproved || s == StatusCancelled
}

func validDayPart(p string) bool {
	return p == DayPartFull || p == DayPartFirstHalf || p == DayPartSecondHalf
}

// Validate checks the leave's own invariants. Overlap against other leaves
// is a persistence-level concern and is checked by the ingestion service,
// not here.
func (l *Leave) Validate() error {
	if l.PersonID == "" {
		return fmt.Errorf("person id is required")
	}
	if !validCategory(l.Category) {
		return fmt.Errorf("unknown leave category: %q", l.Category)
	}
	if !validStatus(l.Status) {
		return fmt.Errorf("unknown leave status: %q", l.Status)
	}
	if !validDayPart(l.DayPart) {
		return fmt.Errorf("unknown day part: %q", l.DayPart)
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if l.EndDate.Before(l.StartDate) {
		return fmt.Errorf("end date %s is before start date %s",
			l.EndDate.Format("2006-01-02"), l.StartDate.Format("2006-01-02"))
	}
	// A half-day leave covers part of a single day.
	if l.DayPart != DayPartFull && !l.StartDate.Equal(l.EndDate) {
		return fmt.Errorf("half-day leave must start and end on the same date")
	}
	if l.Status == StatusApproved && (l.StartDate.IsZero() || l.EndDate.Before(l.StartDate)) {
		return fmt.Errorf("approved leave must have a valid date range")
	}
	// A leave that has never been persisted must say where it came from.
	if l.ID == 0 && len(l.OriginReferences) == 0 {
		return fmt.Errorf("new leave must carry at least one origin reference")
	}
	return nil
}

// IsHalfDay reports whether the leave covers only part of its single day.
func (l *Leave) IsHalfDay() bool {
	return l.DayPart == DayPartFirstHalf || l.DayPart == DayPartSecondHalf
}

// FormatRange renders the date range for messages, collapsing single-day
// leaves to one date.
func (l *Leave) FormatRange() string {
	start := l.StartDate.Format("2006-01-02")
	end := l.EndDate.Format("2006-01-02")
	if start == end {
		return start
	}
	return fmt.Sprintf("%s – %s", start, end)
}
