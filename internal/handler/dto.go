package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"leave-registry/internal/models"
)

// IngestRequest is the direct web ingestion trigger. Dates are YYYY-MM-DD.
type IngestRequest struct {
	OriginKind    string `json:"origin_kind"`
	OriginLocalID string `json:"origin_local_id"`
	PersonID      string `json:"person_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Category      string `json:"category"`
	Status        string `json:"status"`
	DayPart       string `json:"day_part"`
}

type OriginReferenceDTO struct {
	Kind    string `json:"kind"`
	LocalID string `json:"local_id"`
}

type LeaveDTO struct {
	ID               uint                 `json:"id"`
	PersonID         string               `json:"person_id"`
	StartDate        string               `json:"start_date"`
	EndDate          string               `json:"end_date"`
	Category         string               `json:"category"`
	Status           string               `json:"status"`
	DayPart          string               `json:"day_part"`
	OriginReferences []OriginReferenceDTO `json:"origin_references"`
	CreatedAt        string               `json:"created_at"`
	UpdatedAt        string               `json:"updated_at"`
}

type ListLeavesResponse struct {
	Leaves  []LeaveDTO `json:"leaves"`
	Total   int64      `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
}

type ErrorResponse struct {
	Error string `json:"error"`

	// Populated on conflicts so the caller can see what it collided with.
	ConflictLeaveID uint   `json:"conflict_leave_id,omitempty"`
	ConflictStart   string `json:"conflict_start,omitempty"`
	ConflictEnd     string `json:"conflict_end,omitempty"`
}

func toLeaveDTO(l *models.Leave) LeaveDTO {
	refs := make([]OriginReferenceDTO, len(l.OriginReferences))
	for i, r := range l.OriginReferences {
		refs[i] = OriginReferenceDTO{Kind: r.Kind, LocalID: r.LocalID}
	}
	return LeaveDTO{
		ID:               l.ID,
		PersonID:         l.PersonID,
		StartDate:        l.StartDate.Format("2006-01-02"),
		EndDate:          l.EndDate.Format("2006-01-02"),
		Category:         l.Category,
		Status:           l.Status,
		DayPart:          l.DayPart,
		OriginReferences: refs,
		CreatedAt:        l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        l.UpdatedAt.Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
