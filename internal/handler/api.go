package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"leave-registry/internal/repository"
	"leave-registry/internal/service"
)

// IngestLeave is the direct web origin: a synchronous call into the
// ingestion engine, with the error taxonomy mapped onto HTTP statuses.
func (h *Handler) IngestLeave(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid start_date: " + err.Error()})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid end_date: " + err.Error()})
		return
	}

	leave, err := h.ingestion.Ingest(r.Context(), service.IngestInput{
		OriginKind:    req.OriginKind,
		OriginLocalID: req.OriginLocalID,
		PersonID:      req.PersonID,
		StartDate:     start,
		EndDate:       end,
		Category:      req.Category,
		Status:        req.Status,
		DayPart:       req.DayPart,
	})
	if err != nil {
		h.writeIngestError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLeaveDTO(leave))
}

func (h *Handler) writeIngestError(w http.ResponseWriter, err error) {
	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:           err.Error(),
			ConflictLeaveID: conflict.LeaveID,
			ConflictStart:   conflict.StartDate.Format("2006-01-02"),
			ConflictEnd:     conflict.EndDate.Format("2006-01-02"),
		})
		return
	}
	if errors.Is(err, service.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.logger.WithError(err).Error("ingestion failed")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// ListLeaves serves the read/query collaborator: filter by person, year and
// quarter, paginated. Unreadable filter values are a 400, not an unfiltered
// listing.
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ListFilter{PersonID: q.Get("person_id")}

	var err error
	if filter.Year, err = queryInt(q.Get("year"), "year"); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if filter.Quarter, err = queryInt(q.Get("quarter"), "quarter"); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if filter.Page, err = queryInt(q.Get("page"), "page"); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if filter.PerPage, err = queryInt(q.Get("per_page"), "per_page"); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if filter.Quarter > 4 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "quarter must be between 1 and 4"})
		return
	}

	leaves, total, err := h.leaves.List(filter)
	if err != nil {
		h.logger.WithError(err).Error("failed to list leaves")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	dtos := make([]LeaveDTO, len(leaves))
	for i := range leaves {
		dtos[i] = toLeaveDTO(&leaves[i])
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 50
	}
	writeJSON(w, http.StatusOK, ListLeavesResponse{
		Leaves:  dtos,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

// queryInt parses an optional numeric query parameter, empty meaning "no
// constraint". Anything else that is not a non-negative integer is an
// explicit error rather than a silent default.
func queryInt(s, name string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}
