package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leave-registry/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, h *Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	NewRouter(h).ServeHTTP(rec, req)
	return rec
}

func ingestBody(localID, personID, start, end string) string {
	return fmt.Sprintf(`{
		"origin_kind": "web",
		"origin_local_id": %q,
		"person_id": %q,
		"start_date": %q,
		"end_date": %q,
		"category": "annual_leave",
		"status": "requested",
		"day_part": "full_day"
	}`, localID, personID, start, end)
}

func TestIngestLeave_Created(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(t, h, "/api/leaves", ingestBody("req-1", "U1", "2024-02-05", "2024-02-09"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var dto LeaveDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.NotZero(t, dto.ID)
	assert.Equal(t, "U1", dto.PersonID)
	assert.Equal(t, "2024-02-05", dto.StartDate)
	assert.Equal(t, models.StatusRequested, dto.Status)
	require.Len(t, dto.OriginReferences, 1)
	assert.Equal(t, models.OriginKindWeb, dto.OriginReferences[0].Kind)
}

func TestIngestLeave_ValidationIs400(t *testing.T) {
	h, _, _ := newTestHandler(t)

	// End before start.
	rec := postJSON(t, h, "/api/leaves", ingestBody("req-1", "U1", "2024-02-09", "2024-02-05"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h, "/api/leaves", `{"origin_kind": "web"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h, "/api/leaves", ingestBody("req-1", "U1", "05.02.2024", "09.02.2024"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestLeave_ConflictIs409WithCollidingLeave(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(t, h, "/api/leaves", ingestBody("req-1", "U1", "2024-02-05", "2024-02-09"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created LeaveDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = postJSON(t, h, "/api/leaves", ingestBody("req-2", "U1", "2024-02-09", "2024-02-12"))
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.ConflictLeaveID)
	assert.Equal(t, "2024-02-05", resp.ConflictStart)
	assert.Equal(t, "2024-02-09", resp.ConflictEnd)
}

func TestIngestLeave_RepeatOriginUpdates(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(t, h, "/api/leaves", ingestBody("req-1", "U1", "2024-02-05", "2024-02-09"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var first LeaveDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = postJSON(t, h, "/api/leaves", ingestBody("req-1", "U1", "2024-02-06", "2024-02-10"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var second LeaveDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "2024-02-06", second.StartDate)
}

func TestListLeaves_FiltersAndPaginates(t *testing.T) {
	h, _, _ := newTestHandler(t)

	require.Equal(t, http.StatusCreated,
		postJSON(t, h, "/api/leaves", ingestBody("req-1", "U1", "2024-02-05", "2024-02-09")).Code)
	require.Equal(t, http.StatusCreated,
		postJSON(t, h, "/api/leaves", ingestBody("req-2", "U1", "2024-07-01", "2024-07-05")).Code)
	require.Equal(t, http.StatusCreated,
		postJSON(t, h, "/api/leaves", ingestBody("req-3", "U2", "2024-02-05", "2024-02-09")).Code)

	get := func(query string) ListLeavesResponse {
		req := httptest.NewRequest(http.MethodGet, "/api/leaves"+query, nil)
		rec := httptest.NewRecorder()
		NewRouter(h).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp ListLeavesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	all := get("")
	assert.EqualValues(t, 3, all.Total)

	byPerson := get("?person_id=U1")
	assert.EqualValues(t, 2, byPerson.Total)

	q1 := get("?person_id=U1&year=2024&quarter=1")
	require.EqualValues(t, 1, q1.Total)
	assert.Equal(t, "2024-02-05", q1.Leaves[0].StartDate)

	q3 := get("?person_id=U1&year=2024&quarter=3")
	require.EqualValues(t, 1, q3.Total)
	assert.Equal(t, "2024-07-01", q3.Leaves[0].StartDate)

	paged := get("?per_page=2&page=2")
	assert.EqualValues(t, 3, paged.Total)
	assert.Len(t, paged.Leaves, 1)

	bad := httptest.NewRequest(http.MethodGet, "/api/leaves?quarter=7", nil)
	rec := httptest.NewRecorder()
	NewRouter(h).ServeHTTP(rec, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLeaves_NonNumericFiltersFailClosed(t *testing.T) {
	// GIVEN: one persisted leave
	// WHEN: a filter value is not a number
	// THEN: the request is a 400, not an unfiltered listing
	h, _, _ := newTestHandler(t)
	require.Equal(t, http.StatusCreated,
		postJSON(t, h, "/api/leaves", ingestBody("req-1", "U1", "2024-02-05", "2024-02-09")).Code)

	for _, query := range []string{
		"?year=twentytwentyfour",
		"?quarter=first",
		"?page=one",
		"?per_page=-5",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/leaves"+query, nil)
		rec := httptest.NewRecorder()
		NewRouter(h).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}
