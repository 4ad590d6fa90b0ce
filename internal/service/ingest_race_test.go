package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"leave-registry/internal/models"
	"leave-registry/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Fake repositories scripted to behave like the losing side of a concurrent
// find-or-create: the first lookup sees nothing, the insert hits the unique
// index, and by the second lookup the winner's reference is visible.

type raceLeaveRepo struct {
	winner      *models.Leave
	createCalls int
	createErr   error
	saved       []*models.Leave
}

func (r *raceLeaveRepo) Create(leave *models.Leave) error {
	r.createCalls++
	return r.createErr
}

func (r *raceLeaveRepo) Save(leave *models.Leave) error {
	copied := *leave
	r.saved = append(r.saved, &copied)
	return nil
}

func (r *raceLeaveRepo) GetByID(id uint) (*models.Leave, error) {
	if r.winner != nil && r.winner.ID == id {
		copied := *r.winner
		return &copied, nil
	}
	return nil, nil
}

func (r *raceLeaveRepo) FindOverlapping(string, time.Time, time.Time, uint) ([]models.Leave, error) {
	return nil, nil
}

func (r *raceLeaveRepo) List(repository.ListFilter) ([]models.Leave, int64, error) {
	return nil, 0, nil
}

func (r *raceLeaveRepo) WithTx(*gorm.DB) repository.LeaveRepository { return r }

type raceOriginRepo struct {
	lookups   int
	foundFrom int // lookup number from which the winner's reference is visible
	winnerRef *models.OriginReference
}

func (r *raceOriginRepo) Create(*models.OriginReference) error { return nil }

func (r *raceOriginRepo) GetByOrigin(kind, localID string) (*models.OriginReference, error) {
	r.lookups++
	if r.winnerRef != nil && r.lookups >= r.foundFrom {
		copied := *r.winnerRef
		return &copied, nil
	}
	return nil, nil
}

func (r *raceOriginRepo) WithTx(*gorm.DB) repository.OriginReferenceRepository { return r }

func newRaceService(t *testing.T, leaves repository.LeaveRepository, origins repository.OriginReferenceRepository) *IngestionService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	logger := logrus.New()
	return NewIngestionService(db, leaves, origins, NewFanout(logger), logger)
}

func TestIngest_LostInsertRace_RetriesAsUpdate(t *testing.T) {
	// GIVEN: two concurrent ingestions for a brand-new origin pair; this
	//        call loses: its lookup misses, its insert hits the unique
	//        index on (kind, local_id)
	// WHEN: the duplicated-key failure comes back
	// THEN: the call is re-run once, finds the winner's reference, and
	//       converges as an update of the winner's leave
	winner := &models.Leave{
		ID:        7,
		PersonID:  "U1",
		StartDate: day(2024, time.June, 3),
		EndDate:   day(2024, time.June, 5),
		Category:  models.CategoryAnnualLeave,
		Status:    models.StatusRequested,
		DayPart:   models.DayPartFull,
	}
	leaves := &raceLeaveRepo{winner: winner, createErr: gorm.ErrDuplicatedKey}
	origins := &raceOriginRepo{
		foundFrom: 2,
		winnerRef: &models.OriginReference{Kind: models.OriginKindWeb, LocalID: "req-1", LeaveID: 7},
	}
	svc := newRaceService(t, leaves, origins)

	input := webInput("req-1", "U1", day(2024, time.June, 4), day(2024, time.June, 6))
	input.Status = models.StatusApproved

	leave, err := svc.Ingest(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, uint(7), leave.ID, "loser must converge on the winner's leave")
	assert.Equal(t, 1, leaves.createCalls, "insert must not be attempted a second time")
	require.Len(t, leaves.saved, 1, "second pass must go through the update path")
	assert.Equal(t, uint(7), leaves.saved[0].ID)
	assert.Equal(t, day(2024, time.June, 4), leaves.saved[0].StartDate)
	assert.Equal(t, day(2024, time.June, 6), leaves.saved[0].EndDate)
	assert.Equal(t, models.StatusApproved, leaves.saved[0].Status)
}

func TestIngest_DuplicateKeyTwice_IsDataInconsistency(t *testing.T) {
	// GIVEN: the unique index keeps rejecting the insert but the winning
	//        reference never becomes visible
	// WHEN: the single retry fails the same way
	// THEN: the call gives up with a data inconsistency, not another retry
	leaves := &raceLeaveRepo{createErr: gorm.ErrDuplicatedKey}
	origins := &raceOriginRepo{} // never finds a reference
	svc := newRaceService(t, leaves, origins)

	_, err := svc.Ingest(context.Background(), webInput("req-1", "U1", day(2024, time.June, 3), day(2024, time.June, 5)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataInconsistency))
	assert.False(t, IsClientError(err))
	assert.Equal(t, 2, leaves.createCalls, "exactly one retry is allowed")
	assert.Equal(t, 2, origins.lookups)
}
