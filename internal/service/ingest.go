package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leave-registry/internal/models"
	"leave-registry/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// IngestInput is one leave notification from any origin. Identical
// (OriginKind, OriginLocalID) pairs always land on the same leave.
type IngestInput struct {
	OriginKind    string
	OriginLocalID string
	PersonID      string
	StartDate     time.Time
	EndDate       time.Time
	Category      string
	Status        string
	DayPart       string
}

// IngestionService merges leave notifications from independent origins into
// one canonical leave per event and rejects overlapping schedules. Each
// Ingest call runs in its own transaction, so callers on background workers
// need no ambient transaction of their own.
type IngestionService struct {
	db      *gorm.DB
	leaves  repository.LeaveRepository
	origins repository.OriginReferenceRepository
	fanout  *Fanout
	logger  *logrus.Logger
}

func NewIngestionService(
	db *gorm.DB,
	leaves repository.LeaveRepository,
	origins repository.OriginReferenceRepository,
	fanout *Fanout,
	logger *logrus.Logger,
) *IngestionService {
	return &IngestionService{
		db:      db,
		leaves:  leaves,
		origins: origins,
		fanout:  fanout,
		logger:  logger,
	}
}

// Ingest records or updates the leave identified by the input's origin
// reference.
//
// Two concurrent calls for a brand-new origin pair can both miss the lookup
// and race to insert; the unique index on (kind, local_id) rejects the
// loser with a duplicated-key error, and the call is re-run once, now
// taking the update path. Both racers describe the same logical event, so
// converging on the later attributes matches the engine's idempotent
// update semantics for repeats.
func (s *IngestionService) Ingest(ctx context.Context, input IngestInput) (*models.Leave, error) {
	if !models.ValidOriginKind(input.OriginKind) {
		return nil, &ValidationError{Reason: "unknown origin kind: " + input.OriginKind}
	}
	if input.OriginLocalID == "" {
		return nil, &ValidationError{Reason: "origin local id is required"}
	}

	input.StartDate = models.NormalizeDate(input.StartDate)
	input.EndDate = models.NormalizeDate(input.EndDate)

	leave, err := s.ingestOnce(ctx, input)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		s.logger.WithFields(logrus.Fields{
			"origin_kind": input.OriginKind,
			"local_id":    input.OriginLocalID,
		}).Info("lost origin-reference insert race, retrying as update")
		leave, err = s.ingestOnce(ctx, input)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: origin reference (%s, %s) duplicated on retry",
				ErrDataInconsistency, input.OriginKind, input.OriginLocalID)
		}
	}
	if err != nil {
		return nil, err
	}

	// The leave is committed; downstream channels are best-effort from here.
	s.fanout.Propagate(ctx, leave)

	s.logger.WithFields(logrus.Fields{
		"leave_id":    leave.ID,
		"person_id":   leave.PersonID,
		"origin_kind": input.OriginKind,
	}).Info("leave ingested")
	return leave, nil
}

func (s *IngestionService) ingestOnce(ctx context.Context, input IngestInput) (*models.Leave, error) {
	var leave *models.Leave

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txLeaves := s.leaves.WithTx(tx)
		txOrigins := s.origins.WithTx(tx)

		ref, err := txOrigins.GetByOrigin(input.OriginKind, input.OriginLocalID)
		if err != nil {
			return err
		}

		if ref != nil {
			leave, err = txLeaves.GetByID(ref.LeaveID)
			if err != nil {
				return err
			}
			if leave == nil {
				return &DanglingOriginError{Kind: ref.Kind, LocalID: ref.LocalID, LeaveID: ref.LeaveID}
			}
			// Repeat notification for a known event: replace the mutable
			// attributes wholesale.
			leave.PersonID = input.PersonID
			leave.StartDate = input.StartDate
			leave.EndDate = input.EndDate
			leave.Category = input.Category
			leave.Status = input.Status
			leave.DayPart = input.DayPart
		} else {
			leave = &models.Leave{
				PersonID:  input.PersonID,
				StartDate: input.StartDate,
				EndDate:   input.EndDate,
				Category:  input.Category,
				Status:    input.Status,
				DayPart:   input.DayPart,
				OriginReferences: []models.OriginReference{{
					Kind:    input.OriginKind,
					LocalID: input.OriginLocalID,
				}},
			}
		}

		if err := leave.Validate(); err != nil {
			return &ValidationError{Reason: err.Error()}
		}

		detector := NewOverlapDetector(txLeaves)
		colliding, err := detector.FindOverlapping(leave.PersonID, leave.StartDate, leave.EndDate, leave.ID)
		if err != nil {
			return err
		}
		if len(colliding) > 0 {
			first := colliding[0]
			return &ConflictError{
				PersonID:  first.PersonID,
				LeaveID:   first.ID,
				StartDate: first.StartDate,
				EndDate:   first.EndDate,
			}
		}

		if leave.ID == 0 {
			// Creates the leave and its origin reference in one go; the
			// unique index on (kind, local_id) backstops concurrent inserts.
			return txLeaves.Create(leave)
		}
		return txLeaves.Save(leave)
	})
	if err != nil {
		return nil, err
	}
	return leave, nil
}
