package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leave-registry/internal/interaction"
	"leave-registry/internal/models"
	"leave-registry/internal/service"

	"github.com/slack-go/slack"
)

// handleSubmission runs the second orchestrator leg. The webhook is already
// being acknowledged by the caller; everything with a side effect happens on
// a background worker under its own ingestion transaction.
func (h *Handler) handleSubmission(cb slack.InteractionCallback) {
	meta, err := interaction.Decode(cb.View.PrivateMetadata)
	if err != nil {
		// Without a context there is no thread to report into. Drop.
		h.logger.WithError(err).Error("view submission with undecodable context")
		return
	}

	input, reason, err := parseSubmittedLeave(cb.View)
	if err != nil {
		h.logger.WithError(err).WithField("view_id", cb.View.ID).
			Warn("leave form submission failed to parse")
		h.runner.Submit("report-invalid-submission", func() {
			h.postThreadReply(meta, fmt.Sprintf(
				"❌ <@%s> your leave request could not be read: %s", meta.PersonID, err))
		})
		return
	}
	input.PersonID = meta.PersonID

	h.runner.Submit("ingest-submitted-leave", func() {
		h.ingestAndReply(meta, input, reason)
	})
}

// parseSubmittedLeave extracts each known field from the nested view state.
// Every required field that is missing is an explicit error; nothing is
// silently defaulted.
func parseSubmittedLeave(view slack.View) (service.IngestInput, string, error) {
	var input service.IngestInput
	if view.State == nil {
		return input, "", errors.New("submission carries no view state")
	}
	values := view.State.Values

	category := values[blockCategory][actionCategorySelect].SelectedOption.Value
	if category == "" {
		return input, "", errors.New("missing required field: category")
	}
	dayPart := values[blockDayPart][actionDayPartSelect].SelectedOption.Value
	if dayPart == "" {
		return input, "", errors.New("missing required field: duration")
	}

	startRaw := values[blockStart][actionStartPicker].SelectedDate
	if startRaw == "" {
		return input, "", errors.New("missing required field: first day")
	}
	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		return input, "", fmt.Errorf("invalid first day %q: %w", startRaw, err)
	}

	endRaw := values[blockEnd][actionEndPicker].SelectedDate
	if endRaw == "" {
		return input, "", errors.New("missing required field: last day")
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		return input, "", fmt.Errorf("invalid last day %q: %w", endRaw, err)
	}

	reason := values[blockReason][actionReasonInput].Value

	input = service.IngestInput{
		OriginKind:    models.OriginKindSlack,
		OriginLocalID: view.ID, // form instance id: resubmits of the same form update the same leave
		StartDate:     start,
		EndDate:       end,
		Category:      category,
		Status:        models.StatusRequested,
		DayPart:       dayPart,
	}
	return input, reason, nil
}

func (h *Handler) ingestAndReply(meta interaction.Context, input service.IngestInput, reason string) {
	leave, err := h.ingestion.Ingest(context.Background(), input)
	if err != nil {
		h.postThreadReply(meta, fmt.Sprintf(
			"❌ <@%s> your leave request could not be recorded: %s",
			meta.PersonID, describeIngestError(err)))
		return
	}

	text := fmt.Sprintf("✅ <@%s> your %s is recorded for %s.",
		meta.PersonID, categoryLabel(leave.Category), leave.FormatRange())
	if leave.IsHalfDay() {
		text = fmt.Sprintf("✅ <@%s> your %s is recorded for %s (%s).",
			meta.PersonID, categoryLabel(leave.Category), leave.FormatRange(), dayPartLabel(leave.DayPart))
	}
	if reason != "" {
		text += fmt.Sprintf("\n> %s", reason)
	}
	h.postThreadReply(meta, text)
}

// postThreadReply reports an outcome into the originating thread. Posting
// is best-effort: a failure here is logged and goes nowhere else.
func (h *Handler) postThreadReply(meta interaction.Context, text string) {
	if _, err := h.chat.PostMessage(meta.ChannelID, meta.ThreadTS, text); err != nil {
		h.logger.WithError(err).WithField("channel", meta.ChannelID).
			Warn("failed to post thread reply")
	}
}

func describeIngestError(err error) string {
	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		return fmt.Sprintf("it overlaps an existing leave (%s to %s)",
			conflict.StartDate.Format("2006-01-02"), conflict.EndDate.Format("2006-01-02"))
	}
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return validation.Reason
	}
	return "an internal error occurred, please try again later"
}

func categoryLabel(category string) string {
	switch category {
	case models.CategoryAnnualLeave:
		return "annual leave"
	case models.CategorySickLeave:
		return "sick leave"
	}
	return category
}

func dayPartLabel(dayPart string) string {
	switch dayPart {
	case models.DayPartFirstHalf:
		return "first half of the day"
	case models.DayPartSecondHalf:
		return "second half of the day"
	}
	return dayPart
}
