package handler

import (
	"leave-registry/internal/models"

	"github.com/slack-go/slack"
)

// Block and action ids of the leave request form. The submission handler
// extracts field values by these ids, so both sides must agree.
const (
	leaveModalCallbackID = "leave_request_modal"

	blockCategory = "category"
	blockDayPart  = "day_part"
	blockStart    = "start_date"
	blockEnd      = "end_date"
	blockReason   = "reason"

	actionCategorySelect = "category_select"
	actionDayPartSelect  = "day_part_select"
	actionStartPicker    = "start_date_picker"
	actionEndPicker      = "end_date_picker"
	actionReasonInput    = "reason_input"
)

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}

// buildLeaveModal renders the data-entry form. metadata is the encoded
// interaction context; the platform hands it back verbatim on submit and
// cancel, which is the only way those stateless callbacks can find the
// originating thread.
func buildLeaveModal(metadata string) slack.ModalViewRequest {
	categorySelect := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic,
		plainText("Select a category"),
		actionCategorySelect,
		slack.NewOptionBlockObject(models.CategoryAnnualLeave, plainText("Annual leave"), nil),
		slack.NewOptionBlockObject(models.CategorySickLeave, plainText("Sick leave"), nil),
	)

	dayPartSelect := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic,
		plainText("Select duration"),
		actionDayPartSelect,
		slack.NewOptionBlockObject(models.DayPartFull, plainText("Full day(s)"), nil),
		slack.NewOptionBlockObject(models.DayPartFirstHalf, plainText("First half of the day"), nil),
		slack.NewOptionBlockObject(models.DayPartSecondHalf, plainText("Second half of the day"), nil),
	)

	reasonBlock := slack.NewInputBlock(blockReason, plainText("Reason"), nil,
		slack.NewPlainTextInputBlockElement(plainText("Optional"), actionReasonInput))
	reasonBlock.Optional = true

	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		Title:           plainText("Request leave"),
		Submit:          plainText("Submit"),
		Close:           plainText("Cancel"),
		CallbackID:      leaveModalCallbackID,
		PrivateMetadata: metadata,
		NotifyOnClose:   true,
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			slack.NewInputBlock(blockCategory, plainText("Category"), nil, categorySelect),
			slack.NewInputBlock(blockDayPart, plainText("Duration"), nil, dayPartSelect),
			slack.NewInputBlock(blockStart, plainText("First day"), nil,
				slack.NewDatePickerBlockElement(actionStartPicker)),
			slack.NewInputBlock(blockEnd, plainText("Last day"), nil,
				slack.NewDatePickerBlockElement(actionEndPicker)),
			reasonBlock,
		}},
	}
}
