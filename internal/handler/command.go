package handler

import (
	"fmt"

	"leave-registry/internal/interaction"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// handleCommand runs the first orchestrator leg. The anchor message is
// posted on the request path because its timestamp is the thread token
// everything later correlates on; the modal open goes to a background
// worker so the webhook ack is not held up by it.
func (h *Handler) handleCommand(cmd slack.SlashCommand) {
	anchor := fmt.Sprintf("📅 <@%s> is filing a leave request.", cmd.UserID)
	threadTS, err := h.chat.PostMessage(cmd.ChannelID, "", anchor)
	if err != nil {
		h.logger.WithError(err).WithField("channel", cmd.ChannelID).
			Error("failed to post leave request anchor")
		return
	}

	meta, err := interaction.Encode(interaction.Context{
		PersonID:    cmd.UserID,
		ChannelID:   cmd.ChannelID,
		ChannelName: cmd.ChannelName,
		ThreadTS:    threadTS,
	})
	if err != nil {
		h.logger.WithError(err).Error("failed to encode interaction context")
		return
	}

	triggerID := cmd.TriggerID
	h.runner.Submit("open-leave-modal", func() {
		if err := h.chat.OpenModal(triggerID, buildLeaveModal(meta)); err != nil {
			h.logger.WithError(err).WithFields(logrus.Fields{
				"channel": cmd.ChannelID,
				"user":    cmd.UserID,
			}).Error("failed to open leave request modal")
		}
	})
}
