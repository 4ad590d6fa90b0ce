package handler

import (
	"fmt"

	"leave-registry/internal/interaction"

	"github.com/slack-go/slack"
)

// handleCancellation runs the third orchestrator leg: the person closed the
// form without submitting. Nothing was persisted, so the only work is a
// best-effort notice into the thread.
func (h *Handler) handleCancellation(cb slack.InteractionCallback) {
	meta, err := interaction.Decode(cb.View.PrivateMetadata)
	if err != nil {
		h.logger.WithError(err).Error("view closed with undecodable context")
		return
	}

	h.runner.Submit("post-cancellation-notice", func() {
		h.postThreadReply(meta, fmt.Sprintf("🚫 <@%s> closed the leave request form without submitting.", meta.PersonID))
	})
}
