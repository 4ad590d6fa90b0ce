package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/slack-go/slack"
)

// The webhook boundary acknowledges every inbound call with a bare 200,
// whatever happened internally. The platform retries non-2xx responses
// automatically, and a retry of a broken payload can never succeed, so
// failures are logged here and swallowed.

// verifiedBody reads the raw body, checks the platform signature over it,
// and restores the body for form parsing. A false return means the request
// must not be processed further.
func (h *Handler) verifiedBody(r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.WithError(err).Error("failed to read webhook body")
		return nil, false
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	sv, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		h.logger.WithError(err).Warn("webhook rejected: bad signature headers")
		return nil, false
	}
	if _, err := sv.Write(body); err != nil {
		h.logger.WithError(err).Error("failed to hash webhook body")
		return nil, false
	}
	if err := sv.Ensure(); err != nil {
		h.logger.WithError(err).Warn("webhook rejected: signature mismatch")
		return nil, false
	}
	return body, true
}

func ack(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// SlashCommand receives the slash-command payload (form-encoded fields).
func (h *Handler) SlashCommand(w http.ResponseWriter, r *http.Request) {
	defer ack(w)

	if _, ok := h.verifiedBody(r); !ok {
		return
	}
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		h.logger.WithError(err).Warn("unparseable slash command payload")
		return
	}
	h.handleCommand(cmd)
}

// Interaction receives the structural callbacks: a JSON payload whose type
// field discriminates view submissions from view closures. The switch is
// the closed set of shapes this boundary understands; anything else is
// logged and dropped.
func (h *Handler) Interaction(w http.ResponseWriter, r *http.Request) {
	defer ack(w)

	if _, ok := h.verifiedBody(r); !ok {
		return
	}
	payload := r.FormValue("payload")
	if payload == "" {
		h.logger.Warn("interaction webhook without payload field")
		return
	}

	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		h.logger.WithError(err).Warn("unparseable interaction payload")
		return
	}

	switch cb.Type {
	case slack.InteractionTypeViewSubmission:
		h.handleSubmission(cb)
	case slack.InteractionTypeViewClosed:
		h.handleCancellation(cb)
	default:
		h.logger.WithField("type", string(cb.Type)).Warn("unknown interaction discriminator")
	}
}
