package handler

import (
	"context"

	"leave-registry/internal/models"
	"leave-registry/internal/repository"
	"leave-registry/internal/service"
	"leave-registry/internal/worker"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// ChatClient is the outbound half of the chat platform boundary.
// *slackclient.Client satisfies it; tests substitute a recorder.
type ChatClient interface {
	PostMessage(channelID, threadTS, text string) (string, error)
	OpenModal(triggerID string, view slack.ModalViewRequest) error
}

// Ingestor is the single entry point every origin funnels into.
type Ingestor interface {
	Ingest(ctx context.Context, input service.IngestInput) (*models.Leave, error)
}

type Handler struct {
	chat          ChatClient
	ingestion     Ingestor
	leaves        repository.LeaveRepository
	runner        worker.Runner
	signingSecret string
	logger        *logrus.Logger
}

func NewHandler(
	chat ChatClient,
	ingestion Ingestor,
	leaves repository.LeaveRepository,
	runner worker.Runner,
	signingSecret string,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		chat:          chat,
		ingestion:     ingestion,
		leaves:        leaves,
		runner:        runner,
		signingSecret: signingSecret,
		logger:        logger,
	}
}
