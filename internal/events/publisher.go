package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"catalog-ingest-service/internal/models"
)

const subjectImportCompleted = "catalog.import.completed"

// ImportCompletedEvent is published after every ingestion run so downstream
// consumers (search indexing, the recommendation engine) can react.
type ImportCompletedEvent struct {
	EventType       string    `json:"eventType"`
	Retailer        string    `json:"retailer"`
	Success         bool      `json:"success"`
	Imported        int       `json:"imported"`
	Failed          int       `json:"failed"`
	ImagesExtracted int       `json:"imagesExtracted"`
	ProcessingMs    int64     `json:"processingMs"`
	Timestamp       time.Time `json:"timestamp"`
}

// Publisher publishes catalog ingestion events over NATS
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS_URL and returns a publisher
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("catalog-ingest-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "catalog-events"),
	}, nil
}

// Close drains and closes the NATS connection
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// PublishImportCompleted publishes a catalog.import.completed event. The
// publish happens asynchronously and never blocks or fails an import.
func (p *Publisher) PublishImportCompleted(ctx context.Context, retailer string, result *models.ImportResult) {
	event := ImportCompletedEvent{
		EventType:       subjectImportCompleted,
		Retailer:        retailer,
		Success:         result.Success,
		Imported:        result.Imported,
		Failed:          result.Failed,
		ImagesExtracted: result.ImagesExtracted,
		ProcessingMs:    result.ProcessingMs,
		Timestamp:       time.Now().UTC(),
	}

	go func() {
		data, err := json.Marshal(event)
		if err != nil {
			p.logger.WithError(err).Error("Failed to encode import event")
			return
		}

		if err := p.conn.Publish(subjectImportCompleted, data); err != nil {
			p.logger.WithFields(logrus.Fields{
				"retailer": retailer,
				"imported": result.Imported,
			}).WithError(err).Error("Failed to publish import event")
			return
		}

		p.logger.WithFields(logrus.Fields{
			"retailer": retailer,
			"imported": result.Imported,
			"failed":   result.Failed,
		}).Info("Import event published")
	}()
}
