package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kalibre-teknik/backoffice/internal/config"
)

// Service publishes back-office events over redis pub/sub. Consumers
// (dashboards, mobile clients) subscribe per tenant.
type Service struct {
	redis *redis.Client
}

// ReportReadyEvent announces a freshly generated report
type ReportReadyEvent struct {
	ReportNo  string    `json:"reportNo"`
	Sonuc     string    `json:"sonuc"`
	PDFURL    string    `json:"pdfUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewService creates a new notify service
func NewService(cfg *config.Config) *Service {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	return &Service{redis: rdb}
}

// ReportReady publishes a report-ready event on the tenant's channel
func (s *Service) ReportReady(ctx context.Context, tenantID uuid.UUID, event ReportReadyEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	channel := "reports:" + tenantID.String()
	if err := s.redis.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return nil
}

// Close releases the redis connection
func (s *Service) Close() error {
	return s.redis.Close()
}
