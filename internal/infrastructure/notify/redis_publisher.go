package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	ledger "github.com/maumaun30/CM-Pharmacy-API/internal/application/inventory"
	appsales "github.com/maumaun30/CM-Pharmacy-API/internal/application/sales"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/config"
)

const defaultChannelPrefix = "pharmacy"

// RedisNotificationPublisher publishes stock and sale notifications to
// branch-scoped Redis Pub/Sub channels. Terminals subscribed to a branch
// channel receive live stock levels without polling.
type RedisNotificationPublisher struct {
	client     *redis.Client
	ownsClient bool
	prefix     string
	logger     *zap.Logger
}

// RedisNotificationPublisherOption is a functional option for configuring the publisher
type RedisNotificationPublisherOption func(*RedisNotificationPublisher)

// WithChannelPrefix sets the Pub/Sub channel prefix
func WithChannelPrefix(prefix string) RedisNotificationPublisherOption {
	return func(p *RedisNotificationPublisher) {
		p.prefix = prefix
	}
}

// WithPublisherLogger sets the logger for the publisher
func WithPublisherLogger(logger *zap.Logger) RedisNotificationPublisherOption {
	return func(p *RedisNotificationPublisher) {
		p.logger = logger
	}
}

// NewRedisNotificationPublisher creates a publisher with its own Redis client
func NewRedisNotificationPublisher(cfg *config.RedisConfig, opts ...RedisNotificationPublisherOption) (*RedisNotificationPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	publisher := &RedisNotificationPublisher{
		client:     client,
		ownsClient: true,
		prefix:     defaultChannelPrefix,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(publisher)
	}

	return publisher, nil
}

// NewRedisNotificationPublisherWithClient creates a publisher with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisNotificationPublisherWithClient(client *redis.Client, opts ...RedisNotificationPublisherOption) *RedisNotificationPublisher {
	publisher := &RedisNotificationPublisher{
		client:     client,
		ownsClient: false,
		prefix:     defaultChannelPrefix,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(publisher)
	}

	return publisher
}

// PublishStockLevel publishes a stock level change to the branch stock channel
func (p *RedisNotificationPublisher) PublishStockLevel(ctx context.Context, notification ledger.StockLevelNotification) error {
	return p.publish(ctx, p.stockChannel(notification.BranchID), notification)
}

// PublishLowStockAlert publishes a reorder warning to the branch alert channel
func (p *RedisNotificationPublisher) PublishLowStockAlert(ctx context.Context, alert ledger.LowStockAlert) error {
	return p.publish(ctx, p.alertChannel(alert.BranchID), alert)
}

// PublishSaleCompleted publishes a completed sale to the branch sale channel
func (p *RedisNotificationPublisher) PublishSaleCompleted(ctx context.Context, notification appsales.SaleCompletedNotification) error {
	return p.publish(ctx, p.saleChannel(notification.BranchID), notification)
}

func (p *RedisNotificationPublisher) publish(ctx context.Context, channel string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal notification",
			zap.String("channel", channel),
			zap.Error(err))
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		p.logger.Error("failed to publish notification",
			zap.String("channel", channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.logger.Debug("published notification",
		zap.String("channel", channel))

	return nil
}

func (p *RedisNotificationPublisher) stockChannel(branchID uuid.UUID) string {
	return fmt.Sprintf("%s:branch:%s:stock", p.prefix, branchID)
}

func (p *RedisNotificationPublisher) alertChannel(branchID uuid.UUID) string {
	return fmt.Sprintf("%s:branch:%s:alerts", p.prefix, branchID)
}

func (p *RedisNotificationPublisher) saleChannel(branchID uuid.UUID) string {
	return fmt.Sprintf("%s:branch:%s:sales", p.prefix, branchID)
}

// Close closes the Redis client if the publisher owns it
func (p *RedisNotificationPublisher) Close() error {
	if p.ownsClient {
		return p.client.Close()
	}
	return nil
}

var (
	_ ledger.NotificationSink   = (*RedisNotificationPublisher)(nil)
	_ appsales.NotificationSink = (*RedisNotificationPublisher)(nil)
)
