package notify

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisNotificationPublisher_ChannelNames(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	branchID := uuid.New()

	t.Run("default prefix", func(t *testing.T) {
		publisher := NewRedisNotificationPublisherWithClient(client)

		assert.Equal(t, fmt.Sprintf("pharmacy:branch:%s:stock", branchID), publisher.stockChannel(branchID))
		assert.Equal(t, fmt.Sprintf("pharmacy:branch:%s:alerts", branchID), publisher.alertChannel(branchID))
		assert.Equal(t, fmt.Sprintf("pharmacy:branch:%s:sales", branchID), publisher.saleChannel(branchID))
	})

	t.Run("custom prefix", func(t *testing.T) {
		publisher := NewRedisNotificationPublisherWithClient(client, WithChannelPrefix("staging"))

		assert.Equal(t, fmt.Sprintf("staging:branch:%s:stock", branchID), publisher.stockChannel(branchID))
	})
}

func TestRedisNotificationPublisher_CloseSharedClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	publisher := NewRedisNotificationPublisherWithClient(client)

	// Shared client must survive a publisher close
	assert.NoError(t, publisher.Close())
}
