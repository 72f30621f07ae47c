package counter

import (
	"context"
	"strconv"
	"strings"

	"github.com/sunfield-crm/sunfield/internal/pkg/cache"
)

const (
	receivedKey  = "webhooks:counters:received"
	processedKey = "webhooks:counters:processed"
	failedKey    = "webhooks:counters:failed"
)

// AddReceived increments the received counter for a source/event-type pair.
// Counters are best effort; a Redis hiccup must never fail a delivery.
func AddReceived(source, eventType string) {
	incr(receivedKey, source, eventType)
}

// AddProcessed increments the processed counter for a source/event-type pair.
func AddProcessed(source, eventType string) {
	incr(processedKey, source, eventType)
}

// AddFailed increments the failed counter for a source/event-type pair.
func AddFailed(source, eventType string) {
	incr(failedKey, source, eventType)
}

func incr(key, source, eventType string) {
	client := cache.GetClient()
	if client == nil {
		return
	}
	field := source + ":" + eventType
	_ = client.HIncrBy(context.Background(), key, field, 1).Err()
}

// DeliveryCounts is the per-source/event-type rollup for one outcome bucket.
type DeliveryCounts map[string]int64

// Snapshot reads all delivery counters, keyed received/processed/failed with
// "source:event_type" fields inside each bucket.
func Snapshot() map[string]DeliveryCounts {
	out := map[string]DeliveryCounts{
		"received":  {},
		"processed": {},
		"failed":    {},
	}
	client := cache.GetClient()
	if client == nil {
		return out
	}

	ctx := context.Background()
	for bucket, key := range map[string]string{
		"received":  receivedKey,
		"processed": processedKey,
		"failed":    failedKey,
	} {
		data, err := client.HGetAll(ctx, key).Result()
		if err != nil {
			continue
		}
		for field, raw := range data {
			n, perr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if perr != nil {
				continue
			}
			out[bucket][field] = n
		}
	}
	return out
}
