package httpserver

import (
	"context"
	"time"

	"github.com/Skotchmaster/magazin/internal/events"
	"github.com/Skotchmaster/magazin/pkg/logging"
)

const publishTimeout = 5 * time.Second

// publish sends a domain event. A failed publish is logged and never fails
// the request that produced it.
func publish(ctx context.Context, p events.Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
