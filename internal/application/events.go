package application

import (
	"context"
	"expvar"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-ecommerce/pkg/events"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/helpers"
)

// entityOps counts successful writes per "<entity>.<type>", exposed on /debug/vars.
var entityOps = expvar.NewMap("entity_ops")

// EventPublisher is satisfied by *helpers.RabbitPublisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// recordWrite counts the write and publishes it when a publisher is set.
// Publishing is best-effort: failures are logged, never returned.
func recordWrite(ctx context.Context, pub EventPublisher, logger *logrus.Logger, typ, kind, id string, data any) {
	entityOps.Add(kind+"."+typ, 1)
	if pub == nil {
		return
	}
	ev, err := events.New(typ, kind, id, data)
	if err != nil {
		helpers.LogWarn(logger, "build entity event failed", err, logrus.Fields{"entity": kind, "id": id})
		return
	}
	if err := pub.PublishJSON(ctx, ev); err != nil {
		helpers.LogWarn(logger, "publish entity event failed", err, logrus.Fields{"event": ev.Key(), "id": id})
	}
}
