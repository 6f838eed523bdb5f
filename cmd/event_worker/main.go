package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-ecommerce/config"
	"github.com/oksasatya/go-ddd-ecommerce/internal/application"
	"github.com/oksasatya/go-ddd-ecommerce/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-ddd-ecommerce/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/events"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/helpers"
)

type applier interface {
	Apply(ctx context.Context, ev events.EntityEvent) error
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env)

	if !cfg.EventsEnabled() {
		log.Fatal("RabbitMQ not configured")
	}
	if !cfg.SearchEnabled() {
		log.Fatal("Elasticsearch not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	es, err := helpers.NewESClient(ctx, cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}
	index := search.NewIndex(es, cfg.ESProductsIndex, cfg.ESUsersIndex)
	indexSync := application.NewIndexSync(index, nil, nil, logger)

	if cfg.ReindexOnStart {
		client, err := mongodb.NewClient(ctx, cfg.MongoURI, uint64(cfg.MongoMaxPoolSize), uint64(cfg.MongoMinPoolSize), cfg.MongoConnectTimeout)
		if err != nil {
			log.Fatalf("mongo: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		db := client.Database(cfg.MongoDatabase)
		indexSync.Users = mongodb.NewUserRepository(db)
		indexSync.Products = mongodb.NewProductRepository(db)
		if _, _, err := indexSync.Reindex(ctx); err != nil {
			helpers.LogError(logger, "reindex failed", err, nil)
		}
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	done := make(chan struct{})
	go func() {
		for msg := range msgs {
			handleDelivery(ctx, indexSync, logger, msg)
		}
		close(done)
	}()

	logger.Infof("event worker listening on queue=%s", cfg.RabbitMQEventsQueue)
	<-ctx.Done()
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handleDelivery acks applied events, drops events that can never apply and
// requeues the rest.
func handleDelivery(ctx context.Context, target applier, logger *logrus.Logger, msg amqp.Delivery) {
	var ev events.EntityEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		helpers.LogWarn(logger, "bad message", err, nil)
		_ = msg.Nack(false, false)
		return
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	err := target.Apply(c, ev)
	switch {
	case err == nil:
		_ = msg.Ack(false)
	case errors.Is(err, application.ErrUnknownEvent):
		helpers.LogWarn(logger, "dropping event", err, logrus.Fields{"event": ev.Key(), "id": ev.ID})
		_ = msg.Nack(false, false)
	default:
		helpers.LogError(logger, "apply event failed", err, logrus.Fields{"event": ev.Key(), "id": ev.ID})
		_ = msg.Nack(false, true)
	}
}
