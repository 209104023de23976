package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/playtrove/gamestore/config"
	"github.com/playtrove/gamestore/internal/application"
	"github.com/playtrove/gamestore/pkg/helpers"
)

// catalog_worker consumes catalog-change events and drops the matching redis
// cache entries, so every process sharing the cache sees fresh tag listings
// after an association write.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.RabbitMQURL == "" || cfg.RabbitMQCatalogQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQCatalogQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQCatalogQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	cache := helpers.NewTagCache(rdb, 0)

	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev application.CatalogEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			key := application.CacheKey(ev.Kind, ev.GameID)
			if err := cache.Drop(ctx, key); err != nil {
				log.Printf("invalidate %s: %v", key, err)
				_ = msg.Nack(false, true)
				continue
			}
			log.Printf("invalidated %s (event %s)", key, ev.ID)
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("catalog worker consuming %s", cfg.RabbitMQCatalogQueue)
	select {
	case <-stop:
		log.Println("shutting down")
	case <-done:
		log.Println("channel closed")
	}
}
