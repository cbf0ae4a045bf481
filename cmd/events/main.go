package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"doc-assistant-be/internal/config"
	"doc-assistant-be/pkg/events"
	pkgNats "doc-assistant-be/pkg/nats"
)

// Tails the lifecycle event stream. Handy for watching uploads and
// cleanups while developing against a local NATS.
func main() {
	cfg := config.Load()

	sub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect subscriber: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("doc.events.>", "doc-assistant-event-tail", func(ctx context.Context, event events.Event) error {
		payload, _ := json.Marshal(event.Payload())
		log.Printf("[%s] %s", event.EventType(), payload)
		return nil
	})
	if err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
