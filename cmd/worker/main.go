package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/streadway/amqp"

	"github.com/unclebandit/hudey-console/internal/config"
	"github.com/unclebandit/hudey-console/internal/db"
	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/queue"
	"github.com/unclebandit/hudey-console/internal/repository"
	"github.com/unclebandit/hudey-console/internal/service"
)

func main() {
	cfg, err := config.Load(envOr("CONFIG_FILE", "config.yaml"))
	if err != nil {
		log.Fatal("❌ config: ", err)
	}
	if err := cfg.RequireSnapshots(); err != nil {
		log.Fatal("❌ config: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	defer conn.Close()

	mq, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer mq.Close()

	ch, err := mq.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := queue.DeclareSnapshotQueue(ch)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		log.Fatal("Failed to set QoS:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false, acked after the row is written
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	jobs := make(chan service.SnapshotJob)
	worker := service.NewWorker(&repository.SnapshotRepository{DB: conn}, jobs)
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Start(ctx)
	}()

	log.Println("Worker running, waiting for snapshots...")
	for {
		select {
		case <-ctx.Done():
			close(jobs)
			<-done
			log.Println("🛑 worker stopped")
			return
		case d, ok := <-msgs:
			if !ok {
				log.Println("⚠️ delivery channel closed")
				close(jobs)
				<-done
				return
			}
			job, err := toJob(d.Body, d.Redelivered, deliveryAcker{d})
			if err != nil {
				log.Println("Invalid snapshot:", err)
				d.Ack(false)
				continue
			}
			select {
			case jobs <- job:
			case <-ctx.Done():
				d.Nack(false, true)
			}
		}
	}
}

type acker interface {
	Ack() error
	Nack(requeue bool) error
}

type deliveryAcker struct {
	d amqp.Delivery
}

func (a deliveryAcker) Ack() error { return a.d.Ack(false) }
func (a deliveryAcker) Nack(requeue bool) error { return a.d.Nack(false, requeue) }

// toJob decodes a delivery. A snapshot that fails to store is requeued
// once; if the redelivery fails too it is dropped.
func toJob(body []byte, redelivered bool, a acker) (service.SnapshotJob, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return service.SnapshotJob{}, err
	}
	if snap.ID == "" || snap.Kind == "" {
		return service.SnapshotJob{}, fmt.Errorf("snapshot without id or kind")
	}

	return service.SnapshotJob{
		Snapshot: snap,
		Done: func(stored bool) {
			switch {
			case stored:
				a.Ack()
			case redelivered:
				log.Printf("⚠️ dropping snapshot %s after redelivery\n", snap.ID)
				a.Nack(false)
			default:
				a.Nack(true)
			}
		},
	}, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
