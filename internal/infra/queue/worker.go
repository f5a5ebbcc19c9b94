package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/roi-leads/internal/infra/http/middleware"
)

// LeadAlertSender is whatever notifies the sales inbox about a captured lead.
type LeadAlertSender interface {
	SendLeadAlert(to, leadEmail string, firstSeen bool) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  LeadAlertSender
	AlertTo string
}

func NewWorker(ch *amqp.Channel, mailer LeadAlertSender, alertTo string) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
		AlertTo: alertTo,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] invalid JSON: %s", err)
				// Malformed message, reject without requeue so the queue
				// doesn't jam.
				d.Nack(false, false)
				continue
			}

			if err := w.processMessage(payload); err != nil {
				log.Printf("❌ [WORKER] alert failed for %s: %s", payload.Email, err)
				middleware.RecordLeadNotification("failed")
				d.Nack(false, false)
			} else {
				middleware.RecordLeadNotification("sent")
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker running, waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(payload LeadCapturedPayload) error {
	if w.Mailer == nil || w.AlertTo == "" {
		// Capture-only mode: nothing to notify, just drain the queue.
		log.Printf("📥 [WORKER] lead captured: %s (first_seen=%t), mail not configured", payload.Email, payload.FirstSeen)
		return nil
	}

	return w.Mailer.SendLeadAlert(w.AlertTo, payload.Email, payload.FirstSeen)
}
