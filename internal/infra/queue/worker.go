package queue

import (
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationSender is the contract the worker needs from the mail layer.
type NotificationSender interface {
	SendContactNotification(n ContactNotification) error
	SendContactAutoReply(n ContactNotification) error
}

type Worker struct {
	ch     *amqp.Channel
	sender NotificationSender
	log    *slog.Logger
}

func NewWorker(ch *amqp.Channel, sender NotificationSender, log *slog.Logger) *Worker {
	return &Worker{ch: ch, sender: sender, log: log}
}

// Start consumes the notification queue until the channel closes. Malformed
// messages and delivery failures are nacked without requeue, which routes
// them to the DLQ.
func (w *Worker) Start(queueName string) error {
	msgs, err := w.ch.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	for d := range msgs {
		var payload ContactNotification
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			w.log.Error("notification worker: invalid message", "error", err)
			d.Nack(false, false)
			continue
		}

		if err := w.process(payload); err != nil {
			w.log.Error("notification worker: delivery failed",
				"contact_id", payload.ContactID,
				"error", err,
			)
			d.Nack(false, false)
			continue
		}

		w.log.Info("notification worker: contact notified",
			"contact_id", payload.ContactID,
			"priority", payload.Priority,
		)
		d.Ack(false)
	}

	return nil
}

func (w *Worker) process(payload ContactNotification) error {
	if err := w.sender.SendContactNotification(payload); err != nil {
		return err
	}

	// The auto-reply is best effort: the admin already got the message.
	if err := w.sender.SendContactAutoReply(payload); err != nil {
		w.log.Warn("notification worker: auto-reply failed",
			"contact_id", payload.ContactID,
			"error", err,
		)
	}

	return nil
}
