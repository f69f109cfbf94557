// Package queue_publisher publishes domain events to RabbitMQ.  Errors are
// logged and swallowed so a broker outage never interrupts the request flow;
// the rows the events describe are already durable in MySQL.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
	q "github.com/iliyamo/artist-booking-marketplace/internal/queue"
	"github.com/iliyamo/artist-booking-marketplace/internal/repository"
)

// Publisher enriches domain objects into broker events and publishes them.
// It satisfies the booking package's EventPublisher interface.
type Publisher struct {
	artists  *repository.ArtistRepo
	services *repository.ServiceRepo
}

// NewPublisher returns a Publisher backed by the given repositories.
func NewPublisher(artists *repository.ArtistRepo, services *repository.ServiceRepo) *Publisher {
	return &Publisher{artists: artists, services: services}
}

// ReservationCreated publishes a reservation.created event.  The artist's
// user ID and the service title are resolved here so the consumer never has
// to touch the database for display data.
func (p *Publisher) ReservationCreated(ctx context.Context, res *model.Reservation) {
	ev := q.ReservationCreatedEvent{
		ReservationID: res.ID,
		BookerID:      res.UserID,
		ArtistID:      res.ArtistID,
		EventDate:     res.EventDate,
		Amount:        res.Amount,
		ServiceFee:    res.ServiceFee,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if artist, err := p.artists.GetByID(ctx, res.ArtistID); err == nil {
		ev.ArtistUserID = artist.UserID
	} else {
		log.Printf("publisher: resolve artist %d failed: %v", res.ArtistID, err)
	}
	if svc, err := p.services.GetByID(ctx, res.ServiceID); err == nil {
		ev.ServiceTitle = svc.Title
	}
	publish(ctx, q.ReservationCreatedQueue, ev)
}

// PaymentCompleted publishes a payment.completed event after a payment is
// recorded.  paymentStatus is the reservation's standing after the payment.
func (p *Publisher) PaymentCompleted(ctx context.Context, pay *model.Payment, artistID uint64, paymentStatus string) {
	ev := q.PaymentCompletedEvent{
		PaymentID:     pay.ID,
		ReservationID: pay.ReservationID,
		BookerID:      pay.UserID,
		Amount:        pay.Amount,
		PaymentType:   pay.PaymentType,
		PaymentStatus: paymentStatus,
		Reference:     pay.Reference,
		PaidAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if artist, err := p.artists.GetByID(ctx, artistID); err == nil {
		ev.ArtistUserID = artist.UserID
	} else {
		log.Printf("publisher: resolve artist %d failed: %v", artistID, err)
	}
	publish(ctx, q.PaymentCompletedQueue, ev)
}

// publish marshals the event and sends it to the named durable queue.  A
// fresh connection per publish keeps the publisher stateless; the broker is
// local to the deployment and dials are cheap relative to request volume.
func publish(ctx context.Context, queueName string, event interface{}) {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return
	}
	defer func() { _ = ch.Close() }()

	// Declare is idempotent. Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
}
