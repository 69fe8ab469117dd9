package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartConsumer connects to RabbitMQ, declares the booking queues
// (durable) and consumes them, appending one human-readable line per
// message to logs/booking.log.  It runs a reconnect loop with capped
// backoff and keeps running across broker restarts; processing errors
// reject the offending message without requeueing so the server is
// never wedged by a poison message.
func StartConsumer() error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{CreatedQueue, CancelledQueue, ReminderQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	// done releases the forwarding goroutines when this loop returns, so
	// an in-flight send never strands a goroutine across reconnects.
	deliveries := make(chan amqp.Delivery)
	done := make(chan struct{})
	defer close(done)
	for _, name := range []string{CreatedQueue, CancelledQueue, ReminderQueue} {
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		go forward(msgs, deliveries, done)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case d := <-deliveries:
			if err := handleMessage(d.RoutingKey, d.Body); err != nil {
				log.Printf("booking-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		case err := <-closed:
			return fmt.Errorf("connection closed: %v", err)
		}
	}
}

// forward copies deliveries to out until the source channel closes or
// done is signalled.
func forward(msgs <-chan amqp.Delivery, out chan<- amqp.Delivery, done <-chan struct{}) {
	for d := range msgs {
		select {
		case out <- d:
		case <-done:
			return
		}
	}
}

func handleMessage(queueName string, body []byte) error {
	line, err := formatLine(queueName, body)
	if err != nil {
		return err
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatLine(queueName string, body []byte) (string, error) {
	switch queueName {
	case CreatedQueue:
		var ev BookingCreatedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal created: %w", err)
		}
		return fmt.Sprintf("[%s] Booking created | booking_id=%d | table=%d | date=%s %s | guests=%d | customer=%q | amount=%d cents | ref=%s\n",
			ev.CreatedAt, ev.BookingID, ev.TableNumber, ev.BookingDate, ev.BookingTime, ev.GuestCount, ev.CustomerName, ev.AmountCents, ev.Reference), nil
	case CancelledQueue:
		var ev BookingCancelledEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal cancelled: %w", err)
		}
		return fmt.Sprintf("[%s] Booking cancelled | booking_id=%d | table=%d | date=%s | customer=%q\n",
			ev.CancelledAt, ev.BookingID, ev.TableNumber, ev.BookingDate, ev.CustomerName), nil
	case ReminderQueue:
		var ev BookingReminderEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal reminder: %w", err)
		}
		phone := ""
		if ev.CustomerPhone != nil {
			phone = *ev.CustomerPhone
		}
		return fmt.Sprintf("Reminder | booking_id=%d | table=%d | date=%s %s | guests=%d | customer=%q | phone=%q\n",
			ev.BookingID, ev.TableNumber, ev.BookingDate, ev.BookingTime, ev.GuestCount, ev.CustomerName, phone), nil
	}
	return "", errors.New("unknown queue: " + queueName)
}
