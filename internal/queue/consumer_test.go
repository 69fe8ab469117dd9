package queue

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func TestForwardDelivers(t *testing.T) {
	msgs := make(chan amqp.Delivery, 1)
	out := make(chan amqp.Delivery)
	done := make(chan struct{})
	defer close(done)

	go forward(msgs, out, done)
	msgs <- amqp.Delivery{RoutingKey: CreatedQueue}
	close(msgs)

	select {
	case d := <-out:
		if d.RoutingKey != CreatedQueue {
			t.Fatalf("routing key = %q", d.RoutingKey)
		}
	case <-time.After(time.Second):
		t.Fatal("delivery was not forwarded")
	}
}

func TestForwardExitsOnDone(t *testing.T) {
	msgs := make(chan amqp.Delivery, 1)
	out := make(chan amqp.Delivery) // no reader: the send must block
	done := make(chan struct{})

	exited := make(chan struct{})
	go func() {
		forward(msgs, out, done)
		close(exited)
	}()

	msgs <- amqp.Delivery{RoutingKey: CreatedQueue}
	close(done)

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("forward did not exit after done closed")
	}
}

func TestForwardExitsWhenSourceCloses(t *testing.T) {
	msgs := make(chan amqp.Delivery)
	out := make(chan amqp.Delivery)
	done := make(chan struct{})
	defer close(done)

	exited := make(chan struct{})
	go func() {
		forward(msgs, out, done)
		close(exited)
	}()
	close(msgs)

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("forward did not exit after source closed")
	}
}

func TestFormatLine(t *testing.T) {
	created, _ := json.Marshal(BookingCreatedEvent{
		BookingID: 7, TableNumber: 3, BookingDate: "2025-07-04", BookingTime: "18:30",
		GuestCount: 4, CustomerName: "Alice", AmountCents: 20000, Reference: "ref-1",
	})
	cancelled, _ := json.Marshal(BookingCancelledEvent{
		BookingID: 7, TableNumber: 3, BookingDate: "2025-07-04", CustomerName: "Alice",
	})
	reminder, _ := json.Marshal(BookingReminderEvent{
		BookingID: 7, TableNumber: 3, BookingDate: "2025-07-05", BookingTime: "19:00",
		GuestCount: 2, CustomerName: "Bob",
	})

	tests := []struct {
		queue  string
		body   []byte
		substr []string
	}{
		{CreatedQueue, created, []string{"Booking created", "booking_id=7", "table=3", "amount=20000", "ref-1"}},
		{CancelledQueue, cancelled, []string{"Booking cancelled", "booking_id=7", "2025-07-04"}},
		{ReminderQueue, reminder, []string{"Reminder", "booking_id=7", "19:00", `"Bob"`}},
	}
	for _, tt := range tests {
		line, err := formatLine(tt.queue, tt.body)
		if err != nil {
			t.Fatalf("formatLine(%s): %v", tt.queue, err)
		}
		for _, s := range tt.substr {
			if !strings.Contains(line, s) {
				t.Errorf("line for %s missing %q: %s", tt.queue, s, line)
			}
		}
		if !strings.HasSuffix(line, "\n") {
			t.Errorf("line for %s not newline-terminated", tt.queue)
		}
	}

	if _, err := formatLine("unknown.queue", []byte(`{}`)); err == nil {
		t.Error("unknown queue accepted")
	}
	if _, err := formatLine(CreatedQueue, []byte("not json")); err == nil {
		t.Error("malformed body accepted")
	}
}
