// Package scheduler runs the nightly reminder job: every day at 09:00
// it scans the next day's bookings and publishes one reminder event per
// booking for the consumer to record.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/byronjee/restaurant-reservation/internal/queue"
	"github.com/byronjee/restaurant-reservation/internal/repository"
	"github.com/byronjee/restaurant-reservation/internal/service"
)

// Reminder scans upcoming bookings and emits reminder events.
type Reminder struct {
	bookings *repository.BookingRepo
	tables   *repository.TableRepo
}

func NewReminder(bookings *repository.BookingRepo, tables *repository.TableRepo) *Reminder {
	return &Reminder{bookings: bookings, tables: tables}
}

// Start registers the daily job and starts the cron runner.  The
// returned cron can be stopped on shutdown.
func (r *Reminder) Start() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("0 9 * * *", func() { r.Run(time.Now()) }); err != nil {
		log.Printf("reminder: failed to register cron job: %v", err)
		return c
	}
	c.Start()
	log.Println("reminder scheduler started")
	return c
}

// Run publishes a reminder for every booking on the day after now.
// Publish failures are logged and skipped; the job retries tomorrow.
func (r *Reminder) Run(now time.Time) {
	target := service.DateOnly(now.AddDate(0, 0, 1))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bookings, err := r.bookings.BookingsOn(ctx, target)
	if err != nil {
		log.Printf("reminder: load bookings for %s failed: %v", target.Format("2006-01-02"), err)
		return
	}
	if len(bookings) == 0 {
		return
	}

	// Table numbers for event payloads; one lookup for the whole run.
	tables, err := r.tables.TablesByNumber(ctx)
	if err != nil {
		log.Printf("reminder: load tables failed: %v", err)
		return
	}
	numbers := make(map[uint64]uint32, len(tables))
	for _, t := range tables {
		numbers[t.ID] = t.TableNumber
	}

	sent := 0
	for _, b := range bookings {
		ev := queue.BookingReminderEvent{
			BookingID:     b.ID,
			TableNumber:   numbers[b.TableID],
			BookingDate:   target.Format("2006-01-02"),
			BookingTime:   b.BookingTime,
			GuestCount:    b.GuestCount,
			CustomerName:  b.CustomerName,
			CustomerPhone: b.CustomerPhone,
		}
		if err := queue.Publish(ctx, queue.ReminderQueue, ev); err != nil {
			log.Printf("reminder: publish for booking %d failed: %v", b.ID, err)
			continue
		}
		sent++
	}
	log.Printf("reminder: published %d reminder(s) for %s", sent, target.Format("2006-01-02"))
}
