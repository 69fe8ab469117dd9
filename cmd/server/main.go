package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/byronjee/restaurant-reservation/internal/config"
	"github.com/byronjee/restaurant-reservation/internal/database"
	"github.com/byronjee/restaurant-reservation/internal/handler"
	"github.com/byronjee/restaurant-reservation/internal/middleware"
	"github.com/byronjee/restaurant-reservation/internal/queue"
	"github.com/byronjee/restaurant-reservation/internal/repository"
	"github.com/byronjee/restaurant-reservation/internal/router"
	"github.com/byronjee/restaurant-reservation/internal/scheduler"
	"github.com/byronjee/restaurant-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Create the schema if needed, then seed the floor plan, staff
	// roster and admin account on first run.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		if err := database.Seed(ctx, db, cfg.AdminPassword, cfg.BcryptCost); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable; features degrade

	// Repositories.
	tables := repository.NewTableRepo(db)
	staff := repository.NewStaffRepo(db)
	bookings := repository.NewBookingRepo(db)
	transactions := repository.NewTransactionRepo(db)
	accounts := repository.NewAccountRepo(db)
	tokens := repository.NewTokenRepo(db)

	availability := service.NewAvailability(tables, bookings)
	booker := service.NewBooker(availability, repository.NewBookingStore(db, bookings, transactions))

	// Handlers.
	authH := handler.NewAuthHandler(cfg, accounts, tokens)
	bookingH := handler.NewBookingHandler(bookings, tables, staff, transactions, booker)
	layoutH := handler.NewDayLayoutHandler(availability)
	tableH := handler.NewTableHandler(tables)
	staffH := handler.NewStaffHandler(staff)
	txH := handler.NewTransactionHandler(transactions)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limiter)
	router.RegisterStaff(e, router.StaffHandlers{
		Bookings:     bookingH,
		DayLayout:    layoutH,
		Tables:       tableH,
		Staff:        staffH,
		Transactions: txH,
	}, cfg.JWTSecret, cache, limiter)
	router.RegisterAdmin(e, tableH, authH, cfg.JWTSecret, limiter)

	// Nightly reminders and the broker consumer run beside the server.
	scheduler.NewReminder(bookings, tables).Start()
	go queue.StartConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
