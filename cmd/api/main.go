package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/config"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	appHTTP "github.com/cmlabs-hris/vacation-planner-go/internal/handler/http"
	"github.com/cmlabs-hris/vacation-planner-go/internal/messaging/kafka"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/cron"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/lock"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/sse"
	employeeService "github.com/cmlabs-hris/vacation-planner-go/internal/service/employee"
	notificationService "github.com/cmlabs-hris/vacation-planner-go/internal/service/notification"
	vacationService "github.com/cmlabs-hris/vacation-planner-go/internal/service/vacation"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.Database, cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer st.close()

	clock := calendar.SystemClock()
	hub := sse.NewHub()

	var publisher notification.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(kafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("Kafka notification publishing enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	var locker lock.Locker = lock.LocalLocker{}
	if cfg.Redis.Addr != "" {
		client, err := lock.NewRedisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer client.Close()
		locker = lock.NewRedisLocker(client)
		logger.Info("Redis recalculation lock enabled", "addr", cfg.Redis.Addr)
	}

	vacationSvc := vacationService.NewVacationService(
		st.tx,
		st.employees,
		st.requests,
		st.usages,
		notificationService.NewOutboxSink(st.notifications),
		clock,
		logger.With(slog.String("component", "vacation")),
		vacationService.Config{ManagerRoleID: cfg.App.ManagerRoleID},
	)
	notificationSvc := notificationService.NewNotificationService(
		st.notifications,
		hub,
		publisher,
		clock,
		logger.With(slog.String("component", "notification")),
		notificationService.Config{BatchSize: cfg.Notification.BatchSize},
	)
	employeeSvc := employeeService.NewEmployeeService(st.employees)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			Version:        cfg.App.Version,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
			ManagerRoleID:  cfg.App.ManagerRoleID,
		},
		JWTService,
		appHTTP.NewVacationHandler(vacationSvc, cfg.App.ManagerRoleID),
		appHTTP.NewEmployeeHandler(employeeSvc, vacationSvc, clock),
		appHTTP.NewNotificationHandler(notificationSvc, JWTService),
	)

	scheduler := cron.NewScheduler(logger.With(slog.String("component", "cron")))
	cron.NewVacationJobs(vacationSvc, notificationSvc, locker, clock, logger.With(slog.String("component", "cron")), cron.VacationJobsConfig{
		RecalculationInterval: cfg.Scheduler.RecalculationInterval,
		RelayInterval:         cfg.Notification.RelayInterval,
		LockTTL:               cfg.Redis.LockTTL,
	}).RegisterJobs(scheduler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		scheduler.Start(gctx)
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
