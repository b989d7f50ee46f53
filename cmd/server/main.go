package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rambackend/user-tasks-api/internal/config"
	"github.com/rambackend/user-tasks-api/internal/database"
	"github.com/rambackend/user-tasks-api/internal/events"
	"github.com/rambackend/user-tasks-api/internal/handlers"
	"github.com/rambackend/user-tasks-api/internal/mail"
	"github.com/rambackend/user-tasks-api/internal/queue"
	"github.com/rambackend/user-tasks-api/internal/repository"
	"github.com/rambackend/user-tasks-api/internal/services"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}
	logger.Info("Database connection established")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background queue: in-process storage, polling worker.
	storage := queue.NewMemoryStorage()
	enqueuer, err := queue.NewClient(storage, cfg.Queue.MaxRetries)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create queue client")
	}
	worker, err := queue.NewWorker(storage, time.Duration(cfg.Queue.PullIntervalSeconds)*time.Second, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create queue worker")
	}

	sender := buildMailSender(cfg, logger)

	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	bus := events.NewBus(logger)

	notifications := services.NewNotificationService(enqueuer, sender, userRepo, logger)
	notifications.Register(bus)
	for _, handler := range notifications.Handlers() {
		worker.RegisterHandler(handler)
	}
	worker.Start(ctx)
	scheduleDailyReminder(ctx, enqueuer, time.Duration(cfg.Queue.ReminderIntervalHours)*time.Hour, logger)

	userService := services.NewUserService(userRepo, bus)
	taskService := services.NewTaskService(taskRepo)

	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, bus)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "User Tasks API is running",
		})
	})

	r.POST("/user/", userHandler.CreateUser)
	r.GET("/user/:user_id/tasks/", userHandler.GetUserTasks)
	r.GET("/task/", taskHandler.ListTasks)
	r.POST("/task/", taskHandler.CreateTask)
	r.PATCH("/task/:task_id/assign/", taskHandler.AssignTask)

	logger.WithField("addr", cfg.Server.Addr).Info("Server starting")
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.WithError(err).Fatal("Failed to start server")
	}

	stop()
	worker.Wait()
}

// scheduleDailyReminder enqueues the reminder broadcast on a fixed interval
// until ctx is cancelled.
func scheduleDailyReminder(ctx context.Context, enqueuer queue.Enqueuer, interval time.Duration, logger *logrus.Logger) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := enqueuer.Enqueue(ctx, services.JobSendDailyReminder, services.DailyReminderJob{}); err != nil {
					logger.WithError(err).Error("Failed to enqueue daily reminder")
				}
			}
		}
	}()
}

func buildMailSender(cfg config.Config, logger *logrus.Logger) mail.Sender {
	if cfg.Mail.PostmarkServerToken == "" {
		logger.Warn("No Postmark token configured, using dev mail sender")
		return mail.NewDevSender(logger)
	}

	sender, err := mail.NewPostmarkSender(mail.PostmarkConfig{
		ServerToken:  cfg.Mail.PostmarkServerToken,
		AccountToken: cfg.Mail.PostmarkAccountToken,
		SenderEmail:  cfg.Mail.SenderEmail,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to create Postmark sender")
	}
	return sender
}
