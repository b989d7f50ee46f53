package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rambackend/user-tasks-api/internal/events"
	"github.com/rambackend/user-tasks-api/internal/mail"
	"github.com/rambackend/user-tasks-api/internal/queue"
	"github.com/rambackend/user-tasks-api/internal/repository"
)

// Job names known to the notification worker.
const (
	JobSendWelcomeEmail  = "send_welcome_email"
	JobSendDailyReminder = "send_daily_reminder"
)

// WelcomeEmailJob is the payload of the welcome email background job.
type WelcomeEmailJob struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// DailyReminderJob triggers the reminder broadcast. It carries no data; the
// handler reads the current recipient list from the store.
type DailyReminderJob struct{}

// NotificationService reacts to domain events: it enqueues email jobs and
// logs task lifecycle events. Email delivery happens on the queue worker,
// decoupled from the request that published the event.
type NotificationService struct {
	enqueuer queue.Enqueuer
	sender   mail.Sender
	userRepo repository.UserRepository
	logger   *logrus.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(enqueuer queue.Enqueuer, sender mail.Sender, userRepo repository.UserRepository, logger *logrus.Logger) *NotificationService {
	if logger == nil {
		logger = logrus.New()
	}
	return &NotificationService{
		enqueuer: enqueuer,
		sender:   sender,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register subscribes the service to the domain events it reacts to.
func (s *NotificationService) Register(bus *events.Bus) {
	bus.Subscribe(events.KindUserCreated, s.handleUserCreated)
	bus.Subscribe(events.KindTaskCreated, s.handleTaskCreated)
	bus.Subscribe(events.KindUserAssignedToTask, s.handleUserAssignedToTask)
}

// Handlers returns the job handlers the queue worker must register so the
// enqueued notifications actually run.
func (s *NotificationService) Handlers() []queue.Handler {
	return []queue.Handler{
		queue.NewJobHandler(JobSendWelcomeEmail, s.SendWelcomeEmail),
		queue.NewJobHandler(JobSendDailyReminder, s.SendDailyReminder),
	}
}

func (s *NotificationService) handleUserCreated(ctx context.Context, event events.Event) error {
	evt, ok := event.(events.UserCreated)
	if !ok {
		return fmt.Errorf("unexpected event payload %T for %s", event, events.KindUserCreated)
	}

	s.logger.WithField("email", evt.Email).Info("user created")

	return s.enqueuer.Enqueue(ctx, JobSendWelcomeEmail, WelcomeEmailJob{
		Email:    evt.Email,
		Username: evt.Username,
	})
}

func (s *NotificationService) handleTaskCreated(ctx context.Context, event events.Event) error {
	evt, ok := event.(events.TaskCreated)
	if !ok {
		return fmt.Errorf("unexpected event payload %T for %s", event, events.KindTaskCreated)
	}

	if !evt.Created {
		s.logger.WithField("error", evt.Err).Error("unable to create task")
		return nil
	}

	entry := s.logger.WithField("task", evt.Task.Name)
	if len(evt.Task.AssignedUsers) == 0 {
		entry.Info("new task created, not assigned to any users yet")
	} else {
		entry.WithField("assigned_users", evt.Task.AssignedUsers).Info("new task created and assigned")
	}
	return nil
}

func (s *NotificationService) handleUserAssignedToTask(ctx context.Context, event events.Event) error {
	evt, ok := event.(events.UserAssignedToTask)
	if !ok {
		return fmt.Errorf("unexpected event payload %T for %s", event, events.KindUserAssignedToTask)
	}

	s.logger.WithFields(logrus.Fields{
		"task":     evt.TaskName,
		"user_ids": evt.UserIDs,
	}).Info("task assigned to users")
	return nil
}

// SendWelcomeEmail delivers the welcome mail for one new user.
func (s *NotificationService) SendWelcomeEmail(ctx context.Context, job WelcomeEmailJob) error {
	err := s.sender.Send(ctx, mail.Message{
		To:      []string{job.Email},
		Subject: "Welcome to Our Platform!",
		Body:    fmt.Sprintf("Hello %s,\n\nThank you for joining us!", job.Username),
		Tag:     "welcome",
	})
	if err != nil {
		return fmt.Errorf("failed to send welcome email to %s: %w", job.Email, err)
	}

	s.logger.WithField("email", job.Email).Info("welcome email sent")
	return nil
}

// SendDailyReminder sends one reminder message addressed to every registered
// user. It is enqueued by an external scheduler, not by any domain event.
func (s *NotificationService) SendDailyReminder(ctx context.Context, _ DailyReminderJob) error {
	emails, err := s.userRepo.ListEmails()
	if err != nil {
		return fmt.Errorf("failed to list user emails: %w", err)
	}
	if len(emails) == 0 {
		return nil
	}

	err = s.sender.Send(ctx, mail.Message{
		To:      emails,
		Subject: "Daily Reminder",
		Body:    "This is your scheduled daily reminder.",
		Tag:     "daily-reminder",
	})
	if err != nil {
		return fmt.Errorf("failed to send daily reminder: %w", err)
	}

	s.logger.WithField("recipients", len(emails)).Info("daily reminder sent")
	return nil
}
