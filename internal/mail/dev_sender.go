package mail

import (
	"context"

	"github.com/sirupsen/logrus"
)

// DevSender logs messages instead of delivering them. Used when no Postmark
// token is configured.
type DevSender struct {
	logger *logrus.Logger
}

// NewDevSender creates a log-only sender.
func NewDevSender(logger *logrus.Logger) *DevSender {
	if logger == nil {
		logger = logrus.New()
	}
	return &DevSender{logger: logger}
}

// Send logs the message and reports success.
func (s *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
		"tag":     msg.Tag,
	}).Info("dev mail sender: message not delivered")
	return nil
}
