package authkit

import "context"

// LogMailer is a Mailer that writes messages to the logger instead of
// delivering them. It is the default wiring for development and tests;
// production deployments plug in a real provider behind the same interface.
type LogMailer struct {
	logger Logger
}

// NewLogMailer creates a new LogMailer instance
func NewLogMailer(logger Logger) *LogMailer {
	if logger == nil {
		logger = defLogger{}
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendConfirmationEmail(_ context.Context, user *User, token string) error {
	m.logger.Info("confirmation email for %s: token=%s", user.Email, token)
	return nil
}

func (m *LogMailer) SendResetPasswordEmail(_ context.Context, user *User, token string) error {
	m.logger.Info("reset password email for %s: token=%s", user.Email, token)
	return nil
}
