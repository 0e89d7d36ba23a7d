package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"
	"tourizto/config"
	"tourizto/infras/otel"
	"tourizto/shared/constant"
	"tourizto/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"
)

const (
	otelAttrRecipient = "recipient"
	otelAttrSubject   = "subject"
)

// Mailer delivers transactional mail. Delivery is best effort: callers
// treat a returned error as a notification failure, never as a reason
// to roll anything back.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) (messageID string, err error)
}

type mailerImpl struct {
	config *config.Config
	dialer *gomail.Dialer
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Mailer {
	m := &mailerImpl{
		config: config,
		otel:   otel,
	}

	smtp := config.External.SMTP
	if smtp.Host == constant.Empty {
		log.Warn().Msg("SMTP host not configured, mail delivery runs in log-only mode")

		return m
	}

	m.dialer = gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)

	log.Info().Str("host", smtp.Host).Int("port", smtp.Port).Msg("Mailer initialized")

	return m
}

func (m *mailerImpl) Send(ctx context.Context, to, subject, htmlBody string) (messageID string, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrRecipient: to,
		otelAttrSubject:   subject,
	})

	smtp := m.config.External.SMTP

	if m.dialer == nil {
		messageID = fmt.Sprintf("fake-id-%d", timezone.Now().UnixMilli())

		log.Info().
			Str("to", to).
			Str("subject", subject).
			Str("messageID", messageID).
			Msg("SMTP not configured, skipping mail delivery")

		return messageID, nil
	}

	messageID = fmt.Sprintf("<%s@%s>", uuid.NewString(), smtp.Host)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", smtp.Username, smtp.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/html", htmlBody)

	if err = m.dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("to", to).Msg("Failed to send mail")

		return constant.Empty, fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", to).Str("messageID", messageID).Msg("Mail sent")

	return messageID, nil
}
