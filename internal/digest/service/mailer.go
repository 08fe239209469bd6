package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang-stock-digest/internal/digest/config"
	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/pkg/logger"
	"golang-stock-digest/pkg/mail"

	"github.com/resend/resend-go/v2"
)

// Mailer delivers a rendered digest to one recipient.
type Mailer interface {
	Send(ctx context.Context, to string, results []*dto.StockResearchResult) (string, error)
}

// NewResendMailer creates a Mailer backed by the Resend API.
func NewResendMailer(cfg *config.Config, client *resend.Client, logger *logger.Logger) (Mailer, error) {
	if cfg.Mail.BaseURL != "" {
		base := cfg.Mail.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid mail base url: %w", err)
		}
		client.BaseURL = u
	}
	return &resendMailer{
		client: client,
		from:   cfg.SenderAddress(),
		appURL: cfg.App.URL,
		logger: logger,
		now:    time.Now,
	}, nil
}

type resendMailer struct {
	client *resend.Client
	from   string
	appURL string
	logger *logger.Logger
	now    func() time.Time
}

// Send renders the digest and hands it to Resend. It returns the provider's
// message id.
func (m *resendMailer) Send(ctx context.Context, to string, results []*dto.StockResearchResult) (string, error) {
	html, err := mail.RenderDigest(mail.DigestData{
		Email:  to,
		AppURL: m.appURL,
		Stocks: results,
		Now:    m.now(),
	})
	if err != nil {
		return "", err
	}

	resp, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: mail.Subject(results),
		Html:    html,
	})
	if err != nil {
		m.logger.Error("Email send error", logger.ErrorField(err), logger.StringField("to", to))
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return resp.Id, nil
}
