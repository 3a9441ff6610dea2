package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
)

type ContactEmail struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type CustomizerEmail struct {
	Name      string
	Email     string
	Phone     string
	ModelName string
	Colors    map[string]string
	Features  []string
	Message   string
}

type colorLine struct {
	Part  string
	Color string
}

type executor interface {
	Execute(w io.Writer, data any) error
}

// Mailer renders inquiry notifications and hands them to a Sender.
type Mailer struct {
	sender Sender
	to     []string
	log    *zap.Logger
}

func NewMailer(sender Sender, to []string, log *zap.Logger) *Mailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mailer{sender: sender, to: to, log: log}
}

func (m *Mailer) SendContact(ctx context.Context, e ContactEmail) error {
	data := struct {
		ContactEmail
		MessageLines []string
	}{e, strings.Split(e.Message, "\n")}

	subject := "Contact Form: " + orDefault(e.Subject, "New Inquiry")
	return m.send(ctx, subject, e.Email, contactHTMLTmpl, contactTextTmpl, data)
}

func (m *Mailer) SendCustomizer(ctx context.Context, e CustomizerEmail) error {
	parts := make([]string, 0, len(e.Colors))
	for part := range e.Colors {
		parts = append(parts, part)
	}
	sort.Strings(parts)
	colors := make([]colorLine, 0, len(parts))
	for _, part := range parts {
		colors = append(colors, colorLine{Part: part, Color: e.Colors[part]})
	}

	data := struct {
		CustomizerEmail
		Colors       []colorLine
		MessageLines []string
	}{e, colors, strings.Split(e.Message, "\n")}

	subject := "Customizer Inquiry: " + orDefault(e.ModelName, "Model Inquiry")
	return m.send(ctx, subject, e.Email, customizerHTMLTmpl, customizerTextTmpl, data)
}

func (m *Mailer) send(ctx context.Context, subject, replyTo string, htmlTmpl, textTmpl executor, data any) error {
	var html, text bytes.Buffer
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if err := textTmpl.Execute(&text, data); err != nil {
		return fmt.Errorf("render text: %w", err)
	}

	id, err := m.sender.Send(ctx, Message{
		To:      m.to,
		Subject: subject,
		HTML:    html.String(),
		Text:    text.String(),
		ReplyTo: replyTo,
	})
	if err != nil {
		return fmt.Errorf("send %q: %w", subject, err)
	}
	m.log.Info("email sent", zap.String("id", id), zap.String("subject", subject))
	return nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
