package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	msgs []Message
	err  error
}

func (s *captureSender) Send(_ context.Context, msg Message) (string, error) {
	s.msgs = append(s.msgs, msg)
	return "msg-1", s.err
}

func TestSendContact(t *testing.T) {
	sender := &captureSender{}
	m := NewMailer(sender, []string{"sales@tigermarine.test"}, nil)

	err := m.SendContact(context.Background(), ContactEmail{
		Name:    "Ann <b>",
		Email:   "ann@example.com",
		Message: "line one\nline two",
	})
	require.NoError(t, err)
	require.Len(t, sender.msgs, 1)

	msg := sender.msgs[0]
	assert.Equal(t, "Contact Form: New Inquiry", msg.Subject)
	assert.Equal(t, []string{"sales@tigermarine.test"}, msg.To)
	assert.Equal(t, "ann@example.com", msg.ReplyTo)
	assert.Contains(t, msg.HTML, "Ann &lt;b&gt;")
	assert.Contains(t, msg.HTML, "line one<br>line two")
	assert.Contains(t, msg.HTML, "Not provided")
	assert.Contains(t, msg.Text, "Ann <b>")
	assert.Contains(t, msg.Text, "No subject")
}

func TestSendCustomizer(t *testing.T) {
	sender := &captureSender{}
	m := NewMailer(sender, []string{"sales@tigermarine.test"}, nil)

	err := m.SendCustomizer(context.Background(), CustomizerEmail{
		Name:      "Bo",
		Email:     "bo@example.com",
		ModelName: "TL950",
		Colors:    map[string]string{"Hull": "White", "Deck": "Grey"},
		Features:  []string{"Radar"},
	})
	require.NoError(t, err)

	msg := sender.msgs[0]
	assert.Equal(t, "Customizer Inquiry: TL950", msg.Subject)
	assert.Contains(t, msg.HTML, "Deck: Grey<br>&bull; Hull: White")
	assert.Contains(t, msg.HTML, "&bull; Radar")
	assert.NotContains(t, msg.HTML, "Additional Message")
	assert.Contains(t, msg.Text, "  - Deck: Grey\n  - Hull: White")
}

func TestSendCustomizer_Empty(t *testing.T) {
	sender := &captureSender{}
	m := NewMailer(sender, []string{"x@tigermarine.test"}, nil)

	require.NoError(t, m.SendCustomizer(context.Background(), CustomizerEmail{Name: "C", Email: "c@example.com", Message: "hi"}))
	msg := sender.msgs[0]
	assert.Equal(t, "Customizer Inquiry: Model Inquiry", msg.Subject)
	assert.Contains(t, msg.HTML, "None selected")
	assert.Contains(t, msg.HTML, "Additional Message")
}

func TestSendPropagatesSenderError(t *testing.T) {
	m := NewMailer(&captureSender{err: errors.New("boom")}, nil, nil)
	err := m.SendContact(context.Background(), ContactEmail{Name: "a", Email: "a@b.c", Message: "m"})
	assert.Error(t, err)

	m = NewMailer(NewDisabledSender(nil), nil, nil)
	err = m.SendContact(context.Background(), ContactEmail{Name: "a", Email: "a@b.c", Message: "m"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewSender(t *testing.T) {
	assert.IsType(t, &DisabledSender{}, NewSender("", "from@x", nil))
	assert.IsType(t, &ResendSender{}, NewSender("re_key", "from@x", nil))
}
