package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/ciex/motor/internal/domain/notice"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reminder() notice.Message {
	return notice.Message{
		From:           "Souma Motor <noreply@souma-motor.appspotmail.com>",
		RecipientName:  "Ann",
		RecipientEmail: "ann@example.com",
		Subject:        "What do you want to do next in Running?",
		Body:           "Hello Ann,\n\n* Running (2 current goals)\n",
	}
}

func TestBuildMsg(t *testing.T) {
	m, err := buildMsg(reminder())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "noreply@souma-motor.appspotmail.com")
	assert.Contains(t, raw, "<ann@example.com>")
	assert.Contains(t, raw, "Subject: What do you want to do next in Running?")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "Hello Ann,")
}

func TestBuildMsgRejectsBadAddresses(t *testing.T) {
	badFrom := reminder()
	badFrom.From = "motor"
	_, err := buildMsg(badFrom)
	assert.ErrorContains(t, err, "invalid sender address")

	badTo := reminder()
	badTo.RecipientEmail = "ann at example"
	_, err = buildMsg(badTo)
	assert.ErrorContains(t, err, "invalid recipient address")
}

func TestNewSMTPSenderRequiresHost(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{Port: 587})
	assert.Error(t, err)
}

func TestLogSender(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sender := NewLogSender(logrus.NewEntry(logger))

	require.NoError(t, sender.Send(context.Background(), reminder()))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Ann <ann@example.com>", entry.Data["to"])
	assert.Equal(t, "What do you want to do next in Running?", entry.Data["subject"])
	assert.Contains(t, entry.Message, "* Running (2 current goals)")
}
