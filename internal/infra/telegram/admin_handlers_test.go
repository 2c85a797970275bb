package telegram

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ciex/motor/internal/domain/movement"
	"github.com/ciex/motor/internal/domain/notice"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMovementArgs(t *testing.T) {
	cfg, err := parseMovementArgs([]string{"2021-01-01", "14", "3", "Morning", "runs"})
	require.NoError(t, err)

	assert.Equal(t, "Morning runs", cfg.Name)
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), cfg.CycleStart)
	assert.Equal(t, 14, cfg.CycleDuration)
	assert.Equal(t, 3, cfg.CycleBuffer)
}

func TestParseMovementArgsErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "too few", args: []string{"2021-01-01", "14", "3"}, wantErr: "expected 4 or more arguments, got 3"},
		{name: "bad date", args: []string{"01.01.2021", "14", "3", "Running"}, wantErr: "cycle start must be a date"},
		{name: "bad duration", args: []string{"2021-01-01", "two", "3", "Running"}, wantErr: "cycle duration must be a number"},
		{name: "bad buffer", args: []string{"2021-01-01", "14", "x", "Running"}, wantErr: "cycle buffer must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseMovementArgs(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFormatMovementList(t *testing.T) {
	movements := []*movement.Movement{
		{ID: 1, Name: "Running", CycleStart: time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), CycleDuration: 14, CycleBuffer: 3, Members: []string{"ann", "bob"}},
		{ID: 2, Name: "Reading", CycleStart: time.Date(2021, time.February, 1, 0, 0, 0, 0, time.UTC), CycleDuration: 7, CycleBuffer: 2},
	}

	got := formatMovementList(movements, time.Date(2021, time.January, 20, 8, 0, 0, 0, time.UTC))

	want := "--- Movements ---\n" +
		"ID: 1, Running, members: 2, cycle 1 since 2021-01-15, next cycle 2 on 2021-01-29 (reminders 2021-01-26)\n" +
		"ID: 2, Reading, members: 0, not started, next cycle 0 on 2021-02-01 (reminders 2021-01-30)\n"
	assert.Equal(t, want, got)
}

func TestFormatSweepResult(t *testing.T) {
	report := &notice.SweepReport{
		RunID:    "run-1",
		Kind:     notice.KindRoundup,
		Date:     time.Date(2021, time.January, 15, 0, 0, 0, 0, time.UTC),
		Personas: 3,
		Sent:     2,
		Skipped:  1,
	}
	summary := "ROUNDUP sweep run-1 for 2021-01-15: 3 personas, 2 sent, 1 skipped, 0 failed"

	assert.Equal(t, summary, formatSweepResult(report, nil))
	assert.Equal(t, summary+"\nAborted: context canceled", formatSweepResult(report, errors.New("context canceled")))
	assert.Equal(t, "Sweep failed: database is down", formatSweepResult(nil, errors.New("database is down")))
}

type recordingClient struct {
	chatID int64
	text   string
	err    error
}

func (c *recordingClient) SendText(chatID int64, text string) error {
	c.chatID = chatID
	c.text = text
	return c.err
}

func TestNewAdminReporter(t *testing.T) {
	client := &recordingClient{}
	logger, hook := test.NewNullLogger()
	report := &notice.SweepReport{RunID: "run-2", Kind: notice.KindReminder, Date: time.Date(2021, time.January, 12, 0, 0, 0, 0, time.UTC)}

	NewAdminReporter(client, 1001, logrus.NewEntry(logger))(report, nil)

	assert.Equal(t, int64(1001), client.chatID)
	assert.Equal(t, report.String(), client.text)
	assert.Empty(t, hook.AllEntries())
}

func TestNewAdminReporterLogsSendFailure(t *testing.T) {
	client := &recordingClient{err: errors.New("telegram: Forbidden: bot was blocked by the user (403)")}
	logger, hook := test.NewNullLogger()

	NewAdminReporter(client, 1001, logrus.NewEntry(logger))(nil, errors.New("database is down"))

	assert.Equal(t, "Sweep failed: database is down", client.text)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestAdminHelpTextListsCommands(t *testing.T) {
	help := adminHelpText()
	for _, cmd := range []string{"/add_movement", "/edit_movement", "/movements", "/sweep_reminders", "/sweep_roundups"} {
		assert.Contains(t, help, cmd)
	}
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", 10))

	text := "line one\nline two\nline three\n"
	chunks := splitMessage(text, 12)
	assert.Equal(t, []string{"line one\n", "line two\n", "line three\n"}, chunks)
	assert.Equal(t, text, strings.Join(chunks, ""))

	long := strings.Repeat("x", 25)
	assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, splitMessage(long, 10))
}
