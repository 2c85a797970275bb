package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ciex/motor/internal/domain/notice"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSweeps struct {
	reminders int
	roundups  int
	err       error
	deadline  bool
}

func (s *stubSweeps) RunReminderSweep(ctx context.Context) (*notice.SweepReport, error) {
	s.reminders++
	_, s.deadline = ctx.Deadline()
	return &notice.SweepReport{Kind: notice.KindReminder}, s.err
}

func (s *stubSweeps) RunRoundupSweep(ctx context.Context) (*notice.SweepReport, error) {
	s.roundups++
	_, s.deadline = ctx.Deadline()
	return &notice.SweepReport{Kind: notice.KindRoundup}, s.err
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewSweepScheduler(&stubSweeps{}, logrus.NewEntry(logger), time.UTC, "0 6 * * *", "every morning", nil)

	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roundup sweep")
}

func TestStartAndStop(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewSweepScheduler(&stubSweeps{}, logrus.NewEntry(logger), nil, "0 6 * * *", "0 7 * * *", nil)

	require.NoError(t, s.Start())
	assert.Len(t, s.cronEngine.Entries(), 2)
	s.Stop()
}

func TestRunSweepReportsOutcome(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sweeps := &stubSweeps{err: errors.New("database is down")}

	var gotReport *notice.SweepReport
	var gotErr error
	s := NewSweepScheduler(sweeps, logrus.NewEntry(logger), time.UTC, "0 6 * * *", "0 7 * * *",
		func(report *notice.SweepReport, err error) {
			gotReport, gotErr = report, err
		})

	s.runSweep(notice.KindRoundup, sweeps.RunRoundupSweep)

	assert.Equal(t, 1, sweeps.roundups)
	assert.True(t, sweeps.deadline, "sweep runs with a timeout")
	require.NotNil(t, gotReport)
	assert.Equal(t, notice.KindRoundup, gotReport.Kind)
	assert.EqualError(t, gotErr, "database is down")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
