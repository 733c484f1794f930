package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	s, err := NewScheduler()
	require.NoError(t, err)

	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	return s
}

func TestAddCronAndRunNow(t *testing.T) {
	s := newTestScheduler(t)

	var runs atomic.Int32

	require.NoError(t, s.AddCron(t.Context(), "gallery.warm", "0 0 1 1 *", func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	assert.Error(t, s.AddCron(t.Context(), "gallery.warm", "* * * * *", func(context.Context) error { return nil }))

	require.NoError(t, s.RunNow("gallery.warm"))

	require.Eventually(t, func() bool {
		info, err := s.GetJobInfoByName("gallery.warm")
		return err == nil && info.Runs == 1
	}, 2*time.Second, 10*time.Millisecond)

	info, err := s.GetJobInfoByName("gallery.warm")
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, info.Status)
	assert.False(t, info.LastSuccess.IsZero())
	assert.False(t, info.NextRun.IsZero())
	assert.EqualValues(t, 1, runs.Load())
}

func TestJobErrorRecorded(t *testing.T) {
	s := newTestScheduler(t)

	require.NoError(t, s.AddCron(t.Context(), "broken", "0 0 1 1 *", func(context.Context) error {
		return errors.New("boom")
	}))
	require.NoError(t, s.RunNow("broken"))

	require.Eventually(t, func() bool {
		info, _ := s.GetJobInfoByName("broken")
		return info.Status == StatusError && info.Error == "boom"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPanicRecovered(t *testing.T) {
	s := newTestScheduler(t)

	require.NoError(t, s.AddCron(t.Context(), "panics", "0 0 1 1 *", func(context.Context) error {
		panic("bad")
	}))
	require.NoError(t, s.RunNow("panics"))

	require.Eventually(t, func() bool {
		info, _ := s.GetJobInfoByName("panics")
		return info.Status == StatusError
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUnknownJob(t *testing.T) {
	s := newTestScheduler(t)

	assert.ErrorIs(t, s.RunNow("missing"), ErrJobNotFound)
	assert.ErrorIs(t, s.RemoveJobByName("missing"), ErrJobNotFound)

	_, err := s.GetJobInfoByName("missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobInfosSorted(t *testing.T) {
	s := newTestScheduler(t)

	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, s.AddCron(t.Context(), name, "0 0 1 1 *", func(context.Context) error { return nil }))
	}

	infos := s.GetJobInfos()
	require.Len(t, infos, 3)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, "c", infos[2].Name)

	require.NoError(t, s.RemoveJobByName("b"))
	assert.Len(t, s.GetJobInfos(), 2)
}

func TestCronLoggerFields(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer

	l := zerolog.New(&buf).Level(zerolog.TraceLevel)
	cronLogger{&l}.Error("job failed", "name", "gallery.warm", "attempt", 2)

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"name":"gallery.warm"`)
	assert.Contains(t, buf.String(), `"attempt":2`)
}
