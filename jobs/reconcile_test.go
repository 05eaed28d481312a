package jobs

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecomputer struct {
	calls atomic.Int32
	err   error
}

func (c *countingRecomputer) RecomputeAll(ctx context.Context) error {
	c.calls.Add(1)
	return c.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestNewReconciler_EmptyScheduleDisables(t *testing.T) {
	s, err := NewReconciler("", &countingRecomputer{}, time.Second, quietLogger())
	require.NoError(t, err)
	assert.Nil(t, s)

	// nil scheduler is safe to start and stop
	s.Start()
	s.Stop()
}

func TestNewReconciler_BadSchedule(t *testing.T) {
	_, err := NewReconciler("not a schedule", &countingRecomputer{}, time.Second, quietLogger())
	assert.Error(t, err)
}

func TestScheduler_Reconcile(t *testing.T) {
	r := &countingRecomputer{}
	s, err := NewReconciler("@every 1h", r, time.Second, quietLogger())
	require.NoError(t, err)

	s.reconcile(r, time.Second)
	r.err = errors.New("boom")
	s.reconcile(r, time.Second)

	assert.Equal(t, int32(2), r.calls.Load())
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	r := &countingRecomputer{}
	s, err := NewReconciler("@every 1s", r, time.Second, quietLogger())
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
