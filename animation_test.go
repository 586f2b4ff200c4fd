package cubekit

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Long durations keep these tests deterministic: nothing auto-completes,
// the tests drive completion through Complete and Cancel.
const testAnimDuration = time.Hour

func quietAnimationManager(opts ...Option) *AnimationManager {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewAnimationManager(append([]Option{WithLogger(log)}, opts...)...)
}

func TestEnqueueStartsImmediately(t *testing.T) {
	am := quietAnimationManager()

	id, err := am.Enqueue(FaceR, CW, testAnimDuration)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	current, ok := am.Current()
	require.True(t, ok)
	assert.Equal(t, id, current.ID)
	assert.Equal(t, FaceR, current.Face)
	assert.Equal(t, DefaultEasing, current.Easing)
	assert.Zero(t, am.Pending())
}

func TestEnqueueQueuesBehindActive(t *testing.T) {
	am := quietAnimationManager()

	first, err := am.Enqueue(FaceR, CW, testAnimDuration)
	require.NoError(t, err)
	_, err = am.Enqueue(FaceU, CW, testAnimDuration)
	require.NoError(t, err)

	current, ok := am.Current()
	require.True(t, ok)
	assert.Equal(t, first, current.ID, "second animation waits behind the first")
	assert.Equal(t, 1, am.Pending())
}

func TestEnqueueRejectsSameFace(t *testing.T) {
	am := quietAnimationManager()

	_, err := am.Enqueue(FaceF, CW, testAnimDuration)
	require.NoError(t, err)

	_, err = am.Enqueue(FaceF, CCW, testAnimDuration)
	assert.ErrorIs(t, err, ErrAnimationInProgress)
}

func TestEnqueueRejectsInvalidMove(t *testing.T) {
	am := quietAnimationManager()
	_, err := am.Enqueue("Q", CW, testAnimDuration)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestEnqueueQueueFull(t *testing.T) {
	am := quietAnimationManager(WithMaxQueueSize(2))

	_, err := am.Enqueue(FaceR, CW, testAnimDuration) // active
	require.NoError(t, err)
	_, err = am.Enqueue(FaceU, CW, testAnimDuration) // queued
	require.NoError(t, err)
	_, err = am.Enqueue(FaceF, CW, testAnimDuration) // queued
	require.NoError(t, err)

	_, err = am.Enqueue(FaceD, CW, testAnimDuration)
	assert.ErrorIs(t, err, ErrAnimationInProgress)
}

func TestCompleteAdvancesQueue(t *testing.T) {
	am := quietAnimationManager()

	var completed, started []Face
	am.SetCallbacks(AnimationCallbacks{
		OnStart:    func(a Animation) { started = append(started, a.Face) },
		OnComplete: func(a Animation) { completed = append(completed, a.Face) },
	})

	first, err := am.Enqueue(FaceR, CW, testAnimDuration)
	require.NoError(t, err)
	second, err := am.Enqueue(FaceU, CW, testAnimDuration)
	require.NoError(t, err)

	require.NoError(t, am.Complete(first))

	current, ok := am.Current()
	require.True(t, ok)
	assert.Equal(t, second, current.ID)
	assert.Equal(t, []Face{FaceR}, completed)
	assert.Equal(t, []Face{FaceR, FaceU}, started)
}

func TestCompleteUnknownIDFails(t *testing.T) {
	am := quietAnimationManager()
	assert.ErrorIs(t, am.Complete("nope"), ErrInvalidMove)
}

func TestCompleteIsIdempotentPerID(t *testing.T) {
	am := quietAnimationManager()

	id, err := am.Enqueue(FaceR, CW, testAnimDuration)
	require.NoError(t, err)

	require.NoError(t, am.Complete(id))
	assert.Error(t, am.Complete(id), "a finished id is no longer active")
}

func TestCancelActiveAdvancesQueue(t *testing.T) {
	am := quietAnimationManager()

	var errored []string
	am.SetCallbacks(AnimationCallbacks{
		OnError: func(a Animation, err error) { errored = append(errored, a.ID) },
	})

	first, err := am.Enqueue(FaceR, CW, testAnimDuration)
	require.NoError(t, err)
	second, err := am.Enqueue(FaceU, CW, testAnimDuration)
	require.NoError(t, err)

	require.NoError(t, am.Cancel(first))
	assert.Equal(t, []string{first}, errored)

	current, ok := am.Current()
	require.True(t, ok)
	assert.Equal(t, second, current.ID)
}

func TestCancelQueuedAnimation(t *testing.T) {
	am := quietAnimationManager()

	first, err := am.Enqueue(FaceR, CW, testAnimDuration)
	require.NoError(t, err)
	second, err := am.Enqueue(FaceU, CW, testAnimDuration)
	require.NoError(t, err)

	require.NoError(t, am.Cancel(second))
	assert.Zero(t, am.Pending())

	current, ok := am.Current()
	require.True(t, ok)
	assert.Equal(t, first, current.ID, "cancelling a queued entry leaves the active one running")
}

func TestBlockHoldsQueue(t *testing.T) {
	am := quietAnimationManager()
	am.Block()

	_, err := am.Enqueue(FaceR, CW, testAnimDuration)
	require.NoError(t, err)

	_, ok := am.Current()
	assert.False(t, ok, "nothing starts while blocked")
	assert.Equal(t, 1, am.Pending())

	am.Unblock()
	current, ok := am.Current()
	require.True(t, ok)
	assert.Equal(t, FaceR, current.Face)
	assert.Zero(t, am.Pending())
}

func TestContextSnapshot(t *testing.T) {
	am := quietAnimationManager()
	assert.Nil(t, am.Context())

	_, err := am.Enqueue(FaceB, CW, testAnimDuration)
	require.NoError(t, err)

	ctx := am.Context()
	require.Contains(t, ctx, FaceB)
	assert.GreaterOrEqual(t, ctx[FaceB].Progress, 0.0)
	assert.Less(t, ctx[FaceB].Progress, 1.0)
	assert.Greater(t, ctx[FaceB].Remaining, time.Duration(0))

	// The snapshot feeds the validator: a conflicting move must be refused.
	err = ValidateMove(FaceB, CW, ctx)
	assert.ErrorIs(t, err, ErrAnimationInProgress)
}

func TestTimerAutoCompletes(t *testing.T) {
	am := quietAnimationManager()

	done := make(chan Animation, 1)
	am.SetCallbacks(AnimationCallbacks{
		OnComplete: func(a Animation) { done <- a },
	})

	_, err := am.Enqueue(FaceL, CW, 20*time.Millisecond)
	require.NoError(t, err)

	select {
	case a := <-done:
		assert.Equal(t, FaceL, a.Face)
	case <-time.After(2 * time.Second):
		t.Fatal("animation did not auto-complete")
	}
	_, ok := am.Current()
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	am := quietAnimationManager()

	_, err := am.Enqueue(FaceR, CW, testAnimDuration)
	require.NoError(t, err)
	_, err = am.Enqueue(FaceU, CW, testAnimDuration)
	require.NoError(t, err)

	am.Reset()
	_, ok := am.Current()
	assert.False(t, ok)
	assert.Zero(t, am.Pending())
	assert.Nil(t, am.Context())

	_, err = am.Enqueue(FaceR, CW, testAnimDuration)
	assert.NoError(t, err, "the manager is reusable after a reset")
}

func TestAnimationProgressClamps(t *testing.T) {
	a := Animation{StartTime: time.Now().Add(-time.Second), Duration: 100 * time.Millisecond}
	assert.Equal(t, 1.0, a.Progress())
	assert.Equal(t, time.Duration(0), a.Remaining())

	pending := Animation{Duration: 300 * time.Millisecond}
	assert.Equal(t, 0.0, pending.Progress())
	assert.Equal(t, 300*time.Millisecond, pending.Remaining())
}
