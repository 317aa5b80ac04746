package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/ripple/internal/playback"
)

func TestDrainEvents_BoundedBatch(t *testing.T) {
	env := newTestEnv(t, nil)
	for range maxEventsPerBatch + 6 {
		env.m.Events.Send(playback.Paused{Elapsed: time.Second})
	}
	<-env.m.Events.Ready()

	env.update(EventsReadyMsg{})

	assert.Equal(t, 6, env.m.Events.Len())
	select {
	case <-env.m.Events.Ready():
	default:
		t.Fatal("leftover events must re-signal the queue")
	}
	env.update(EventsReadyMsg{})
	assert.Equal(t, 0, env.m.Events.Len())
}

func TestDrainEvents_FinishedTrackAdvances(t *testing.T) {
	env := newTestEnv(t, nil)
	env.m.Queue.Append(testTracks()...)
	env.m.Queue.Play(0)

	env.m.Events.Send(playback.FinishedTrack{})
	env.update(EventsReadyMsg{})

	assert.Equal(t, 1, env.m.Queue.CurrentIndex())
	assert.Equal(t, "s2", env.ctrl.lastLoad(t).Track.ID)
	assert.Equal(t, 1, env.m.QueueList.Playing())
}

func TestDrainEvents_FinishedTrackRepeatsTrack(t *testing.T) {
	env := newTestEnv(t, nil)
	env.m.Queue.Append(testTracks()...)
	env.m.Queue.SetRepeat(playback.RepeatTrack)
	env.m.Queue.Play(1)

	env.m.Events.Send(playback.FinishedTrack{})
	env.update(EventsReadyMsg{})

	assert.Equal(t, 1, env.m.Queue.CurrentIndex())
	assert.Len(t, env.ctrl.loads, 2)
}

func TestDrainEvents_SessionDiedRestartsWorker(t *testing.T) {
	env := newTestEnv(t, nil)

	env.m.Events.Send(playback.SessionDied{})
	env.update(EventsReadyMsg{})

	assert.Equal(t, 1, env.ctrl.startWorkers)
}

func TestDrainEvents_NoRestartWhileQuitting(t *testing.T) {
	for _, text := range []string{"quit", "logout"} {
		t.Run(text, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.run(t, text)
			require.True(t, env.m.Quitting)

			env.m.Events.Send(playback.SessionDied{})
			env.update(EventsReadyMsg{})

			assert.Zero(t, env.ctrl.startWorkers)
		})
	}
}

func TestDrainEvents_PlayingStartsTick(t *testing.T) {
	env := newTestEnv(t, nil)

	env.m.Events.Send(playback.Playing{Since: time.Now()})
	env.update(EventsReadyMsg{})
	require.True(t, env.m.Ticking)
	assert.IsType(t, playback.Playing{}, env.ctrl.status)

	// A second Playing event does not start a second tick chain.
	env.m.Events.Send(playback.Playing{Since: time.Now()})
	env.update(EventsReadyMsg{})
	assert.True(t, env.m.Ticking)

	env.m.Events.Send(playback.Paused{Elapsed: time.Second})
	env.update(EventsReadyMsg{})
	cmd := env.update(TickMsg(time.Now()))
	assert.Nil(t, cmd, "tick stops once paused")
	assert.False(t, env.m.Ticking)
}
