package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/llehouerou/ripple/internal/credentials"
)

var testCreds = credentials.Credentials{
	Server:   "http://music.local",
	Username: "ana",
	Token:    "t",
	Salt:     "s",
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Send(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func (s *recordingSink) count(match func(Event) bool) int {
	n := 0
	for _, e := range s.Events() {
		if match(e) {
			n++
		}
	}
	return n
}

func isSessionDied(e Event) bool {
	_, ok := e.(SessionDied)
	return ok
}

func newTestController(t *testing.T, ctx context.Context, engine *MockEngine, sink Sink) *Controller {
	t.Helper()
	c, err := NewController(ctx, Config{
		Engine:      engine,
		Sink:        sink,
		Credentials: testCreds,
	})
	require.NoError(t, err)
	return c
}

func TestNewController_ReportsUser(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()

		c := newTestController(t, ctx, engine, &recordingSink{})

		assert.Equal(t, "ana", c.User())
		assert.True(t, c.Live())
		assert.Equal(t, uint16(65535), c.Volume())
		assert.Equal(t, Stopped{}, c.Status())
		assert.Equal(t, 1, engine.Connects())
	})
}

func TestNewController_ConnectFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		engine.SetConnectError(ErrSessionUnavailable)
		sink := &recordingSink{}

		c, err := NewController(ctx, Config{Engine: engine, Sink: sink, Credentials: testCreds})

		require.ErrorIs(t, err, ErrSessionUnavailable)
		assert.Nil(t, c)
		synctest.Wait()
		assert.Zero(t, sink.count(isSessionDied), "startup failure must not trigger a restart")
	})
}

func TestController_CommandsReachPlayerInOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		c := newTestController(t, ctx, engine, &recordingSink{})

		track := Track{ID: "tr-1", Title: "One"}
		c.Load(track, false, 1500)
		c.Play()
		c.Pause()
		c.Seek(4000)
		c.SetVolume(1000)
		c.Preload(Track{ID: "tr-2"})
		synctest.Wait()

		want := []WorkerCommand{
			Load{Track: track, Autoplay: false, StartMillis: 1500},
			Play{},
			Pause{},
			Seek{Millis: 4000},
			SetVolume{Volume: 1000},
			Preload{Track: Track{ID: "tr-2"}},
		}
		assert.Equal(t, want, engine.LastPlayer().Calls())
		assert.Equal(t, uint16(1000), c.Volume())
	})
}

func TestController_ForwardsPlayerEvents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		sink := &recordingSink{}
		c := newTestController(t, ctx, engine, sink)

		c.Load(Track{ID: "a"}, true, 0)
		synctest.Wait()
		c.Pause()
		synctest.Wait()
		engine.LastPlayer().Finish()
		synctest.Wait()

		events := sink.Events()
		require.Len(t, events, 3)
		assert.IsType(t, Playing{}, events[0])
		assert.IsType(t, Paused{}, events[1])
		assert.Equal(t, FinishedTrack{}, events[2])
	})
}

func TestController_ProgressWhilePlayingAndPaused(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		c := newTestController(t, ctx, NewMockEngine(), &recordingSink{})

		assert.Zero(t, c.Progress())

		c.UpdateStatus(Playing{Since: time.Now()})
		prev := c.Progress()
		for range 5 {
			time.Sleep(700 * time.Millisecond)
			p := c.Progress()
			assert.GreaterOrEqual(t, p, prev)
			prev = p
		}
		assert.Equal(t, 3500*time.Millisecond, prev)

		c.UpdateStatus(Paused{Elapsed: c.Progress()})
		frozen := c.Progress()
		time.Sleep(10 * time.Second)
		assert.Equal(t, frozen, c.Progress())

		c.UpdateStatus(Playing{Since: time.Now().Add(-frozen)})
		time.Sleep(time.Second)
		assert.Equal(t, frozen+time.Second, c.Progress())

		c.UpdateStatus(Stopped{})
		assert.Zero(t, c.Progress())
	})
}

func TestController_UpdateStatusKeepsOneSourceOfPosition(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		c := newTestController(t, ctx, NewMockEngine(), &recordingSink{})

		tests := []struct {
			event       PlayerEvent
			wantElapsed bool
			wantSince   bool
		}{
			{Paused{Elapsed: time.Second}, true, false},
			{Playing{Since: time.Now()}, false, true},
			{FinishedTrack{}, false, false},
			{Paused{Elapsed: 2 * time.Second}, true, false},
			{Stopped{}, false, false},
		}
		for _, tt := range tests {
			c.UpdateStatus(tt.event)
			c.mu.RLock()
			assert.Equal(t, tt.wantElapsed, c.elapsed != nil, "elapsed after %T", tt.event)
			assert.Equal(t, tt.wantSince, c.since != nil, "since after %T", tt.event)
			c.mu.RUnlock()
			assert.Equal(t, tt.event, c.Status())
		}

		c.UpdateStatus(Paused{Elapsed: time.Minute})
		c.UpdateTrack()
		assert.Zero(t, c.Progress())
	})
}

func TestController_TogglePlayback(t *testing.T) {
	tests := []struct {
		name   string
		status PlayerEvent
		want   []WorkerCommand
	}{
		{"playing pauses", Playing{Since: time.Now()}, []WorkerCommand{Pause{}}},
		{"paused plays", Paused{}, []WorkerCommand{Play{}}},
		{"stopped does nothing", Stopped{}, nil},
		{"finished does nothing", FinishedTrack{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				ctx, cancel := context.WithCancel(t.Context())
				defer cancel()
				engine := NewMockEngine()
				c := newTestController(t, ctx, engine, &recordingSink{})

				c.UpdateStatus(tt.status)
				c.TogglePlayback()
				synctest.Wait()

				assert.Equal(t, tt.want, engine.LastPlayer().Calls())
			})
		})
	}
}

func TestController_SeekRelative(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		c := newTestController(t, ctx, engine, &recordingSink{})

		c.UpdateStatus(Paused{Elapsed: 5 * time.Second})
		c.SeekRelative(2500)
		c.SeekRelative(-10000)
		synctest.Wait()

		assert.Equal(t, []WorkerCommand{Seek{Millis: 7500}, Seek{Millis: 0}}, engine.LastPlayer().Calls())
	})
}

func TestController_RestartsAfterSessionFault(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		sink := &recordingSink{}
		c := newTestController(t, ctx, engine, sink)
		c.SetVolume(1234)
		synctest.Wait()

		first := engine.LastPlayer()
		engine.Sessions()[0].Fail(errors.New("connection reset"))
		synctest.Wait()

		assert.Equal(t, 1, sink.count(isSessionDied))
		assert.False(t, c.Live())
		assert.True(t, first.Closed())
		assert.True(t, engine.Sessions()[0].Closed())

		// Dropped, not queued for the next worker.
		c.Play()

		c.StartWorker(nil)
		synctest.Wait()

		assert.True(t, c.Live())
		assert.Equal(t, 2, engine.Connects())
		second := engine.LastPlayer()
		require.NotSame(t, first, second)
		assert.Equal(t, uint16(1234), second.Volume())
		assert.Empty(t, second.Calls())

		c.Stop()
		synctest.Wait()
		assert.Equal(t, []WorkerCommand{Stop{}}, second.Calls())
	})
}

func TestController_ShutdownEndsWorker(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		sink := &recordingSink{}
		c := newTestController(t, ctx, engine, sink)

		c.Shutdown()
		<-c.WorkerDone()

		assert.False(t, c.Live())
		assert.True(t, engine.LastPlayer().Closed())
		assert.Equal(t, 1, sink.count(isSessionDied))
	})
}

func TestController_ShutdownLeavesStatusStopped(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		sink := &recordingSink{}
		c := newTestController(t, ctx, engine, sink)

		c.Load(Track{ID: "a"}, true, 0)
		synctest.Wait()
		c.Shutdown()
		<-c.WorkerDone()

		events := sink.Events()
		require.NotEmpty(t, events)
		require.True(t, isSessionDied(events[len(events)-1]))
		for _, e := range events {
			if pe, ok := e.(PlayerEvent); ok {
				c.UpdateStatus(pe)
			}
		}
		assert.Equal(t, Stopped{}, c.Status())

		time.Sleep(5 * time.Second)
		assert.Zero(t, c.Progress())
	})
}

func TestNewController_RestoresZeroVolume(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		muted := uint16(0)

		c, err := NewController(ctx, Config{
			Engine:      engine,
			Sink:        &recordingSink{},
			Credentials: testCreds,
			Volume:      &muted,
		})

		require.NoError(t, err)
		assert.Equal(t, uint16(0), c.Volume())
		assert.Equal(t, uint16(0), engine.LastPlayer().Volume())
	})
}

func TestController_PlayerCrashEndsWorker(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		sink := &recordingSink{}
		c := newTestController(t, ctx, engine, sink)

		engine.LastPlayer().Crash()
		<-c.WorkerDone()

		assert.False(t, c.Live())
		assert.Equal(t, 1, sink.count(isSessionDied))
	})
}

func TestController_RestartConnectFailureIsPaced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		sink := &recordingSink{}
		c, err := NewController(ctx, Config{
			Engine:         engine,
			Sink:           sink,
			Credentials:    testCreds,
			ReconnectDelay: 3 * time.Second,
		})
		require.NoError(t, err)

		engine.SetConnectError(ErrSessionUnavailable)
		c.Shutdown()
		synctest.Wait()
		require.Equal(t, 1, sink.count(isSessionDied))

		start := time.Now()
		c.StartWorker(nil)
		<-c.WorkerDone()

		assert.Equal(t, 3*time.Second, time.Since(start))
		assert.Equal(t, 2, sink.count(isSessionDied))
		assert.False(t, c.Live())
	})
}

func TestController_NewWorkerWaitsForPredecessor(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		c := newTestController(t, ctx, engine, &recordingSink{})

		// The first worker is still alive, so the second one must not connect.
		c.StartWorker(nil)
		synctest.Wait()
		assert.Equal(t, 1, engine.Connects())

		engine.Sessions()[0].Fail(errors.New("gone"))
		synctest.Wait()
		assert.Equal(t, 2, engine.Connects())
		assert.True(t, c.Live())
	})
}

func TestController_CommandsQueuedWhileConnecting(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		c := newTestController(t, ctx, engine, &recordingSink{})

		c.Shutdown()
		<-c.WorkerDone()

		engine.Hold()
		c.StartWorker(nil)
		c.Pause()
		synctest.Wait()
		assert.Equal(t, 1, engine.Connects(), "connect is held")

		engine.Release()
		synctest.Wait()
		assert.Equal(t, []WorkerCommand{Pause{}}, engine.LastPlayer().Calls())
	})
}

func TestController_DropsCommandsWithoutWorker(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		engine := NewMockEngine()
		c := newTestController(t, ctx, engine, &recordingSink{})
		c.Shutdown()
		<-c.WorkerDone()

		assert.NotPanics(t, func() {
			c.Play()
			c.Seek(10)
			c.SetVolume(42)
			c.TogglePlayback()
			c.Shutdown()
		})
		assert.Equal(t, uint16(42), c.Volume())
	})
}

func TestController_NoGoroutineLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	engine := NewMockEngine()
	c, err := NewController(ctx, Config{Engine: engine, Sink: &recordingSink{}, Credentials: testCreds})
	require.NoError(t, err)

	c.Load(Track{ID: "x"}, true, 0)
	c.Shutdown()
	<-c.WorkerDone()

	c.StartWorker(nil)
	cancel()
	<-c.WorkerDone()
}

func TestVolumeUpDown(t *testing.T) {
	assert.Equal(t, uint16(655), uint16(VolumePercent))
	assert.Equal(t, uint16(65535), VolumeUp(65000, 5))
	assert.Equal(t, uint16(0), VolumeDown(1000, 2))
	assert.Equal(t, uint16(65535), VolumeUp(0, 65535))

	for _, v := range []uint16{0, 1, 655, 30000, 60000} {
		for _, n := range []uint16{1, 5, 7} {
			up := VolumeUp(v, n)
			if uint32(v)+uint32(n)*VolumePercent > 65535 {
				continue
			}
			assert.Equal(t, v, VolumeDown(up, n), "v=%d n=%d", v, n)
		}
	}
}

func TestRepeatMode_Next(t *testing.T) {
	assert.Equal(t, RepeatPlaylist, RepeatNone.Next())
	assert.Equal(t, RepeatTrack, RepeatPlaylist.Next())
	assert.Equal(t, RepeatNone, RepeatTrack.Next())
}
