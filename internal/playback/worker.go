package playback

import (
	"time"

	"go.uber.org/zap"
)

// StartWorker spawns a worker with a fresh inlet, replacing the current one.
// The new worker waits for its predecessor to exit before connecting, so at
// most one worker owns a session at a time.
//
// When identity is non-nil the connection outcome is sent on it exactly once
// and a failed connection ends the worker silently. Without it (restarts),
// a failed connection is retried through SessionDied after the reconnect
// delay.
func (c *Controller) StartWorker(identity chan<- Identity) {
	inlet := make(chan WorkerCommand, inletSize)
	done := make(chan struct{})

	c.workerMu.Lock()
	prev := c.workerDone
	c.workerDone = done
	c.workerMu.Unlock()

	c.setInlet(inlet)
	go c.runWorker(inlet, prev, done, identity)
}

// WorkerDone returns a channel closed once the most recently started worker
// has exited.
func (c *Controller) WorkerDone() <-chan struct{} {
	c.workerMu.Lock()
	defer c.workerMu.Unlock()
	return c.workerDone
}

func (c *Controller) runWorker(
	inlet chan WorkerCommand,
	prev <-chan struct{},
	done chan struct{},
	identity chan<- Identity,
) {
	defer close(done)
	if prev != nil {
		<-prev
	}

	session, player, err := c.connect()
	if err != nil {
		c.clearInlet(inlet)
		if identity != nil {
			identity <- Identity{Err: err}
			return
		}
		if c.ctx.Err() != nil {
			return
		}
		c.logger.Error("worker could not connect", zap.Error(err), zap.Duration("retry_in", c.reconnectDelay))
		timer := time.NewTimer(c.reconnectDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
			c.sink.Send(SessionDied{})
		case <-c.ctx.Done():
		}
		return
	}
	if identity != nil {
		identity <- Identity{Username: session.Username()}
	}

	c.logger.Debug("worker ready", zap.String("user", session.Username()))
	c.loop(inlet, session, player)

	if err := player.Close(); err != nil {
		c.logger.Warn("close player", zap.Error(err))
	}
	if err := session.Close(); err != nil {
		c.logger.Warn("close session", zap.Error(err))
	}
	c.clearInlet(inlet)
	if c.ctx.Err() != nil {
		return
	}
	// The player is gone, so whatever it last reported no longer holds.
	c.sink.Send(Stopped{})
	c.logger.Error("worker died, requesting restart")
	c.sink.Send(SessionDied{})
}

func (c *Controller) connect() (Session, Player, error) {
	session, err := c.engine.Connect(c.ctx, c.creds)
	if err != nil {
		return nil, nil, err
	}
	player, err := c.engine.NewPlayer(session, c.Volume())
	if err != nil {
		_ = session.Close()
		return nil, nil, err
	}
	return session, player, nil
}

// loop runs until Shutdown, a session fault, the end of the player's event
// stream, or cancellation of the controller context.
func (c *Controller) loop(inlet <-chan WorkerCommand, session Session, player Player) {
	events := player.Events()
	for {
		select {
		case cmd := <-inlet:
			if !c.execute(player, cmd) {
				return
			}
		case ev, ok := <-events:
			if !ok {
				c.logger.Warn("player event stream closed")
				return
			}
			c.sink.Send(ev)
		case <-session.Done():
			c.logger.Error("session fault", zap.Error(session.Err()))
			return
		case <-c.ctx.Done():
			return
		}
	}
}

// execute runs cmd against player and reports whether the loop continues.
func (c *Controller) execute(player Player, cmd WorkerCommand) bool {
	c.logger.Debug("worker command", zap.Stringer("command", cmd))
	switch cmd := cmd.(type) {
	case Load:
		if err := player.Load(cmd.Track, cmd.Autoplay, cmd.StartMillis); err != nil {
			c.logger.Error("load track", zap.String("id", cmd.Track.ID), zap.Error(err))
		}
	case Play:
		player.Play()
	case Pause:
		player.Pause()
	case Stop:
		player.Stop()
	case Seek:
		if err := player.Seek(cmd.Millis); err != nil {
			c.logger.Warn("seek", zap.Uint32("ms", cmd.Millis), zap.Error(err))
		}
	case SetVolume:
		player.SetVolume(cmd.Volume)
	case Preload:
		player.Preload(cmd.Track)
	case Shutdown:
		player.Stop()
		return false
	}
	return true
}
