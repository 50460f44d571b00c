package controller

import (
	"sync"

	"github.com/ndkhanh/quizroom/internal/model"
)

// sessionActor owns one model.Session and serializes every mutation to it
// through a command channel, so that no two wire events touching the same
// Session ever interleave (spec.md §5). Grounded on the pack's per-room
// message-loop pattern (a goroutine draining a channel of closures) rather
// than a lock, so that a timer callback firing on its own goroutine can feed
// back into the same serialized stream instead of racing a concurrent
// handler.
//
// A question's expiry timer can fire after the Session has already been torn
// down (owner disconnected while the timer was in flight). stopped guards
// against that: once set, Do drops the command instead of sending on cmds,
// so a late timer callback never races stop's channel close (spec.md §7,
// "fatal conditions MUST NOT tear down other Sessions").
type sessionActor struct {
	session *model.Session
	cmds    chan func()

	mu      sync.Mutex
	stopped bool
}

func newSessionActor(s *model.Session) *sessionActor {
	a := &sessionActor{session: s, cmds: make(chan func())}
	go a.run()
	return a
}

func (a *sessionActor) run() {
	for cmd := range a.cmds {
		cmd()
	}
}

// Do runs fn against the actor's Session on its own goroutine and blocks
// until it completes, so callers can read back results synchronously while
// still guaranteeing serialization. A no-op once the actor has been stopped:
// fn is simply never invoked.
func (a *sessionActor) Do(fn func(s *model.Session)) {
	done := make(chan struct{})

	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		close(done)
		return
	}
	a.cmds <- func() {
		fn(a.session)
		close(done)
	}
	a.mu.Unlock()

	<-done
}

// stop marks the actor stopped and shuts down its goroutine. Only the
// registry, which owns the actor's lifetime, may call this. Idempotent:
// a second call is a no-op rather than a double close.
func (a *sessionActor) stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.stopped = true
	close(a.cmds)
}
