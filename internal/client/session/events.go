package session

import (
	"sync"
	"time"
)

type EventKind int

const (
	// EventTokenRemoved fires after the credential and record were evicted.
	EventTokenRemoved EventKind = iota + 1
)

func (k EventKind) String() string {
	switch k {
	case EventTokenRemoved:
		return "token_removed"
	default:
		return "unknown"
	}
}

// Removal reasons carried by EventTokenRemoved.
const (
	ReasonLogout  = "logout"
	ReasonExpired = "expired"
	ReasonMissing = "missing"
	ReasonCorrupt = "corrupt"
)

type Event struct {
	Kind   EventKind
	Reason string
	At     time.Time
}

type subscriber struct {
	ch   chan Event
	quit chan struct{}
	once sync.Once
}

// Notifier fans events out to subscribers on its own goroutine, so Publish
// never runs subscriber code on the caller's stack. Events are delivered in
// publish order and are never dropped: a slow subscriber delays delivery
// instead.
type Notifier struct {
	mu      sync.Mutex
	subs    map[int]*subscriber
	nextID  int
	pending []Event
	closed  bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// NewNotifier starts the dispatcher. Call Close to stop it.
func NewNotifier() *Notifier {
	n := &Notifier{
		subs: make(map[int]*subscriber),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	n.wg.Add(1)
	go n.dispatch()
	return n
}

// Subscribe registers a listener. The returned function unsubscribes; it
// does not close the channel. Channels still registered are closed by Close.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	s := &subscriber{ch: make(chan Event, 8), quit: make(chan struct{})}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		close(s.ch)
		return s.ch, func() {}
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = s
	n.mu.Unlock()

	return s.ch, func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
		s.once.Do(func() { close(s.quit) })
	}
}

// Publish queues e and returns immediately.
func (n *Notifier) Publish(e Event) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.pending = append(n.pending, e)
	n.mu.Unlock()

	select {
	case n.wake <- struct{}{}:
	default:
	}
}

// Close stops the dispatcher, dropping undelivered events, and closes the
// channels of remaining subscribers. It is safe to call more than once.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()

	n.mu.Lock()
	defer n.mu.Unlock()
	for id, s := range n.subs {
		close(s.ch)
		delete(n.subs, id)
	}
}

func (n *Notifier) dispatch() {
	defer n.wg.Done()
	for {
		select {
		case <-n.wake:
		case <-n.done:
			return
		}

		for {
			e, subs, ok := n.next()
			if !ok {
				break
			}
			for _, s := range subs {
				select {
				case s.ch <- e:
				case <-s.quit:
				case <-n.done:
					return
				}
			}
		}
	}
}

func (n *Notifier) next() (Event, []*subscriber, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.pending) == 0 {
		return Event{}, nil, false
	}
	e := n.pending[0]
	n.pending = n.pending[1:]

	subs := make([]*subscriber, 0, len(n.subs))
	for _, s := range n.subs {
		subs = append(subs, s)
	}
	return e, subs, true
}
