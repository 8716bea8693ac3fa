package status

import "sync"

// Broadcaster holds the latest Status and distributes every change to all
// active subscribers.
//
// Each subscriber gets its own ordered queue, drained by a dedicated
// goroutine, so a slow subscriber delays neither the publisher nor other
// subscribers, and no value is ever dropped or reordered for a subscriber
// that stays subscribed.
//
// Safe for concurrent use.
type Broadcaster struct {
	mu     sync.Mutex
	cond   *sync.Cond
	last   Status
	subs   []*Subscription
	closed bool
}

// Subscription is one observer's registration against a Broadcaster.
// The first value received on Updates is always the status that was
// current at subscription time.
type Subscription struct {
	b       *Broadcaster
	ch      chan Status
	queue   []Status
	stopped bool
	quit    chan struct{}
	once    sync.Once
}

// NewBroadcaster returns a Broadcaster whose current value is initial.
func NewBroadcaster(initial Status) *Broadcaster {
	b := &Broadcaster{last: initial}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Current returns the latest published value. Never blocks.
func (b *Broadcaster) Current() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// Subscribe registers a new observer. The current value is queued for the
// subscriber before Subscribe returns, so it is guaranteed to be the first
// value on the subscription's channel, followed by every later published
// value in publish order.
//
// A subscriber must either keep draining Updates or call Unsubscribe;
// otherwise its delivery goroutine is retained.
func (b *Broadcaster) Subscribe() *Subscription {
	b.mu.Lock()
	sub := &Subscription{
		b:     b,
		ch:    make(chan Status, 1),
		quit:  make(chan struct{}),
		queue: []Status{b.last},
	}
	if b.closed {
		// Late subscriber still gets the final value, then completion.
		sub.stopped = true
	}
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	go sub.pump()
	return sub
}

// Publish sets the current value and queues it for every active subscriber
// in subscription order. After Close it is a no-op.
func (b *Broadcaster) Publish(v Status) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.last = v
	for _, sub := range b.subs {
		if !sub.stopped {
			sub.queue = append(sub.queue, v)
		}
	}
	b.cond.Broadcast()
}

// Close terminates the stream for all subscribers: pending values are still
// delivered, then each subscription's channel is closed. Idempotent.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subs {
		sub.stopped = true
	}
	b.cond.Broadcast()
}

// Updates returns the channel carrying status values for this subscription.
// The channel is closed when the subscription ends.
func (s *Subscription) Updates() <-chan Status {
	return s.ch
}

// Unsubscribe detaches the observer. Values not yet consumed are discarded
// and the Updates channel is closed. Idempotent.
func (s *Subscription) Unsubscribe() {
	s.b.mu.Lock()
	s.stopped = true
	s.queue = nil
	s.b.cond.Broadcast()
	s.b.mu.Unlock()

	s.once.Do(func() { close(s.quit) })
}

// pump delivers queued values to the subscriber in order.
func (s *Subscription) pump() {
	for {
		s.b.mu.Lock()
		for len(s.queue) == 0 && !s.stopped {
			s.b.cond.Wait()
		}
		if len(s.queue) == 0 && s.stopped {
			s.b.mu.Unlock()
			close(s.ch)
			return
		}
		v := s.queue[0]
		s.queue = s.queue[1:]
		s.b.mu.Unlock()

		select {
		case s.ch <- v:
		case <-s.quit:
			close(s.ch)
			return
		}
	}
}
