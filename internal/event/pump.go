package event

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Message is anything that can be posted to a pump.
type Message interface {
	Topic() Topic
}

// Poster accepts messages for later delivery.
type Poster interface {
	Post(msg Message)
}

// Handler handles a delivered message.
type Handler func(msg Message) error

// IdleHandler runs when the message queue is empty.
type IdleHandler func()

// SubscriptionID identifies a subscription.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	pattern Topic
	handler Handler
}

// Pump is a FIFO message queue with an idle phase.
type Pump struct {
	mu      sync.Mutex
	queue   []Message
	subs    []subscription
	idle    []IdleHandler
	nextID  SubscriptionID
	onError func(error)
	wake    func()

	// Stats
	posted    atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
	idleRuns  atomic.Uint64
}

// PumpOption configures a Pump.
type PumpOption func(*Pump)

// WithErrorHandler sets the function that receives handler errors and
// recovered panics. By default they are discarded.
func WithErrorHandler(fn func(error)) PumpOption {
	return func(p *Pump) {
		p.onError = fn
	}
}

// WithWakeFunc sets a function called after each Post, typically to wake
// a UI loop blocked waiting for terminal input.
func WithWakeFunc(fn func()) PumpOption {
	return func(p *Pump) {
		p.wake = fn
	}
}

// NewPump creates a message pump.
func NewPump(opts ...PumpOption) *Pump {
	p := &Pump{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Post queues msg for delivery. Nil messages are ignored.
func (p *Pump) Post(msg Message) {
	if msg == nil {
		return
	}
	p.mu.Lock()
	p.queue = append(p.queue, msg)
	wake := p.wake
	p.mu.Unlock()

	p.posted.Add(1)
	if wake != nil {
		wake()
	}
}

// Subscribe registers handler for messages whose topic matches pattern.
func (p *Pump) Subscribe(pattern Topic, handler Handler) (SubscriptionID, error) {
	if !pattern.IsValid() {
		return 0, fmt.Errorf("subscribe %q: %w", pattern, ErrInvalidTopic)
	}
	if handler == nil {
		return 0, ErrNilHandler
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	p.subs = append(p.subs, subscription{id: p.nextID, pattern: pattern, handler: handler})
	return p.nextID, nil
}

// Unsubscribe removes a subscription.
func (p *Pump) Unsubscribe(id SubscriptionID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, s := range p.subs {
		if s.id == id {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// OnIdle registers a handler for the idle phase.
func (p *Pump) OnIdle(fn IdleHandler) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idle = append(p.idle, fn)
}

// Pending returns the number of queued messages.
func (p *Pump) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// RunPending delivers queued messages, including ones posted by handlers
// during delivery, then runs every idle handler once.
// Returns the number of messages delivered.
func (p *Pump) RunPending() int {
	n := 0
	for {
		msg, ok := p.pop()
		if !ok {
			break
		}
		p.deliver(msg)
		n++
	}

	p.mu.Lock()
	idle := append([]IdleHandler(nil), p.idle...)
	p.mu.Unlock()

	for _, fn := range idle {
		p.runIdle(fn)
	}
	p.idleRuns.Add(1)
	return n
}

func (p *Pump) pop() (Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) == 0 {
		return nil, false
	}
	msg := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return msg, true
}

func (p *Pump) deliver(msg Message) {
	topic := msg.Topic()

	p.mu.Lock()
	subs := make([]subscription, 0, len(p.subs))
	for _, s := range p.subs {
		if topic.Matches(s.pattern) {
			subs = append(subs, s)
		}
	}
	p.mu.Unlock()

	for _, s := range subs {
		if err := p.call(topic, func() error { return s.handler(msg) }); err != nil {
			var pe *PanicError
			if !errors.As(err, &pe) {
				err = &HandlerError{SubscriptionID: s.id, Topic: topic, Err: err}
			}
			p.report(err)
		}
	}
	p.delivered.Add(1)
}

func (p *Pump) runIdle(fn IdleHandler) {
	if err := p.call("", func() error { fn(); return nil }); err != nil {
		p.report(err)
	}
}

// call runs fn, converting a panic into a PanicError.
func (p *Pump) call(topic Topic, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Topic: topic, Value: r, Stack: string(debug.Stack())}
		}
	}()
	return fn()
}

func (p *Pump) report(err error) {
	p.failed.Add(1)
	if p.onError != nil {
		p.onError(err)
	}
}

// Stats returns pump statistics.
func (p *Pump) Stats() Stats {
	return Stats{
		Posted:    p.posted.Load(),
		Delivered: p.delivered.Load(),
		Failed:    p.failed.Load(),
		IdleRuns:  p.idleRuns.Load(),
	}
}

// Stats holds pump counters.
type Stats struct {
	Posted    uint64
	Delivered uint64
	Failed    uint64
	IdleRuns  uint64
}
