package mail

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// DefaultQueueSize bounds how many messages wait for delivery.
const DefaultQueueSize = 64

// ErrQueueFull is returned when a message cannot be queued.
var ErrQueueFull = errors.New("mail queue is full")

// ErrDispatcherClosed is returned when enqueueing after Close.
var ErrDispatcherClosed = errors.New("mail dispatcher is closed")

// Dispatcher delivers messages on a background worker.
type Dispatcher struct {
	sender      Sender
	sendTimeout time.Duration
	queue       chan Message

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher starts a worker draining into sender.
func NewDispatcher(sender Sender, queueSize int, sendTimeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	d := &Dispatcher{
		sender:      sender,
		sendTimeout: sendTimeout,
		queue:       make(chan Message, queueSize),
		done:        make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue schedules msg without waiting for delivery.
func (d *Dispatcher) Enqueue(msg Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.queue <- msg:
		return nil
	default:
		log.Printf("mail queue full, dropping message to %s", msg.To)
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits for queued ones to be sent.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx := context.Background()
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}
	if d.sender == nil {
		log.Printf("mail sender not configured, skipping message to %s", msg.To)
		return
	}
	if err := d.sender.Send(ctx, msg); err != nil {
		log.Printf("mail delivery failed: %v", err)
	}
}
