// Package dispatch runs transformer functions off the interaction loop and
// reports exactly one terminal outcome per logical user intent, discarding
// superseded work.
//
// The system has a single input/output pane, so the dispatcher tracks one
// logical slot: the most recently submitted request wins by submission
// order, not completion order. A slow transformation can never overwrite the
// result of a later, faster one.
package dispatch

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/transmute/internal/transform"
)

// Request is one accepted transformation submission.
type Request struct {
	// ID is monotonically increasing, assigned at submission.
	ID uint64

	// Descriptor is the transformer to run.
	Descriptor *transform.Descriptor

	// Input is the pane text at submission time.
	Input string

	// Options carries per-descriptor options.
	Options transform.Options

	// SubmittedAt is the submission timestamp.
	SubmittedAt time.Time
}

// Delivery pairs a request with its terminal outcome on the consumer
// channel. Cancelled requests are suppressed and never delivered.
type Delivery struct {
	Request Request
	Outcome Outcome
}

// Handle resolves to the terminal outcome of one submission. Unlike the
// consumer channel, a handle always resolves, including for superseded
// requests (which resolve to Cancelled).
type Handle struct {
	request Request

	mu      sync.Mutex
	outcome Outcome
	done    chan struct{}
}

func newHandle(req Request) *Handle {
	return &Handle{request: req, done: make(chan struct{})}
}

// Request returns the submission this handle tracks.
func (h *Handle) Request() Request {
	return h.request
}

// Done is closed once the outcome is available.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Outcome returns the terminal outcome. Valid only after Done is closed;
// before that it returns the zero Outcome and false.
func (h *Handle) Outcome() (Outcome, bool) {
	select {
	case <-h.done:
	default:
		return Outcome{}, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outcome, true
}

// Wait blocks until the outcome is available and returns it.
func (h *Handle) Wait() Outcome {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outcome
}

func (h *Handle) resolve(o Outcome) {
	h.mu.Lock()
	h.outcome = o
	h.mu.Unlock()
	close(h.done)
}

// completion travels from a worker goroutine to the delivery loop.
type completion struct {
	handle  *Handle
	outcome Outcome
}

// Dispatcher executes transformer functions asynchronously with
// last-writer-wins supersession for the single pane slot.
type Dispatcher struct {
	mu     sync.Mutex
	nextID uint64
	latest uint64 // ID of the most recent submission for the slot

	completions chan completion
	deliveries  chan Delivery
	done        chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// DefaultBufferSize bounds the delivery channel into the interaction loop.
const DefaultBufferSize = 64

// New creates a dispatcher and starts its delivery loop.
func New() *Dispatcher {
	d := &Dispatcher{
		completions: make(chan completion, DefaultBufferSize),
		deliveries:  make(chan Delivery, DefaultBufferSize),
		done:        make(chan struct{}),
	}

	d.wg.Add(1)
	go d.deliveryLoop()

	return d
}

// Outcomes returns the bounded channel of non-superseded terminal outcomes,
// consumed by the interaction loop.
func (d *Dispatcher) Outcomes() <-chan Delivery {
	return d.deliveries
}

// Submit validates and schedules a transformation. Validation runs
// synchronously: a rejecting validator yields ValidationFailed without the
// transform ever being invoked. Accepted requests run on their own
// goroutine.
func (d *Dispatcher) Submit(desc *transform.Descriptor, input string, opts transform.Options) *Handle {
	d.mu.Lock()
	d.nextID++
	req := Request{
		ID:          d.nextID,
		Descriptor:  desc,
		Input:       input,
		Options:     opts,
		SubmittedAt: time.Now(),
	}
	d.latest = req.ID
	d.mu.Unlock()

	h := newHandle(req)

	select {
	case <-d.done:
		h.resolve(Cancelled())
		return h
	default:
	}

	if !desc.Accepts(input) {
		outcome := ValidationFailed(fmt.Sprintf("input rejected by %s", desc.Name))
		d.complete(h, outcome)
		return h
	}

	d.wg.Add(1)
	go d.run(h)

	return h
}

// run executes the transform with panic recovery at the boundary. Execution
// failures are never fatal to the dispatcher or the process.
func (d *Dispatcher) run(h *Handle) {
	defer d.wg.Done()

	var outcome Outcome
	func() {
		defer func() {
			if r := recover(); r != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)
				outcome = Failed(fmt.Sprintf("transformer panic in %s: %v\n%s",
					h.request.Descriptor.Name, r, stack[:n]))
			}
		}()

		output, err := h.request.Descriptor.Transform(h.request.Input, h.request.Options)
		if err != nil {
			outcome = Failed(err.Error())
			return
		}
		outcome = Success(output)
	}()

	d.complete(h, outcome)
}

// complete hands a finished request to the delivery loop, which serializes
// the staleness decision. After Stop the handle resolves as Cancelled here.
// The done check runs first: with both cases ready, a buffered send can win
// the race against a closed done channel.
func (d *Dispatcher) complete(h *Handle, outcome Outcome) {
	select {
	case <-d.done:
		h.resolve(Cancelled())
		return
	default:
	}

	select {
	case d.completions <- completion{handle: h, outcome: outcome}:
	case <-d.done:
		h.resolve(Cancelled())
	}
}

// deliveryLoop is the single goroutine that decides which completions are
// stale. Because every completion passes through here in arrival order, the
// consumer never observes an outcome out of order relative to a
// strictly-later submission: a completion whose request is no longer the
// latest submission resolves as Cancelled and is not delivered.
func (d *Dispatcher) deliveryLoop() {
	defer d.wg.Done()

	for {
		select {
		case c := <-d.completions:
			d.mu.Lock()
			stale := c.handle.request.ID != d.latest
			d.mu.Unlock()

			if stale {
				c.handle.resolve(Cancelled())
				continue
			}

			c.handle.resolve(c.outcome)
			select {
			case d.deliveries <- Delivery{Request: c.handle.request, Outcome: c.outcome}:
			case <-d.done:
				return
			}

		case <-d.done:
			return
		}
	}
}

// Stop shuts the dispatcher down and waits for in-flight transforms to
// finish; their outcomes resolve as Cancelled. Completions that reached the
// queue before the delivery loop exited are drained here so that every
// handle resolves.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
		d.wg.Wait()

		for {
			select {
			case c := <-d.completions:
				c.handle.resolve(Cancelled())
			default:
				return
			}
		}
	})
}
