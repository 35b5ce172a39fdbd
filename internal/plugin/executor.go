package plugin

import (
	"errors"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// ErrExecutorClosed is returned when a call reaches a closed executor.
var ErrExecutorClosed = errors.New("lua executor is closed")

// ErrCallTimeout is returned when a Lua call exceeds the call deadline.
var ErrCallTimeout = errors.New("lua call timed out")

// callTimeout bounds any single plugin invocation. A transformer that runs
// longer than this is stuck, not slow.
const callTimeout = 5 * time.Second

type luaCall struct {
	fn     func(L *lua.LState) error
	result chan error
}

// executor serializes all operations on one LState through a single
// goroutine. gopher-lua states are not goroutine-safe, and dispatcher
// workers invoke plugin transforms from arbitrary goroutines.
type executor struct {
	state *lua.LState
	queue chan *luaCall

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func newExecutor(state *lua.LState) *executor {
	e := &executor{
		state: state,
		queue: make(chan *luaCall, 16),
		done:  make(chan struct{}),
	}
	e.wg.Add(1)
	go e.run()
	return e
}

// run owns the LState. Only this goroutine ever touches it.
func (e *executor) run() {
	defer e.wg.Done()
	for {
		select {
		case <-e.done:
			e.drain()
			return
		case call := <-e.queue:
			err := e.invoke(call)
			call.result <- err
			close(call.result)
		}
	}
}

// invoke runs one call with panic recovery so a misbehaving script cannot
// take the executor goroutine down.
func (e *executor) invoke(call *luaCall) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			default:
				err = errors.New("lua panic")
			}
		}
	}()
	return call.fn(e.state)
}

func (e *executor) drain() {
	for {
		select {
		case call := <-e.queue:
			call.result <- ErrExecutorClosed
			close(call.result)
		default:
			return
		}
	}
}

// execute runs fn on the executor goroutine and waits for its result.
func (e *executor) execute(fn func(L *lua.LState) error) error {
	call := &luaCall{fn: fn, result: make(chan error, 1)}

	select {
	case e.queue <- call:
	case <-e.done:
		return ErrExecutorClosed
	}

	select {
	case err := <-call.result:
		return err
	case <-time.After(callTimeout):
		return ErrCallTimeout
	}
}

// close stops the executor and closes the LState after the run goroutine
// has exited.
func (e *executor) close() {
	e.closeOnce.Do(func() {
		close(e.done)
		e.wg.Wait()
		e.state.Close()
	})
}
