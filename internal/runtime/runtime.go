// Package runtime implements the realtime audio pipeline described in
// spec §4.3 and §5: the contract between the non-realtime control
// thread and the high-priority audio callback thread. One Engine drives
// one built Stream, against any backend.Collaborator — this is what
// lets every hosts/* package share a single runtime implementation.
package runtime

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-aurio/aurio/internal/backend"
	"github.com/go-aurio/aurio/internal/recovery"
	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// State is one point in the lifecycle state machine of spec §4.3.4:
// Building -> Paused -> Playing -> Stopping -> Dead, with a Playing <->
// Paused cycle in between and a transition to Dead from any state on a
// fatal backend error.
type State int32

const (
	StateBuilding State = iota
	StatePaused
	StatePlaying
	StateStopping
	StateDead
)

// DefaultCloseTimeout bounds how long Close waits for the audio
// goroutine to join before giving up and returning anyway (spec §5:
// "bounded timeout, typically <= 2s").
const DefaultCloseTimeout = 2 * time.Second

// Engine is the runtime instantiation of one audio pipeline. It
// satisfies the same Play/Pause/Close method set as aurio.Stream by
// structural typing — hosts/* packages return *Engine directly where
// an aurio.Stream is expected.
type Engine struct {
	backend backend.Collaborator
	handle  backend.StreamHandle
	dir     backend.Direction
	format  sample.Format

	sampleRate              stream.SampleRate
	inChannels, outChannels uint16

	inputCb  func(sample.Data, stream.InputTimestamp)
	outputCb func(sample.Data, stream.OutputTimestamp)
	duplexCb func(in, out sample.Data, ts stream.DuplexTimestamp)
	errCb    func(error)

	createdAt    time.Time
	closeTimeout time.Duration

	state     atomic.Int32
	exitFlag  atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

type config struct {
	b            backend.Collaborator
	h            backend.StreamHandle
	dir          backend.Direction
	format       sample.Format
	sampleRate   stream.SampleRate
	inChannels   uint16
	outChannels  uint16
	errCb        func(error)
	closeTimeout time.Duration
}

func newEngine(c config) *Engine {
	timeout := c.closeTimeout
	if timeout <= 0 {
		timeout = DefaultCloseTimeout
	}
	e := &Engine{
		backend:      c.b,
		handle:       c.h,
		dir:          c.dir,
		format:       c.format,
		sampleRate:   c.sampleRate,
		inChannels:   c.inChannels,
		outChannels:  c.outChannels,
		errCb:        c.errCb,
		createdAt:    time.Now(),
		closeTimeout: timeout,
		done:         make(chan struct{}),
	}
	e.state.Store(int32(StateBuilding))
	return e
}

// NewInput builds an Engine driving an input pipeline (spec §4.3.2).
func NewInput(b backend.Collaborator, h backend.StreamHandle, sr stream.SampleRate, channels uint16, format sample.Format, cb func(sample.Data, stream.InputTimestamp), errCb func(error), closeTimeout time.Duration) *Engine {
	e := newEngine(config{b: b, h: h, dir: backend.Input, format: format, sampleRate: sr, inChannels: channels, errCb: errCb, closeTimeout: closeTimeout})
	e.inputCb = cb
	e.armAndStart()
	return e
}

// NewOutput builds an Engine driving an output pipeline (spec §4.3.1).
func NewOutput(b backend.Collaborator, h backend.StreamHandle, sr stream.SampleRate, channels uint16, format sample.Format, cb func(sample.Data, stream.OutputTimestamp), errCb func(error), closeTimeout time.Duration) *Engine {
	e := newEngine(config{b: b, h: h, dir: backend.Output, format: format, sampleRate: sr, outChannels: channels, errCb: errCb, closeTimeout: closeTimeout})
	e.outputCb = cb
	e.armAndStart()
	return e
}

// NewDuplex builds an Engine driving a duplex pipeline (spec §4.3.3).
func NewDuplex(b backend.Collaborator, h backend.StreamHandle, sr stream.SampleRate, inChannels, outChannels uint16, format sample.Format, cb func(in, out sample.Data, ts stream.DuplexTimestamp), errCb func(error), closeTimeout time.Duration) *Engine {
	e := newEngine(config{b: b, h: h, dir: backend.Duplex, format: format, sampleRate: sr, inChannels: inChannels, outChannels: outChannels, errCb: errCb, closeTimeout: closeTimeout})
	e.duplexCb = cb
	e.armAndStart()
	return e
}

// armAndStart arms the backend and launches the audio goroutine, but
// leaves the Engine Paused (spec §4.2 step 4: "arm the backend but
// leave the stream paused until play() is called").
func (e *Engine) armAndStart() {
	if err := e.backend.StreamStart(e.handle); err != nil {
		e.state.Store(int32(StateDead))
		close(e.done)
		return
	}
	e.state.Store(int32(StatePaused))
	go e.run()
}

// State reports the engine's current lifecycle state. Exported for
// tests; application code only ever sees Play/Pause/Close.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Play transitions Paused -> Playing. Idempotent: calling it while
// already Playing returns nil without touching any state.
func (e *Engine) Play() error {
	for {
		cur := State(e.state.Load())
		switch cur {
		case StatePlaying:
			return nil
		case StatePaused:
			if e.state.CompareAndSwap(int32(StatePaused), int32(StatePlaying)) {
				return nil
			}
			// lost the race to a concurrent Play/Pause; retry.
		case StateDead, StateStopping:
			return stream.ErrPlayDeviceNotAvailable
		default:
			return stream.ErrPlayDeviceNotAvailable
		}
	}
}

// Pause transitions Playing -> Paused. Idempotent: calling it while
// already Paused returns nil.
func (e *Engine) Pause() error {
	for {
		cur := State(e.state.Load())
		switch cur {
		case StatePaused:
			return nil
		case StatePlaying:
			if e.state.CompareAndSwap(int32(StatePlaying), int32(StatePaused)) {
				return nil
			}
		case StateDead, StateStopping:
			return stream.ErrPauseDeviceNotAvailable
		default:
			return stream.ErrPauseDeviceNotAvailable
		}
	}
}

// Close is Go's stand-in for spec's Drop: it marks exit, unblocks the
// backend wakeup, joins the audio goroutine with a bounded wait, and
// releases backend resources best-effort. Safe to call more than once.
func (e *Engine) Close() error {
	var joinErr error
	e.closeOnce.Do(func() {
		e.exitFlag.Store(true)
		e.state.Store(int32(StateStopping))

		_ = e.backend.StreamStop(e.handle)
		_ = e.backend.StreamClose(e.handle)

		select {
		case <-e.done:
		case <-time.After(e.closeTimeout):
			// Best-effort: we gave the audio goroutine its bounded
			// window: spec requires we not block indefinitely, not
			// that we guarantee the goroutine has exited.
		}
		e.state.Store(int32(StateDead))
	})
	return joinErr
}

func (e *Engine) terminate(err error) {
	e.state.Store(int32(StateDead))
	if e.errCb != nil {
		e.errCb(err)
	}
}

// guardCallback invokes fn, converting a panicking user callback into a
// terminal StreamError instead of letting it unwind into the backend
// (spec §7, §9: "a backend that detects a callback panic wraps it as
// BackendSpecific and terminates the stream"). It reports whether fn
// completed without panicking.
func (e *Engine) guardCallback(fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			e.terminate(stream.StreamBackendSpecific(recovery.Describe(r)))
		}
	}()
	fn()
	return true
}

func (e *Engine) run() {
	defer close(e.done)

	for {
		if e.exitFlag.Load() {
			return
		}

		res := e.backend.StreamWait(e.handle)
		switch res.Kind {
		case backend.Shutdown:
			return
		case backend.Err:
			e.terminate(stream.StreamBackendSpecific(errString(res.Err)))
			return
		case backend.Ready:
			if State(e.state.Load()) != StatePlaying {
				// Paused: drop the wakeup without invoking the data
				// callback (P6).
				continue
			}
			if !e.tick(res.Frames) {
				return
			}
		}
	}
}

func errString(err error) string {
	if err == nil {
		return "unknown backend error"
	}
	return err.Error()
}

func (e *Engine) tick(frames uint32) bool {
	switch e.dir {
	case backend.Output:
		return e.tickOutput(frames)
	case backend.Input:
		return e.tickInput(frames)
	case backend.Duplex:
		return e.tickDuplex(frames)
	default:
		return false
	}
}
