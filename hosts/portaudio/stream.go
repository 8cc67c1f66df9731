package portaudio

import (
	"sync"
	"sync/atomic"
	"unsafe"

	nativepa "github.com/gordonklaus/portaudio"

	"github.com/go-aurio/aurio/internal/backend"
)

// Stream bridges PortAudio's push-callback model onto
// internal/runtime's pull model, the same technique hosts/malgo uses:
// the native callback blocks on waitCh/releaseCh for exactly as long as
// internal/runtime takes to run the user callback against the buffer
// PortAudio handed it.
type Stream struct {
	dir      backend.Direction
	backend  *Backend
	paStream *nativepa.Stream

	mu        sync.Mutex
	curIn     []float32
	curOut    []float32
	curFrames uint32

	waitCh    chan backend.WaitResult
	releaseCh chan struct{}

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
	closed       atomic.Bool
}

func newStream(dir backend.Direction, b *Backend) *Stream {
	return &Stream{
		dir:        dir,
		backend:    b,
		waitCh:     make(chan backend.WaitResult),
		releaseCh:  make(chan struct{}),
		shutdownCh: make(chan struct{}),
	}
}

func (s *Stream) signalShutdown() {
	s.shutdownOnce.Do(func() {
		s.closed.Store(true)
		close(s.shutdownCh)
	})
}

func (s *Stream) deliver(in, out []float32, frames int) {
	s.mu.Lock()
	s.curIn = in
	s.curOut = out
	s.curFrames = uint32(frames)
	s.mu.Unlock()

	select {
	case s.waitCh <- backend.WaitResult{Kind: backend.Ready, Frames: uint32(frames)}:
	case <-s.shutdownCh:
		return
	}
	select {
	case <-s.releaseCh:
	case <-s.shutdownCh:
	}
}

func (s *Stream) onInput(in []float32) {
	s.deliver(in, nil, len(in))
}

func (s *Stream) onOutput(out []float32) {
	s.deliver(nil, out, len(out))
}

func (s *Stream) onDuplex(in, out []float32) {
	frames := len(in)
	if len(out) > frames {
		frames = len(out)
	}
	s.deliver(in, out, frames)
}

func (s *Stream) wait() backend.WaitResult {
	select {
	case res := <-s.waitCh:
		return res
	case <-s.shutdownCh:
		return backend.WaitResult{Kind: backend.Shutdown}
	}
}

func (s *Stream) inputBuffer(frames uint32) (unsafe.Pointer, uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.curIn) == 0 {
		return nil, 0, nil
	}
	granted := s.curFrames
	if granted > frames {
		granted = frames
	}
	return unsafe.Pointer(&s.curIn[0]), granted, nil
}

func (s *Stream) outputBuffer(frames uint32) (unsafe.Pointer, uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.curOut) == 0 {
		return nil, 0, nil
	}
	granted := s.curFrames
	if granted > frames {
		granted = frames
	}
	return unsafe.Pointer(&s.curOut[0]), granted, nil
}

func (s *Stream) releaseBuffer() {
	select {
	case s.releaseCh <- struct{}{}:
	case <-s.shutdownCh:
	}
}
