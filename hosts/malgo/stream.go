package malgo

import (
	"sync"
	"sync/atomic"
	"unsafe"

	nativemalgo "github.com/gen2brain/malgo"

	"github.com/go-aurio/aurio/internal/backend"
)

// Stream bridges miniaudio's push-callback model (the native audio
// thread calls onData synchronously and blocks until it returns) onto
// internal/runtime's pull model (StreamWait, then GetBuffer, then
// ReleaseBuffer). onData parks the native thread on waitCh/releaseCh
// for exactly as long as internal/runtime's goroutine takes to run the
// user callback, so the two models compose without ever copying a
// buffer the user callback didn't ask to own.
type Stream struct {
	dir    backend.Direction
	device *nativemalgo.Device

	mu        sync.Mutex
	curOut    []byte
	curIn     []byte
	curFrames uint32

	waitCh    chan backend.WaitResult
	releaseCh chan struct{}

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
	closed       atomic.Bool
}

func newStream(dir backend.Direction) *Stream {
	return &Stream{
		dir:        dir,
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

// onData is miniaudio's device callback, running on its own realtime
// thread. It hands the current period's buffers to internal/runtime
// and blocks until ReleaseBuffer lets it return, exactly like a real
// backend that must not reuse the buffer until the user callback is
// done with it.
func (s *Stream) onData(outputSamples, inputSamples []byte, frameCount uint32) {
	s.mu.Lock()
	s.curOut = outputSamples
	s.curIn = inputSamples
	s.curFrames = frameCount
	s.mu.Unlock()

	select {
	case s.waitCh <- backend.WaitResult{Kind: backend.Ready, Frames: frameCount}:
	case <-s.shutdownCh:
		return
	}

	select {
	case <-s.releaseCh:
	case <-s.shutdownCh:
	}
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

func (s *Stream) release() {
	select {
	case s.releaseCh <- struct{}{}:
	case <-s.shutdownCh:
	}
}
