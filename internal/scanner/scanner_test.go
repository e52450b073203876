package scanner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arjunkrish/pharmapos-terminal/pkg/config"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

type stubStream struct {
	frames chan Frame

	mu     sync.Mutex
	closed int
}

func newStubStream(frames ...Frame) *stubStream {
	ch := make(chan Frame, len(frames)+1)
	for _, f := range frames {
		ch <- f
	}
	return &stubStream{frames: ch}
}

func (s *stubStream) ReadFrame(ctx context.Context) (Frame, error) {
	select {
	case frame := <-s.frames:
		return frame, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *stubStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *stubStream) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type stubCamera struct {
	stream  Stream
	openErr error
}

func (c *stubCamera) Open(ctx context.Context) (Stream, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	return c.stream, nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func fastConfig() config.ScannerConfig {
	return config.ScannerConfig{
		SurfaceRetryAttempts: 3,
		SurfaceRetryInterval: time.Millisecond,
		DecodeInterval:       time.Millisecond,
	}
}

func newTestController(t *testing.T, camera Camera, surface Surface, onDecode func(ctx context.Context, code string)) *Controller {
	t.Helper()
	if onDecode == nil {
		onDecode = func(context.Context, string) {}
	}
	ctrl, err := NewController(camera, LineDecoder{}, surface, fastConfig(), quietLogger(), nil, onDecode)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

func waitForState(t *testing.T, ctrl *Controller, want enums.ScanState) Status {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if status := ctrl.Status(); status.State == want {
			return status
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("state never reached %s, last %s", want, ctrl.Status().State)
	return Status{}
}

func TestScanDeliversCodeOnceAndStops(t *testing.T) {
	stream := newStubStream(Frame("\n"), Frame("8901234\n"), Frame("8901234\n"))
	surface := NewPanelSurface(true)

	var mu sync.Mutex
	var codes []string
	ctrl := newTestController(t, &stubCamera{stream: stream}, surface, func(_ context.Context, code string) {
		mu.Lock()
		codes = append(codes, code)
		mu.Unlock()
	})

	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	status := waitForState(t, ctrl, enums.ScanStateDecoded)
	if status.LastCode != "8901234" {
		t.Fatalf("unexpected code %q", status.LastCode)
	}

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(codes) != 1 || codes[0] != "8901234" {
		t.Fatalf("expected one delivery, got %v", codes)
	}
	if stream.closeCount() == 0 {
		t.Fatal("stream not released after decode")
	}
}

func TestStartWhileRunningIsConflict(t *testing.T) {
	stream := newStubStream()
	ctrl := newTestController(t, &stubCamera{stream: stream}, NewPanelSurface(true), nil)

	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitForState(t, ctrl, enums.ScanStateStreaming)
	if err := ctrl.Start(context.Background()); err == nil {
		t.Fatal("expected conflict on second start")
	}
	ctrl.Stop(context.Background())
}

func TestStopIsIdempotent(t *testing.T) {
	stream := newStubStream()
	ctrl := newTestController(t, &stubCamera{stream: stream}, NewPanelSurface(true), nil)

	if err := ctrl.Stop(context.Background()); err != nil {
		t.Fatalf("stop with nothing running: %v", err)
	}

	ctrl.Start(context.Background())
	waitForState(t, ctrl, enums.ScanStateStreaming)
	if err := ctrl.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := ctrl.Stop(context.Background()); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	if got := ctrl.Status().State; got != enums.ScanStateStopped {
		t.Fatalf("expected stopped got %s", got)
	}
}

func TestCodeAfterStopIsDiscarded(t *testing.T) {
	stream := newStubStream()
	var mu sync.Mutex
	delivered := false
	ctrl := newTestController(t, &stubCamera{stream: stream}, NewPanelSurface(true), func(context.Context, string) {
		mu.Lock()
		delivered = true
		mu.Unlock()
	})

	ctrl.Start(context.Background())
	waitForState(t, ctrl, enums.ScanStateStreaming)
	if err := ctrl.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	// A frame arriving after stop must not reach the callback.
	stream.frames <- Frame("8901234\n")
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if delivered {
		t.Fatal("decode delivered after stop")
	}
}

func TestSurfaceNeverReadyFails(t *testing.T) {
	ctrl := newTestController(t, &stubCamera{stream: newStubStream()}, NewPanelSurface(false), nil)

	ctrl.Start(context.Background())
	status := waitForState(t, ctrl, enums.ScanStateFailed)
	if status.Failure != "scanner preview is unavailable" {
		t.Fatalf("unexpected failure %q", status.Failure)
	}
}

func TestNoDeviceFails(t *testing.T) {
	ctrl := newTestController(t, &stubCamera{openErr: ErrNoDevice}, NewPanelSurface(true), nil)

	ctrl.Start(context.Background())
	status := waitForState(t, ctrl, enums.ScanStateFailed)
	if status.Failure != "no camera found on this station" {
		t.Fatalf("unexpected failure %q", status.Failure)
	}
}

func TestPermissionDeniedFails(t *testing.T) {
	ctrl := newTestController(t, &stubCamera{openErr: ErrPermissionDenied}, NewPanelSurface(true), nil)

	ctrl.Start(context.Background())
	status := waitForState(t, ctrl, enums.ScanStateFailed)
	if status.Failure != "camera access was denied" {
		t.Fatalf("unexpected failure %q", status.Failure)
	}
}

func TestRestartAfterFailure(t *testing.T) {
	camera := &stubCamera{openErr: ErrNoDevice}
	ctrl := newTestController(t, camera, NewPanelSurface(true), nil)

	ctrl.Start(context.Background())
	waitForState(t, ctrl, enums.ScanStateFailed)

	camera.openErr = nil
	camera.stream = newStubStream()
	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	waitForState(t, ctrl, enums.ScanStateStreaming)
	ctrl.Stop(context.Background())
}

func TestLineDecoder(t *testing.T) {
	d := LineDecoder{}
	if _, err := d.Decode(Frame("  \n")); err != ErrNoCode {
		t.Fatalf("expected ErrNoCode got %v", err)
	}
	code, err := d.Decode(Frame(" 890123 \n"))
	if err != nil || code != "890123" {
		t.Fatalf("unexpected decode: %q %v", code, err)
	}
}
