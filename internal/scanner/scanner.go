// Package scanner drives the station's barcode capture hardware. A scan
// session walks REQUESTING -> STREAMING -> DECODED unless the render surface,
// camera, or decoder fails first; every terminal state releases the device.
package scanner

import (
	"context"
	stdErrors "errors"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/arjunkrish/pharmapos-terminal/pkg/config"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
	"github.com/arjunkrish/pharmapos-terminal/pkg/metrics"
)

// Sentinel failures of the capture stack. They are wrapped into coded device
// errors before leaving the package.
var (
	ErrNoDevice           = stdErrors.New("no camera device available")
	ErrPermissionDenied   = stdErrors.New("camera permission denied")
	ErrSurfaceUnavailable = stdErrors.New("render surface unavailable")
	// ErrNoCode is returned by a decoder pass that found no barcode in the
	// frame. It is the normal case, not a failure.
	ErrNoCode = stdErrors.New("no code in frame")
)

// Frame is one captured image handed to the decoder.
type Frame []byte

// Camera abstracts the capture device.
type Camera interface {
	// Open acquires the device and starts streaming. It returns
	// ErrNoDevice or ErrPermissionDenied when acquisition fails.
	Open(ctx context.Context) (Stream, error)
}

// Stream is a live capture feed. ReadFrame blocks until a frame is available
// or the context ends; Close releases the device and is safe to call once.
type Stream interface {
	ReadFrame(ctx context.Context) (Frame, error)
	Close() error
}

// Decoder extracts a barcode from one frame, returning ErrNoCode when the
// frame holds none.
type Decoder interface {
	Decode(frame Frame) (string, error)
}

// Surface is the preview area the stream renders into. It may not be ready
// the instant a session starts, so attachment is retried on an interval.
type Surface interface {
	Ready() bool
	Attach(stream Stream) error
	Detach()
}

// Status is the observable snapshot of the controller.
type Status struct {
	State    enums.ScanState `json:"state"`
	LastCode string          `json:"lastCode,omitempty"`
	Failure  string          `json:"failure,omitempty"`
}

// Controller runs at most one scan session at a time. A decoded code is
// delivered to the OnDecode callback exactly once per session, after which
// the session stops itself; results arriving after Stop are discarded.
type Controller struct {
	camera   Camera
	decoder  Decoder
	surface  Surface
	cfg      config.ScannerConfig
	logg     *logger.Logger
	metrics  *metrics.TerminalMetrics
	onDecode func(ctx context.Context, code string)

	mu         sync.Mutex
	state      enums.ScanState
	lastCode   string
	failure    string
	generation uint64
	cancel     context.CancelFunc
	stream     Stream
	done       chan struct{}
}

func NewController(camera Camera, decoder Decoder, surface Surface, cfg config.ScannerConfig, logg *logger.Logger, m *metrics.TerminalMetrics, onDecode func(ctx context.Context, code string)) (*Controller, error) {
	if camera == nil {
		return nil, stdErrors.New("camera is required")
	}
	if decoder == nil {
		return nil, stdErrors.New("decoder is required")
	}
	if surface == nil {
		return nil, stdErrors.New("surface is required")
	}
	if logg == nil {
		return nil, stdErrors.New("logger is required")
	}
	if onDecode == nil {
		return nil, stdErrors.New("decode callback is required")
	}
	return &Controller{
		camera:   camera,
		decoder:  decoder,
		surface:  surface,
		cfg:      cfg,
		logg:     logg,
		metrics:  m,
		onDecode: onDecode,
		state:    enums.ScanStateIdle,
	}, nil
}

// Status returns the current snapshot.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{State: c.state, LastCode: c.lastCode, Failure: c.failure}
}

// Start begins a scan session. A session already in progress is an error;
// callers stop the old one first.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state == enums.ScanStateRequesting || c.state == enums.ScanStateStreaming {
		c.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeConflict, "a scan session is already running")
	}
	c.generation++
	generation := c.generation
	c.state = enums.ScanStateRequesting
	c.lastCode = ""
	c.failure = ""
	sessionCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		c.run(sessionCtx, generation)
	}()
	return nil
}

// Stop ends the session and releases the device. It is idempotent; calling it
// with no session running is a no-op. Errors from tearing the stream down are
// combined rather than masking one another.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	if c.state != enums.ScanStateRequesting && c.state != enums.ScanStateStreaming {
		c.mu.Unlock()
		return nil
	}
	c.generation++
	cancel := c.cancel
	stream := c.stream
	done := c.done
	c.cancel = nil
	c.stream = nil
	c.state = enums.ScanStateStopped
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	var err error
	c.surface.Detach()
	if stream != nil {
		err = multierr.Append(err, stream.Close())
	}
	if done != nil {
		<-done
	}
	c.metrics.ScanSessionEnded("stopped")
	c.logg.Info(ctx, "scan session stopped")
	return err
}

func (c *Controller) run(ctx context.Context, generation uint64) {
	if err := c.awaitSurface(ctx); err != nil {
		c.fail(ctx, generation, err)
		return
	}

	stream, err := c.camera.Open(ctx)
	if err != nil {
		c.fail(ctx, generation, err)
		return
	}

	if !c.adopt(generation, stream) {
		stream.Close()
		return
	}
	if err := c.surface.Attach(stream); err != nil {
		c.fail(ctx, generation, ErrSurfaceUnavailable)
		stream.Close()
		return
	}

	c.logg.Info(ctx, "scan session streaming")
	c.decodeLoop(ctx, generation, stream)
}

// awaitSurface polls the render surface until it is ready or the bounded
// retry budget runs out.
func (c *Controller) awaitSurface(ctx context.Context) error {
	for attempt := 0; attempt < c.cfg.SurfaceRetryAttempts; attempt++ {
		if c.surface.Ready() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.SurfaceRetryInterval):
		}
	}
	return ErrSurfaceUnavailable
}

func (c *Controller) decodeLoop(ctx context.Context, generation uint64, stream Stream) {
	ticker := time.NewTicker(c.cfg.DecodeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := stream.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.fail(ctx, generation, err)
			stream.Close()
			return
		}

		code, err := c.decoder.Decode(frame)
		if err != nil {
			if stdErrors.Is(err, ErrNoCode) {
				continue
			}
			// Decoder faults on one frame are transient; keep scanning.
			continue
		}

		if c.deliver(ctx, generation, code) {
			c.surface.Detach()
			stream.Close()
			return
		}
		return
	}
}

// adopt records the live stream unless the session was stopped while the
// camera was opening.
func (c *Controller) adopt(generation uint64, stream Stream) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.stream = stream
	c.state = enums.ScanStateStreaming
	return true
}

// deliver hands the decoded code to the callback unless the session was
// stopped first. Delivery happens outside the lock.
func (c *Controller) deliver(ctx context.Context, generation uint64, code string) bool {
	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		return false
	}
	c.state = enums.ScanStateDecoded
	c.lastCode = code
	c.stream = nil
	c.cancel = nil
	c.mu.Unlock()

	c.metrics.BarcodeDecoded()
	c.metrics.ScanSessionEnded("decoded")
	c.logg.Info(ctx, "barcode decoded")
	c.onDecode(ctx, code)
	return true
}

func (c *Controller) fail(ctx context.Context, generation uint64, cause error) {
	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		return
	}
	c.state = enums.ScanStateFailed
	c.failure = publicFailure(cause)
	c.stream = nil
	c.cancel = nil
	c.mu.Unlock()

	c.metrics.ScanSessionEnded("failed")
	c.logg.Error(ctx, "scan session failed", cause)
}

func publicFailure(cause error) string {
	switch {
	case stdErrors.Is(cause, ErrNoDevice):
		return "no camera found on this station"
	case stdErrors.Is(cause, ErrPermissionDenied):
		return "camera access was denied"
	case stdErrors.Is(cause, ErrSurfaceUnavailable):
		return "scanner preview is unavailable"
	default:
		return "scanner failed"
	}
}

// AsDeviceError wraps a capture-stack failure into the coded form the HTTP
// surface returns.
func AsDeviceError(cause error) error {
	return pkgerrors.Wrap(pkgerrors.CodeDevice, cause, publicFailure(cause))
}
