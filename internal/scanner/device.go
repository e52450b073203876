package scanner

import (
	"bufio"
	"context"
	stdErrors "errors"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// WedgeCamera reads from a USB scanner in keyboard-wedge mode: the device
// node emits one decoded code per line. Frame capture and decoding collapse
// into line reads, which keeps the rest of the pipeline identical to a true
// camera feed.
type WedgeCamera struct {
	Path string
}

func (c *WedgeCamera) Open(ctx context.Context) (Stream, error) {
	if c.Path == "" {
		return nil, ErrNoDevice
	}
	file, err := os.Open(c.Path)
	if err != nil {
		switch {
		case stdErrors.Is(err, fs.ErrNotExist):
			return nil, ErrNoDevice
		case stdErrors.Is(err, fs.ErrPermission):
			return nil, ErrPermissionDenied
		default:
			return nil, err
		}
	}
	return &wedgeStream{file: file, reader: bufio.NewReader(file)}, nil
}

type wedgeStream struct {
	file   *os.File
	reader *bufio.Reader

	closeOnce sync.Once
	closeErr  error
}

// ReadFrame blocks on the next line from the device. The read is unblocked by
// Close, not by the context; the controller closes the stream on cancel.
func (s *wedgeStream) ReadFrame(ctx context.Context) (Frame, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return Frame(line), nil
}

func (s *wedgeStream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.file.Close()
	})
	return s.closeErr
}

// LineDecoder treats each frame as one already-decoded line.
type LineDecoder struct{}

func (LineDecoder) Decode(frame Frame) (string, error) {
	code := strings.TrimSpace(string(frame))
	if code == "" {
		return "", ErrNoCode
	}
	return code, nil
}

// PanelSurface is the on-screen preview area. The UI arms it when the scan
// panel is mounted; until then session starts wait on the bounded retry.
type PanelSurface struct {
	mu     sync.Mutex
	ready  bool
	stream Stream
}

func NewPanelSurface(ready bool) *PanelSurface {
	return &PanelSurface{ready: ready}
}

func (p *PanelSurface) SetReady(ready bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ready = ready
}

func (p *PanelSurface) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

func (p *PanelSurface) Attach(stream Stream) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return ErrSurfaceUnavailable
	}
	p.stream = stream
	return nil
}

func (p *PanelSurface) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stream = nil
}
