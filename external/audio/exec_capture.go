package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/foxseedlab/koetype/internal/audio"
)

const (
	captureReadBytes = 4096
	captureStopWait  = 1200 * time.Millisecond
)

// ExecCapture runs a user-configured capture command (ffmpeg/arecord style)
// that writes raw little-endian s16 PCM to stdout, and buffers the decoded
// samples for the session loop to drain.
type ExecCapture struct {
	command  []string
	channels int
	buf      sampleBuffer

	mu      sync.Mutex
	process *os.Process
	stdout  io.ReadCloser
	stderr  *bytes.Buffer
	waitErr chan error
}

func NewExecCapture(command string, channels int) (*ExecCapture, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("capture command is empty")
	}
	return &ExecCapture{command: fields, channels: channels}, nil
}

// DefaultCaptureCommand builds the fallback arecord invocation for the given
// sample rate.
func DefaultCaptureCommand(sampleRate int) string {
	return fmt.Sprintf("arecord -q -f S16_LE -c 1 -r %d -t raw", sampleRate)
}

func (c *ExecCapture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.process != nil {
		return nil
	}
	c.buf.clear()

	cmd := exec.Command(c.command[0], c.command[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create capture stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start capture command: %w", err)
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
		close(waitErr)
	}()

	c.process = cmd.Process
	c.stdout = stdout
	c.stderr = &stderr
	c.waitErr = waitErr

	go c.readLoop(stdout)
	slog.Info("audio capture started", "command", c.command[0])
	return nil
}

func (c *ExecCapture) readLoop(stdout io.Reader) {
	// Pipe reads split at arbitrary byte boundaries; decoding only whole
	// frames and carrying the remainder keeps the s16le stream aligned.
	frame := 2 * c.channels
	raw := make([]byte, captureReadBytes)
	carry := 0
	for {
		n, err := stdout.Read(raw[carry:])
		if n > 0 {
			total := carry + n
			usable := total - total%frame
			if usable > 0 {
				c.buf.append(pcm16ToFloat32(raw[:usable], c.channels))
			}
			carry = copy(raw, raw[usable:total])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				slog.Warn("capture read ended", "error", err)
			}
			return
		}
	}
}

func (c *ExecCapture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.process == nil {
		return nil
	}
	_ = c.process.Signal(os.Interrupt)

	var stopErr error
	select {
	case err := <-c.waitErr:
		stopErr = normalizeExitErr(err)
	case <-time.After(captureStopWait):
		_ = c.process.Kill()
		stopErr = normalizeExitErr(<-c.waitErr)
	}
	_ = c.stdout.Close()

	if stopErr != nil && c.stderr.Len() > 0 {
		stopErr = fmt.Errorf("%w: %s", stopErr, strings.TrimSpace(c.stderr.String()))
	}
	c.process = nil
	c.stdout = nil
	c.stderr = nil
	c.waitErr = nil
	return stopErr
}

func (c *ExecCapture) Drain() []float32 {
	return c.buf.drain()
}

func (c *ExecCapture) Level() float64 {
	return c.buf.currentLevel()
}

// normalizeExitErr drops the exit status of a capture process we interrupted
// ourselves.
func normalizeExitErr(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

var _ audio.Source = (*ExecCapture)(nil)
