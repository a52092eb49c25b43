package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/foxseedlab/koetype/internal/command"
	"github.com/foxseedlab/koetype/internal/output"
)

// WriterSink lands text on an io.Writer. Used in development and wherever a
// downstream process consumes the dictation stream directly.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) output.Sink {
	return &WriterSink{w: w}
}

func (s *WriterSink) InjectText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, text); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

func (s *WriterSink) ExecuteCommand(cmd command.Command) error {
	text, ok := commandText(cmd)
	if !ok {
		return nil
	}
	return s.InjectText(text)
}

// commandText maps a command to the literal text it lands as. Stop dictation
// is handled by the session controller and produces no output.
func commandText(cmd command.Command) (string, bool) {
	switch cmd.Kind {
	case command.KindNewLine:
		return "\n", true
	case command.KindInsertText, command.KindPunctuation:
		return cmd.Text, true
	case command.KindStopDictation:
		return "", false
	}
	return "", false
}
