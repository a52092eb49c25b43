package output

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/foxseedlab/koetype/internal/command"
	"github.com/foxseedlab/koetype/internal/output"
)

const typerTimeout = 5 * time.Second

// ExecSink forwards each delta to a user-configured typer command
// (`xdotool type --` style), with the text appended as the final argument.
// How the text reaches the focused window is entirely the typer's policy.
type ExecSink struct {
	typer []string
}

func NewExecSink(typerCommand string) (output.Sink, error) {
	fields := strings.Fields(typerCommand)
	if len(fields) == 0 {
		return nil, errors.New("typer command is empty")
	}
	return &ExecSink{typer: fields}, nil
}

func (s *ExecSink) InjectText(text string) error {
	if text == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), typerTimeout)
	defer cancel()

	args := append(append([]string(nil), s.typer[1:]...), text)
	out, err := exec.CommandContext(ctx, s.typer[0], args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("typer command failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (s *ExecSink) ExecuteCommand(cmd command.Command) error {
	text, ok := commandText(cmd)
	if !ok {
		return nil
	}
	return s.InjectText(text)
}
