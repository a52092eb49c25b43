package output

import "github.com/foxseedlab/koetype/internal/command"

// Sink lands recognized text and commands wherever the user is typing. How
// text lands (keystrokes, clipboard, accessibility API) is entirely the
// implementation's policy.
type Sink interface {
	InjectText(text string) error
	ExecuteCommand(cmd command.Command) error
}
