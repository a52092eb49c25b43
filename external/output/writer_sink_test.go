package output

import (
	"strings"
	"testing"

	"github.com/foxseedlab/koetype/internal/command"
)

func TestWriterSink_InjectText(t *testing.T) {
	var b strings.Builder
	sink := NewWriterSink(&b)
	if err := sink.InjectText("Hello "); err != nil {
		t.Fatalf("inject failed: %v", err)
	}
	if err := sink.InjectText("world"); err != nil {
		t.Fatalf("inject failed: %v", err)
	}
	if b.String() != "Hello world" {
		t.Fatalf("unexpected output %q", b.String())
	}
}

func TestWriterSink_ExecuteCommand(t *testing.T) {
	cases := []struct {
		name string
		cmd  command.Command
		want string
	}{
		{"new line", command.NewLine(), "\n"},
		{"punctuation", command.Punctuation("?"), "?"},
		{"insert text", command.InsertText("-- fox"), "-- fox"},
		{"stop is a no-op", command.StopDictation(), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b strings.Builder
			sink := NewWriterSink(&b)
			if err := sink.ExecuteCommand(tc.cmd); err != nil {
				t.Fatalf("execute failed: %v", err)
			}
			if b.String() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, b.String())
			}
		})
	}
}
