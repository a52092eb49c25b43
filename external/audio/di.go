package audio

import (
	"github.com/samber/do/v2"

	"github.com/foxseedlab/koetype/internal/audio"
	"github.com/foxseedlab/koetype/internal/config"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (audio.Source, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.AudioSource == "opus" {
			return NewOpusSource(cfg.SampleRate), nil
		}
		command := cfg.CaptureCommand
		if command == "" {
			command = DefaultCaptureCommand(cfg.SampleRate)
		}
		return NewExecCapture(command, cfg.Channels)
	})
}
