package session

import (
	"github.com/samber/do/v2"

	"github.com/foxseedlab/koetype/internal/audio"
	"github.com/foxseedlab/koetype/internal/command"
	"github.com/foxseedlab/koetype/internal/config"
	"github.com/foxseedlab/koetype/internal/output"
	"github.com/foxseedlab/koetype/internal/repository"
	"github.com/foxseedlab/koetype/internal/transcriber"
	"github.com/foxseedlab/koetype/internal/webhook"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*command.Processor, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return command.NewProcessor(cfg)
	})
	do.Provide(injector, func(i do.Injector) (*Controller, error) {
		cfg := do.MustInvoke[*config.Config](i)
		source := do.MustInvoke[audio.Source](i)
		stt := do.MustInvoke[transcriber.Transcriber](i)
		processor := do.MustInvoke[*command.Processor](i)
		sink := do.MustInvoke[output.Sink](i)
		archive := do.MustInvoke[repository.Archive](i)
		wh := do.MustInvoke[webhook.Sender](i)
		status := do.MustInvoke[StatusFunc](i)
		return NewController(cfg, source, stt, processor, sink, archive, wh, status), nil
	})
}
