package output

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/foxseedlab/koetype/internal/config"
	"github.com/foxseedlab/koetype/internal/output"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (output.Sink, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.TyperCommand != "" {
			return NewExecSink(cfg.TyperCommand)
		}
		return NewWriterSink(os.Stdout), nil
	})
}
