package command

import (
	"regexp"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/foxseedlab/koetype/internal/config"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Processor extracts voice commands from recognized text and returns the
// remaining prose. The active rule set is replaced wholesale on Refresh, so
// an in-flight Process never observes a half-updated grammar.
type Processor struct {
	active atomic.Pointer[ruleSet]
}

func NewProcessor(cfg *config.Config) (*Processor, error) {
	p := &Processor{}
	if err := p.Refresh(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Refresh recompiles the grammar from configuration and atomically swaps it
// in. On error the previous rule set stays active.
func (p *Processor) Refresh(cfg *config.Config) error {
	rs, err := compileRules(cfg)
	if err != nil {
		return err
	}
	p.active.Store(rs)
	return nil
}

// detected is one rule match with its half-open span in the input.
type detected struct {
	start, end int
	command    Command
}

// Process extracts commands and returns the cleaned text plus the commands
// to execute, ordered by match position.
func (p *Processor) Process(text string) (string, []Command) {
	if text == "" {
		return "", nil
	}
	rs := p.active.Load()

	var matches []detected
	for _, rule := range rs.rules {
		for _, loc := range rule.re.FindAllStringIndex(text, -1) {
			matches = append(matches, detected{start: loc[0], end: loc[1], command: rule.command})
		}
	}
	if len(matches) == 0 {
		return strings.TrimSpace(text), nil
	}

	// Stable sort keeps first-registered rule first at equal offsets.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	var b strings.Builder
	last := 0
	for _, det := range matches {
		if det.start > last {
			b.WriteString(text[last:det.start])
		}
		if det.end > last {
			last = det.end
		}
	}
	b.WriteString(text[last:])
	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))

	return cleaned, filterByMode(rs.mode, cleaned, matches)
}

// filterByMode applies the punctuation policy to the matched commands. In
// hybrid mode a spoken punctuation command is dropped when the cleaned text
// already ends with its symbol, treating recognizer punctuation as
// authoritative.
func filterByMode(mode config.PunctuationMode, cleaned string, matches []detected) []Command {
	commands := make([]Command, 0, len(matches))
	for _, det := range matches {
		if det.command.Kind == KindPunctuation {
			switch mode {
			case config.PunctuationModeAuto:
				continue
			case config.PunctuationModeHybrid:
				if strings.HasSuffix(cleaned, det.command.Text) {
					continue
				}
			}
		}
		commands = append(commands, det.command)
	}
	if len(commands) == 0 {
		return nil
	}
	return commands
}
