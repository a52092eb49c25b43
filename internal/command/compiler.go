package command

import (
	"fmt"
	"regexp"

	"github.com/foxseedlab/koetype/internal/config"
)

// Rule pairs a compiled pattern with the command it emits. Control rules are
// the built-ins (new line, stop dictation); everything else is punctuation or
// a user-defined insertion.
type Rule struct {
	re      *regexp.Regexp
	command Command
	control bool
}

// ruleSet is the immutable compilation result swapped atomically on refresh.
type ruleSet struct {
	rules []Rule
	mode  config.PunctuationMode
}

// compileRules builds the active rule list from configuration. Built-in
// control commands require both the feature flag and their own enabled flag.
// Punctuation and custom rules are always compiled when enabled so their
// tokens can be stripped from the text regardless of punctuation mode.
func compileRules(cfg *config.Config) (*ruleSet, error) {
	var rules []Rule

	if cfg.CommandsEnabled && cfg.NewLine.Enabled {
		re, err := compilePattern("new_line", cfg.NewLine.Pattern)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{re: re, command: NewLine(), control: true})
	}
	if cfg.CommandsEnabled && cfg.StopDictation.Enabled {
		re, err := compilePattern("stop_dictation", cfg.StopDictation.Pattern)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{re: re, command: StopDictation(), control: true})
	}

	for _, named := range cfg.PunctuationRules {
		if !named.Rule.Enabled {
			continue
		}
		re, err := compilePattern(named.Name, named.Rule.Pattern)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{re: re, command: Punctuation(named.Rule.Action)})
	}

	for _, named := range cfg.CustomRules {
		if !named.Rule.Enabled {
			continue
		}
		re, err := compilePattern(named.Name, named.Rule.Pattern)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{re: re, command: InsertText(named.Rule.Action)})
	}

	return &ruleSet{rules: rules, mode: cfg.PunctuationMode}, nil
}

func compilePattern(name, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("command rule %q has invalid pattern: %w", name, err)
	}
	return re, nil
}
