package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	internalconfig "github.com/foxseedlab/koetype/internal/config"
)

// commandsFile is the YAML schema of the optional command definitions file.
// Lists keep declaration order, which decides rule priority at equal match
// offsets.
type commandsFile struct {
	NewLine       *yamlRule       `yaml:"new_line"`
	StopDictation *yamlRule       `yaml:"stop_dictation"`
	Punctuation   []namedYAMLRule `yaml:"punctuation"`
	Custom        []namedYAMLRule `yaml:"custom"`
}

type yamlRule struct {
	Enabled *bool  `yaml:"enabled"`
	Pattern string `yaml:"pattern"`
	Action  string `yaml:"action"`
}

type namedYAMLRule struct {
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"`
	Pattern string `yaml:"pattern"`
	Action  string `yaml:"action"`
}

func (r namedYAMLRule) rule() yamlRule {
	return yamlRule{Enabled: r.Enabled, Pattern: r.Pattern, Action: r.Action}
}

func (r yamlRule) toRule(fallback internalconfig.CommandRule) internalconfig.CommandRule {
	rule := fallback
	if r.Enabled != nil {
		rule.Enabled = *r.Enabled
	}
	if r.Pattern != "" {
		rule.Pattern = r.Pattern
	}
	if r.Action != "" {
		rule.Action = r.Action
	}
	return rule
}

// applyCommandRules fills the grammar section of cfg from the commands file,
// falling back to the built-in defaults when no file is configured or a
// section is omitted.
func applyCommandRules(cfg *internalconfig.Config, path string) error {
	cfg.NewLine = internalconfig.DefaultNewLineRule()
	cfg.StopDictation = internalconfig.DefaultStopDictationRule()
	cfg.PunctuationRules = internalconfig.DefaultPunctuationRules()

	if path == "" {
		return nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("commands file %q does not exist", path)
		}
		return fmt.Errorf("failed to read commands file %q: %w", path, err)
	}

	var file commandsFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return fmt.Errorf("failed to parse commands file %q: %w", path, err)
	}

	if file.NewLine != nil {
		cfg.NewLine = file.NewLine.toRule(cfg.NewLine)
	}
	if file.StopDictation != nil {
		cfg.StopDictation = file.StopDictation.toRule(cfg.StopDictation)
	}
	if len(file.Punctuation) > 0 {
		rules := make([]internalconfig.NamedCommandRule, 0, len(file.Punctuation))
		for _, entry := range file.Punctuation {
			if entry.Name == "" {
				return fmt.Errorf("commands file %q: punctuation rule without a name", path)
			}
			rules = append(rules, internalconfig.NamedCommandRule{
				Name: entry.Name,
				Rule: entry.rule().toRule(internalconfig.CommandRule{Enabled: true}),
			})
		}
		cfg.PunctuationRules = rules
	}
	for _, entry := range file.Custom {
		if entry.Name == "" {
			return fmt.Errorf("commands file %q: custom rule without a name", path)
		}
		cfg.CustomRules = append(cfg.CustomRules, internalconfig.NamedCommandRule{
			Name: entry.Name,
			Rule: entry.rule().toRule(internalconfig.CommandRule{Enabled: true}),
		})
	}
	return nil
}
