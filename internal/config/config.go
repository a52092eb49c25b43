package config

import "fmt"

// PunctuationMode governs how spoken punctuation commands interact with
// punctuation the recognizer emits on its own.
type PunctuationMode string

const (
	// PunctuationModeAuto relies on recognizer punctuation only; spoken
	// punctuation commands are stripped from the text and discarded.
	PunctuationModeAuto PunctuationMode = "auto"
	// PunctuationModeManual honors every spoken punctuation command.
	PunctuationModeManual PunctuationMode = "manual"
	// PunctuationModeHybrid honors spoken punctuation unless the recognizer
	// already produced the same symbol at the end of the cleaned text.
	PunctuationModeHybrid PunctuationMode = "hybrid"
)

// CommandRule is one voice-command definition as configured by the user.
type CommandRule struct {
	Enabled bool
	Pattern string
	Action  string
}

// NamedCommandRule keeps user-defined rules in declaration order; ordering
// decides which rule wins when two patterns match at the same offset.
type NamedCommandRule struct {
	Name string
	Rule CommandRule
}

type Config struct {
	Env string

	// Audio session parameters.
	SampleRate     int
	Channels       int
	AudioSource    string
	CaptureCommand string

	// Streaming segmentation thresholds.
	EnergyThreshold float64
	MinSegmentSec   float64
	MinSilenceSec   float64
	PollIntervalMs  int
	StopTimeoutMs   int

	// Transcription.
	TranscribeLanguage         string
	ContextTailChars           int
	GoogleCloudProjectID       string
	GoogleCloudCredentialsJSON string
	GoogleCloudSpeechLocation  string
	GoogleCloudSpeechModel     string

	// Command grammar.
	PunctuationMode  PunctuationMode
	CommandsEnabled  bool
	CommandsFile     string
	NewLine          CommandRule
	StopDictation    CommandRule
	PunctuationRules []NamedCommandRule
	CustomRules      []NamedCommandRule

	// Output and archival collaborators.
	TyperCommand         string
	DatabaseURL          string
	TranscriptWebhookURL string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("AUDIO_SAMPLE_RATE must be positive, got %d", c.SampleRate)
	}
	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("AUDIO_CHANNELS must be 1 or 2, got %d", c.Channels)
	}
	if c.EnergyThreshold <= 0 {
		return fmt.Errorf("STREAM_ENERGY_THRESHOLD must be positive, got %g", c.EnergyThreshold)
	}
	if c.MinSegmentSec <= 0 {
		return fmt.Errorf("STREAM_MIN_SEGMENT_SEC must be positive, got %g", c.MinSegmentSec)
	}
	if c.MinSilenceSec <= 0 {
		return fmt.Errorf("STREAM_MIN_SILENCE_SEC must be positive, got %g", c.MinSilenceSec)
	}
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("STREAM_POLL_INTERVAL_MS must be positive, got %d", c.PollIntervalMs)
	}
	if c.StopTimeoutMs <= 0 {
		return fmt.Errorf("STREAM_STOP_TIMEOUT_MS must be positive, got %d", c.StopTimeoutMs)
	}
	if c.ContextTailChars < 0 {
		return fmt.Errorf("CONTEXT_TAIL_CHARS must not be negative, got %d", c.ContextTailChars)
	}
	switch c.PunctuationMode {
	case PunctuationModeAuto, PunctuationModeManual, PunctuationModeHybrid:
	default:
		return fmt.Errorf("PUNCTUATION_MODE must be auto, manual, or hybrid, got %q", c.PunctuationMode)
	}
	switch c.AudioSource {
	case "capture", "opus":
	default:
		return fmt.Errorf("AUDIO_SOURCE must be capture or opus, got %q", c.AudioSource)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "TRANSCRIBE_LANGUAGE", value: c.TranscribeLanguage},
		{name: "GOOGLE_CLOUD_PROJECT_ID", value: c.GoogleCloudProjectID},
		{name: "GOOGLE_CLOUD_CREDENTIALS_JSON", value: c.GoogleCloudCredentialsJSON},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// DefaultNewLineRule is the built-in line-break control command.
func DefaultNewLineRule() CommandRule {
	return CommandRule{Enabled: true, Pattern: `\b(new line|newline)\b`, Action: "\n"}
}

// DefaultStopDictationRule is the built-in session-stop control command.
func DefaultStopDictationRule() CommandRule {
	return CommandRule{Enabled: true, Pattern: `\b(stop dictation|stop listening)\b`, Action: ""}
}

// DefaultPunctuationRules returns the built-in spoken punctuation commands,
// used when no commands file is configured.
func DefaultPunctuationRules() []NamedCommandRule {
	return []NamedCommandRule{
		{Name: "period", Rule: CommandRule{Enabled: true, Pattern: `\b(period|full stop)\b`, Action: "."}},
		{Name: "comma", Rule: CommandRule{Enabled: true, Pattern: `\b(comma)\b`, Action: ","}},
		{Name: "question_mark", Rule: CommandRule{Enabled: true, Pattern: `\b(question mark)\b`, Action: "?"}},
		{Name: "exclamation_mark", Rule: CommandRule{Enabled: true, Pattern: `\b(exclamation mark|exclamation point)\b`, Action: "!"}},
	}
}
