package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	internalconfig "github.com/foxseedlab/koetype/internal/config"
)

type envConfig struct {
	Env                        string  `env:"ENV" envDefault:"production"`
	SampleRate                 int     `env:"AUDIO_SAMPLE_RATE" envDefault:"16000"`
	Channels                   int     `env:"AUDIO_CHANNELS" envDefault:"1"`
	AudioSource                string  `env:"AUDIO_SOURCE" envDefault:"capture"`
	CaptureCommand             string  `env:"AUDIO_CAPTURE_COMMAND"`
	EnergyThreshold            float64 `env:"STREAM_ENERGY_THRESHOLD" envDefault:"0.01"`
	MinSegmentSec              float64 `env:"STREAM_MIN_SEGMENT_SEC" envDefault:"1.2"`
	MinSilenceSec              float64 `env:"STREAM_MIN_SILENCE_SEC" envDefault:"0.6"`
	PollIntervalMs             int     `env:"STREAM_POLL_INTERVAL_MS" envDefault:"50"`
	StopTimeoutMs              int     `env:"STREAM_STOP_TIMEOUT_MS" envDefault:"2000"`
	TranscribeLanguage         string  `env:"TRANSCRIBE_LANGUAGE,required"`
	ContextTailChars           int     `env:"CONTEXT_TAIL_CHARS" envDefault:"120"`
	GoogleCloudProjectID       string  `env:"GOOGLE_CLOUD_PROJECT_ID,required"`
	GoogleCloudCredentialsJSON string  `env:"GOOGLE_CLOUD_CREDENTIALS_JSON,required"`
	GoogleCloudSpeechLocation  string  `env:"GOOGLE_CLOUD_SPEECH_LOCATION" envDefault:"asia-northeast1"`
	GoogleCloudSpeechModel     string  `env:"GOOGLE_CLOUD_SPEECH_MODEL" envDefault:"chirp_3"`
	PunctuationMode            string  `env:"PUNCTUATION_MODE" envDefault:"hybrid"`
	CommandsEnabled            bool    `env:"COMMANDS_ENABLED" envDefault:"true"`
	CommandsFile               string  `env:"COMMANDS_FILE"`
	TyperCommand               string  `env:"OUTPUT_TYPER_COMMAND"`
	DatabaseURL                string  `env:"DATABASE_URL"`
	TranscriptWebhookURL       string  `env:"TRANSCRIPT_WEBHOOK_URL"`
}

// Load builds the runtime configuration from environment variables plus the
// optional commands definition file.
func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		SampleRate:                 raw.SampleRate,
		Channels:                   raw.Channels,
		AudioSource:                raw.AudioSource,
		CaptureCommand:             raw.CaptureCommand,
		EnergyThreshold:            raw.EnergyThreshold,
		MinSegmentSec:              raw.MinSegmentSec,
		MinSilenceSec:              raw.MinSilenceSec,
		PollIntervalMs:             raw.PollIntervalMs,
		StopTimeoutMs:              raw.StopTimeoutMs,
		TranscribeLanguage:         raw.TranscribeLanguage,
		ContextTailChars:           raw.ContextTailChars,
		GoogleCloudProjectID:       raw.GoogleCloudProjectID,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		GoogleCloudSpeechLocation:  raw.GoogleCloudSpeechLocation,
		GoogleCloudSpeechModel:     raw.GoogleCloudSpeechModel,
		PunctuationMode:            internalconfig.PunctuationMode(raw.PunctuationMode),
		CommandsEnabled:            raw.CommandsEnabled,
		CommandsFile:               raw.CommandsFile,
		TyperCommand:               raw.TyperCommand,
		DatabaseURL:                raw.DatabaseURL,
		TranscriptWebhookURL:       raw.TranscriptWebhookURL,
	}
	if err := applyCommandRules(cfg, raw.CommandsFile); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
