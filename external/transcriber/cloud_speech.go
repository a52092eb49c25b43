package transcriber

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/auth/credentials"
	speech "cloud.google.com/go/speech/apiv2"
	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
	"google.golang.org/api/option"

	"github.com/foxseedlab/koetype/internal/transcriber"
)

const speechAPIEndpointPort = 443

type CloudSpeechConfig struct {
	ProjectID       string
	CredentialsJSON string
	Language        string
	Location        string
	Model           string
}

// CloudSpeechTranscriber sends one finalized segment at a time to the Cloud
// Speech v2 Recognize API. The context hint rides along as an inline
// adaptation phrase to bias decoding toward the session's recent text.
type CloudSpeechTranscriber struct {
	client     *speech.Client
	recognizer string
	language   string
	model      string
}

func NewCloudSpeechTranscriber(ctx context.Context, cfg CloudSpeechConfig) (transcriber.Transcriber, error) {
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = "global"
	}

	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		CredentialsJSON: []byte(cfg.CredentialsJSON),
		Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
	})
	if err != nil {
		return nil, fmt.Errorf("detect credentials: %w", err)
	}

	opts := []option.ClientOption{
		option.WithAuthCredentials(creds),
	}
	if location != "global" {
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("%s-speech.googleapis.com:%d", location, speechAPIEndpointPort)))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}

	return &CloudSpeechTranscriber{
		client:     client,
		recognizer: fmt.Sprintf("projects/%s/locations/%s/recognizers/_", cfg.ProjectID, location),
		language:   cfg.Language,
		model:      strings.TrimSpace(cfg.Model),
	}, nil
}

func (t *CloudSpeechTranscriber) Transcribe(ctx context.Context, samples []float32, sampleRate int, contextHint string) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}

	cfg := &speechpb.RecognitionConfig{
		Model:         t.model,
		LanguageCodes: []string{t.language},
		DecodingConfig: &speechpb.RecognitionConfig_ExplicitDecodingConfig{
			ExplicitDecodingConfig: &speechpb.ExplicitDecodingConfig{
				Encoding:          speechpb.ExplicitDecodingConfig_LINEAR16,
				SampleRateHertz:   int32(sampleRate),
				AudioChannelCount: 1,
			},
		},
		Features: &speechpb.RecognitionFeatures{},
	}
	if contextHint != "" {
		cfg.Adaptation = &speechpb.SpeechAdaptation{
			PhraseSets: []*speechpb.SpeechAdaptation_AdaptationPhraseSet{
				{
					Value: &speechpb.SpeechAdaptation_AdaptationPhraseSet_InlinePhraseSet{
						InlinePhraseSet: &speechpb.PhraseSet{
							Phrases: []*speechpb.PhraseSet_Phrase{{Value: contextHint}},
						},
					},
				},
			},
		}
	}

	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Recognizer:  t.recognizer,
		Config:      cfg,
		AudioSource: &speechpb.RecognizeRequest_Content{Content: float32ToLinear16(samples)},
	})
	if err != nil {
		return "", fmt.Errorf("recognize segment: %w", err)
	}

	var parts []string
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if text := strings.TrimSpace(alts[0].GetTranscript()); text != "" {
			parts = append(parts, text)
		}
	}
	text := strings.Join(parts, " ")
	slog.Debug("segment recognized", "samples", len(samples), "chars", len(text))
	return text, nil
}

// float32ToLinear16 converts [-1, 1] samples to little-endian signed 16-bit
// PCM, clamping out-of-range values.
func float32ToLinear16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		s := int16(v * 32767)
		out[i*2] = byte(uint16(s))
		out[i*2+1] = byte(uint16(s) >> 8)
	}
	return out
}
