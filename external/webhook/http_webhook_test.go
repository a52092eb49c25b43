package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foxseedlab/koetype/internal/webhook"
)

func testSummary() webhook.SessionSummary {
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return webhook.SessionSummary{
		SessionID:    "6a1f0d1e-0000-4000-8000-000000000001",
		StartedAt:    started,
		EndedAt:      started.Add(90 * time.Second),
		SegmentCount: 3,
		Transcript:   "Hello world.",
	}
}

func TestSendSummary_EmptyWebhookURL(t *testing.T) {
	sender := NewHTTPSender("")
	if err := sender.SendSummary(context.Background(), testSummary()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestSendSummary_Success(t *testing.T) {
	var got webhook.SessionSummary

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	want := testSummary()
	sender := NewHTTPSender(server.URL)
	if err := sender.SendSummary(context.Background(), want); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.SessionID != want.SessionID {
		t.Fatalf("unexpected session id: %s", got.SessionID)
	}
	if got.SegmentCount != want.SegmentCount {
		t.Fatalf("unexpected segment count: %d", got.SegmentCount)
	}
	if got.Transcript != want.Transcript {
		t.Fatalf("unexpected transcript: %s", got.Transcript)
	}
}

func TestSendSummary_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL)
	if err := sender.SendSummary(context.Background(), testSummary()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
