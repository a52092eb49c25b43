package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/foxseedlab/koetype/internal/audio"
	"github.com/foxseedlab/koetype/internal/command"
	"github.com/foxseedlab/koetype/internal/config"
	"github.com/foxseedlab/koetype/internal/output"
	"github.com/foxseedlab/koetype/internal/recon"
	"github.com/foxseedlab/koetype/internal/repository"
	"github.com/foxseedlab/koetype/internal/segmenter"
	"github.com/foxseedlab/koetype/internal/transcriber"
	"github.com/foxseedlab/koetype/internal/webhook"
)

// State is the observable dictation lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateProcessing State = "processing"
)

// StatusFunc receives best-effort state notifications for external observers.
type StatusFunc func(State)

const (
	statsInterval = 5 * time.Second
	// Segments shorter than this cannot plausibly contain speech and are
	// skipped without invoking the backend, forced flushes included.
	minDispatchSec = 0.1
)

// dictation holds the per-session state owned by one consumer loop. The loop
// receives its dictation value at spawn and never reads session state off the
// controller, so a loop leaked by a stop timeout can only touch its own dead
// session and exits without disturbing a successor.
type dictation struct {
	seg          *segmenter.Segmenter
	rec          *recon.Reconciler
	id           string
	startedAt    time.Time
	segmentIndex int

	stop       atomic.Bool
	processing atomic.Bool
	done       chan struct{}
}

// Controller owns the dictation session lifecycle: it drains the audio
// source, segments, transcribes, extracts commands, reconciles deltas, and
// forwards output. Each session's mutable state lives in its dictation value,
// owned by that session's single consumer goroutine; the controller itself
// only tracks which session is current.
type Controller struct {
	cfg       *config.Config
	source    audio.Source
	stt       transcriber.Transcriber
	processor *command.Processor
	sink      output.Sink
	archive   repository.Archive
	webhook   webhook.Sender

	mu        sync.Mutex
	recording bool
	cur       *dictation

	statusCh chan State
}

func NewController(
	cfg *config.Config,
	source audio.Source,
	stt transcriber.Transcriber,
	processor *command.Processor,
	sink output.Sink,
	archive repository.Archive,
	wh webhook.Sender,
	status StatusFunc,
) *Controller {
	c := &Controller{
		cfg:       cfg,
		source:    source,
		stt:       stt,
		processor: processor,
		sink:      sink,
		archive:   archive,
		webhook:   wh,
		statusCh:  make(chan State, 16),
	}
	go c.notifyLoop(status)
	return c
}

// notifyLoop serializes status notifications so observer callbacks can never
// block or reorder the consumer loop's transitions.
func (c *Controller) notifyLoop(status StatusFunc) {
	for state := range c.statusCh {
		if status != nil {
			status(state)
		}
	}
}

func (c *Controller) notify(state State) {
	select {
	case c.statusCh <- state:
	default:
		slog.Warn("status notification dropped", "state", string(state))
	}
}

// notifyFor drops notifications from a loop whose session is no longer
// current, so a stale loop finishing late cannot misreport the active
// session's state.
func (c *Controller) notifyFor(d *dictation, state State) {
	c.mu.Lock()
	current := c.cur == d
	c.mu.Unlock()
	if !current {
		return
	}
	c.notify(state)
}

// Start begins a new dictation session. It is a no-op while recording.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.recording {
		c.mu.Unlock()
		return nil
	}

	d := &dictation{
		seg:       segmenter.New(c.cfg.SampleRate, c.cfg.EnergyThreshold, c.cfg.MinSegmentSec, c.cfg.MinSilenceSec),
		rec:       recon.New(),
		id:        uuid.NewString(),
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}

	if err := c.source.Start(); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to start audio capture: %w", err)
	}
	c.cur = d
	c.recording = true
	c.mu.Unlock()

	if err := c.archive.CreateSession(context.Background(), repository.CreateSessionInput{
		SessionID: d.id,
		StartedAt: d.startedAt,
	}); err != nil {
		slog.Error("failed to archive session start", "error", err, "session_id", d.id)
	}

	slog.Info("dictation started", "session_id", d.id, "sample_rate", c.cfg.SampleRate)
	c.notify(StateRecording)
	go c.streamLoop(d)
	return nil
}

// Stop ends the session: it signals the consumer loop, halts capture, and
// waits a bounded time for the loop's final flush. It is a no-op while idle.
// A loop that misses the deadline keeps sole ownership of its session state
// and finishes that session on its own when the backend call returns.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.recording {
		c.mu.Unlock()
		return
	}
	c.recording = false
	d := c.cur
	c.mu.Unlock()

	d.stop.Store(true)
	if err := c.source.Stop(); err != nil {
		slog.Error("failed to stop audio capture cleanly", "error", err, "session_id", d.id)
	}

	select {
	case <-d.done:
	case <-time.After(time.Duration(c.cfg.StopTimeoutMs) * time.Millisecond):
		slog.Warn("consumer loop did not exit in time; proceeding with shutdown", "session_id", d.id)
	}
}

// Toggle alternates start/stop. It is ignored while a finalize is in flight
// to avoid racing the processing path with a user re-trigger.
func (c *Controller) Toggle() {
	c.mu.Lock()
	d := c.cur
	recording := c.recording
	c.mu.Unlock()
	if d != nil && d.processing.Load() {
		slog.Info("toggle ignored while processing")
		return
	}
	if recording {
		c.Stop()
		return
	}
	if err := c.Start(); err != nil {
		slog.Error("failed to start dictation", "error", err)
	}
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	d := c.cur
	recording := c.recording
	c.mu.Unlock()
	if d != nil && d.processing.Load() {
		return StateProcessing
	}
	if recording {
		return StateRecording
	}
	return StateIdle
}

// Refresh recompiles the command grammar from new configuration. The active
// rule set is swapped atomically; an in-flight segment keeps the old one.
func (c *Controller) Refresh(cfg *config.Config) error {
	return c.processor.Refresh(cfg)
}

// streamLoop is the single consumer: it owns its dictation value and all
// emission state within it. Segments are transcribed strictly in arrival
// order; the loop blocks through each backend call, so reconciliation order
// matches audio order.
func (c *Controller) streamLoop(d *dictation) {
	defer close(d.done)

	poll := time.Duration(c.cfg.PollIntervalMs) * time.Millisecond
	statsTicker := time.NewTicker(statsInterval)
	defer statsTicker.Stop()
	var drainedChunks, finalizedSegments int64

	for !d.stop.Load() {
		select {
		case <-statsTicker.C:
			slog.Info("dictation pipeline stats",
				"session_id", d.id,
				"drained_chunks", drainedChunks,
				"finalized_segments", finalizedSegments,
				"pending_sec", d.seg.PendingSec(),
				"level", c.source.Level(),
				"emitted_chars", len(d.rec.Accumulated()))
		default:
		}

		chunk := c.source.Drain()
		if len(chunk) == 0 {
			time.Sleep(poll)
			continue
		}
		drainedChunks++

		segment, final := d.seg.Push(chunk)
		if !final {
			continue
		}
		finalizedSegments++
		c.setProcessing(d, true)
		c.processSegment(d, segment)
		c.setProcessing(d, false)
		if !d.stop.Load() {
			c.notifyFor(d, StateRecording)
		}
	}

	// Exactly one unconditional final flush; a short last utterance must not
	// be dropped.
	c.setProcessing(d, true)
	c.processSegment(d, d.seg.Flush())
	c.setProcessing(d, false)

	c.finishSession(d)
	c.notifyFor(d, StateIdle)
}

func (c *Controller) setProcessing(d *dictation, on bool) {
	d.processing.Store(on)
	if on {
		c.notifyFor(d, StateProcessing)
	}
}

// processSegment runs one finalized segment through transcription, command
// extraction, reconciliation, and output. A backend failure drops this
// segment's text and keeps the session alive.
func (c *Controller) processSegment(d *dictation, segment []float32) {
	if len(segment) < int(minDispatchSec*float64(c.cfg.SampleRate)) {
		return
	}

	text, err := c.stt.Transcribe(context.Background(), segment, c.cfg.SampleRate, d.rec.ContextTail(c.cfg.ContextTailChars))
	if err != nil {
		slog.Error("transcription failed; segment dropped", "error", err, "session_id", d.id, "samples", len(segment))
		return
	}
	if text == "" {
		return
	}

	cleaned, commands := c.processor.Process(text)
	if cleaned != "" {
		c.emit(d, cleaned)
	}
	for _, cmd := range commands {
		if cmd.Kind == command.KindStopDictation {
			c.requestStop(d)
			continue
		}
		if err := c.sink.ExecuteCommand(cmd); err != nil {
			slog.Error("failed to execute command", "error", err, "session_id", d.id, "command", cmd.Kind.String())
		}
	}
}

// emit reconciles cleaned text against the accumulated session text and
// forwards the unseen delta. The accumulator and injection history advance
// only after the sink confirms the write, so a failed emission cannot eat
// words from a later diff.
func (c *Controller) emit(d *dictation, cleaned string) {
	delta := d.rec.Reconcile(cleaned)
	if delta.Text == "" {
		return
	}
	if d.rec.Suppressed(delta) {
		d.rec.Discard(delta)
		slog.Warn("suppressed repeated delta", "session_id", d.id, "delta_chars", len(delta.Text))
		return
	}
	if err := c.sink.InjectText(delta.Text); err != nil {
		slog.Error("text injection failed; delta not recorded", "error", err, "session_id", d.id)
		return
	}
	d.rec.Commit(delta)

	idx := d.segmentIndex
	d.segmentIndex++
	if err := c.archive.InsertSegment(context.Background(), repository.InsertSegmentInput{
		SessionID:    d.id,
		Content:      delta.Text,
		SegmentIndex: idx,
		SpokenAt:     time.Now(),
	}); err != nil {
		slog.Error("failed to archive segment", "error", err, "session_id", d.id, "segment_index", idx)
	}
}

// requestStop ends the session from inside the consumer loop (spoken stop
// command). The loop exits after this iteration and still performs its final
// flush.
func (c *Controller) requestStop(d *dictation) {
	slog.Info("stop requested by voice command", "session_id", d.id)
	d.stop.Store(true)
	if err := c.source.Stop(); err != nil {
		slog.Error("failed to stop audio capture cleanly", "error", err, "session_id", d.id)
	}
}

// finishSession completes the archive record and posts the session summary.
func (c *Controller) finishSession(d *dictation) {
	c.mu.Lock()
	if c.cur == d {
		c.recording = false
	}
	c.mu.Unlock()

	endedAt := time.Now()
	ctx := context.Background()
	if err := c.archive.CompleteSession(ctx, repository.CompleteSessionInput{
		SessionID:    d.id,
		EndedAt:      endedAt,
		SegmentCount: d.segmentIndex,
	}); err != nil {
		slog.Error("failed to archive session end", "error", err, "session_id", d.id)
	}
	if err := c.webhook.SendSummary(ctx, webhook.SessionSummary{
		SessionID:    d.id,
		StartedAt:    d.startedAt,
		EndedAt:      endedAt,
		SegmentCount: d.segmentIndex,
		Transcript:   d.rec.Accumulated(),
	}); err != nil {
		slog.Error("failed to send session summary", "error", err, "session_id", d.id)
	}
	slog.Info("dictation finished", "session_id", d.id, "segments", d.segmentIndex, "transcript_chars", len(d.rec.Accumulated()))
}
