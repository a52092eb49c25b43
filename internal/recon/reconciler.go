// Package recon turns the cleaned text of each transcribed segment into the
// incremental delta that still has to be typed, guarding against duplicate
// emissions.
package recon

import (
	"regexp"
	"strings"
)

const historyCapacity = 3

// RE2 has no backreferences, so each punctuation run collapses via its own
// pattern rather than one grouped expression.
var repeatedPunctRules = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\.{2,}`), "."},
	{regexp.MustCompile(`!{2,}`), "!"},
	{regexp.MustCompile(`\?{2,}`), "?"},
	{regexp.MustCompile(`,{2,}`), ","},
}

var (
	spaceBeforePunctRe = regexp.MustCompile(`\s+([.!?,])`)
	whitespaceRe       = regexp.MustCompile(`\s+`)
)

// Delta is the outcome of one reconciliation. Nothing is mutated until the
// caller confirms emission via Commit, so a failed sink write cannot shift
// later diffs.
type Delta struct {
	Text string
	// reset records that the new text did not extend the accumulated text
	// and the accumulator must restart from this delta alone.
	reset bool
}

// Reconciler owns the accumulated session text and the short injection
// history. It is used only by the session consumer loop.
type Reconciler struct {
	accumulated string
	history     []string
}

func New() *Reconciler {
	return &Reconciler{}
}

// Reconcile normalizes cleaned text and computes the unseen suffix relative
// to everything already emitted. The returned delta may be empty (nothing
// new) and must be passed to Commit once the sink confirmed it.
func (r *Reconciler) Reconcile(cleaned string) Delta {
	cleaned = smoothPunctuation(cleaned)

	if strings.HasPrefix(cleaned, r.accumulated) {
		return Delta{Text: cleaned[len(r.accumulated):]}
	}
	// The recognizer revised or restarted its hypothesis; best effort is to
	// emit the whole new text and restart the accumulator.
	return Delta{Text: cleaned, reset: true}
}

// Suppressed reports whether the delta repeats the most recent emission; a
// transient double-finalize or a recognizer repeat must not type the same
// words twice.
func (r *Reconciler) Suppressed(d Delta) bool {
	if d.Text == "" {
		return false
	}
	return len(r.history) > 0 && r.history[len(r.history)-1] == d.Text
}

// Discard records a suppressed delta. Its text is never appended, but a
// reset still clears the accumulator so the next prefix check and context
// hint run against the restarted hypothesis rather than stale text.
func (r *Reconciler) Discard(d Delta) {
	if d.reset {
		r.accumulated = ""
	}
}

// Commit records a confirmed emission: the delta is appended to the
// accumulated text and pushed onto the bounded injection history.
func (r *Reconciler) Commit(d Delta) {
	if d.reset {
		r.accumulated = ""
	}
	if d.Text == "" {
		return
	}
	r.accumulated += d.Text
	r.history = append(r.history, d.Text)
	if len(r.history) > historyCapacity {
		r.history = r.history[1:]
	}
}

// Accumulated returns everything emitted so far in this session.
func (r *Reconciler) Accumulated() string {
	return r.accumulated
}

// ContextTail returns the trailing slice of the accumulated text, used as a
// decoding hint for the next segment. It never rewrites emitted text.
func (r *Reconciler) ContextTail(maxChars int) string {
	runes := []rune(r.accumulated)
	if len(runes) > maxChars {
		runes = runes[len(runes)-maxChars:]
	}
	return strings.TrimSpace(string(runes))
}

// Reset discards all per-session state at the start of a new session.
func (r *Reconciler) Reset() {
	r.accumulated = ""
	r.history = nil
}

// smoothPunctuation collapses repeated punctuation, removes whitespace
// immediately before punctuation, and normalizes the remaining whitespace.
func smoothPunctuation(text string) string {
	for _, rule := range repeatedPunctRules {
		text = rule.re.ReplaceAllString(text, rule.replacement)
	}
	text = spaceBeforePunctRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
