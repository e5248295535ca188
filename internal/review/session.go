// Package review owns the candidate review workflow: the deck, the cursor,
// the accept/reject/hold buckets, the append-only decision history, and the
// on-hold re-decision flow.
package review

import (
	"context"
	"fmt"
	"sync"
	"time"

	"intersight/api/internal/models"
)

// Decision kinds.
const (
	DecisionAccepted = "accepted"
	DecisionRejected = "rejected"
	DecisionOnHold   = "on_hold"
)

// Session states.
const (
	StateEmpty           = "empty"
	StateReviewing       = "reviewing"
	StateFinalizingHolds = "finalizing_holds"
	StateDone            = "done"
)

// Decision is one history entry: the outcome of reviewing a candidate at a
// point in time. A candidate reappears in history only through the on-hold
// re-decision path; the hold entry is never deleted.
type Decision struct {
	CandidateID  string    `json:"id"`
	Filename     string    `json:"filename"`
	Match        int       `json:"match"`
	TrafficLight string    `json:"traffic_light"`
	Kind         string    `json:"decision"`
	Feedback     string    `json:"feedback,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// FeedbackGenerator produces a rejection feedback email for a candidate.
type FeedbackGenerator func(ctx context.Context, c models.Candidate) (string, error)

// SummaryGenerator produces an executive summary for a held candidate.
type SummaryGenerator func(ctx context.Context, c models.Candidate) (string, error)

// Counts is a read-only snapshot of bucket sizes.
type Counts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	OnHold   int `json:"on_hold"`
}

// Session is the process-local review workspace. All operations are guarded
// by a single mutex so a partially applied transition is never observable
// from concurrent requests.
type Session struct {
	mu sync.Mutex

	deck     []models.Candidate
	cursor   int
	accepted []Decision
	rejected []Decision

	// Holds are keyed by candidate id; holdOrder keeps insertion order for
	// display. Removal is always by identity, never by position.
	onHold    map[string]models.Candidate
	holdOrder []string

	history  []Decision
	feedback map[string]string

	feedbackGen FeedbackGenerator
	summaryGen  SummaryGenerator
}

func NewSession(feedbackGen FeedbackGenerator, summaryGen SummaryGenerator) *Session {
	s := &Session{
		feedbackGen: feedbackGen,
		summaryGen:  summaryGen,
	}
	s.resetLocked()
	return s
}

// LoadDeck replaces the entire session wholesale: reset plus bulk insert.
// Valid from any state.
func (s *Session) LoadDeck(candidates []models.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	s.deck = append(s.deck, candidates...)
}

// Reset clears deck, cursor, buckets, history, and feedback atomically.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.deck = nil
	s.cursor = 0
	s.accepted = nil
	s.rejected = nil
	s.onHold = make(map[string]models.Candidate)
	s.holdOrder = nil
	s.history = nil
	s.feedback = make(map[string]string)
}

// DecideCurrent applies a first-pass decision to the candidate under the
// cursor and advances it by exactly one. Rejections generate feedback before
// the decision is recorded; a feedback failure becomes a visible error string
// and never blocks the advance.
func (s *Session) DecideCurrent(ctx context.Context, kind string) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind != DecisionAccepted && kind != DecisionRejected && kind != DecisionOnHold {
		return Decision{}, &StateTransitionError{Op: "decision", Reason: fmt.Sprintf("unknown decision kind %q", kind)}
	}

	if s.cursor >= len(s.deck) {
		return Decision{}, &StateTransitionError{Op: "decision", Reason: "no candidate awaiting review"}
	}

	candidate := s.deck[s.cursor]

	var feedback string
	if kind == DecisionRejected {
		feedback = s.generateFeedback(ctx, candidate)
		s.feedback[candidate.ID] = feedback
	}

	decision := s.recordDecisionLocked(candidate, kind, feedback)

	switch kind {
	case DecisionAccepted:
		s.accepted = append(s.accepted, decision)
	case DecisionRejected:
		s.rejected = append(s.rejected, decision)
	case DecisionOnHold:
		s.onHold[candidate.ID] = candidate
		s.holdOrder = append(s.holdOrder, candidate.ID)
	}

	s.cursor++

	return decision, nil
}

// FinalizeHold turns an on-hold candidate into a final accept or reject. It
// is valid only once the deck is exhausted, and only for a candidate still in
// the hold bucket; finalizing the same candidate twice is a state error. The
// earlier on_hold history entry stays in the log.
func (s *Session) FinalizeHold(ctx context.Context, candidateID, kind string) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind != DecisionAccepted && kind != DecisionRejected {
		return Decision{}, &StateTransitionError{Op: "finalization", Reason: fmt.Sprintf("final decision must be accepted or rejected, got %q", kind)}
	}

	if s.cursor < len(s.deck) {
		return Decision{}, &StateTransitionError{Op: "finalization", Reason: "deck not exhausted yet"}
	}

	candidate, held := s.onHold[candidateID]
	if !held {
		return Decision{}, &StateTransitionError{Op: "finalization", Reason: fmt.Sprintf("candidate %s is not on hold", candidateID)}
	}

	delete(s.onHold, candidateID)
	for i, id := range s.holdOrder {
		if id == candidateID {
			s.holdOrder = append(s.holdOrder[:i], s.holdOrder[i+1:]...)
			break
		}
	}

	decision := s.recordDecisionLocked(candidate, kind, "")

	switch kind {
	case DecisionAccepted:
		s.accepted = append(s.accepted, decision)
	case DecisionRejected:
		s.rejected = append(s.rejected, decision)
	}

	return decision, nil
}

// RequestExecutiveSummary generates decision support for a held candidate.
// It does not mutate session state; the candidate must currently be on hold.
func (s *Session) RequestExecutiveSummary(ctx context.Context, candidateID string) (string, error) {
	s.mu.Lock()
	candidate, held := s.onHold[candidateID]
	summaryGen := s.summaryGen
	s.mu.Unlock()

	if !held {
		return "", &StateTransitionError{Op: "summary request", Reason: fmt.Sprintf("candidate %s is not on hold", candidateID)}
	}

	if summaryGen == nil {
		return "", fmt.Errorf("summary generator not configured")
	}

	summary, err := summaryGen(ctx, candidate)
	if err != nil {
		return "", fmt.Errorf("failed to generate executive summary: %w", err)
	}

	return summary, nil
}

func (s *Session) generateFeedback(ctx context.Context, candidate models.Candidate) string {
	if s.feedbackGen == nil {
		return "Feedback generation is not configured."
	}

	feedback, err := s.feedbackGen(ctx, candidate)
	if err != nil {
		return fmt.Sprintf("Feedback generation failed: %v", err)
	}

	return feedback
}

func (s *Session) recordDecisionLocked(candidate models.Candidate, kind, feedback string) Decision {
	decision := Decision{
		CandidateID:  candidate.ID,
		Filename:     candidate.Filename,
		Match:        candidate.Analysis.OverallMatchAccuracy,
		TrafficLight: candidate.Analysis.TrafficLight,
		Kind:         kind,
		Feedback:     feedback,
		Timestamp:    time.Now().UTC(),
	}
	s.history = append(s.history, decision)
	return decision
}

// State reports where the session is in its lifecycle.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() string {
	switch {
	case len(s.deck) == 0:
		return StateEmpty
	case s.cursor < len(s.deck):
		return StateReviewing
	case len(s.onHold) > 0:
		return StateFinalizingHolds
	default:
		return StateDone
	}
}

// CurrentCandidate returns the candidate awaiting a first-pass decision.
func (s *Session) CurrentCandidate() (models.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.deck) {
		return models.Candidate{}, false
	}
	return s.deck[s.cursor], true
}

// Counts returns bucket sizes and pending work.
func (s *Session) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Counts{
		Total:    len(s.deck),
		Pending:  len(s.deck) - s.cursor,
		Accepted: len(s.accepted),
		Rejected: len(s.rejected),
		OnHold:   len(s.onHold),
	}
}

// HistoryTail returns up to n most recent decisions, oldest first.
func (s *Session) HistoryTail(n int) []Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > len(s.history) {
		n = len(s.history)
	}

	tail := make([]Decision, n)
	copy(tail, s.history[len(s.history)-n:])
	return tail
}

// HistoryLen reports the total number of recorded decisions.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// OnHoldCandidates returns held candidates in the order they were parked.
func (s *Session) OnHoldCandidates() []models.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]models.Candidate, 0, len(s.holdOrder))
	for _, id := range s.holdOrder {
		if candidate, ok := s.onHold[id]; ok {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

// AcceptedDecisions returns a copy of the accepted bucket.
func (s *Session) AcceptedDecisions() []Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Decision(nil), s.accepted...)
}

// RejectedDecisions returns a copy of the rejected bucket.
func (s *Session) RejectedDecisions() []Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Decision(nil), s.rejected...)
}

// FeedbackEmails returns a copy of the generated feedback, keyed by
// candidate id.
func (s *Session) FeedbackEmails() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	emails := make(map[string]string, len(s.feedback))
	for id, body := range s.feedback {
		emails[id] = body
	}
	return emails
}
