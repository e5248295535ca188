package review

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"intersight/api/internal/models"
)

func stubFeedback(text string, err error) FeedbackGenerator {
	return func(_ context.Context, _ models.Candidate) (string, error) {
		return text, err
	}
}

func stubSummary(text string, err error) SummaryGenerator {
	return func(_ context.Context, _ models.Candidate) (string, error) {
		return text, err
	}
}

func newTestSession() *Session {
	return NewSession(stubFeedback("Thanks for applying.", nil), stubSummary("Recommendation: Interview", nil))
}

func TestDecideCurrentWalksTheDeck(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())

	ctx := context.Background()
	for _, kind := range []string{DecisionAccepted, DecisionOnHold, DecisionRejected} {
		if _, err := s.DecideCurrent(ctx, kind); err != nil {
			t.Fatalf("unexpected error deciding %s: %v", kind, err)
		}
	}

	counts := s.Counts()
	if counts.Accepted != 1 || counts.Rejected != 1 || counts.OnHold != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if counts.Pending != 0 {
		t.Fatalf("expected no pending candidates, got %d", counts.Pending)
	}
	if s.HistoryLen() != 3 {
		t.Fatalf("expected history length 3, got %d", s.HistoryLen())
	}

	accepted := s.AcceptedDecisions()
	if accepted[0].Match != 92 || accepted[0].TrafficLight != models.LightGreen {
		t.Fatalf("accepted bucket holds wrong candidate: %+v", accepted[0])
	}

	rejected := s.RejectedDecisions()
	if rejected[0].Match != 48 || rejected[0].TrafficLight != models.LightRed {
		t.Fatalf("rejected bucket holds wrong candidate: %+v", rejected[0])
	}

	holds := s.OnHoldCandidates()
	if len(holds) != 1 || holds[0].Analysis.OverallMatchAccuracy != 74 {
		t.Fatalf("on-hold bucket holds wrong candidate: %+v", holds)
	}

	if s.State() != StateFinalizingHolds {
		t.Fatalf("expected state %s, got %s", StateFinalizingHolds, s.State())
	}
}

func TestFinalizeHoldMovesExactlyOneCandidate(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())

	ctx := context.Background()
	s.DecideCurrent(ctx, DecisionAccepted)
	s.DecideCurrent(ctx, DecisionOnHold)
	s.DecideCurrent(ctx, DecisionRejected)

	decision, err := s.FinalizeHold(ctx, "demo_mateo", DecisionRejected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Match != 74 {
		t.Fatalf("finalized wrong candidate: %+v", decision)
	}

	counts := s.Counts()
	if counts.OnHold != 0 {
		t.Fatalf("expected empty hold bucket, got %d", counts.OnHold)
	}
	if counts.Rejected != 2 {
		t.Fatalf("expected 2 rejected, got %d", counts.Rejected)
	}

	// The hold entry stays in the log; the new reject entry is appended.
	if s.HistoryLen() != 4 {
		t.Fatalf("expected history length 4, got %d", s.HistoryLen())
	}

	if s.State() != StateDone {
		t.Fatalf("expected state %s, got %s", StateDone, s.State())
	}
}

func TestFinalizeHoldTwiceFails(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())

	ctx := context.Background()
	s.DecideCurrent(ctx, DecisionOnHold)
	s.DecideCurrent(ctx, DecisionAccepted)
	s.DecideCurrent(ctx, DecisionRejected)

	if _, err := s.FinalizeHold(ctx, "demo_valeria", DecisionAccepted); err != nil {
		t.Fatalf("first finalize failed: %v", err)
	}

	before := s.HistoryLen()
	_, err := s.FinalizeHold(ctx, "demo_valeria", DecisionAccepted)
	if !IsStateTransition(err) {
		t.Fatalf("expected StateTransitionError, got %v", err)
	}
	if s.HistoryLen() != before {
		t.Fatalf("failed finalize mutated history")
	}
}

func TestFinalizeBeforeDeckExhausted(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())

	ctx := context.Background()
	s.DecideCurrent(ctx, DecisionOnHold)

	_, err := s.FinalizeHold(ctx, "demo_valeria", DecisionAccepted)
	if !IsStateTransition(err) {
		t.Fatalf("expected StateTransitionError before exhaustion, got %v", err)
	}
}

func TestBucketAccountingInvariant(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())

	ctx := context.Background()
	kinds := []string{DecisionRejected, DecisionOnHold, DecisionOnHold}

	for i, kind := range kinds {
		if _, err := s.DecideCurrent(ctx, kind); err != nil {
			t.Fatalf("decision %d failed: %v", i, err)
		}

		counts := s.Counts()
		reviewed := counts.Total - counts.Pending
		if counts.Accepted+counts.Rejected+counts.OnHold != reviewed {
			t.Fatalf("bucket accounting broken after decision %d: %+v", i, counts)
		}
	}

	// Finalizations conserve the accounting: a hold moves, it never vanishes.
	s.FinalizeHold(ctx, "demo_mateo", DecisionAccepted)
	counts := s.Counts()
	if counts.Accepted+counts.Rejected+counts.OnHold != counts.Total {
		t.Fatalf("bucket accounting broken after finalize: %+v", counts)
	}
}

func TestDecideWithNoCurrentCandidate(t *testing.T) {
	s := newTestSession()

	_, err := s.DecideCurrent(context.Background(), DecisionAccepted)
	if !IsStateTransition(err) {
		t.Fatalf("expected StateTransitionError on empty deck, got %v", err)
	}

	s.LoadDeck(DemoDeck()[:1])
	s.DecideCurrent(context.Background(), DecisionAccepted)

	_, err = s.DecideCurrent(context.Background(), DecisionAccepted)
	if !IsStateTransition(err) {
		t.Fatalf("expected StateTransitionError past deck end, got %v", err)
	}
}

func TestUnknownDecisionKind(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())

	_, err := s.DecideCurrent(context.Background(), "maybe")
	if !IsStateTransition(err) {
		t.Fatalf("expected StateTransitionError for unknown kind, got %v", err)
	}
	if s.Counts().Pending != 3 {
		t.Fatalf("failed decision advanced the cursor")
	}
}

func TestRejectStoresFeedback(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())

	decision, err := s.DecideCurrent(context.Background(), DecisionRejected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision.Feedback != "Thanks for applying." {
		t.Fatalf("unexpected feedback on decision: %q", decision.Feedback)
	}

	emails := s.FeedbackEmails()
	if emails["demo_valeria"] != "Thanks for applying." {
		t.Fatalf("feedback map not populated: %+v", emails)
	}
}

func TestFeedbackFailureNeverBlocksTheCursor(t *testing.T) {
	s := NewSession(
		stubFeedback("", fmt.Errorf("quota exceeded")),
		stubSummary("", nil),
	)
	s.LoadDeck(DemoDeck())

	decision, err := s.DecideCurrent(context.Background(), DecisionRejected)
	if err != nil {
		t.Fatalf("feedback failure must not fail the decision: %v", err)
	}

	if !strings.Contains(decision.Feedback, "Feedback generation failed") {
		t.Fatalf("expected a visible error string, got %q", decision.Feedback)
	}
	if s.Counts().Pending != 2 {
		t.Fatalf("cursor did not advance after feedback failure")
	}
}

func TestExecutiveSummaryOnlyForHeldCandidates(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())

	ctx := context.Background()
	s.DecideCurrent(ctx, DecisionOnHold)

	summary, err := s.RequestExecutiveSummary(ctx, "demo_valeria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Recommendation: Interview" {
		t.Fatalf("unexpected summary: %q", summary)
	}

	// No state mutation.
	if s.HistoryLen() != 1 || s.Counts().OnHold != 1 {
		t.Fatalf("summary request mutated session state")
	}

	_, err = s.RequestExecutiveSummary(ctx, "demo_mateo")
	if !IsStateTransition(err) {
		t.Fatalf("expected StateTransitionError for candidate not on hold, got %v", err)
	}
}

func TestHistoryIsAppendOnly(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())

	ctx := context.Background()
	prev := 0
	operations := []func(){
		func() { s.DecideCurrent(ctx, DecisionOnHold) },
		func() { s.DecideCurrent(ctx, DecisionAccepted) },
		func() { s.DecideCurrent(ctx, DecisionRejected) },
		func() { s.FinalizeHold(ctx, "demo_valeria", DecisionRejected) },
		func() { s.FinalizeHold(ctx, "demo_valeria", DecisionRejected) }, // invalid repeat
	}

	for i, op := range operations {
		op()
		if s.HistoryLen() < prev {
			t.Fatalf("history shrank after operation %d", i)
		}
		prev = s.HistoryLen()
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())
	s.DecideCurrent(context.Background(), DecisionRejected)

	s.Reset()
	first := fmt.Sprintf("%s|%+v|%d", s.State(), s.Counts(), s.HistoryLen())

	s.Reset()
	second := fmt.Sprintf("%s|%+v|%d", s.State(), s.Counts(), s.HistoryLen())

	if first != second {
		t.Fatalf("reset not idempotent: %s vs %s", first, second)
	}
	if s.State() != StateEmpty {
		t.Fatalf("expected empty state after reset, got %s", s.State())
	}
	if len(s.FeedbackEmails()) != 0 {
		t.Fatalf("feedback map survived reset")
	}
}

func TestLoadDeckReplacesSessionWholesale(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())
	s.DecideCurrent(context.Background(), DecisionRejected)

	s.LoadDeck(DemoDeck()[:2])

	counts := s.Counts()
	if counts.Total != 2 || counts.Pending != 2 || counts.Rejected != 0 {
		t.Fatalf("load did not replace session: %+v", counts)
	}
	if s.HistoryLen() != 0 {
		t.Fatalf("history survived deck reload")
	}
}

func TestStateLifecycle(t *testing.T) {
	s := newTestSession()
	if s.State() != StateEmpty {
		t.Fatalf("expected empty, got %s", s.State())
	}

	s.LoadDeck(DemoDeck()[:2])
	if s.State() != StateReviewing {
		t.Fatalf("expected reviewing, got %s", s.State())
	}

	ctx := context.Background()
	s.DecideCurrent(ctx, DecisionOnHold)
	s.DecideCurrent(ctx, DecisionAccepted)
	if s.State() != StateFinalizingHolds {
		t.Fatalf("expected finalizing holds, got %s", s.State())
	}

	s.FinalizeHold(ctx, "demo_valeria", DecisionAccepted)
	if s.State() != StateDone {
		t.Fatalf("expected done, got %s", s.State())
	}
}

func TestHistoryTail(t *testing.T) {
	s := newTestSession()
	s.LoadDeck(DemoDeck())

	ctx := context.Background()
	s.DecideCurrent(ctx, DecisionAccepted)
	s.DecideCurrent(ctx, DecisionAccepted)
	s.DecideCurrent(ctx, DecisionRejected)

	tail := s.HistoryTail(2)
	if len(tail) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(tail))
	}
	if tail[1].Kind != DecisionRejected {
		t.Fatalf("tail out of order: %+v", tail)
	}

	if got := len(s.HistoryTail(0)); got != 3 {
		t.Fatalf("expected full history for n=0, got %d", got)
	}
}
