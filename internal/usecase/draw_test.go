package usecase

import (
	"context"
	"testing"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
)

// --- fakes ---

// seqSource hands out a fixed sequence of permutations and counts calls.
// Once the sequence runs out it repeats the last entry.
type seqSource struct {
	perms []domain.Permutation
	calls int
}

func (s *seqSource) Permutation(_ context.Context, _ int) (domain.Permutation, error) {
	i := s.calls
	s.calls++
	if i >= len(s.perms) {
		i = len(s.perms) - 1
	}
	return append(domain.Permutation(nil), s.perms[i]...), nil
}

// errSource always fails with the given error.
type errSource struct {
	err   error
	calls int
}

func (s *errSource) Permutation(_ context.Context, _ int) (domain.Permutation, error) {
	s.calls++
	return nil, s.err
}

// identitySource always returns the worst case: every participant draws
// themselves.
type identitySource struct{ calls int }

func (s *identitySource) Permutation(_ context.Context, n int) (domain.Permutation, error) {
	s.calls++
	perm := make(domain.Permutation, n)
	for i := range perm {
		perm[i] = i
	}
	return perm, nil
}

// rotateSource returns the shift-by-one permutation, a derangement for any n ≥ 2.
type rotateSource struct{}

func (rotateSource) Permutation(_ context.Context, n int) (domain.Permutation, error) {
	perm := make(domain.Permutation, n)
	for i := range perm {
		perm[i] = (i + 1) % n
	}
	return perm, nil
}

func unavailableErr() error {
	return &domain.OpError{
		Op:   "randomorg.permutation",
		Kind: domain.KindRandomnessUnavailable,
		Err:  domain.ErrRandomnessUnavailable,
	}
}

func testRoster(n int) domain.Roster {
	names := []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Fábio", "Gabi", "Hugo"}
	r := make(domain.Roster, 0, n)
	for i := 0; i < n; i++ {
		r = append(r, domain.Participant{
			Name:  names[i%len(names)],
			Email: names[i%len(names)] + "@example.com",
		})
	}
	return r
}

// --- tests ---

func TestDrawAcceptsCleanPermutationFirstTry(t *testing.T) {
	src := &seqSource{perms: []domain.Permutation{{1, 0, 3, 2}}}
	r := testRoster(4)

	set, err := NewDraw(src).Execute(context.Background(), r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", src.calls)
	}

	// A→B, B→A, C→D, D→C
	wantRecipients := []int{1, 0, 3, 2}
	for i, a := range set {
		if a.Recipient.Email != r[wantRecipients[i]].Email {
			t.Fatalf("giver %d: expected recipient %s, got %s", i, r[wantRecipients[i]].Email, a.Recipient.Email)
		}
	}
	if err := set.Validate(r); err != nil {
		t.Fatalf("expected valid set: %v", err)
	}
}

func TestDrawRedrawsOnFixedPoint(t *testing.T) {
	src := &seqSource{perms: []domain.Permutation{
		{0, 2, 3, 1}, // participant 0 drew themselves
		{1, 0, 3, 2},
	}}

	set, err := NewDraw(src).Execute(context.Background(), testRoster(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("expected exactly 2 fetches, got %d", src.calls)
	}
	if set[0].Recipient.Email != testRoster(4)[1].Email {
		t.Fatalf("expected second permutation to win")
	}
}

func TestDrawExhaustsRetryBudget(t *testing.T) {
	src := &identitySource{}

	_, err := NewDraw(src).Execute(context.Background(), testRoster(4))
	if err == nil {
		t.Fatalf("expected exhaustion error")
	}
	if !domain.IsKind(err, domain.KindDerangementExhausted) {
		t.Fatalf("expected derangement_exhausted, got %v", err)
	}
	if src.calls != 10 {
		t.Fatalf("expected exactly 10 fetches, got %d", src.calls)
	}
}

func TestDrawMaxAttemptsOption(t *testing.T) {
	src := &identitySource{}

	_, err := NewDraw(src, WithMaxAttempts(3)).Execute(context.Background(), testRoster(2))
	if err == nil {
		t.Fatalf("expected exhaustion error")
	}
	if src.calls != 3 {
		t.Fatalf("expected 3 fetches, got %d", src.calls)
	}
}

func TestDrawRejectsSmallRosters(t *testing.T) {
	src := &seqSource{perms: []domain.Permutation{{1, 0}}}

	for _, n := range []int{0, 1} {
		_, err := NewDraw(src).Execute(context.Background(), testRoster(n))
		if !domain.IsKind(err, domain.KindInsufficientParticipants) {
			t.Fatalf("n=%d: expected insufficient_participants, got %v", n, err)
		}
	}
	if src.calls != 0 {
		t.Fatalf("expected no fetches for invalid rosters, got %d", src.calls)
	}
}

func TestDrawRejectsDuplicateIdentities(t *testing.T) {
	r := domain.Roster{
		{Name: "Ana", Email: "ana@example.com"},
		{Name: "Ana B", Email: "ana@example.com"},
	}

	_, err := NewDraw(&rotateSource{}).Execute(context.Background(), r)
	if !domain.IsKind(err, domain.KindDuplicateParticipant) {
		t.Fatalf("expected duplicate_participant, got %v", err)
	}
}

func TestDrawPropagatesUnavailable(t *testing.T) {
	src := &errSource{err: unavailableErr()}

	_, err := NewDraw(src).Execute(context.Background(), testRoster(3))
	if !domain.IsKind(err, domain.KindRandomnessUnavailable) {
		t.Fatalf("expected randomness_unavailable, got %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("expected a single fetch without fallback, got %d", src.calls)
	}
}

func TestDrawRejectsMalformedPermutation(t *testing.T) {
	src := &seqSource{perms: []domain.Permutation{{1, 0}}} // too short for n=4

	_, err := NewDraw(src).Execute(context.Background(), testRoster(4))
	if !domain.IsKind(err, domain.KindInvalidResponse) {
		t.Fatalf("expected invalid_response, got %v", err)
	}
}

func TestDrawFallbackEngagesWhenUnavailable(t *testing.T) {
	primary := &errSource{err: unavailableErr()}
	fallback := &seqSource{perms: []domain.Permutation{{2, 0, 1}}}

	set, err := NewDraw(primary, WithFallback(fallback)).Execute(context.Background(), testRoster(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("expected 1 primary + 1 fallback fetch, got %d/%d", primary.calls, fallback.calls)
	}
	if err := set.Validate(testRoster(3)); err != nil {
		t.Fatalf("expected valid set from fallback: %v", err)
	}
}

func TestDrawFallbackNotUsedForInvalidResponse(t *testing.T) {
	primary := &errSource{err: &domain.OpError{
		Op:   "randomorg.permutation",
		Kind: domain.KindInvalidResponse,
		Err:  domain.ErrInvalidResponse,
	}}
	fallback := &seqSource{perms: []domain.Permutation{{1, 0}}}

	_, err := NewDraw(primary, WithFallback(fallback)).Execute(context.Background(), testRoster(2))
	if !domain.IsKind(err, domain.KindInvalidResponse) {
		t.Fatalf("expected invalid_response, got %v", err)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback must only cover unavailability, got %d calls", fallback.calls)
	}
}

func TestDrawCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDraw(&rotateSource{}).Execute(ctx, testRoster(3))
	if !domain.IsKind(err, domain.KindRandomnessUnavailable) {
		t.Fatalf("expected randomness_unavailable on cancel, got %v", err)
	}
}

func TestDrawInvariantsAcrossSizes(t *testing.T) {
	for n := 2; n <= 8; n++ {
		set, err := NewDraw(rotateSource{}).Execute(context.Background(), testRoster(n))
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(set) != n {
			t.Fatalf("n=%d: expected %d assignments, got %d", n, n, len(set))
		}
		if err := set.Validate(testRoster(n)); err != nil {
			t.Fatalf("n=%d: invariant violated: %v", n, err)
		}
	}
}
