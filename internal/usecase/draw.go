package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
	"github.com/ThalesGSN/SecretSanta/internal/ports"
)

// Draw turns a roster into a giver→recipient mapping with no self-draws.
//
// Strategy: fetch a whole permutation from the source and discard it if any
// participant drew themselves, up to maxAttempts fetches. A uniform random
// permutation is fixed-point-free with probability approaching 1/e, so the
// expected number of fetches is under 3 and the default bound of 10 fails
// with probability below 1e-4.
type Draw struct {
	source      ports.RandomSource
	fallback    ports.RandomSource // nil unless local fallback is allowed
	maxAttempts int
	log         *slog.Logger
}

type DrawOption func(*Draw)

// WithFallback installs a source consulted only after the primary reports
// the randomness provider unavailable. Callers opt in explicitly; see the
// allow_local_fallback config key.
func WithFallback(src ports.RandomSource) DrawOption {
	return func(d *Draw) { d.fallback = src }
}

// WithMaxAttempts overrides the re-draw bound.
func WithMaxAttempts(n int) DrawOption {
	return func(d *Draw) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

// WithLogger attaches a logger for attempt/fallback events.
func WithLogger(l *slog.Logger) DrawOption {
	return func(d *Draw) {
		if l != nil {
			d.log = l
		}
	}
}

func NewDraw(source ports.RandomSource, opts ...DrawOption) *Draw {
	d := &Draw{
		source:      source,
		maxAttempts: domain.DefaultConfig().Draw.MaxAttempts,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute validates the roster, then draws until a fixed-point-free
// permutation shows up or the attempt budget runs out. Any returned set
// satisfies the bijection and no-self-draw invariants.
func (uc *Draw) Execute(ctx context.Context, roster domain.Roster) (domain.AssignmentSet, error) {
	if err := roster.Validate(); err != nil {
		return nil, err
	}

	n := len(roster)
	source := uc.source
	usingFallback := false

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, &domain.OpError{
				Op:   "draw.execute",
				Kind: domain.KindRandomnessUnavailable,
				Err:  err,
			}
		}

		perm, err := source.Permutation(ctx, n)
		if err != nil {
			if !usingFallback && uc.fallback != nil && domain.IsKind(err, domain.KindRandomnessUnavailable) {
				uc.log.Warn("draw.fallback_engaged", "attempt", attempt, "cause", err.Error())
				source = uc.fallback
				usingFallback = true
				continue
			}
			return nil, err
		}

		if err := perm.Check(n); err != nil {
			return nil, &domain.OpError{
				Op:   "draw.execute",
				Kind: domain.KindInvalidResponse,
				Err:  err,
			}
		}

		if fixed := perm.FixedPoints(); len(fixed) > 0 {
			uc.log.Debug("draw.rejected", "attempt", attempt, "fixed_points", len(fixed))
			continue
		}

		set, err := domain.BuildAssignmentSet(roster, perm)
		if err != nil {
			return nil, err
		}
		if err := set.Validate(roster); err != nil {
			return nil, &domain.OpError{
				Op:   "draw.execute",
				Kind: domain.KindInvalidResponse,
				Err:  err,
			}
		}

		uc.log.Info("draw.completed", "participants", n, "attempts", attempt, "fallback", usingFallback)
		return set, nil
	}

	return nil, &domain.OpError{
		Op:   "draw.execute",
		Kind: domain.KindDerangementExhausted,
		Err:  fmt.Errorf("%w: no derangement in %d attempt(s) for %d participants", domain.ErrDerangementExhausted, uc.maxAttempts, n),
	}
}
