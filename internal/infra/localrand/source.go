// Package localrand is the opt-in offline substitute for random.org: a
// Fisher-Yates permutation from the process PRNG. It only runs when the
// operator sets allow_local_fallback, since it weakens the true-randomness
// guarantee the tool advertises.
package localrand

import (
	"context"
	"math/rand/v2"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
	"github.com/ThalesGSN/SecretSanta/internal/ports"
)

type Source struct {
	rnd *rand.Rand
}

type Option func(*Source)

// WithRand pins the generator, letting tests seed it deterministically.
func WithRand(r *rand.Rand) Option {
	return func(s *Source) { s.rnd = r }
}

var _ ports.RandomSource = (*Source)(nil)

func New(opts ...Option) *Source {
	s := &Source{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Permutation returns a uniform permutation of [0,n). Never fails.
func (s *Source) Permutation(_ context.Context, n int) (domain.Permutation, error) {
	perm := make(domain.Permutation, n)
	for i := range perm {
		perm[i] = i
	}
	shuffle := rand.Shuffle
	if s.rnd != nil {
		shuffle = s.rnd.Shuffle
	}
	shuffle(n, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return perm, nil
}
