package ports

import (
	"context"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
)

// RandomSource produces one permutation of [0,n) per call. Implementations
// make at most one outbound request per invocation; retrying is the caller's
// concern.
type RandomSource interface {
	Permutation(ctx context.Context, n int) (domain.Permutation, error)
}
