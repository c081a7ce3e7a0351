package routing

import "errors"

// Failure modes surfaced to the aggregation engine. Unresolved segments stay
// queued on ErrServiceUnavailable/ErrRateLimited and are retried on the next
// pass; ErrInvalidRequest is terminal for the pair.
var (
	ErrServiceUnavailable = errors.New("routing: service unavailable")
	ErrRateLimited        = errors.New("routing: rate limit exceeded")
	ErrInvalidRequest     = errors.New("routing: invalid request")
)
