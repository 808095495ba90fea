package fetchcache

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyKey is returned when GetOrFetch is called with an empty key.
	ErrEmptyKey = errors.New("fetchcache: empty key")

	// ErrNonPositiveTTL is returned when an explicit TTL is zero or negative.
	ErrNonPositiveTTL = errors.New("fetchcache: ttl must be positive")

	// ErrPurgeUnsupported reports that the provider has no physical purge.
	// It surfaces as the PurgeErr of a ClearError when the epoch bump failed
	// and the provider could not fall back to deleting entries.
	ErrPurgeUnsupported = errors.New("fetchcache: provider does not support purge")
)

// InvalidateError reports an Invalidate where both the generation bump and the
// provider delete failed, meaning stale data may still be served.
type InvalidateError struct {
	Key     string
	BumpErr error
	DelErr  error
}

func (e *InvalidateError) Error() string {
	return fmt.Sprintf("invalidate %q failed: gen bump and delete failed: bump=%v; delete=%v",
		e.Key, e.BumpErr, e.DelErr)
}

func (e *InvalidateError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.BumpErr != nil {
		errs = append(errs, e.BumpErr)
	}
	if e.DelErr != nil {
		errs = append(errs, e.DelErr)
	}
	return errs
}

// ClearError reports a Clear where both the epoch bump and the physical purge
// failed, meaning existing entries remain visible.
type ClearError struct {
	Namespace string
	BumpErr   error
	PurgeErr  error
}

func (e *ClearError) Error() string {
	return fmt.Sprintf("clear %q failed: epoch bump and purge failed: bump=%v; purge=%v",
		e.Namespace, e.BumpErr, e.PurgeErr)
}

func (e *ClearError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.BumpErr != nil {
		errs = append(errs, e.BumpErr)
	}
	if e.PurgeErr != nil {
		errs = append(errs, e.PurgeErr)
	}
	return errs
}
