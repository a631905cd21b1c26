package dcontext

import "context"

// DetachedContext returns a context that won't be canceled when the parent
// context is canceled. The updater's stage-4 commit uses this so that a
// caller-initiated cancellation after stage 2/3 have already mutated
// in-memory state can't tear down the write of hashes/filenames/versions
// mid-way and leave the store in a worse state than before the update
// started.
//
// The detached context preserves all values from the parent context (logger,
// trace id) but removes cancellation/deadline behavior.
func DetachedContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
