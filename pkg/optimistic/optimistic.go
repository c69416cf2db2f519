// Package optimistic models speculative local updates as an explicit
// three-phase protocol: snapshot the prior state, apply a speculative
// state, then either commit the authoritative result or restore the
// snapshot. Centralizing the snapshot guarantees a full rollback even
// when completions arrive out of order.
package optimistic

// Txn is one speculative update against a value of type T. T must be a
// value type (or otherwise safe to copy) so the snapshot is independent
// of later mutation.
type Txn[T any] struct {
	snapshot T
	current  T
	settled  bool
}

// Begin captures the pre-update state and starts a transaction
func Begin[T any](state T) *Txn[T] {
	return &Txn[T]{snapshot: state, current: state}
}

// Apply records the speculative state. May be called multiple times
// before the transaction settles.
func (t *Txn[T]) Apply(state T) T {
	if !t.settled {
		t.current = state
	}
	return t.current
}

// Commit settles the transaction with the authoritative state,
// discarding the snapshot
func (t *Txn[T]) Commit(authoritative T) T {
	t.current = authoritative
	t.settled = true
	return t.current
}

// Rollback settles the transaction by restoring the snapshot exactly
// as captured, discarding the speculative state entirely
func (t *Txn[T]) Rollback() T {
	t.current = t.snapshot
	t.settled = true
	return t.current
}

// Snapshot returns the state captured at Begin
func (t *Txn[T]) Snapshot() T {
	return t.snapshot
}

// Current returns the latest state the transaction has produced
func (t *Txn[T]) Current() T {
	return t.current
}

// Settled reports whether Commit or Rollback has run
func (t *Txn[T]) Settled() bool {
	return t.settled
}
