// Package ledger records reversible field writes against borrowed records so
// every change made during a session can be undone in one pass.
package ledger

// Accessor addresses one field of T holding a V. Get and Set must address the
// same field; the ledger cannot verify this.
type Accessor[T any, V any] struct {
	Get func(T) V
	Set func(T, V)
}

type entry struct {
	target any
	undo   func()
}

// Ledger is an insertion-ordered list of pending reversals. It is owned by a
// single session and is not safe for concurrent use.
type Ledger struct {
	entries []entry
	undone  bool
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Set captures the current value of the field, writes value, and records an
// undo action restoring the captured value. A panicking setter propagates and
// leaves no entry behind.
func Set[T any, V any](l *Ledger, target T, acc Accessor[T, V], value V) {
	original := acc.Get(target)
	acc.Set(target, value)
	l.entries = append(l.entries, entry{
		target: target,
		undo:   func() { acc.Set(target, original) },
	})
}

// UndoAll runs every recorded undo action once, in insertion order, and
// returns how many ran. Entries are independent because each field is patched
// at most once per session; a field patched twice ends at the value captured by
// its last write. Calls after the first are no-ops.
func (l *Ledger) UndoAll() int {
	if l.undone {
		return 0
	}
	l.undone = true
	for _, e := range l.entries {
		e.undo()
	}
	return len(l.entries)
}

// Count returns the number of recorded mutations. UndoAll does not change it.
func (l *Ledger) Count() int {
	return len(l.entries)
}

// Undone reports whether UndoAll has run.
func (l *Ledger) Undone() bool {
	return l.undone
}

// Targets returns the borrowed records in recording order, one per entry.
func (l *Ledger) Targets() []any {
	out := make([]any, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.target
	}
	return out
}
