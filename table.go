package xlsxstyle

import (
	"sync"

	"go.uber.org/zap"
)

// record is a style record that can be interned by its canonical id.
type record interface {
	canonicalID() string
}

// Table is an append-only interning store.  Every record is reachable by the
// index it was assigned when appended; indices are never reused or moved.
// Records added through GetOrInsert are unique by canonical id.
type Table[T record] struct {
	name  string
	log   *zap.Logger
	mu    sync.RWMutex
	items []T
	ids   map[string]int
}

func newTable[T record](name string, log *zap.Logger) *Table[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Table[T]{name: name, log: log, ids: make(map[string]int)}
}

// Len returns the number of records in the table.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

// FindIndexByID returns the index of the first record with the canonical id.
func (t *Table[T]) FindIndexByID(id string) (int, bool) {
	t.mu.RLock()
	index, ok := t.ids[id]
	t.mu.RUnlock()
	return index, ok
}

// Add appends r under id and returns its index.  It never overwrites: when id
// is already known the earlier index keeps answering FindIndexByID, which is
// what loading a file with duplicate records needs.
func (t *Table[T]) Add(id string, r T) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.add(id, r)
}

func (t *Table[T]) add(id string, r T) int {
	index := len(t.items)
	t.items = append(t.items, r)
	if _, ok := t.ids[id]; !ok {
		t.ids[id] = index
	}
	t.log.Debug("style record added",
		zap.String("table", t.name),
		zap.Int("index", index),
		zap.String("id", id))
	return index
}

// GetOrInsert returns the index of a record equal to r, appending r first if
// no such record exists.
func (t *Table[T]) GetOrInsert(r T) int {
	id := r.canonicalID()
	t.mu.Lock()
	defer t.mu.Unlock()
	if index, ok := t.ids[id]; ok {
		return index
	}
	return t.add(id, r)
}

// Get returns a copy of the record at index.
func (t *Table[T]) Get(index int) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if index < 0 || index >= len(t.items) {
		var zero T
		return zero, NewLookupError(t.name, index, len(t.items))
	}
	return t.items[index], nil
}

// at is Get for indices that were validated on load, falling back to record
// 0 like an unset reference does.
func (t *Table[T]) at(index int) T {
	r, err := t.Get(index)
	if err != nil {
		r, _ = t.Get(0)
	}
	return r
}

// All returns a copy of the records in index order.
func (t *Table[T]) All() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, len(t.items))
	copy(out, t.items)
	return out
}

// ResolveMutation copies the record at cur, applies change to the copy and
// interns the result.  The record at cur is never modified; when change fails
// the table is left as it was.
func (t *Table[T]) ResolveMutation(cur int, change func(*T) error) (int, error) {
	r, err := t.Get(cur)
	if err != nil {
		return cur, err
	}
	if err := change(&r); err != nil {
		return cur, err
	}
	return t.GetOrInsert(r), nil
}
