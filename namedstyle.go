package xlsxstyle

import (
	"sync"
)

const normalStyleName = "Normal"

// CellStyle is a named style: a user facing preset backed by an xf of the
// cell-style xf table.
type CellStyle struct {
	Name          string
	XfID          int
	BuiltinID     *int
	CustomBuiltin bool
	Hidden        bool
}

// NamedStyles is the table of named styles, keyed by name.  Unlike the record
// tables it is not interned: a named style is a position whose XfID gets
// repointed when its formatting changes.
type NamedStyles struct {
	mu     sync.RWMutex
	styles []CellStyle
	byName map[string]int
}

func newNamedStyles() *NamedStyles {
	return &NamedStyles{byName: make(map[string]int)}
}

// Len returns the number of named styles.
func (n *NamedStyles) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.styles)
}

// Get returns the named style called name.
func (n *NamedStyles) Get(name string) (CellStyle, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	i, ok := n.byName[name]
	if !ok {
		return CellStyle{}, false
	}
	return n.styles[i], true
}

// All returns the named styles in file order.
func (n *NamedStyles) All() []CellStyle {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]CellStyle, len(n.styles))
	copy(out, n.styles)
	return out
}

// add appends a named style; a name that already exists is rejected.
func (n *NamedStyles) add(cs CellStyle) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.byName[cs.Name]; ok {
		return NewInvalidOperationError("AddNamedStyle", "a named style called "+cs.Name+" already exists")
	}
	n.byName[cs.Name] = len(n.styles)
	n.styles = append(n.styles, cs)
	return nil
}

func (n *NamedStyles) setXfID(name string, xfID int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	i, ok := n.byName[name]
	if !ok {
		return NewInvalidOperationError("NamedStyle", "no named style called "+name)
	}
	n.styles[i].XfID = xfID
	return nil
}

// byXfID returns the name of the first named style backed by xfID.
func (n *NamedStyles) byXfID(xfID int) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, cs := range n.styles {
		if cs.XfID == xfID {
			return cs.Name, true
		}
	}
	return "", false
}
