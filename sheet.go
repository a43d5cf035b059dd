package xlsxstyle

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// maxRangeCells bounds the number of cells a Range may address.
const maxRangeCells = 1 << 20

// CellRef is a 1-based cell coordinate.
type CellRef struct {
	Col int
	Row int
}

// ParseCellRef parses an A1 style reference; "$" markers are accepted.
func ParseCellRef(name string) (CellRef, error) {
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(name, "$", ""))
	if err != nil {
		return CellRef{}, errors.Wrapf(err, "parse cell reference %q", name)
	}
	return CellRef{Col: col, Row: row}, nil
}

func (r CellRef) String() string {
	name, err := excelize.CoordinatesToCellName(r.Col, r.Row)
	if err != nil {
		return ""
	}
	return name
}

// Sheet holds the cell format index of every styled cell.  Unstyled cells
// point at cell format 0.
type Sheet struct {
	Name string

	file  *File
	mu    sync.RWMutex
	cells map[CellRef]int
}

// Cell returns the cell at an A1 style reference.
func (s *Sheet) Cell(name string) (*Cell, error) {
	ref, err := ParseCellRef(name)
	if err != nil {
		return nil, err
	}
	return &Cell{sheet: s, ref: ref}, nil
}

// CellAt returns the cell at a 1-based coordinate.
func (s *Sheet) CellAt(col, row int) (*Cell, error) {
	ref := CellRef{Col: col, Row: row}
	if ref.String() == "" {
		return nil, errors.Errorf("invalid cell coordinates (%d, %d)", col, row)
	}
	return &Cell{sheet: s, ref: ref}, nil
}

// Range returns the rectangle addressed by ref, "A1:C3" or a single cell.
// The corners may be given in any order.
func (s *Sheet) Range(ref string) (*Range, error) {
	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return nil, errors.Errorf("invalid range %q", ref)
	}
	from, err := ParseCellRef(parts[0])
	if err != nil {
		return nil, err
	}
	to := from
	if len(parts) == 2 {
		if to, err = ParseCellRef(parts[1]); err != nil {
			return nil, err
		}
	}
	if from.Col > to.Col {
		from.Col, to.Col = to.Col, from.Col
	}
	if from.Row > to.Row {
		from.Row, to.Row = to.Row, from.Row
	}
	if (to.Col-from.Col+1)*(to.Row-from.Row+1) > maxRangeCells {
		return nil, errors.Errorf("range %q addresses more than %d cells", ref, maxRangeCells)
	}
	return &Range{sheet: s, from: from, to: to}, nil
}

func (s *Sheet) xfIndex(ref CellRef) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cells[ref]
}

func (s *Sheet) setXfIndices(refs []CellRef, indices []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ref := range refs {
		if indices[i] == 0 {
			delete(s.cells, ref)
			continue
		}
		s.cells[ref] = indices[i]
	}
}

func (s *Sheet) styledCells() map[CellRef]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[CellRef]int, len(s.cells))
	for ref, index := range s.cells {
		out[ref] = index
	}
	return out
}

// StyledCells returns the references of the cells that do not use cell
// format 0, sorted by row then column.
func (s *Sheet) StyledCells() []CellRef {
	cells := s.styledCells()
	refs := make([]CellRef, 0, len(cells))
	for ref := range cells {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Row != refs[j].Row {
			return refs[i].Row < refs[j].Row
		}
		return refs[i].Col < refs[j].Col
	})
	return refs
}

// Cell is a single styled position of a sheet.
type Cell struct {
	sheet *Sheet
	ref   CellRef
}

func (c *Cell) Ref() CellRef {
	return c.ref
}

// Name returns the A1 style reference of the cell.
func (c *Cell) Name() string {
	return c.ref.String()
}

// Style returns the style facade of the cell.
func (c *Cell) Style() *Style {
	return newStyle(c.sheet.file.styles, &cellTarget{sheet: c.sheet, refs: []CellRef{c.ref}})
}

// XfIndex returns the index of the cell format the cell points at.
func (c *Cell) XfIndex() int {
	return c.sheet.xfIndex(c.ref)
}

// SetXfIndex points the cell at an existing cell format.
func (c *Cell) SetXfIndex(index int) error {
	xfs := c.sheet.file.styles.CellXfs
	if n := xfs.Len(); index < 0 || index >= n {
		return NewLookupError("cellXfs", index, n)
	}
	c.sheet.setXfIndices([]CellRef{c.ref}, []int{index})
	return nil
}

// Range is a rectangle of cells styled together.
type Range struct {
	sheet    *Sheet
	from, to CellRef
}

func (r *Range) String() string {
	if r.from == r.to {
		return r.from.String()
	}
	return r.from.String() + ":" + r.to.String()
}

func (r *Range) refs() []CellRef {
	refs := make([]CellRef, 0, (r.to.Col-r.from.Col+1)*(r.to.Row-r.from.Row+1))
	for row := r.from.Row; row <= r.to.Row; row++ {
		for col := r.from.Col; col <= r.to.Col; col++ {
			refs = append(refs, CellRef{Col: col, Row: row})
		}
	}
	return refs
}

// Cells returns the cells of the range row by row.
func (r *Range) Cells() []*Cell {
	refs := r.refs()
	cells := make([]*Cell, len(refs))
	for i, ref := range refs {
		cells[i] = &Cell{sheet: r.sheet, ref: ref}
	}
	return cells
}

// Style returns a facade that reads the top-left cell and writes every cell
// of the range.
func (r *Range) Style() *Style {
	return newStyle(r.sheet.file.styles, &cellTarget{sheet: r.sheet, refs: r.refs()})
}

// cellTarget addresses one or more cells of a sheet.  Reads use the first
// cell.
type cellTarget struct {
	sheet *Sheet
	refs  []CellRef
}

func (t *cellTarget) xfs(s *StyleSheet) *XfTable {
	return s.CellXfs
}

func (t *cellTarget) index(s *StyleSheet) int {
	return t.sheet.xfIndex(t.refs[0])
}

func (t *cellTarget) update(s *StyleSheet, change func(*Xf) error) error {
	next := make([]int, len(t.refs))
	// cells sharing an xf share the result
	resolved := make(map[int]int)
	for i, ref := range t.refs {
		cur := t.sheet.xfIndex(ref)
		index, ok := resolved[cur]
		if !ok {
			var err error
			if index, err = s.CellXfs.ResolveMutation(cur, change); err != nil {
				return err
			}
			resolved[cur] = index
		}
		next[i] = index
	}
	t.sheet.setXfIndices(t.refs, next)
	return nil
}

func (t *cellTarget) normal() bool {
	return false
}

// namedStyleTarget addresses a named style.  Its index is the named style's
// cell-style xf.
type namedStyleTarget struct {
	name string
}

func (t *namedStyleTarget) xfs(s *StyleSheet) *XfTable {
	return s.CellStyleXfs
}

func (t *namedStyleTarget) index(s *StyleSheet) int {
	cs, ok := s.NamedStyles.Get(t.name)
	if !ok {
		return 0
	}
	return cs.XfID
}

func (t *namedStyleTarget) update(s *StyleSheet, change func(*Xf) error) error {
	cs, ok := s.NamedStyles.Get(t.name)
	if !ok {
		return NewInvalidOperationError("NamedStyle", "no named style called "+t.name)
	}
	index, err := s.CellStyleXfs.ResolveMutation(cs.XfID, change)
	if err != nil {
		return err
	}
	return s.NamedStyles.setXfID(t.name, index)
}

func (t *namedStyleTarget) normal() bool {
	return t.name == normalStyleName
}
