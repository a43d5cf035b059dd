package xlsxstyle

import (
	"sync"

	"go.uber.org/zap"
)

// Excel styles can reference number formats that are built-in, all of which
// have an id less than 164.
const builtinNumFmtsCount = 163

const firstCustomNumFmtID = builtinNumFmtsCount + 1

// builtInNumFmt is the fixed table of built-in number formats.  Ids missing
// here are locale dependent and are only known through a numFmt element.
var builtInNumFmt = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0",
	49: "@",
}

var builtInNumFmtInv = make(map[string]int, len(builtInNumFmt))

func init() {
	for k, v := range builtInNumFmt {
		builtInNumFmtInv[v] = k
	}
}

// BuiltInFormatCode returns the format code of a built-in number format id.
func BuiltInFormatCode(id int) (string, bool) {
	code, ok := builtInNumFmt[id]
	return code, ok
}

// BuiltInFormatID returns the id of a built-in number format code.
func BuiltInFormatID(code string) (int, bool) {
	id, ok := builtInNumFmtInv[code]
	return id, ok
}

// NumFmt is a record of the number format table.
type NumFmt struct {
	ID   int
	Code string
}

// BuiltIn reports whether the format is one of the fixed built-in formats.
func (n NumFmt) BuiltIn() bool {
	return n.ID < firstCustomNumFmtID
}

// The format code is the identity of a number format.
func (n NumFmt) canonicalID() string {
	return n.Code
}

// NumFmtTable interns number formats by format code.  It is seeded with the
// built-in formats; custom formats get ids from 164 upwards.
type NumFmtTable struct {
	*Table[NumFmt]

	idMu   sync.RWMutex
	byID   map[int]int
	nextID int
}

func newNumFmtTable(log *zap.Logger) *NumFmtTable {
	t := &NumFmtTable{
		Table:  newTable[NumFmt]("numFmts", log),
		byID:   make(map[int]int),
		nextID: firstCustomNumFmtID,
	}
	for id := 0; id < firstCustomNumFmtID; id++ {
		if code, ok := builtInNumFmt[id]; ok {
			t.add(NumFmt{ID: id, Code: code})
		}
	}
	return t
}

// add must be called with idMu held.
func (t *NumFmtTable) add(n NumFmt) int {
	index := t.Add(n.canonicalID(), n)
	t.byID[n.ID] = index
	if n.ID >= t.nextID {
		t.nextID = n.ID + 1
	}
	return index
}

// load registers a numFmt element read from a file.  A file may redefine a
// built-in id (locale specific formats); the file's code then wins.
func (t *NumFmtTable) load(n NumFmt) {
	t.idMu.Lock()
	t.add(n)
	t.idMu.Unlock()
}

// ByID returns the format with the given numFmtId.
func (t *NumFmtTable) ByID(id int) (NumFmt, bool) {
	t.idMu.RLock()
	index, ok := t.byID[id]
	t.idMu.RUnlock()
	if !ok {
		return NumFmt{}, false
	}
	n, err := t.Get(index)
	return n, err == nil
}

// GetOrInsert returns the numFmtId of code, allocating a custom id when the
// code is not known yet.  A record whose id a file has since redefined no
// longer answers for its code.
func (t *NumFmtTable) GetOrInsert(code string) int {
	t.idMu.Lock()
	defer t.idMu.Unlock()
	if index, ok := t.FindIndexByID(code); ok {
		if n, err := t.Get(index); err == nil && t.byID[n.ID] == index {
			return n.ID
		}
		for i, n := range t.All() {
			if n.Code == code && t.byID[n.ID] == i {
				return n.ID
			}
		}
	}
	id := t.nextID
	t.add(NumFmt{ID: id, Code: code})
	return id
}

// Custom returns the custom formats in the order they were added.
func (t *NumFmtTable) Custom() []NumFmt {
	var out []NumFmt
	for _, n := range t.All() {
		if !n.BuiltIn() {
			out = append(out, n)
			continue
		}
		if code, ok := builtInNumFmt[n.ID]; !ok || code != n.Code {
			out = append(out, n)
		}
	}
	return out
}
