package xlsxstyle

import (
	"github.com/xenking/xlsxstyle/numfmt"
)

// StyleNumberFormat is a view of the number format of a Style.
type StyleNumberFormat struct {
	style *Style
}

// ID returns the numFmtId of the format.
func (n *StyleNumberFormat) ID() int {
	return n.style.xf().NumFmtID
}

// Format returns the format code.
func (n *StyleNumberFormat) Format() string {
	return n.style.styles.NumberFormatCode(n.ID())
}

// BuiltIn reports whether the format is a built-in one.
func (n *StyleNumberFormat) BuiltIn() bool {
	return n.ID() < firstCustomNumFmtID
}

// SetFormat sets the format code.  A built-in or already used code keeps its
// id; a new code gets the next custom id.
func (n *StyleNumberFormat) SetFormat(code string) error {
	if code == "" {
		return NewRangeError("Format", code, "a format code")
	}
	return n.style.mutate(n.style.styles.numFmtChange(code))
}

// SetID points the style at a known number format id.
func (n *StyleNumberFormat) SetID(id int) error {
	s := n.style.styles
	f, ok := s.NumFmts.ByID(id)
	if !ok {
		return NewLookupError("numFmts", id, s.NumFmts.Len())
	}
	return n.style.mutate(s.numFmtChange(f.Code))
}

// DataType guesses the kind of value the format is meant for.
func (n *StyleNumberFormat) DataType() numfmt.DataType {
	return numfmt.DataTypeOf(n.Format())
}

// FormatValue renders v the way the format displays it.
func (n *StyleNumberFormat) FormatValue(v interface{}) string {
	return numfmt.Format(n.Format(), v)
}
