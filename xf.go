package xlsxstyle

import (
	"strconv"
	"strings"
)

// HorizontalAlignment is the horizontal alignment of cell content.
type HorizontalAlignment string

const (
	HorizontalGeneral          HorizontalAlignment = ""
	HorizontalLeft             HorizontalAlignment = "left"
	HorizontalCenter           HorizontalAlignment = "center"
	HorizontalRight            HorizontalAlignment = "right"
	HorizontalFill             HorizontalAlignment = "fill"
	HorizontalJustify          HorizontalAlignment = "justify"
	HorizontalCenterContinuous HorizontalAlignment = "centerContinuous"
	HorizontalDistributed      HorizontalAlignment = "distributed"
)

// VerticalAlignment is the vertical alignment of cell content.
type VerticalAlignment string

const (
	VerticalBottom      VerticalAlignment = ""
	VerticalTop         VerticalAlignment = "top"
	VerticalCenter      VerticalAlignment = "center"
	VerticalJustify     VerticalAlignment = "justify"
	VerticalDistributed VerticalAlignment = "distributed"
)

// ReadingOrder is the reading order of cell content.
type ReadingOrder int

const (
	ReadingOrderContext ReadingOrder = iota
	ReadingOrderLeftToRight
	ReadingOrderRightToLeft
)

const (
	maxIndent            = 250
	maxTextRotation      = 180
	textRotationVertical = 255
)

// Xf is a cell format record: references into the number format, font, fill
// and border tables plus alignment and protection attributes.  XfID links a
// cell format to the cell-style xf of its named style.
//
// The Apply flags only tell a consumer whether the reference is in effect;
// they are written back for fidelity and take no part in identity.
type Xf struct {
	NumFmtID int
	FontID   int
	FillID   int
	BorderID int
	XfID     *int

	Horizontal      HorizontalAlignment
	Vertical        VerticalAlignment
	WrapText        bool
	ShrinkToFit     bool
	Indent          int
	TextRotation    int
	ReadingOrder    ReadingOrder
	JustifyLastLine bool
	QuotePrefix     bool
	Locked          bool
	Hidden          bool

	ApplyNumberFormat *bool
	ApplyFont         *bool
	ApplyFill         *bool
	ApplyBorder       *bool
	ApplyAlignment    *bool
	ApplyProtection   *bool
}

// newXf returns the default cell format: everything at record 0, locked.
func newXf() Xf {
	return Xf{Locked: true}
}

func (xf Xf) canonicalID() string {
	var b strings.Builder
	writeOptInt(&b, xf.XfID)
	for _, v := range []int{xf.NumFmtID, xf.FontID, xf.FillID, xf.BorderID, xf.Indent, xf.TextRotation, int(xf.ReadingOrder)} {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte('|')
	writeText(&b, string(xf.Horizontal))
	b.WriteByte('|')
	writeText(&b, string(xf.Vertical))
	b.WriteByte('|')
	writeBool(&b, xf.WrapText)
	writeBool(&b, xf.ShrinkToFit)
	writeBool(&b, xf.JustifyLastLine)
	writeBool(&b, xf.QuotePrefix)
	writeBool(&b, xf.Locked)
	writeBool(&b, xf.Hidden)
	return b.String()
}

func (xf Xf) hasAlignment() bool {
	return xf.Horizontal != HorizontalGeneral || xf.Vertical != VerticalBottom ||
		xf.WrapText || xf.ShrinkToFit || xf.Indent != 0 || xf.TextRotation != 0 ||
		xf.ReadingOrder != ReadingOrderContext || xf.JustifyLastLine
}

func (xf Xf) hasProtection() bool {
	return !xf.Locked || xf.Hidden
}

func checkIndent(v int) error {
	if v < 0 || v > maxIndent {
		return NewRangeError("Indent", v, "0..250")
	}
	return nil
}

func checkTextRotation(v int) error {
	if (v < 0 || v > maxTextRotation) && v != textRotationVertical {
		return NewRangeError("TextRotation", v, "0..180 or 255")
	}
	return nil
}

// XfTable is the interning table of cell formats.  A stylesheet has two: the
// cell xfs that cells point at and the cell-style xfs of named styles.
type XfTable struct {
	*Table[Xf]
}

// ResolveMutation is the copy-on-write step every style write goes through:
// the xf at cur is copied, change replaces exactly the fields it is about
// (interning sub-records through the other tables as it goes) and the result
// is interned.  The returned index is the one the caller must point at.
func (t *XfTable) ResolveMutation(cur int, change func(*Xf) error) (int, error) {
	return t.Table.ResolveMutation(cur, change)
}
