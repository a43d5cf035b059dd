package xlsxstyle

import (
	"go.uber.org/zap"
)

// styleTarget is the position a Style reads from and writes to: a cell, a
// range of cells or a named style.
type styleTarget interface {
	// xfs is the table the target's index points into.
	xfs(s *StyleSheet) *XfTable
	// index is the xf index reads resolve against.
	index(s *StyleSheet) int
	// update resolves change against every index the target holds and
	// repoints them.  Nothing is repointed when change fails for any of them.
	update(s *StyleSheet, change func(*Xf) error) error
	// normal reports whether the target is the Normal named style.
	normal() bool
}

// Style is a view of the formatting of a cell, a range or a named style.  It
// holds no formatting itself: reads go to the shared tables and writes
// repoint the position at an interned xf, so cells that shared an xf before
// the write keep theirs.
type Style struct {
	styles *StyleSheet
	target styleTarget
}

func newStyle(styles *StyleSheet, target styleTarget) *Style {
	return &Style{styles: styles, target: target}
}

func (st *Style) xf() Xf {
	return st.target.xfs(st.styles).at(st.target.index(st.styles))
}

// XfIndex returns the index of the xf the position currently points at.
func (st *Style) XfIndex() int {
	return st.target.index(st.styles)
}

// mutate runs the whole copy-on-write cascade for one write under the
// stylesheet lock.
func (st *Style) mutate(change func(*Xf) error) error {
	s := st.styles
	s.mu.Lock()
	err := st.target.update(s, change)
	s.mu.Unlock()
	if err != nil {
		s.log.Debug("style change rejected", zap.Error(err))
		return err
	}
	if st.target.normal() && s.normalChanged != nil {
		s.normalChanged()
	}
	return nil
}

func (s *StyleSheet) fontChange(change func(*Font) error) func(*Xf) error {
	return func(xf *Xf) error {
		id, err := s.Fonts.ResolveMutation(xf.FontID, change)
		if err != nil {
			return err
		}
		xf.FontID = id
		xf.ApplyFont = boolPtr(true)
		return nil
	}
}

func (s *StyleSheet) fillChange(change func(*Fill) error) func(*Xf) error {
	return func(xf *Xf) error {
		id, err := s.Fills.ResolveMutation(xf.FillID, change)
		if err != nil {
			return err
		}
		xf.FillID = id
		xf.ApplyFill = boolPtr(true)
		return nil
	}
}

func (s *StyleSheet) borderChange(change func(*Border) error) func(*Xf) error {
	return func(xf *Xf) error {
		id, err := s.Borders.ResolveMutation(xf.BorderID, change)
		if err != nil {
			return err
		}
		xf.BorderID = id
		xf.ApplyBorder = boolPtr(true)
		return nil
	}
}

func (s *StyleSheet) numFmtChange(code string) func(*Xf) error {
	return func(xf *Xf) error {
		xf.NumFmtID = s.NumFmts.GetOrInsert(code)
		xf.ApplyNumberFormat = boolPtr(true)
		return nil
	}
}

func alignmentChange(change func(*Xf) error) func(*Xf) error {
	return func(xf *Xf) error {
		if err := change(xf); err != nil {
			return err
		}
		xf.ApplyAlignment = boolPtr(true)
		return nil
	}
}

func protectionChange(change func(*Xf)) func(*Xf) error {
	return func(xf *Xf) error {
		change(xf)
		xf.ApplyProtection = boolPtr(true)
		return nil
	}
}

// Font returns the font of the style.
func (st *Style) Font() *StyleFont {
	return &StyleFont{style: st}
}

// Fill returns the fill of the style.
func (st *Style) Fill() *StyleFill {
	return &StyleFill{style: st}
}

// Border returns the border of the style.
func (st *Style) Border() *StyleBorder {
	return &StyleBorder{style: st}
}

// NumberFormat returns the number format of the style.
func (st *Style) NumberFormat() *StyleNumberFormat {
	return &StyleNumberFormat{style: st}
}

// HorizontalAlignment returns the horizontal alignment.
func (st *Style) HorizontalAlignment() HorizontalAlignment {
	return st.xf().Horizontal
}

// SetHorizontalAlignment sets the horizontal alignment.
func (st *Style) SetHorizontalAlignment(h HorizontalAlignment) error {
	switch h {
	case HorizontalGeneral, HorizontalLeft, HorizontalCenter, HorizontalRight, HorizontalFill,
		HorizontalJustify, HorizontalCenterContinuous, HorizontalDistributed:
	default:
		return NewRangeError("HorizontalAlignment", string(h), "a horizontal alignment")
	}
	return st.mutate(alignmentChange(func(xf *Xf) error {
		xf.Horizontal = h
		return nil
	}))
}

// VerticalAlignment returns the vertical alignment.
func (st *Style) VerticalAlignment() VerticalAlignment {
	return st.xf().Vertical
}

// SetVerticalAlignment sets the vertical alignment.
func (st *Style) SetVerticalAlignment(v VerticalAlignment) error {
	switch v {
	case VerticalBottom, VerticalTop, VerticalCenter, VerticalJustify, VerticalDistributed:
	default:
		return NewRangeError("VerticalAlignment", string(v), "a vertical alignment")
	}
	return st.mutate(alignmentChange(func(xf *Xf) error {
		xf.Vertical = v
		return nil
	}))
}

// WrapText reports whether text wraps in the cell.
func (st *Style) WrapText() bool {
	return st.xf().WrapText
}

func (st *Style) SetWrapText(v bool) error {
	return st.mutate(alignmentChange(func(xf *Xf) error {
		xf.WrapText = v
		return nil
	}))
}

// ShrinkToFit reports whether text is shrunk to the column width.
func (st *Style) ShrinkToFit() bool {
	return st.xf().ShrinkToFit
}

func (st *Style) SetShrinkToFit(v bool) error {
	return st.mutate(alignmentChange(func(xf *Xf) error {
		xf.ShrinkToFit = v
		return nil
	}))
}

// Indent returns the indent level.
func (st *Style) Indent() int {
	return st.xf().Indent
}

// SetIndent sets the indent level, 0 to 250.
func (st *Style) SetIndent(v int) error {
	if err := checkIndent(v); err != nil {
		return err
	}
	return st.mutate(alignmentChange(func(xf *Xf) error {
		xf.Indent = v
		return nil
	}))
}

// TextRotation returns the text rotation in degrees; 255 is vertical text.
func (st *Style) TextRotation() int {
	return st.xf().TextRotation
}

// SetTextRotation sets the text rotation, 0 to 180 or 255.
func (st *Style) SetTextRotation(v int) error {
	if err := checkTextRotation(v); err != nil {
		return err
	}
	return st.mutate(alignmentChange(func(xf *Xf) error {
		xf.TextRotation = v
		return nil
	}))
}

func (st *Style) ReadingOrder() ReadingOrder {
	return st.xf().ReadingOrder
}

func (st *Style) SetReadingOrder(v ReadingOrder) error {
	if v < ReadingOrderContext || v > ReadingOrderRightToLeft {
		return NewRangeError("ReadingOrder", int(v), "0..2")
	}
	return st.mutate(alignmentChange(func(xf *Xf) error {
		xf.ReadingOrder = v
		return nil
	}))
}

func (st *Style) JustifyLastLine() bool {
	return st.xf().JustifyLastLine
}

func (st *Style) SetJustifyLastLine(v bool) error {
	return st.mutate(alignmentChange(func(xf *Xf) error {
		xf.JustifyLastLine = v
		return nil
	}))
}

// QuotePrefix reports whether the cell text is shown as entered.
func (st *Style) QuotePrefix() bool {
	return st.xf().QuotePrefix
}

func (st *Style) SetQuotePrefix(v bool) error {
	return st.mutate(func(xf *Xf) error {
		xf.QuotePrefix = v
		return nil
	})
}

// Locked reports whether the cell is locked when the sheet is protected.
func (st *Style) Locked() bool {
	return st.xf().Locked
}

func (st *Style) SetLocked(v bool) error {
	return st.mutate(protectionChange(func(xf *Xf) { xf.Locked = v }))
}

// Hidden reports whether formulas are hidden when the sheet is protected.
func (st *Style) Hidden() bool {
	return st.xf().Hidden
}

func (st *Style) SetHidden(v bool) error {
	return st.mutate(protectionChange(func(xf *Xf) { xf.Hidden = v }))
}

// StyleName returns the name of the named style the position is based on.
func (st *Style) StyleName() string {
	if t, ok := st.target.(*namedStyleTarget); ok {
		return t.name
	}
	xf := st.xf()
	if xf.XfID == nil {
		return normalStyleName
	}
	if name, ok := st.styles.NamedStyles.byXfID(*xf.XfID); ok {
		return name
	}
	return ""
}

// SetStyleName bases the position on the named style: it takes over the
// named style's formatting and keeps a reference to it.
func (st *Style) SetStyleName(name string) error {
	if _, ok := st.target.(*namedStyleTarget); ok {
		return NewInvalidOperationError("SetStyleName", "a named style cannot be based on another one")
	}
	s := st.styles
	cs, ok := s.NamedStyles.Get(name)
	if !ok {
		return NewInvalidOperationError("SetStyleName", "no named style called "+name)
	}
	base, err := s.CellStyleXfs.Get(cs.XfID)
	if err != nil {
		return err
	}
	return st.mutate(func(xf *Xf) error {
		*xf = base
		xf.XfID = intPtr(cs.XfID)
		return nil
	})
}
