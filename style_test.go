package xlsxstyle

import (
	"errors"
	"strings"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"
)

// sharedFormatStyles has four cell formats; the last one (index 3) uses an
// 11pt font that is not bold.
const sharedFormatStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<numFmts count="1"><numFmt numFmtId="164" formatCode="0.000"/></numFmts>
<fonts count="2">
<font><sz val="11"/><color theme="1"/><name val="Calibri"/><family val="2"/><scheme val="minor"/></font>
<font><sz val="11"/><color rgb="FF9C0006"/><name val="Calibri"/><family val="2"/></font>
</fonts>
<fills count="3">
<fill><patternFill patternType="none"/></fill>
<fill><patternFill patternType="gray125"/></fill>
<fill><patternFill patternType="solid"><fgColor rgb="FFFFC7CE"/><bgColor indexed="64"/></patternFill></fill>
</fills>
<borders count="2">
<border><left/><right/><top/><bottom/><diagonal/></border>
<border><left style="thin"><color indexed="64"/></left><right/><top style="thin"><color auto="1"/></top><bottom/><diagonal/></border>
</borders>
<cellStyleXfs count="2">
<xf numFmtId="0" fontId="0" fillId="0" borderId="0"/>
<xf numFmtId="0" fontId="1" fillId="2" borderId="0" applyNumberFormat="0" applyBorder="0"/>
</cellStyleXfs>
<cellXfs count="4">
<xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>
<xf numFmtId="0" fontId="1" fillId="2" borderId="0" xfId="1"/>
<xf numFmtId="14" fontId="0" fillId="0" borderId="0" xfId="0" applyNumberFormat="1"/>
<xf numFmtId="164" fontId="0" fillId="0" borderId="1" xfId="0" applyNumberFormat="1" applyBorder="1"><alignment horizontal="center" wrapText="1"/></xf>
</cellXfs>
<cellStyles count="2">
<cellStyle name="Bad" xfId="1" builtinId="27"/>
<cellStyle name="Normal" xfId="0" builtinId="0"/>
</cellStyles>
</styleSheet>`

func loadSharedFormat(c *qt.C) (*File, *Sheet) {
	f := NewFile()
	c.Assert(f.ReadStyles(strings.NewReader(sharedFormatStyles)), qt.IsNil)
	sh, err := f.AddSheet("Sheet1")
	c.Assert(err, qt.IsNil)
	return f, sh
}

func cell(c *qt.C, sh *Sheet, name string) *Cell {
	cl, err := sh.Cell(name)
	c.Assert(err, qt.IsNil)
	return cl
}

func TestStyleMutation(t *testing.T) {
	c := qt.New(t)

	c.Run("new file", func(c *qt.C) {
		s := NewFile().Styles()
		c.Assert(s.Fonts.Len(), qt.Equals, 1)
		c.Assert(s.Fills.Len(), qt.Equals, 2)
		c.Assert(s.Borders.Len(), qt.Equals, 1)
		c.Assert(s.CellStyleXfs.Len(), qt.Equals, 1)
		c.Assert(s.CellXfs.Len(), qt.Equals, 1)
		c.Assert(s.NamedStyles.Len(), qt.Equals, 1)
	})

	c.Run("bold on a shared format", func(c *qt.C) {
		f, sh := loadSharedFormat(c)
		s := f.Styles()
		a, b := cell(c, sh, "A1"), cell(c, sh, "B1")
		c.Assert(a.SetXfIndex(3), qt.IsNil)
		c.Assert(b.SetXfIndex(3), qt.IsNil)
		fonts, xfs := s.Fonts.Len(), s.CellXfs.Len()
		before := s.CellXfs.at(3)

		c.Assert(a.Style().Font().SetBold(true), qt.IsNil)

		c.Assert(s.Fonts.Len(), qt.Equals, fonts+1)
		c.Assert(s.CellXfs.Len(), qt.Equals, xfs+1)
		c.Assert(a.XfIndex(), qt.Equals, xfs)
		c.Assert(b.XfIndex(), qt.Equals, 3)

		font := s.Fonts.at(fonts)
		c.Assert(font.Bold, qt.IsTrue)
		c.Assert(font.Size, qt.Equals, 11.0)
		c.Assert(s.Fonts.at(0).Bold, qt.IsFalse)

		xf := s.CellXfs.at(xfs)
		c.Assert(xf.FontID, qt.Equals, fonts)
		c.Assert(xf.FillID, qt.Equals, before.FillID)
		c.Assert(xf.BorderID, qt.Equals, before.BorderID)
		c.Assert(xf.NumFmtID, qt.Equals, before.NumFmtID)
		c.Assert(xf.Horizontal, qt.Equals, HorizontalCenter)
		c.Assert(s.CellXfs.at(3), qt.DeepEquals, before)

		c.Assert(b.Style().Font().Bold(), qt.IsFalse)
		c.Assert(a.Style().Font().Bold(), qt.IsTrue)
	})

	c.Run("convergence", func(c *qt.C) {
		f, sh := loadSharedFormat(c)
		s := f.Styles()
		a, b := cell(c, sh, "A1"), cell(c, sh, "A2")
		c.Assert(a.SetXfIndex(3), qt.IsNil)
		c.Assert(b.SetXfIndex(3), qt.IsNil)
		c.Assert(a.Style().Font().SetBold(true), qt.IsNil)
		c.Assert(b.Style().Font().SetBold(true), qt.IsNil)
		c.Assert(a.XfIndex(), qt.Equals, b.XfIndex())

		// setting it back lands on the original format
		c.Assert(a.Style().Font().SetBold(false), qt.IsNil)
		c.Assert(a.XfIndex(), qt.Equals, 3)
		c.Assert(s.CellXfs.Len(), qt.Equals, 5)
	})

	c.Run("convergence from different formats", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		a, b := cell(c, sh, "A1"), cell(c, sh, "B2")
		c.Assert(a.Style().SetWrapText(true), qt.IsNil)
		c.Assert(b.Style().Font().SetItalic(true), qt.IsNil)
		c.Assert(a.XfIndex(), qt.Not(qt.Equals), b.XfIndex())
		c.Assert(a.Style().Font().SetItalic(true), qt.IsNil)
		c.Assert(b.Style().SetWrapText(true), qt.IsNil)
		c.Assert(a.XfIndex(), qt.Equals, b.XfIndex())
	})

	c.Run("unstyled cells point at format 0", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		cl := cell(c, sh, "Z99")
		c.Assert(cl.XfIndex(), qt.Equals, 0)
		c.Assert(cl.Style().Font().Name(), qt.Equals, "Calibri")
		c.Assert(cl.Style().NumberFormat().Format(), qt.Equals, "General")
		c.Assert(cl.Style().StyleName(), qt.Equals, "Normal")
		c.Assert(sh.StyledCells(), qt.HasLen, 0)
	})

	c.Run("SetXfIndex checks the table", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		err := cell(c, sh, "A1").SetXfIndex(7)
		var lookup *LookupError
		c.Assert(errors.As(err, &lookup), qt.IsTrue)
		c.Assert(lookup.Table, qt.Equals, "cellXfs")
	})
}

func TestStyleFont(t *testing.T) {
	c := qt.New(t)

	c.Run("name clears the scheme", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		font := cell(c, sh, "A1").Style().Font()
		c.Assert(font.Scheme(), qt.Equals, "minor")
		c.Assert(font.SetName("Arial"), qt.IsNil)
		c.Assert(font.Name(), qt.Equals, "Arial")
		c.Assert(font.Scheme(), qt.Equals, "")
		c.Assert(font.Size(), qt.Equals, 11.0)
	})

	c.Run("colour resolves against the file theme", func(c *qt.C) {
		theme := DefaultTheme()
		c.Assert(theme.SetColor(ThemeAccent1, "00FF00"), qt.IsNil)
		f := NewFile(WithTheme(theme))
		sh, _ := f.AddSheet("S")
		col := cell(c, sh, "A1").Style().Font().Color()
		c.Assert(col.Resolve(), qt.Equals, "#FF000000")
		c.Assert(col.SetTheme(ThemeAccent1, 0), qt.IsNil)
		c.Assert(col.Resolve(), qt.Equals, "#FF00FF00")
		slot, ok := col.Theme()
		c.Assert(ok, qt.IsTrue)
		c.Assert(slot, qt.Equals, ThemeAccent1)
	})
}

func TestStyleBoundaries(t *testing.T) {
	c := qt.New(t)
	f, sh := loadSharedFormat(c)
	s := f.Styles()
	a := cell(c, sh, "C3")
	c.Assert(a.SetXfIndex(3), qt.IsNil)

	assertRange := func(c *qt.C, err error) {
		var rerr *RangeError
		c.Assert(errors.As(err, &rerr), qt.IsTrue, qt.Commentf("%v", err))
	}
	tables := func() [5]int {
		return [5]int{s.Fonts.Len(), s.Fills.Len(), s.Borders.Len(), s.CellXfs.Len(), s.NumFmts.Len()}
	}
	before := tables()

	st := a.Style()
	assertRange(c, st.SetIndent(-1))
	assertRange(c, st.SetIndent(251))
	assertRange(c, st.SetTextRotation(181))
	assertRange(c, st.SetTextRotation(-1))
	assertRange(c, st.Font().Color().SetTint(1.5))
	assertRange(c, st.Font().Color().SetIndexed(66))
	assertRange(c, st.Font().SetSize(0))
	assertRange(c, st.Font().SetFamily(15))
	assertRange(c, st.Fill().Gradient().SetTop(1.2))
	assertRange(c, st.Fill().Gradient().SetLeft(-0.1))
	assertRange(c, st.SetHorizontalAlignment("sideways"))
	assertRange(c, st.NumberFormat().SetFormat(""))

	c.Assert(tables(), qt.Equals, before)
	c.Assert(a.XfIndex(), qt.Equals, 3)
	c.Assert(st.Indent(), qt.Equals, 0)

	c.Assert(st.SetIndent(250), qt.IsNil)
	c.Assert(st.Indent(), qt.Equals, 250)
	c.Assert(st.SetTextRotation(255), qt.IsNil)
	c.Assert(st.TextRotation(), qt.Equals, 255)
}

func TestStyleBorder(t *testing.T) {
	c := qt.New(t)

	c.Run("colour needs a line style", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		a := cell(c, sh, "A1")
		borders := f.Styles().Borders.Len()

		err := a.Style().Border().Top().Color().SetRGB("FF0000")
		var inv *InvalidOperationError
		c.Assert(errors.As(err, &inv), qt.IsTrue)
		c.Assert(f.Styles().Borders.Len(), qt.Equals, borders)
		c.Assert(a.XfIndex(), qt.Equals, 0)

		c.Assert(a.Style().Border().Top().SetStyle(BorderThin), qt.IsNil)
		c.Assert(a.Style().Border().Top().Color().SetRGB("FF0000"), qt.IsNil)
		c.Assert(a.Style().Border().Top().Style(), qt.Equals, BorderThin)
		c.Assert(a.Style().Border().Top().Color().Resolve(), qt.Equals, "#FFFF0000")
		c.Assert(a.Style().Border().Bottom().Style(), qt.Equals, BorderNone)
	})

	c.Run("loaded border", func(c *qt.C) {
		_, sh := loadSharedFormat(c)
		a := cell(c, sh, "A1")
		c.Assert(a.SetXfIndex(3), qt.IsNil)
		b := a.Style().Border()
		c.Assert(b.Left().Style(), qt.Equals, BorderThin)
		c.Assert(b.Left().Color().Resolve(), qt.Equals, "#FF000000")
		c.Assert(b.Top().Color().Auto(), qt.IsTrue)
		c.Assert(b.Top().Color().Resolve(), qt.Equals, "#FF000000")
	})

	c.Run("around", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		b := cell(c, sh, "A1").Style().Border()
		c.Assert(b.Around(BorderMedium, "00B050"), qt.IsNil)
		for _, item := range []*StyleBorderItem{b.Left(), b.Right(), b.Top(), b.Bottom()} {
			c.Assert(item.Style(), qt.Equals, BorderMedium)
			c.Assert(item.Color().RGB(), qt.Equals, "FF00B050")
		}
		c.Assert(b.Diagonal().Style(), qt.Equals, BorderNone)
		c.Assert(b.SetDiagonalUp(true), qt.IsNil)
		c.Assert(b.DiagonalUp(), qt.IsTrue)
	})
}

func TestStyleFill(t *testing.T) {
	c := qt.New(t)

	c.Run("pattern colour needs a pattern", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		fill := cell(c, sh, "A1").Style().Fill()
		err := fill.PatternColor().SetRGB("FFFF00")
		var inv *InvalidOperationError
		c.Assert(errors.As(err, &inv), qt.IsTrue)

		c.Assert(fill.SetPatternType(PatternSolid), qt.IsNil)
		c.Assert(fill.PatternColor().SetRGB("FFFF00"), qt.IsNil)
		c.Assert(fill.PatternColor().Resolve(), qt.Equals, "#FFFFFF00")
		c.Assert(fill.IsGradient(), qt.IsFalse)
	})

	c.Run("gradient transitions", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		fill := cell(c, sh, "A1").Style().Fill()
		g := fill.Gradient()

		err := g.Color1().SetRGB("FF0000")
		var inv *InvalidOperationError
		c.Assert(errors.As(err, &inv), qt.IsTrue)

		c.Assert(g.SetType(GradientPath), qt.IsNil)
		c.Assert(fill.IsGradient(), qt.IsTrue)
		c.Assert(g.SetTop(0.5), qt.IsNil)
		c.Assert(g.SetBottom(0.5), qt.IsNil)
		c.Assert(g.Color1().SetTheme(ThemeAccent1, 0), qt.IsNil)
		c.Assert(g.Color2().SetRGB("FFFFFF"), qt.IsNil)
		c.Assert(g.Top(), qt.Equals, 0.5)
		c.Assert(g.Color1().Resolve(), qt.Equals, "#FF4472C4")
		c.Assert(fill.PatternType(), qt.Equals, PatternNone)

		c.Assert(fill.SetPatternType(PatternDarkGray), qt.IsNil)
		c.Assert(fill.IsGradient(), qt.IsFalse)
		c.Assert(g.Type(), qt.Equals, GradientType(""))
		c.Assert(g.Top(), qt.Equals, 0.0)
	})

	c.Run("new gradient stops are automatic", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		a := cell(c, sh, "A1")
		g := a.Style().Fill().Gradient()
		c.Assert(g.SetDegree(45), qt.IsNil)
		c.Assert(g.Color1().Auto(), qt.IsTrue)
		c.Assert(g.Color2().Resolve(), qt.Equals, "#FFFFFFFF")

		fills, xf := f.Styles().Fills.Len(), a.XfIndex()
		err := g.Color1().SetTint(0.3)
		var inv *InvalidOperationError
		c.Assert(errors.As(err, &inv), qt.IsTrue)
		c.Assert(f.Styles().Fills.Len(), qt.Equals, fills)
		c.Assert(a.XfIndex(), qt.Equals, xf)

		c.Assert(g.Color1().SetTheme(ThemeAccent1, 0), qt.IsNil)
		c.Assert(g.Color1().SetTint(0.4), qt.IsNil)
		c.Assert(g.Color1().Resolve(), qt.Equals, "#FF8FAADC")
	})
}

func TestStyleNumberFormat(t *testing.T) {
	c := qt.New(t)
	f, sh := loadSharedFormat(c)
	a := cell(c, sh, "A1")
	nf := a.Style().NumberFormat()

	c.Assert(nf.SetFormat("0.00"), qt.IsNil)
	c.Assert(nf.ID(), qt.Equals, 2)
	c.Assert(nf.BuiltIn(), qt.IsTrue)

	c.Assert(nf.SetFormat("0.000"), qt.IsNil)
	c.Assert(nf.ID(), qt.Equals, 164)

	c.Assert(nf.SetFormat("#,##0.0000"), qt.IsNil)
	c.Assert(nf.ID(), qt.Equals, 165)
	c.Assert(nf.BuiltIn(), qt.IsFalse)
	c.Assert(nf.FormatValue(1234.5), qt.Equals, "1,234.5000")

	c.Assert(nf.SetID(14), qt.IsNil)
	c.Assert(nf.Format(), qt.Equals, "mm-dd-yy")
	c.Assert(nf.DataType().String(), qt.Equals, "DateTime")

	err := nf.SetID(300)
	var lookup *LookupError
	c.Assert(errors.As(err, &lookup), qt.IsTrue)
	c.Assert(f.Styles().NumberFormatCode(300), qt.Equals, "General")

	// a stylesheet that redefines a built-in id
	g := NewFile()
	g.Styles().NumFmts.load(NumFmt{ID: 14, Code: "dd/mm/yyyy"})
	gs, _ := g.AddSheet("S")
	nf = cell(c, gs, "A1").Style().NumberFormat()
	c.Assert(nf.SetFormat("mm-dd-yy"), qt.IsNil)
	c.Assert(nf.ID(), qt.Equals, 164)
	c.Assert(nf.Format(), qt.Equals, "mm-dd-yy")
	c.Assert(nf.SetID(14), qt.IsNil)
	c.Assert(nf.Format(), qt.Equals, "dd/mm/yyyy")
}

func TestStyleRange(t *testing.T) {
	c := qt.New(t)

	c.Run("broadcast", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		c.Assert(cell(c, sh, "B2").Style().Font().SetItalic(true), qt.IsNil)

		r, err := sh.Range("C3:A1")
		c.Assert(err, qt.IsNil)
		c.Assert(r.String(), qt.Equals, "A1:C3")
		c.Assert(r.Cells(), qt.HasLen, 9)
		c.Assert(r.Style().SetHorizontalAlignment(HorizontalRight), qt.IsNil)

		for _, cl := range r.Cells() {
			c.Assert(cl.Style().HorizontalAlignment(), qt.Equals, HorizontalRight, qt.Commentf("%s", cl.Name()))
		}
		c.Assert(cell(c, sh, "B2").Style().Font().Italic(), qt.IsTrue)
		c.Assert(cell(c, sh, "A1").Style().Font().Italic(), qt.IsFalse)
		// two source formats, two results
		c.Assert(f.Styles().CellXfs.Len(), qt.Equals, 4)
	})

	c.Run("rejected write repoints nothing", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		c.Assert(cell(c, sh, "A1").Style().Border().Left().SetStyle(BorderThin), qt.IsNil)
		r, err := sh.Range("A1:A2")
		c.Assert(err, qt.IsNil)
		before := []int{cell(c, sh, "A1").XfIndex(), cell(c, sh, "A2").XfIndex()}

		// A2 has no left line, so the second cell fails
		err = r.Style().Border().Left().Color().SetRGB("00FF00")
		c.Assert(err, qt.Not(qt.IsNil))
		c.Assert([]int{cell(c, sh, "A1").XfIndex(), cell(c, sh, "A2").XfIndex()}, qt.DeepEquals, before)
	})

	c.Run("invalid range", func(c *qt.C) {
		sh, _ := NewFile().AddSheet("S")
		_, err := sh.Range("A1:B2:C3")
		c.Assert(err, qt.Not(qt.IsNil))
		_, err = sh.Range("1A")
		c.Assert(err, qt.Not(qt.IsNil))
	})
}

func TestNamedStyles(t *testing.T) {
	c := qt.New(t)

	c.Run("Normal drives the default sizes", func(c *qt.C) {
		f := NewFile()
		c.Assert(f.DefaultRowHeight(), qt.Equals, 15.0)
		c.Assert(f.DefaultColumnWidth(), qt.Equals, 8.7109375)

		normal, err := f.NamedStyle("Normal")
		c.Assert(err, qt.IsNil)
		c.Assert(normal.Font().SetSize(22), qt.IsNil)
		c.Assert(f.DefaultRowHeight(), qt.Equals, 30.0)
		c.Assert(f.DefaultColumnWidth(), qt.Equals, 8.35546875)
		c.Assert(normal.Font().Size(), qt.Equals, 22.0)
	})

	c.Run("other named styles leave the sizes alone", func(c *qt.C) {
		f := NewFile()
		heading, err := f.CreateNamedStyle("Heading", "")
		c.Assert(err, qt.IsNil)
		c.Assert(heading.Font().SetSize(18), qt.IsNil)
		c.Assert(f.DefaultRowHeight(), qt.Equals, 15.0)

		normal, _ := f.NamedStyle("Normal")
		c.Assert(normal.Font().Size(), qt.Equals, 11.0)
		c.Assert(heading.StyleName(), qt.Equals, "Heading")
	})

	c.Run("SetStyleName", func(c *qt.C) {
		f, sh := loadSharedFormat(c)
		a := cell(c, sh, "D4")
		c.Assert(a.Style().SetStyleName("Bad"), qt.IsNil)
		c.Assert(a.Style().StyleName(), qt.Equals, "Bad")
		c.Assert(a.Style().Font().Color().RGB(), qt.Equals, "FF9C0006")
		c.Assert(a.Style().Fill().PatternColor().RGB(), qt.Equals, "FFFFC7CE")
		c.Assert(a.XfIndex(), qt.Equals, 1)

		err := a.Style().SetStyleName("Missing")
		c.Assert(err, qt.Not(qt.IsNil))

		bad, err := f.NamedStyle("Bad")
		c.Assert(err, qt.IsNil)
		err = bad.SetStyleName("Normal")
		var inv *InvalidOperationError
		c.Assert(errors.As(err, &inv), qt.IsTrue)
	})

	c.Run("duplicate names", func(c *qt.C) {
		f := NewFile()
		_, err := f.CreateNamedStyle("Normal", "")
		c.Assert(err, qt.Not(qt.IsNil))
		_, err = f.CreateNamedStyle("X", "Nope")
		c.Assert(err, qt.Not(qt.IsNil))
		c.Assert(f.NamedStyles(), qt.HasLen, 1)
	})
}

func TestConcurrentStyleWrites(t *testing.T) {
	c := qt.New(t)
	f := NewFile()
	sh, _ := f.AddSheet("S")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(row int) {
			defer wg.Done()
			cl, err := sh.CellAt(1, row+1)
			if err != nil {
				t.Error(err)
				return
			}
			if err := cl.Style().Font().SetBold(true); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	c.Assert(f.Styles().Fonts.Len(), qt.Equals, 2)
	c.Assert(f.Styles().CellXfs.Len(), qt.Equals, 2)
	c.Assert(sh.StyledCells(), qt.HasLen, 20)
}
