package xlsxstyle

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/shabbyrobe/xmlwriter"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap"
)

const spreadsheetMLNamespace = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// StyleSheet owns the shared style tables of a workbook.  Cells, ranges and
// named styles hold indices into them; the tables only ever grow.
type StyleSheet struct {
	NumFmts      *NumFmtTable
	Fonts        *Table[Font]
	Fills        *Table[Fill]
	Borders      *Table[Border]
	CellStyleXfs *XfTable
	CellXfs      *XfTable
	NamedStyles  *NamedStyles

	theme         *Theme
	indexedColors []string
	log           *zap.Logger

	// mu serializes whole mutation cascades (sub-record, xf, position).
	mu sync.Mutex

	// normalChanged is called after the Normal named style was modified.
	normalChanged func()
}

func newEmptyStyleSheet(theme *Theme, log *zap.Logger) *StyleSheet {
	if theme == nil {
		theme = DefaultTheme()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &StyleSheet{
		NumFmts:      newNumFmtTable(log),
		Fonts:        newTable[Font]("fonts", log),
		Fills:        newTable[Fill]("fills", log),
		Borders:      newTable[Border]("borders", log),
		CellStyleXfs: &XfTable{newTable[Xf]("cellStyleXfs", log)},
		CellXfs:      &XfTable{newTable[Xf]("cellXfs", log)},
		NamedStyles:  newNamedStyles(),
		theme:        theme,
		log:          log,
	}
}

// NewStyleSheet returns a stylesheet holding the records every workbook
// starts with, using defaultFont as the Normal font.
func NewStyleSheet(defaultFont Font, theme *Theme, log *zap.Logger) *StyleSheet {
	s := newEmptyStyleSheet(theme, log)
	s.reset(defaultFont)
	return s
}

// DefaultFont is the Normal font of a new workbook.
func DefaultFont() Font {
	dark1 := ThemeDark1
	return Font{
		Name:   "Calibri",
		Size:   11,
		Family: intPtr(2),
		Scheme: "minor",
		Color:  Color{Theme: &dark1},
	}
}

func defaultBorder() Border {
	return Border{
		Left:     BorderLine{Exists: true},
		Right:    BorderLine{Exists: true},
		Top:      BorderLine{Exists: true},
		Bottom:   BorderLine{Exists: true},
		Diagonal: BorderLine{Exists: true},
	}
}

// reset seeds the tables that are empty with the records Excel requires at
// index 0 (and the gray125 fill at fill index 1).
func (s *StyleSheet) reset(defaultFont Font) {
	if s.Fonts.Len() == 0 {
		s.Fonts.GetOrInsert(defaultFont)
	}
	if s.Fills.Len() == 0 {
		s.Fills.GetOrInsert(Fill{Pattern: PatternFill{PatternType: PatternNone}})
		s.Fills.GetOrInsert(Fill{Pattern: PatternFill{PatternType: PatternGray125}})
	}
	if s.Borders.Len() == 0 {
		s.Borders.GetOrInsert(defaultBorder())
	}
	if s.CellStyleXfs.Len() == 0 {
		s.CellStyleXfs.GetOrInsert(newXf())
	}
	if s.CellXfs.Len() == 0 {
		xf := newXf()
		xf.XfID = intPtr(0)
		s.CellXfs.GetOrInsert(xf)
	}
	if s.NamedStyles.Len() == 0 {
		_ = s.NamedStyles.add(CellStyle{Name: normalStyleName, XfID: 0, BuiltinID: intPtr(0)})
	}
}

// Theme returns the theme colours resolve against.
func (s *StyleSheet) Theme() *Theme {
	return s.theme
}

// IndexedColors returns the stylesheet's own indexed palette, nil when the
// legacy palette is in use.
func (s *StyleSheet) IndexedColors() []string {
	return s.indexedColors
}

func (s *StyleSheet) resolveColor(c Color, auto ThemeColor) string {
	return c.Resolve(s.theme, s.indexedColors, auto)
}

// NumberFormatCode returns the format code for a numFmtId, "General" when the
// id is unknown.
func (s *StyleSheet) NumberFormatCode(id int) string {
	if n, ok := s.NumFmts.ByID(id); ok {
		return n.Code
	}
	return builtInNumFmt[0]
}

// normalXfID returns the cell-style xf index of the Normal named style.
func (s *StyleSheet) normalXfID() int {
	if cs, ok := s.NamedStyles.Get(normalStyleName); ok {
		return cs.XfID
	}
	return 0
}

// CreateNamedStyle adds a named style whose formatting starts out as that of
// the named style basedOn ("" for Normal).
func (s *StyleSheet) CreateNamedStyle(name, basedOn string) (CellStyle, error) {
	if basedOn == "" {
		basedOn = normalStyleName
	}
	base, ok := s.NamedStyles.Get(basedOn)
	if !ok {
		return CellStyle{}, NewInvalidOperationError("CreateNamedStyle", "no named style called "+basedOn)
	}
	cs := CellStyle{Name: name, XfID: base.XfID}
	if err := s.NamedStyles.add(cs); err != nil {
		return CellStyle{}, err
	}
	s.log.Debug("named style created", zap.String("name", name), zap.String("basedOn", basedOn))
	return cs, nil
}

// xlsxStyleSheet directly maps the styleSheet element in the namespace
// http://schemas.openxmlformats.org/spreadsheetml/2006/main -
// currently I have not checked it for completeness - it does as much
// as I need.
type xlsxStyleSheet struct {
	XMLName xml.Name `xml:"styleSheet"`

	NumFmts struct {
		NumFmt []xlsxNumFmt `xml:"numFmt"`
	} `xml:"numFmts"`
	Fonts struct {
		Font []xlsxFont `xml:"font"`
	} `xml:"fonts"`
	Fills struct {
		Fill []xlsxFill `xml:"fill"`
	} `xml:"fills"`
	Borders struct {
		Border []xlsxBorder `xml:"border"`
	} `xml:"borders"`
	CellStyleXfs struct {
		Xf []xlsxXf `xml:"xf"`
	} `xml:"cellStyleXfs"`
	CellXfs struct {
		Xf []xlsxXf `xml:"xf"`
	} `xml:"cellXfs"`
	CellStyles struct {
		CellStyle []xlsxCellStyle `xml:"cellStyle"`
	} `xml:"cellStyles"`
	Colors struct {
		IndexedColors []struct {
			RGB string `xml:"rgb,attr"`
		} `xml:"indexedColors>rgbColor"`
	} `xml:"colors"`
}

type xlsxNumFmt struct {
	NumFmtId   int    `xml:"numFmtId,attr"`
	FormatCode string `xml:"formatCode,attr"`
}

// xlsxVal directly maps the val element in the namespace
// http://schemas.openxmlformats.org/spreadsheetml/2006/main.
type xlsxVal struct {
	Val *string `xml:"val,attr"`
}

func (v *xlsxVal) bool() bool {
	if v == nil {
		return false
	}
	return v.Val == nil || (*v.Val != "0" && *v.Val != "false")
}

func (v *xlsxVal) str() string {
	if v == nil || v.Val == nil {
		return ""
	}
	return *v.Val
}

func (v *xlsxVal) optInt() *int {
	if v == nil || v.Val == nil {
		return nil
	}
	i, err := strconv.Atoi(*v.Val)
	if err != nil {
		return nil
	}
	return &i
}

type xlsxColor struct {
	Auto    *bool    `xml:"auto,attr"`
	RGB     string   `xml:"rgb,attr"`
	Theme   *int     `xml:"theme,attr"`
	Tint    *float64 `xml:"tint,attr"`
	Indexed *int     `xml:"indexed,attr"`
}

func (c *xlsxColor) color() Color {
	var out Color
	if c == nil {
		return out
	}
	out.Auto = c.Auto != nil && *c.Auto
	if c.Theme != nil {
		t := ThemeColor(*c.Theme)
		out.Theme = &t
	}
	if c.Tint != nil && *c.Tint != 0 {
		out.Tint = floatPtr(*c.Tint)
	}
	out.RGB = strings.ToUpper(c.RGB)
	if c.Indexed != nil {
		out.Indexed = intPtr(*c.Indexed)
	}
	return out
}

type xlsxFont struct {
	B         *xlsxVal   `xml:"b"`
	I         *xlsxVal   `xml:"i"`
	Strike    *xlsxVal   `xml:"strike"`
	U         *xlsxVal   `xml:"u"`
	VertAlign *xlsxVal   `xml:"vertAlign"`
	Sz        *xlsxVal   `xml:"sz"`
	Color     *xlsxColor `xml:"color"`
	Name      *xlsxVal   `xml:"name"`
	Family    *xlsxVal   `xml:"family"`
	Charset   *xlsxVal   `xml:"charset"`
	Scheme    *xlsxVal   `xml:"scheme"`
}

func (x xlsxFont) font() Font {
	f := Font{
		Name:          x.Name.str(),
		Family:        x.Family.optInt(),
		Scheme:        x.Scheme.str(),
		Color:         x.Color.color(),
		Bold:          x.B.bool(),
		Italic:        x.I.bool(),
		Strike:        x.Strike.bool(),
		VerticalAlign: VerticalAlign(x.VertAlign.str()),
		Charset:       x.Charset.optInt(),
	}
	f.Size, _ = strconv.ParseFloat(x.Sz.str(), 64)
	if x.U != nil {
		switch u := x.U.str(); u {
		case "":
			f.Underline = UnderlineSingle
		case "none":
		default:
			f.Underline = UnderlineType(u)
		}
	}
	return f
}

type xlsxFill struct {
	PatternFill *struct {
		PatternType string     `xml:"patternType,attr"`
		FgColor     *xlsxColor `xml:"fgColor"`
		BgColor     *xlsxColor `xml:"bgColor"`
	} `xml:"patternFill"`
	GradientFill *struct {
		Type   string  `xml:"type,attr"`
		Degree float64 `xml:"degree,attr"`
		Left   float64 `xml:"left,attr"`
		Right  float64 `xml:"right,attr"`
		Top    float64 `xml:"top,attr"`
		Bottom float64 `xml:"bottom,attr"`
		Stop   []struct {
			Position float64   `xml:"position,attr"`
			Color    xlsxColor `xml:"color"`
		} `xml:"stop"`
	} `xml:"gradientFill"`
}

func (x xlsxFill) fill() Fill {
	if g := x.GradientFill; g != nil {
		f := Fill{Kind: FillGradient, Gradient: GradientFill{
			Type:   GradientType(g.Type),
			Degree: g.Degree,
			Left:   g.Left,
			Right:  g.Right,
			Top:    g.Top,
			Bottom: g.Bottom,
		}}
		if f.Gradient.Type == "" {
			f.Gradient.Type = GradientLinear
		}
		if len(g.Stop) > 0 {
			f.Gradient.Color1 = g.Stop[0].Color.color()
		}
		if len(g.Stop) > 1 {
			f.Gradient.Color2 = g.Stop[len(g.Stop)-1].Color.color()
		}
		f.Gradient.autoStops()
		return f
	}
	f := Fill{Pattern: PatternFill{PatternType: PatternNone}}
	if p := x.PatternFill; p != nil {
		if p.PatternType != "" {
			f.Pattern.PatternType = PatternType(p.PatternType)
		}
		f.Pattern.FgColor = p.FgColor.color()
		f.Pattern.BgColor = p.BgColor.color()
	}
	return f
}

type xlsxLine struct {
	Style string     `xml:"style,attr"`
	Color *xlsxColor `xml:"color"`
}

func (x *xlsxLine) line() BorderLine {
	if x == nil {
		return BorderLine{}
	}
	return BorderLine{Style: BorderStyle(x.Style), Color: x.Color.color(), Exists: true}
}

type xlsxBorder struct {
	DiagonalUp   bool      `xml:"diagonalUp,attr"`
	DiagonalDown bool      `xml:"diagonalDown,attr"`
	Left         *xlsxLine `xml:"left"`
	Right        *xlsxLine `xml:"right"`
	Top          *xlsxLine `xml:"top"`
	Bottom       *xlsxLine `xml:"bottom"`
	Diagonal     *xlsxLine `xml:"diagonal"`
}

func (x xlsxBorder) border() Border {
	return Border{
		Left:         x.Left.line(),
		Right:        x.Right.line(),
		Top:          x.Top.line(),
		Bottom:       x.Bottom.line(),
		Diagonal:     x.Diagonal.line(),
		DiagonalUp:   x.DiagonalUp,
		DiagonalDown: x.DiagonalDown,
	}
}

type xlsxXf struct {
	NumFmtId          int   `xml:"numFmtId,attr"`
	FontId            int   `xml:"fontId,attr"`
	FillId            int   `xml:"fillId,attr"`
	BorderId          int   `xml:"borderId,attr"`
	XfId              *int  `xml:"xfId,attr"`
	QuotePrefix       bool  `xml:"quotePrefix,attr"`
	ApplyNumberFormat *bool `xml:"applyNumberFormat,attr"`
	ApplyFont         *bool `xml:"applyFont,attr"`
	ApplyFill         *bool `xml:"applyFill,attr"`
	ApplyBorder       *bool `xml:"applyBorder,attr"`
	ApplyAlignment    *bool `xml:"applyAlignment,attr"`
	ApplyProtection   *bool `xml:"applyProtection,attr"`
	Alignment         *struct {
		Horizontal      string `xml:"horizontal,attr"`
		Vertical        string `xml:"vertical,attr"`
		TextRotation    int    `xml:"textRotation,attr"`
		WrapText        bool   `xml:"wrapText,attr"`
		Indent          int    `xml:"indent,attr"`
		JustifyLastLine bool   `xml:"justifyLastLine,attr"`
		ShrinkToFit     bool   `xml:"shrinkToFit,attr"`
		ReadingOrder    int    `xml:"readingOrder,attr"`
	} `xml:"alignment"`
	Protection *struct {
		Locked *bool `xml:"locked,attr"`
		Hidden bool  `xml:"hidden,attr"`
	} `xml:"protection"`
}

func (x xlsxXf) xf() Xf {
	xf := Xf{
		NumFmtID:          x.NumFmtId,
		FontID:            x.FontId,
		FillID:            x.FillId,
		BorderID:          x.BorderId,
		XfID:              x.XfId,
		QuotePrefix:       x.QuotePrefix,
		Locked:            true,
		ApplyNumberFormat: x.ApplyNumberFormat,
		ApplyFont:         x.ApplyFont,
		ApplyFill:         x.ApplyFill,
		ApplyBorder:       x.ApplyBorder,
		ApplyAlignment:    x.ApplyAlignment,
		ApplyProtection:   x.ApplyProtection,
	}
	if a := x.Alignment; a != nil {
		xf.Horizontal = HorizontalAlignment(a.Horizontal)
		if xf.Horizontal == "general" {
			xf.Horizontal = HorizontalGeneral
		}
		xf.Vertical = VerticalAlignment(a.Vertical)
		if xf.Vertical == "bottom" {
			xf.Vertical = VerticalBottom
		}
		xf.TextRotation = a.TextRotation
		xf.WrapText = a.WrapText
		xf.Indent = a.Indent
		xf.JustifyLastLine = a.JustifyLastLine
		xf.ShrinkToFit = a.ShrinkToFit
		xf.ReadingOrder = ReadingOrder(a.ReadingOrder)
	}
	if p := x.Protection; p != nil {
		if p.Locked != nil {
			xf.Locked = *p.Locked
		}
		xf.Hidden = p.Hidden
	}
	return xf
}

type xlsxCellStyle struct {
	Name          string `xml:"name,attr"`
	XfId          int    `xml:"xfId,attr"`
	BuiltinId     *int   `xml:"builtinId,attr"`
	CustomBuiltin bool   `xml:"customBuiltin,attr"`
	Hidden        bool   `xml:"hidden,attr"`
}

// ReadStyleSheet parses a styles part (xl/styles.xml).  Records keep the
// indices they have in the file, duplicates included, so that the indices
// stored in cells stay valid.  Every cross reference is checked.
func ReadStyleSheet(r io.Reader, theme *Theme, log *zap.Logger) (*StyleSheet, error) {
	var x xlsxStyleSheet
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, errors.Wrap(err, "parse styles")
	}
	s := newEmptyStyleSheet(theme, log)
	for _, n := range x.NumFmts.NumFmt {
		s.NumFmts.load(NumFmt{ID: n.NumFmtId, Code: n.FormatCode})
	}
	for _, f := range x.Fonts.Font {
		r := f.font()
		s.Fonts.Add(r.canonicalID(), r)
	}
	for _, f := range x.Fills.Fill {
		r := f.fill()
		s.Fills.Add(r.canonicalID(), r)
	}
	for _, b := range x.Borders.Border {
		r := b.border()
		s.Borders.Add(r.canonicalID(), r)
	}
	for _, xf := range x.CellStyleXfs.Xf {
		r := xf.xf()
		r.XfID = nil
		s.CellStyleXfs.Add(r.canonicalID(), r)
	}
	for _, xf := range x.CellXfs.Xf {
		r := xf.xf()
		s.CellXfs.Add(r.canonicalID(), r)
	}
	for _, cs := range x.CellStyles.CellStyle {
		err := s.NamedStyles.add(CellStyle{
			Name:          cs.Name,
			XfID:          cs.XfId,
			BuiltinID:     cs.BuiltinId,
			CustomBuiltin: cs.CustomBuiltin,
			Hidden:        cs.Hidden,
		})
		if err != nil {
			return nil, err
		}
	}
	for _, c := range x.Colors.IndexedColors {
		s.indexedColors = append(s.indexedColors, strings.ToUpper(c.RGB))
	}
	s.reset(DefaultFont())
	if err := s.validate(); err != nil {
		return nil, err
	}
	s.log.Info("stylesheet loaded",
		zap.Int("fonts", s.Fonts.Len()),
		zap.Int("fills", s.Fills.Len()),
		zap.Int("borders", s.Borders.Len()),
		zap.Int("cellXfs", s.CellXfs.Len()),
		zap.Int("numFmts", len(x.NumFmts.NumFmt)))
	return s, nil
}

func (s *StyleSheet) validate() error {
	check := func(table string, index, length int) error {
		if index < 0 || index >= length {
			return NewLookupError(table, index, length)
		}
		return nil
	}
	fonts, fills, borders, styleXfs := s.Fonts.Len(), s.Fills.Len(), s.Borders.Len(), s.CellStyleXfs.Len()
	for _, t := range []*XfTable{s.CellStyleXfs, s.CellXfs} {
		for _, xf := range t.All() {
			if err := check("fonts", xf.FontID, fonts); err != nil {
				return err
			}
			if err := check("fills", xf.FillID, fills); err != nil {
				return err
			}
			if err := check("borders", xf.BorderID, borders); err != nil {
				return err
			}
			if xf.XfID != nil {
				if err := check("cellStyleXfs", *xf.XfID, styleXfs); err != nil {
					return err
				}
			}
			if _, ok := s.NumFmts.ByID(xf.NumFmtID); !ok && (xf.NumFmtID < 0 || xf.NumFmtID > builtinNumFmtsCount) {
				return NewLookupError("numFmts", xf.NumFmtID, s.NumFmts.Len())
			}
		}
	}
	for _, cs := range s.NamedStyles.All() {
		if err := check("cellStyleXfs", cs.XfID, styleXfs); err != nil {
			return err
		}
	}
	return nil
}

// styleWriter keeps the first error of a sequence of xmlwriter calls.
type styleWriter struct {
	w   *xmlwriter.Writer
	err error
}

func attr(name, value string) xmlwriter.Attr {
	return xmlwriter.Attr{Name: name, Value: value}
}

func boolAttr(name string, v bool) xmlwriter.Attr {
	if v {
		return attr(name, "1")
	}
	return attr(name, "0")
}

func intAttr(name string, v int) xmlwriter.Attr {
	return attr(name, strconv.Itoa(v))
}

func floatAttr(name string, v float64) xmlwriter.Attr {
	return attr(name, strconv.FormatFloat(v, 'g', -1, 64))
}

func (sw *styleWriter) start(name string, attrs ...xmlwriter.Attr) {
	if sw.err != nil {
		return
	}
	if sw.err = sw.w.StartElem(xmlwriter.Elem{Name: name}); sw.err != nil {
		return
	}
	if len(attrs) > 0 {
		sw.err = sw.w.WriteAttr(attrs...)
	}
}

func (sw *styleWriter) end(name string) {
	if sw.err != nil {
		return
	}
	sw.err = sw.w.EndElem(name)
}

func (sw *styleWriter) empty(name string, attrs ...xmlwriter.Attr) {
	sw.start(name, attrs...)
	sw.end(name)
}

func (sw *styleWriter) val(name, v string) {
	sw.empty(name, attr("val", v))
}

func (sw *styleWriter) color(name string, c Color) {
	if !c.IsSet() {
		return
	}
	var attrs []xmlwriter.Attr
	if c.Auto {
		attrs = append(attrs, boolAttr("auto", true))
	}
	if c.Indexed != nil {
		attrs = append(attrs, intAttr("indexed", *c.Indexed))
	}
	if c.RGB != "" {
		attrs = append(attrs, attr("rgb", c.RGB))
	}
	if c.Theme != nil {
		attrs = append(attrs, intAttr("theme", int(*c.Theme)))
	}
	if c.Tint != nil {
		attrs = append(attrs, floatAttr("tint", *c.Tint))
	}
	sw.empty(name, attrs...)
}

func (sw *styleWriter) font(f Font) {
	sw.start("font")
	if f.Bold {
		sw.empty("b")
	}
	if f.Italic {
		sw.empty("i")
	}
	if f.Strike {
		sw.empty("strike")
	}
	switch f.Underline {
	case UnderlineNone:
	case UnderlineSingle:
		sw.empty("u")
	default:
		sw.val("u", string(f.Underline))
	}
	if f.VerticalAlign != VerticalAlignNone {
		sw.val("vertAlign", string(f.VerticalAlign))
	}
	if f.Size > 0 {
		sw.val("sz", strconv.FormatFloat(f.Size, 'g', -1, 64))
	}
	sw.color("color", f.Color)
	if f.Name != "" {
		sw.val("name", f.Name)
	}
	if f.Family != nil {
		sw.val("family", strconv.Itoa(*f.Family))
	}
	if f.Charset != nil {
		sw.val("charset", strconv.Itoa(*f.Charset))
	}
	if f.Scheme != "" {
		sw.val("scheme", f.Scheme)
	}
	sw.end("font")
}

func (sw *styleWriter) fill(f Fill) {
	sw.start("fill")
	if f.Kind == FillGradient {
		g := f.Gradient
		attrs := []xmlwriter.Attr{}
		if g.Type == GradientPath {
			attrs = append(attrs, attr("type", string(g.Type)))
		}
		if g.Degree != 0 {
			attrs = append(attrs, floatAttr("degree", g.Degree))
		}
		for _, a := range []struct {
			name string
			v    float64
		}{{"left", g.Left}, {"right", g.Right}, {"top", g.Top}, {"bottom", g.Bottom}} {
			if a.v != 0 {
				attrs = append(attrs, floatAttr(a.name, a.v))
			}
		}
		sw.start("gradientFill", attrs...)
		for i, c := range []Color{g.Color1, g.Color2} {
			sw.start("stop", intAttr("position", i))
			sw.color("color", c)
			if !c.IsSet() {
				sw.empty("color", boolAttr("auto", true))
			}
			sw.end("stop")
		}
		sw.end("gradientFill")
	} else {
		p := f.Pattern
		sw.start("patternFill", attr("patternType", string(p.PatternType)))
		sw.color("fgColor", p.FgColor)
		sw.color("bgColor", p.BgColor)
		sw.end("patternFill")
	}
	sw.end("fill")
}

// To get borders to work correctly in Excel, you have to always start with an
// empty set of borders; sides that were present are written even when empty.
func (sw *styleWriter) border(b Border) {
	var attrs []xmlwriter.Attr
	if b.DiagonalUp {
		attrs = append(attrs, boolAttr("diagonalUp", true))
	}
	if b.DiagonalDown {
		attrs = append(attrs, boolAttr("diagonalDown", true))
	}
	sw.start("border", attrs...)
	for side := SideLeft; side <= SideDiagonal; side++ {
		l := *b.Line(side)
		if !l.Exists && l.Style == BorderNone {
			continue
		}
		if l.Style == BorderNone {
			sw.empty(side.String())
			continue
		}
		sw.start(side.String(), attr("style", string(l.Style)))
		sw.color("color", l.Color)
		sw.end(side.String())
	}
	sw.end("border")
}

func optBoolAttrs(attrs []xmlwriter.Attr, name string, v *bool) []xmlwriter.Attr {
	if v == nil {
		return attrs
	}
	return append(attrs, boolAttr(name, *v))
}

func (sw *styleWriter) xf(xf Xf, cellXf bool) {
	attrs := []xmlwriter.Attr{
		intAttr("numFmtId", xf.NumFmtID),
		intAttr("fontId", xf.FontID),
		intAttr("fillId", xf.FillID),
		intAttr("borderId", xf.BorderID),
	}
	if cellXf && xf.XfID != nil {
		attrs = append(attrs, intAttr("xfId", *xf.XfID))
	}
	if xf.QuotePrefix {
		attrs = append(attrs, boolAttr("quotePrefix", true))
	}
	attrs = optBoolAttrs(attrs, "applyNumberFormat", xf.ApplyNumberFormat)
	attrs = optBoolAttrs(attrs, "applyFont", xf.ApplyFont)
	attrs = optBoolAttrs(attrs, "applyFill", xf.ApplyFill)
	attrs = optBoolAttrs(attrs, "applyBorder", xf.ApplyBorder)
	attrs = optBoolAttrs(attrs, "applyAlignment", xf.ApplyAlignment)
	attrs = optBoolAttrs(attrs, "applyProtection", xf.ApplyProtection)
	sw.start("xf", attrs...)
	if xf.hasAlignment() {
		var a []xmlwriter.Attr
		if xf.Horizontal != HorizontalGeneral {
			a = append(a, attr("horizontal", string(xf.Horizontal)))
		}
		if xf.Vertical != VerticalBottom {
			a = append(a, attr("vertical", string(xf.Vertical)))
		}
		if xf.TextRotation != 0 {
			a = append(a, intAttr("textRotation", xf.TextRotation))
		}
		if xf.WrapText {
			a = append(a, boolAttr("wrapText", true))
		}
		if xf.Indent != 0 {
			a = append(a, intAttr("indent", xf.Indent))
		}
		if xf.JustifyLastLine {
			a = append(a, boolAttr("justifyLastLine", true))
		}
		if xf.ShrinkToFit {
			a = append(a, boolAttr("shrinkToFit", true))
		}
		if xf.ReadingOrder != ReadingOrderContext {
			a = append(a, intAttr("readingOrder", int(xf.ReadingOrder)))
		}
		sw.empty("alignment", a...)
	}
	if xf.hasProtection() {
		sw.empty("protection", boolAttr("locked", xf.Locked), boolAttr("hidden", xf.Hidden))
	}
	sw.end("xf")
}

func (sw *styleWriter) xfs(name string, xfs []Xf, cellXfs bool) {
	sw.start(name, intAttr("count", len(xfs)))
	for _, xf := range xfs {
		sw.xf(xf, cellXfs)
	}
	sw.end(name)
}

// WriteTo writes the stylesheet as a styles part.  Tables are written in
// index order, so every index held by a cell stays valid.
func (s *StyleSheet) WriteTo(w io.Writer) (int64, error) {
	b := bytebufferpool.Get()
	defer bytebufferpool.Put(b)
	if err := s.marshal(b); err != nil {
		return 0, err
	}
	return b.WriteTo(w)
}

// MarshalBytes returns the stylesheet as a styles part.
func (s *StyleSheet) MarshalBytes() ([]byte, error) {
	b := bytebufferpool.Get()
	defer bytebufferpool.Put(b)
	if err := s.marshal(b); err != nil {
		return nil, err
	}
	return append([]byte(nil), b.B...), nil
}

func (s *StyleSheet) marshal(out io.Writer) error {
	sw := &styleWriter{w: xmlwriter.Open(out)}
	if sw.err = sw.w.StartDoc(xmlwriter.Doc{}); sw.err != nil {
		return errors.Wrap(sw.err, "write styles")
	}
	sw.start("styleSheet", attr("xmlns", spreadsheetMLNamespace))

	if custom := s.NumFmts.Custom(); len(custom) > 0 {
		sw.start("numFmts", intAttr("count", len(custom)))
		for _, n := range custom {
			sw.empty("numFmt", intAttr("numFmtId", n.ID), attr("formatCode", n.Code))
		}
		sw.end("numFmts")
	}

	fonts := s.Fonts.All()
	sw.start("fonts", intAttr("count", len(fonts)))
	for _, f := range fonts {
		sw.font(f)
	}
	sw.end("fonts")

	fills := s.Fills.All()
	sw.start("fills", intAttr("count", len(fills)))
	for _, f := range fills {
		sw.fill(f)
	}
	sw.end("fills")

	borders := s.Borders.All()
	sw.start("borders", intAttr("count", len(borders)))
	for _, b := range borders {
		sw.border(b)
	}
	sw.end("borders")

	sw.xfs("cellStyleXfs", s.CellStyleXfs.All(), false)
	sw.xfs("cellXfs", s.CellXfs.All(), true)

	named := s.NamedStyles.All()
	sw.start("cellStyles", intAttr("count", len(named)))
	for _, cs := range named {
		attrs := []xmlwriter.Attr{attr("name", cs.Name), intAttr("xfId", cs.XfID)}
		if cs.BuiltinID != nil {
			attrs = append(attrs, intAttr("builtinId", *cs.BuiltinID))
		}
		if cs.CustomBuiltin {
			attrs = append(attrs, boolAttr("customBuiltin", true))
		}
		if cs.Hidden {
			attrs = append(attrs, boolAttr("hidden", true))
		}
		sw.empty("cellStyle", attrs...)
	}
	sw.end("cellStyles")

	if len(s.indexedColors) > 0 {
		sw.start("colors")
		sw.start("indexedColors")
		for _, rgb := range s.indexedColors {
			sw.empty("rgbColor", attr("rgb", rgb))
		}
		sw.end("indexedColors")
		sw.end("colors")
	}

	sw.end("styleSheet")
	if sw.err == nil {
		sw.err = sw.w.EndAllFlush()
	}
	return errors.Wrap(sw.err, "write styles")
}
