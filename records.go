package xlsxstyle

import (
	"strconv"
	"strings"
)

// UnderlineType is the underline style of a font.
type UnderlineType string

const (
	UnderlineNone             UnderlineType = ""
	UnderlineSingle           UnderlineType = "single"
	UnderlineDouble           UnderlineType = "double"
	UnderlineSingleAccounting UnderlineType = "singleAccounting"
	UnderlineDoubleAccounting UnderlineType = "doubleAccounting"
)

// VerticalAlign is the vertical run alignment of a font.
type VerticalAlign string

const (
	VerticalAlignNone        VerticalAlign = ""
	VerticalAlignBaseline    VerticalAlign = "baseline"
	VerticalAlignSuperscript VerticalAlign = "superscript"
	VerticalAlignSubscript   VerticalAlign = "subscript"
)

// Font is a record of the fonts table.
type Font struct {
	Name          string
	Size          float64
	Family        *int
	Scheme        string
	Color         Color
	Bold          bool
	Italic        bool
	Strike        bool
	Underline     UnderlineType
	VerticalAlign VerticalAlign
	Charset       *int
}

// FamilyValue returns the font family, 0 when unset.
func (f Font) FamilyValue() int {
	if f.Family == nil {
		return 0
	}
	return *f.Family
}

func (f Font) canonicalID() string {
	var b strings.Builder
	writeText(&b, f.Name)
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(f.Size, 'g', -1, 64))
	b.WriteByte('|')
	writeOptInt(&b, f.Family)
	b.WriteByte('|')
	writeText(&b, f.Scheme)
	b.WriteByte('|')
	b.WriteString(f.Color.canonicalID())
	b.WriteByte('|')
	writeBool(&b, f.Bold)
	writeBool(&b, f.Italic)
	writeBool(&b, f.Strike)
	b.WriteByte('|')
	writeText(&b, string(f.Underline))
	b.WriteByte('|')
	writeText(&b, string(f.VerticalAlign))
	b.WriteByte('|')
	writeOptInt(&b, f.Charset)
	return b.String()
}

// PatternType is the pattern of a pattern fill.
type PatternType string

const (
	PatternNone            PatternType = "none"
	PatternSolid           PatternType = "solid"
	PatternMediumGray      PatternType = "mediumGray"
	PatternDarkGray        PatternType = "darkGray"
	PatternLightGray       PatternType = "lightGray"
	PatternDarkHorizontal  PatternType = "darkHorizontal"
	PatternDarkVertical    PatternType = "darkVertical"
	PatternDarkDown        PatternType = "darkDown"
	PatternDarkUp          PatternType = "darkUp"
	PatternDarkGrid        PatternType = "darkGrid"
	PatternDarkTrellis     PatternType = "darkTrellis"
	PatternLightHorizontal PatternType = "lightHorizontal"
	PatternLightVertical   PatternType = "lightVertical"
	PatternLightDown       PatternType = "lightDown"
	PatternLightUp         PatternType = "lightUp"
	PatternLightGrid       PatternType = "lightGrid"
	PatternLightTrellis    PatternType = "lightTrellis"
	PatternGray125         PatternType = "gray125"
	PatternGray0625        PatternType = "gray0625"
)

// FillKind discriminates the payload of a Fill.
type FillKind int

const (
	FillPattern FillKind = iota
	FillGradient
)

// GradientType is the kind of a gradient fill.
type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientPath   GradientType = "path"
)

// PatternFill is the payload of a pattern (or solid) fill.
type PatternFill struct {
	PatternType PatternType
	FgColor     Color
	BgColor     Color
}

// GradientFill is the payload of a two-stop gradient fill.  Top, Bottom, Left
// and Right are the fill-to rectangle of a path gradient, in [0,1].
type GradientFill struct {
	Type   GradientType
	Degree float64
	Color1 Color
	Color2 Color
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Fill is a record of the fills table.  Only the payload selected by Kind is
// meaningful; the other one is always zero.
type Fill struct {
	Kind     FillKind
	Pattern  PatternFill
	Gradient GradientFill
}

// toPattern switches the fill to a pattern fill, discarding gradient data.
func (f *Fill) toPattern() {
	if f.Kind == FillPattern {
		return
	}
	*f = Fill{Kind: FillPattern, Pattern: PatternFill{PatternType: PatternNone}}
}

// toGradient switches the fill to a gradient fill, discarding pattern data.
func (f *Fill) toGradient() {
	if f.Kind == FillGradient {
		return
	}
	*f = Fill{Kind: FillGradient, Gradient: GradientFill{Type: GradientLinear}}
	f.Gradient.autoStops()
}

// autoStops makes a stop without a colour automatic, which is how a stop is
// written and read back.
func (g *GradientFill) autoStops() {
	for _, c := range []*Color{&g.Color1, &g.Color2} {
		if !c.IsSet() {
			c.SetAuto()
		}
	}
}

func (f Fill) canonicalID() string {
	var b strings.Builder
	if f.Kind == FillGradient {
		g := f.Gradient
		b.WriteString("gradient|")
		writeText(&b, string(g.Type))
		for _, v := range []float64{g.Degree, g.Top, g.Bottom, g.Left, g.Right} {
			b.WriteByte('|')
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('|')
		b.WriteString(g.Color1.canonicalID())
		b.WriteByte('|')
		b.WriteString(g.Color2.canonicalID())
		return b.String()
	}
	b.WriteString("pattern|")
	writeText(&b, string(f.Pattern.PatternType))
	b.WriteByte('|')
	b.WriteString(f.Pattern.FgColor.canonicalID())
	b.WriteByte('|')
	b.WriteString(f.Pattern.BgColor.canonicalID())
	return b.String()
}

// BorderStyle is the line style of a border side.
type BorderStyle string

const (
	BorderNone             BorderStyle = ""
	BorderThin             BorderStyle = "thin"
	BorderMedium           BorderStyle = "medium"
	BorderDashed           BorderStyle = "dashed"
	BorderDotted           BorderStyle = "dotted"
	BorderThick            BorderStyle = "thick"
	BorderDouble           BorderStyle = "double"
	BorderHair             BorderStyle = "hair"
	BorderMediumDashed     BorderStyle = "mediumDashed"
	BorderDashDot          BorderStyle = "dashDot"
	BorderMediumDashDot    BorderStyle = "mediumDashDot"
	BorderDashDotDot       BorderStyle = "dashDotDot"
	BorderMediumDashDotDot BorderStyle = "mediumDashDotDot"
	BorderSlantDashDot     BorderStyle = "slantDashDot"
)

// BorderLine is one side of a border.  Exists records whether the side element
// was present at all, which the writer keeps for fidelity.
type BorderLine struct {
	Style  BorderStyle
	Color  Color
	Exists bool
}

func (l BorderLine) canonicalID() string {
	var b strings.Builder
	writeText(&b, string(l.Style))
	b.WriteByte(':')
	b.WriteString(l.Color.canonicalID())
	b.WriteByte(':')
	writeBool(&b, l.Exists)
	return b.String()
}

// BorderSide selects a side of a Border.
type BorderSide int

const (
	SideLeft BorderSide = iota
	SideRight
	SideTop
	SideBottom
	SideDiagonal
)

var borderSideNames = [...]string{"left", "right", "top", "bottom", "diagonal"}

func (s BorderSide) String() string { return borderSideNames[s] }

// Border is a record of the borders table.
type Border struct {
	Left         BorderLine
	Right        BorderLine
	Top          BorderLine
	Bottom       BorderLine
	Diagonal     BorderLine
	DiagonalUp   bool
	DiagonalDown bool
}

// Line returns a pointer to the line of the given side.
func (b *Border) Line(side BorderSide) *BorderLine {
	switch side {
	case SideLeft:
		return &b.Left
	case SideRight:
		return &b.Right
	case SideTop:
		return &b.Top
	case SideBottom:
		return &b.Bottom
	}
	return &b.Diagonal
}

func (b Border) canonicalID() string {
	var s strings.Builder
	for _, l := range []BorderLine{b.Left, b.Right, b.Top, b.Bottom, b.Diagonal} {
		s.WriteString(l.canonicalID())
		s.WriteByte('|')
	}
	writeBool(&s, b.DiagonalUp)
	writeBool(&s, b.DiagonalDown)
	return s.String()
}

func writeBool(b *strings.Builder, v bool) {
	if v {
		b.WriteByte('1')
		return
	}
	b.WriteByte('0')
}

// writeText writes s with its length in front, so free text read from a file
// cannot run into the next field.
func writeText(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

func writeOptInt(b *strings.Builder, v *int) {
	if v != nil {
		b.WriteString(strconv.Itoa(*v))
	}
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func floatPtr(v float64) *float64 { return &v }
