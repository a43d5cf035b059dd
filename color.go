package xlsxstyle

import (
	"math"
	"strconv"
	"strings"
)

// ThemeColor is an index into the theme colour scheme as it is used by
// SpreadsheetML colour references.  Note that the first two pairs are swapped
// with respect to the order of the clrScheme element.
type ThemeColor int

const (
	ThemeLight1 ThemeColor = iota // Background 1
	ThemeDark1                    // Text 1
	ThemeLight2                   // Background 2
	ThemeDark2                    // Text 2
	ThemeAccent1
	ThemeAccent2
	ThemeAccent3
	ThemeAccent4
	ThemeAccent5
	ThemeAccent6
	ThemeHyperlink
	ThemeFollowedHyperlink
)

var themeColorNames = [...]string{
	"lt1", "dk1", "lt2", "dk2",
	"accent1", "accent2", "accent3", "accent4", "accent5", "accent6",
	"hlink", "folHlink",
}

func (t ThemeColor) valid() bool {
	return t >= ThemeLight1 && t <= ThemeFollowedHyperlink
}

func (t ThemeColor) String() string {
	if !t.valid() {
		return "ThemeColor(" + strconv.Itoa(int(t)) + ")"
	}
	return themeColorNames[t]
}

// xlsx Indexed Colors
// https://github.com/ClosedXML/ClosedXML/wiki/Excel-Indexed-Colors
var xlsxIndexedColors = []string{
	"FF000000",
	"FFFFFFFF",
	"FFFF0000",
	"FF00FF00",
	"FF0000FF",
	"FFFFFF00",
	"FFFF00FF",
	"FF00FFFF",
	"FF000000",
	"FFFFFFFF",
	"FFFF0000",
	"FF00FF00",
	"FF0000FF",
	"FFFFFF00",
	"FFFF00FF",
	"FF00FFFF",
	"FF800000",
	"FF008000",
	"FF000080",
	"FF808000",
	"FF800080",
	"FF008080",
	"FFC0C0C0",
	"FF808080",
	"FF9999FF",
	"FF993366",
	"FFFFFFCC",
	"FFCCFFFF",
	"FF660066",
	"FFFF8080",
	"FF0066CC",
	"FFCCCCFF",
	"FF000080",
	"FFFF00FF",
	"FFFFFF00",
	"FF00FFFF",
	"FF800080",
	"FF800000",
	"FF008080",
	"FF0000FF",
	"FF00CCFF",
	"FFCCFFFF",
	"FFCCFFCC",
	"FFFFFF99",
	"FF99CCFF",
	"FFFF99CC",
	"FFCC99FF",
	"FFFFCC99",
	"FF3366FF",
	"FF33CCCC",
	"FF99CC00",
	"FFFFCC00",
	"FFFF9900",
	"FFFF6600",
	"FF666699",
	"FF969696",
	"FF003366",
	"FF339966",
	"FF003300",
	"FF333300",
	"FF993300",
	"FF993366",
	"FF333399",
	"FF333333",
}

// Indexes 64 and 65 are the system foreground and background colours.
const (
	indexedSystemForeground = 64
	indexedSystemBackground = 65
	maxIndexedColor         = 65
)

// Color is the canonical descriptor of a colour reference.  Auto, Theme, RGB
// and Indexed are mutually exclusive; Tint refines a Theme or RGB colour.
// Pointer fields are replaced on write, never written through, so copying a
// Color by value is always safe.
type Color struct {
	Auto    bool
	Theme   *ThemeColor
	Tint    *float64
	RGB     string
	Indexed *int
}

func (c *Color) clear() {
	c.Auto = false
	c.Theme = nil
	c.Tint = nil
	c.RGB = ""
	c.Indexed = nil
}

// SetAuto marks the colour as automatic.
func (c *Color) SetAuto() {
	c.clear()
	c.Auto = true
}

// SetTheme references a theme colour with the given tint.
func (c *Color) SetTheme(theme ThemeColor, tint float64) error {
	if !theme.valid() {
		return NewRangeError("Theme", int(theme), "0..11")
	}
	if err := checkTint(tint); err != nil {
		return err
	}
	c.clear()
	c.Theme = &theme
	if tint != 0 {
		c.Tint = &tint
	}
	return nil
}

// SetRGB sets a literal ARGB colour.  A leading '#' is dropped and a six digit
// value gets an opaque alpha channel.
func (c *Color) SetRGB(argb string) error {
	v := strings.ToUpper(strings.TrimPrefix(argb, "#"))
	if len(v) == 6 {
		v = "FF" + v
	}
	if len(v) != 8 {
		return NewRangeError("RGB", argb, "RRGGBB or AARRGGBB")
	}
	if _, err := strconv.ParseUint(v, 16, 32); err != nil {
		return NewRangeError("RGB", argb, "hexadecimal digits")
	}
	c.clear()
	c.RGB = v
	return nil
}

// SetIndexed references the legacy indexed palette.
func (c *Color) SetIndexed(index int) error {
	if index < 0 || index > maxIndexedColor {
		return NewRangeError("Indexed", index, "0..65")
	}
	c.clear()
	c.Indexed = &index
	return nil
}

// SetTint sets the lightening (>0) or darkening (<0) factor of a Theme or RGB
// colour.
func (c *Color) SetTint(tint float64) error {
	if err := checkTint(tint); err != nil {
		return err
	}
	if c.Theme == nil && c.RGB == "" {
		return NewInvalidOperationError("SetTint", "tint applies to a theme or rgb colour")
	}
	if tint == 0 {
		c.Tint = nil
		return nil
	}
	c.Tint = &tint
	return nil
}

func checkTint(tint float64) error {
	if math.IsNaN(tint) || tint < -1 || tint > 1 {
		return NewRangeError("Tint", tint, "[-1,1]")
	}
	return nil
}

// TintValue returns the tint, 0 when unset.
func (c Color) TintValue() float64 {
	if c.Tint == nil {
		return 0
	}
	return *c.Tint
}

// IsSet reports whether any field of the colour is set.
func (c Color) IsSet() bool {
	return c.Auto || c.Theme != nil || c.Tint != nil || c.RGB != "" || c.Indexed != nil
}

func (c Color) canonicalID() string {
	var b strings.Builder
	if c.Auto {
		b.WriteByte('1')
	}
	b.WriteByte('|')
	if c.Theme != nil {
		b.WriteString(strconv.Itoa(int(*c.Theme)))
	}
	b.WriteByte('|')
	if c.Tint != nil {
		b.WriteString(strconv.FormatFloat(*c.Tint, 'g', -1, 64))
	}
	b.WriteByte('|')
	writeText(&b, c.RGB)
	b.WriteByte('|')
	if c.Indexed != nil {
		b.WriteString(strconv.Itoa(*c.Indexed))
	}
	return b.String()
}

// Resolve returns the displayed colour as "#AARRGGBB".  indexed may carry the
// palette of the stylesheet; nil selects the legacy palette.  auto is the
// theme slot an automatic colour stands for in its context.
func (c Color) Resolve(theme *Theme, indexed []string, auto ThemeColor) string {
	switch {
	case c.Indexed != nil:
		return "#" + indexedColor(indexed, *c.Indexed)
	case c.RGB != "":
		return "#" + c.RGB
	case c.Theme != nil:
		return "#" + theme.tinted(*c.Theme, c.TintValue())
	case c.Auto:
		return "#" + theme.tinted(auto, 0)
	}
	gray := int(math.Round((c.TintValue() + 1) * 128))
	if gray > 255 {
		gray = 255
	}
	h := strings.ToUpper(strconv.FormatInt(int64(gray), 16))
	if len(h) == 1 {
		h = "0" + h
	}
	return "#FF" + h + h + h
}

func indexedColor(palette []string, index int) string {
	if palette == nil {
		palette = xlsxIndexedColors
	}
	switch {
	case index < 0:
	case index < len(palette):
		return palette[index]
	case index < len(xlsxIndexedColors):
		return xlsxIndexedColors[index]
	case index == indexedSystemBackground:
		return "FFFFFFFF"
	}
	return "FF000000"
}
