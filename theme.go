package xlsxstyle

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Theme holds the twelve colours of a theme colour scheme as "RRGGBB",
// indexed by ThemeColor.
type Theme struct {
	Name   string
	colors [12]string
}

// DefaultTheme returns the Office 2013-2022 colour scheme.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "Office",
		colors: [12]string{
			ThemeLight1:            "FFFFFF",
			ThemeDark1:             "000000",
			ThemeLight2:            "E7E6E6",
			ThemeDark2:             "44546A",
			ThemeAccent1:           "4472C4",
			ThemeAccent2:           "ED7D31",
			ThemeAccent3:           "A5A5A5",
			ThemeAccent4:           "FFC000",
			ThemeAccent5:           "5B9BD5",
			ThemeAccent6:           "70AD47",
			ThemeHyperlink:         "0563C1",
			ThemeFollowedHyperlink: "954F72",
		},
	}
}

// Color returns the base colour of a slot, "RRGGBB".
func (t *Theme) Color(c ThemeColor) string {
	if t == nil {
		t = DefaultTheme()
	}
	if !c.valid() {
		return "000000"
	}
	return t.colors[c]
}

// SetColor overrides one slot of the scheme.
func (t *Theme) SetColor(c ThemeColor, rgb string) error {
	if !c.valid() {
		return NewRangeError("Theme", int(c), "0..11")
	}
	var parsed Color
	if err := parsed.SetRGB(rgb); err != nil {
		return err
	}
	t.colors[c] = parsed.RGB[2:]
	return nil
}

// tinted applies Excel's HLS luminance tint to a slot and returns "AARRGGBB".
func (t *Theme) tinted(c ThemeColor, tint float64) string {
	return strings.ToUpper(excelize.ThemeColor(t.Color(c), tint))
}

func themeColorByName(name string) (ThemeColor, bool) {
	for i, n := range themeColorNames {
		if strings.EqualFold(n, name) {
			return ThemeColor(i), true
		}
	}
	return 0, false
}

// xlsxTheme directly maps the theme element in the namespace
// http://schemas.openxmlformats.org/drawingml/2006/main -
// currently I have not checked it for completeness - it does as much
// as I need.
type xlsxTheme struct {
	Name          string `xml:"name,attr"`
	ThemeElements struct {
		ClrScheme xlsxClrScheme `xml:"clrScheme"`
	} `xml:"themeElements"`
}

type xlsxClrScheme struct {
	Name     string            `xml:"name,attr"`
	Children []xlsxClrSchemeEl `xml:",any"`
}

type xlsxClrSchemeEl struct {
	XMLName xml.Name
	SysClr  *struct {
		Val     string `xml:"val,attr"`
		LastClr string `xml:"lastClr,attr"`
	} `xml:"sysClr"`
	SrgbClr *struct {
		Val string `xml:"val,attr"`
	} `xml:"srgbClr"`
}

// ParseTheme reads the colour scheme of a theme part (xl/theme/theme1.xml).
// Slots missing from the part keep their default colour.
func ParseTheme(r io.Reader) (*Theme, error) {
	var x xlsxTheme
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, errors.Wrap(err, "parse theme")
	}
	t := DefaultTheme()
	if x.Name != "" {
		t.Name = x.Name
	}
	for _, el := range x.ThemeElements.ClrScheme.Children {
		slot, ok := themeColorByName(el.XMLName.Local)
		if !ok {
			continue
		}
		var rgb string
		switch {
		case el.SrgbClr != nil:
			rgb = el.SrgbClr.Val
		case el.SysClr != nil:
			rgb = el.SysClr.LastClr
		}
		if rgb == "" {
			continue
		}
		if err := t.SetColor(slot, rgb); err != nil {
			return nil, errors.Wrapf(err, "theme slot %s", slot)
		}
	}
	return t, nil
}
