package xlsxstyle

// StyleFont is a view of the font of a Style.
type StyleFont struct {
	style *Style
}

func (f *StyleFont) font() Font {
	return f.style.styles.Fonts.at(f.style.xf().FontID)
}

func (f *StyleFont) change(change func(*Font) error) error {
	return f.style.mutate(f.style.styles.fontChange(change))
}

// Index returns the index of the font in the fonts table.
func (f *StyleFont) Index() int {
	return f.style.xf().FontID
}

func (f *StyleFont) Name() string {
	return f.font().Name
}

// SetName sets the font name.  A named font is no longer a theme font, so the
// scheme is cleared as well.
func (f *StyleFont) SetName(name string) error {
	return f.change(func(r *Font) error {
		r.Name = name
		r.Scheme = ""
		return nil
	})
}

// Size returns the font size in points.
func (f *StyleFont) Size() float64 {
	return f.font().Size
}

func (f *StyleFont) SetSize(size float64) error {
	if !(size > 0) {
		return NewRangeError("Size", size, "> 0")
	}
	return f.change(func(r *Font) error {
		r.Size = size
		return nil
	})
}

// Family returns the font family, 0 when unset.
func (f *StyleFont) Family() int {
	return f.font().FamilyValue()
}

func (f *StyleFont) SetFamily(family int) error {
	if family < 0 || family > 14 {
		return NewRangeError("Family", family, "0..14")
	}
	return f.change(func(r *Font) error {
		r.Family = intPtr(family)
		return nil
	})
}

// Scheme returns the theme font scheme ("major", "minor"), empty for none.
func (f *StyleFont) Scheme() string {
	return f.font().Scheme
}

func (f *StyleFont) SetScheme(scheme string) error {
	switch scheme {
	case "", "major", "minor", "none":
	default:
		return NewRangeError("Scheme", scheme, "major, minor or none")
	}
	return f.change(func(r *Font) error {
		r.Scheme = scheme
		return nil
	})
}

func (f *StyleFont) Bold() bool {
	return f.font().Bold
}

func (f *StyleFont) SetBold(v bool) error {
	return f.change(func(r *Font) error {
		r.Bold = v
		return nil
	})
}

func (f *StyleFont) Italic() bool {
	return f.font().Italic
}

func (f *StyleFont) SetItalic(v bool) error {
	return f.change(func(r *Font) error {
		r.Italic = v
		return nil
	})
}

func (f *StyleFont) Strike() bool {
	return f.font().Strike
}

func (f *StyleFont) SetStrike(v bool) error {
	return f.change(func(r *Font) error {
		r.Strike = v
		return nil
	})
}

// Underline returns the underline type, UnderlineNone when not underlined.
func (f *StyleFont) Underline() UnderlineType {
	return f.font().Underline
}

func (f *StyleFont) SetUnderline(u UnderlineType) error {
	switch u {
	case UnderlineNone, UnderlineSingle, UnderlineDouble, UnderlineSingleAccounting, UnderlineDoubleAccounting:
	default:
		return NewRangeError("Underline", string(u), "an underline type")
	}
	return f.change(func(r *Font) error {
		r.Underline = u
		return nil
	})
}

func (f *StyleFont) VerticalAlign() VerticalAlign {
	return f.font().VerticalAlign
}

func (f *StyleFont) SetVerticalAlign(v VerticalAlign) error {
	switch v {
	case VerticalAlignNone, VerticalAlignBaseline, VerticalAlignSuperscript, VerticalAlignSubscript:
	default:
		return NewRangeError("VerticalAlign", string(v), "baseline, superscript or subscript")
	}
	return f.change(func(r *Font) error {
		r.VerticalAlign = v
		return nil
	})
}

// Charset returns the character set and whether one is set.
func (f *StyleFont) Charset() (int, bool) {
	c := f.font().Charset
	if c == nil {
		return 0, false
	}
	return *c, true
}

func (f *StyleFont) SetCharset(charset int) error {
	if charset < 0 || charset > 255 {
		return NewRangeError("Charset", charset, "0..255")
	}
	return f.change(func(r *Font) error {
		r.Charset = intPtr(charset)
		return nil
	})
}

// Color returns the font colour.  Automatic font colour is Text 1.
func (f *StyleFont) Color() *StyleColor {
	return &StyleColor{
		styles: f.style.styles,
		auto:   ThemeDark1,
		read:   func() Color { return f.font().Color },
		write: func(change func(*Color) error) error {
			return f.change(func(r *Font) error { return change(&r.Color) })
		},
	}
}
