package xlsxstyle

// StyleColor is a view of one colour of a style record: a font colour, a fill
// colour or the colour of a border side.  Writes are checked against the
// record first, so a rejected write leaves every table untouched.
type StyleColor struct {
	styles *StyleSheet
	// auto is the theme slot an automatic colour resolves to.
	auto  ThemeColor
	read  func() Color
	write func(change func(*Color) error) error
}

// Value returns a copy of the colour record.
func (c *StyleColor) Value() Color {
	return c.read()
}

// Auto reports whether the colour is automatic.
func (c *StyleColor) Auto() bool {
	return c.read().Auto
}

// Theme returns the theme colour slot and whether one is set.
func (c *StyleColor) Theme() (ThemeColor, bool) {
	v := c.read()
	if v.Theme == nil {
		return 0, false
	}
	return *v.Theme, true
}

// Tint returns the tint, 0 when unset.
func (c *StyleColor) Tint() float64 {
	return c.read().TintValue()
}

// RGB returns the literal ARGB value, empty when unset.
func (c *StyleColor) RGB() string {
	return c.read().RGB
}

// Indexed returns the indexed palette entry and whether one is set.
func (c *StyleColor) Indexed() (int, bool) {
	v := c.read()
	if v.Indexed == nil {
		return 0, false
	}
	return *v.Indexed, true
}

// Resolve returns the colour displayed for the reference as "#AARRGGBB".
func (c *StyleColor) Resolve() string {
	return c.styles.resolveColor(c.read(), c.auto)
}

func (c *StyleColor) SetAuto() error {
	return c.write(func(v *Color) error {
		v.SetAuto()
		return nil
	})
}

func (c *StyleColor) SetTheme(theme ThemeColor, tint float64) error {
	check := Color{}
	if err := check.SetTheme(theme, tint); err != nil {
		return err
	}
	return c.write(func(v *Color) error { return v.SetTheme(theme, tint) })
}

// SetRGB sets a literal colour, "RRGGBB" or "AARRGGBB" with an optional '#'.
func (c *StyleColor) SetRGB(argb string) error {
	check := Color{}
	if err := check.SetRGB(argb); err != nil {
		return err
	}
	return c.write(func(v *Color) error { return v.SetRGB(argb) })
}

func (c *StyleColor) SetIndexed(index int) error {
	if index < 0 || index > maxIndexedColor {
		return NewRangeError("Indexed", index, "0..65")
	}
	return c.write(func(v *Color) error { return v.SetIndexed(index) })
}

// SetTint changes the tint while keeping the colour reference.  Only a theme
// or rgb colour takes a tint.
func (c *StyleColor) SetTint(tint float64) error {
	if err := checkTint(tint); err != nil {
		return err
	}
	return c.write(func(v *Color) error { return v.SetTint(tint) })
}
