package xlsxstyle

// StyleFill is a view of the fill of a Style.
type StyleFill struct {
	style *Style
}

func (f *StyleFill) fill() Fill {
	return f.style.styles.Fills.at(f.style.xf().FillID)
}

func (f *StyleFill) change(change func(*Fill) error) error {
	return f.style.mutate(f.style.styles.fillChange(change))
}

// Index returns the index of the fill in the fills table.
func (f *StyleFill) Index() int {
	return f.style.xf().FillID
}

// IsGradient reports whether the fill is a gradient fill.
func (f *StyleFill) IsGradient() bool {
	return f.fill().Kind == FillGradient
}

// PatternType returns the pattern of a pattern fill, PatternNone for a
// gradient fill.
func (f *StyleFill) PatternType() PatternType {
	r := f.fill()
	if r.Kind != FillPattern {
		return PatternNone
	}
	return r.Pattern.PatternType
}

// SetPatternType sets the pattern.  A gradient fill becomes a pattern fill and
// loses its gradient settings.
func (f *StyleFill) SetPatternType(p PatternType) error {
	if !validPatternType(p) {
		return NewRangeError("PatternType", string(p), "a pattern type")
	}
	return f.change(func(r *Fill) error {
		r.toPattern()
		r.Pattern.PatternType = p
		return nil
	})
}

func validPatternType(p PatternType) bool {
	switch p {
	case PatternNone, PatternSolid, PatternMediumGray, PatternDarkGray, PatternLightGray,
		PatternDarkHorizontal, PatternDarkVertical, PatternDarkDown, PatternDarkUp,
		PatternDarkGrid, PatternDarkTrellis, PatternLightHorizontal, PatternLightVertical,
		PatternLightDown, PatternLightUp, PatternLightGrid, PatternLightTrellis,
		PatternGray125, PatternGray0625:
		return true
	}
	return false
}

func (f *StyleFill) patternColor(pick func(*PatternFill) *Color) *StyleColor {
	return &StyleColor{
		styles: f.style.styles,
		auto:   ThemeLight1,
		read: func() Color {
			r := f.fill()
			return *pick(&r.Pattern)
		},
		write: func(change func(*Color) error) error {
			return f.change(func(r *Fill) error {
				if r.Kind != FillPattern || r.Pattern.PatternType == PatternNone {
					return NewInvalidOperationError("SetColor", "the fill has no pattern; set PatternType first")
				}
				return change(pick(&r.Pattern))
			})
		},
	}
}

// PatternColor returns the pattern (foreground) colour; for a solid fill it is
// the fill colour.
func (f *StyleFill) PatternColor() *StyleColor {
	return f.patternColor(func(p *PatternFill) *Color { return &p.FgColor })
}

// BackgroundColor returns the background colour of a pattern fill.
func (f *StyleFill) BackgroundColor() *StyleColor {
	return f.patternColor(func(p *PatternFill) *Color { return &p.BgColor })
}

// Gradient returns the gradient settings of the fill.  Setting any of them
// turns the fill into a gradient fill.
func (f *StyleFill) Gradient() *StyleGradient {
	return &StyleGradient{fill: f}
}

// StyleGradient is a view of the gradient settings of a fill.
type StyleGradient struct {
	fill *StyleFill
}

func (g *StyleGradient) gradient() GradientFill {
	r := g.fill.fill()
	if r.Kind != FillGradient {
		return GradientFill{}
	}
	return r.Gradient
}

func (g *StyleGradient) change(change func(*GradientFill) error) error {
	return g.fill.change(func(r *Fill) error {
		r.toGradient()
		return change(&r.Gradient)
	})
}

// Type returns the gradient type, empty when the fill is not a gradient.
func (g *StyleGradient) Type() GradientType {
	return g.gradient().Type
}

func (g *StyleGradient) SetType(t GradientType) error {
	if t != GradientLinear && t != GradientPath {
		return NewRangeError("GradientType", string(t), "linear or path")
	}
	return g.change(func(r *GradientFill) error {
		r.Type = t
		return nil
	})
}

// Degree returns the angle of a linear gradient.
func (g *StyleGradient) Degree() float64 {
	return g.gradient().Degree
}

func (g *StyleGradient) SetDegree(v float64) error {
	return g.change(func(r *GradientFill) error {
		r.Degree = v
		return nil
	})
}

func checkPosition(field string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return NewRangeError(field, v, "[0,1]")
	}
	return nil
}

func (g *StyleGradient) setPosition(field string, v float64, pick func(*GradientFill) *float64) error {
	if err := checkPosition(field, v); err != nil {
		return err
	}
	return g.change(func(r *GradientFill) error {
		*pick(r) = v
		return nil
	})
}

func (g *StyleGradient) Top() float64    { return g.gradient().Top }
func (g *StyleGradient) Bottom() float64 { return g.gradient().Bottom }
func (g *StyleGradient) Left() float64   { return g.gradient().Left }
func (g *StyleGradient) Right() float64  { return g.gradient().Right }

// SetTop sets the top edge of a path gradient, in [0,1].
func (g *StyleGradient) SetTop(v float64) error {
	return g.setPosition("Top", v, func(r *GradientFill) *float64 { return &r.Top })
}

func (g *StyleGradient) SetBottom(v float64) error {
	return g.setPosition("Bottom", v, func(r *GradientFill) *float64 { return &r.Bottom })
}

func (g *StyleGradient) SetLeft(v float64) error {
	return g.setPosition("Left", v, func(r *GradientFill) *float64 { return &r.Left })
}

func (g *StyleGradient) SetRight(v float64) error {
	return g.setPosition("Right", v, func(r *GradientFill) *float64 { return &r.Right })
}

func (g *StyleGradient) color(pick func(*GradientFill) *Color) *StyleColor {
	return &StyleColor{
		styles: g.fill.style.styles,
		auto:   ThemeLight1,
		read: func() Color {
			r := g.gradient()
			return *pick(&r)
		},
		write: func(change func(*Color) error) error {
			return g.fill.change(func(r *Fill) error {
				if r.Kind != FillGradient {
					return NewInvalidOperationError("SetColor", "the fill is not a gradient; set a gradient property first")
				}
				return change(pick(&r.Gradient))
			})
		},
	}
}

// Color1 returns the colour of the first gradient stop.
func (g *StyleGradient) Color1() *StyleColor {
	return g.color(func(r *GradientFill) *Color { return &r.Color1 })
}

// Color2 returns the colour of the second gradient stop.
func (g *StyleGradient) Color2() *StyleColor {
	return g.color(func(r *GradientFill) *Color { return &r.Color2 })
}
