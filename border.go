package xlsxstyle

// StyleBorder is a view of the border of a Style.
type StyleBorder struct {
	style *Style
}

func (b *StyleBorder) border() Border {
	return b.style.styles.Borders.at(b.style.xf().BorderID)
}

func (b *StyleBorder) change(change func(*Border) error) error {
	return b.style.mutate(b.style.styles.borderChange(change))
}

// Index returns the index of the border in the borders table.
func (b *StyleBorder) Index() int {
	return b.style.xf().BorderID
}

func (b *StyleBorder) Left() *StyleBorderItem     { return &StyleBorderItem{border: b, side: SideLeft} }
func (b *StyleBorder) Right() *StyleBorderItem    { return &StyleBorderItem{border: b, side: SideRight} }
func (b *StyleBorder) Top() *StyleBorderItem      { return &StyleBorderItem{border: b, side: SideTop} }
func (b *StyleBorder) Bottom() *StyleBorderItem   { return &StyleBorderItem{border: b, side: SideBottom} }
func (b *StyleBorder) Diagonal() *StyleBorderItem { return &StyleBorderItem{border: b, side: SideDiagonal} }

func (b *StyleBorder) DiagonalUp() bool {
	return b.border().DiagonalUp
}

func (b *StyleBorder) SetDiagonalUp(v bool) error {
	return b.change(func(r *Border) error {
		r.DiagonalUp = v
		return nil
	})
}

func (b *StyleBorder) DiagonalDown() bool {
	return b.border().DiagonalDown
}

func (b *StyleBorder) SetDiagonalDown(v bool) error {
	return b.change(func(r *Border) error {
		r.DiagonalDown = v
		return nil
	})
}

// Around sets the four outer sides to style in one write.  An empty argb
// leaves the side colours as they are.
func (b *StyleBorder) Around(style BorderStyle, argb string) error {
	if !validBorderStyle(style) {
		return NewRangeError("BorderStyle", string(style), "a border style")
	}
	var color Color
	if argb != "" {
		if err := color.SetRGB(argb); err != nil {
			return err
		}
	}
	return b.change(func(r *Border) error {
		for _, side := range []BorderSide{SideLeft, SideRight, SideTop, SideBottom} {
			l := r.Line(side)
			l.Style = style
			l.Exists = true
			if argb != "" {
				l.Color = color
			}
		}
		return nil
	})
}

func validBorderStyle(s BorderStyle) bool {
	switch s {
	case BorderNone, BorderThin, BorderMedium, BorderDashed, BorderDotted, BorderThick,
		BorderDouble, BorderHair, BorderMediumDashed, BorderDashDot, BorderMediumDashDot,
		BorderDashDotDot, BorderMediumDashDotDot, BorderSlantDashDot:
		return true
	}
	return false
}

// StyleBorderItem is a view of one side of a border.
type StyleBorderItem struct {
	border *StyleBorder
	side   BorderSide
}

func (i *StyleBorderItem) line() BorderLine {
	r := i.border.border()
	return *r.Line(i.side)
}

// Style returns the line style, BorderNone when the side is not drawn.
func (i *StyleBorderItem) Style() BorderStyle {
	return i.line().Style
}

func (i *StyleBorderItem) SetStyle(style BorderStyle) error {
	if !validBorderStyle(style) {
		return NewRangeError("BorderStyle", string(style), "a border style")
	}
	return i.border.change(func(r *Border) error {
		l := r.Line(i.side)
		l.Style = style
		l.Exists = true
		return nil
	})
}

// Color returns the colour of the side.  It can only be set once the side has
// a line style.
func (i *StyleBorderItem) Color() *StyleColor {
	return &StyleColor{
		styles: i.border.style.styles,
		auto:   ThemeDark1,
		read:   func() Color { return i.line().Color },
		write: func(change func(*Color) error) error {
			return i.border.change(func(r *Border) error {
				l := r.Line(i.side)
				if l.Style == BorderNone {
					return NewInvalidOperationError("SetColor", "the "+i.side.String()+" border has no style; set Style first")
				}
				return change(&l.Color)
			})
		},
	}
}
