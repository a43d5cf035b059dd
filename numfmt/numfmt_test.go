package numfmt

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestFormat(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		name string
		code string
		v    interface{}
		want string
	}{
		{"general integer", "General", 1234, "1234"},
		{"general fraction", "General", 1.5, "1.5"},
		{"general precision", "General", 45498.666666666664, "45498.66667"},
		{"general text", "General", "abc", "abc"},
		{"nil", "0.00", nil, ""},
		{"bool", "0.00", true, "TRUE"},
		{"integer rounds half up", "0", 2.5, "3"},
		{"two decimals", "0.00", 3.14159, "3.14"},
		{"zero integer part", "0.00", 0.5, "0.50"},
		{"negative single section", "0.00", -1.5, "-1.50"},
		{"thousands", "#,##0", 1234567, "1,234,567"},
		{"thousands with decimals", "#,##0.00", 1234.5, "1,234.50"},
		{"thousands zero", "#,##0", 0, "0"},
		{"scale by thousand", "#,##0,", 1234567, "1,235"},
		{"percent", "0%", 0.25, "25%"},
		{"percent decimals", "0.00%", 0.1234, "12.34%"},
		{"scientific", "0.00E+00", 12345, "1.23E+04"},
		{"scientific negative exponent", "0.00E+00", 0.00012, "1.20E-04"},
		{"negative section", "#,##0 ;(#,##0)", -1234, "(1,234)"},
		{"fraction", "# ?/?", 1.5, "1 1/2"},
		{"fraction two digits", "# ??/??", 0.3125, "  5/16"},
		{"fixed denominator", "# ?/8", 1.3, "1 2/8"},
		{"fixed denominator is not reduced", "# ?/8", 2.25, "2 2/8"},
		{"quoted literal", `#,##0.00 "EUR"`, 1234.5, "1,234.50 EUR"},
		{"quoted prefix", `"$"#,##0`, 1234, "$1,234"},
		{"escaped character", `"$"#,##0;[Red]\-"$"#,##0`, -1234, "-$1,234"},
		{"currency and locale", `#,##0.00\ [$€-407]`, 1234.5, "1,234.50 €"},
		{"currency prefix", `[$$-409]#,##0.00`, 1234.5, "$1,234.50"},
		{"text section", "@", "hello", "hello"},
		{"number in text format", "@", 12, "12"},
		{"date", "yyyy-mm-dd", 45000, "2023-03-15"},
		{"date from time", "yyyy-mm-dd", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), "2023-03-15"},
		{"month name", "d-mmm-yy", 45000, "15-Mar-23"},
		{"time", "h:mm", 0.5, "12:00"},
		{"time am/pm", "h:mm AM/PM", 0.75, "6:00 PM"},
		{"time seconds", "h:mm:ss", 0.5 + 30.0/86400, "12:00:30"},
		{"elapsed hours", "[h]:mm:ss", 1.5, "36:00:00"},
	}
	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			c.Assert(Format(test.code, test.v), qt.Equals, test.want)
		})
	}
}

func TestFormatSections(t *testing.T) {
	c := qt.New(t)
	const code = "0.00;[Red]0.00;0"

	c.Run("positive", func(c *qt.C) {
		c.Assert(Format(code, 1.5), qt.Equals, "1.50")
	})
	c.Run("negative drops the sign", func(c *qt.C) {
		c.Assert(Format(code, -1.5), qt.Equals, "1.50")
	})
	c.Run("zero", func(c *qt.C) {
		c.Assert(Format(code, 0), qt.Equals, "0")
	})
	c.Run("text section", func(c *qt.C) {
		const four = `0;\-0;"zero";"Haha!"\ @\ "Yeah!"`
		c.Assert(Format(four, 12), qt.Equals, "12")
		c.Assert(Format(four, -3), qt.Equals, "-3")
		c.Assert(Format(four, 0), qt.Equals, "zero")
		c.Assert(Format(four, "ok"), qt.Equals, "Haha! ok Yeah!")
		c.Assert(Format("0.00;-0.00", "ok"), qt.Equals, "ok")
	})
	c.Run("conditions", func(c *qt.C) {
		cond := "[>=100]0;[<0]0.0;0.00"
		c.Assert(Format(cond, 150), qt.Equals, "150")
		c.Assert(Format(cond, -2), qt.Equals, "2.0")
		c.Assert(Format(cond, 5), qt.Equals, "5.00")
	})
}

func TestDataTypeOf(t *testing.T) {
	c := qt.New(t)
	for code, want := range map[string]DataType{
		"General":    Number,
		"0.00":       Number,
		"#,##0":      Number,
		"0%":         Number,
		"@":          Text,
		"yyyy-mm-dd": DateTime,
		"h:mm":       DateTime,
		"[h]:mm:ss":  DateTime,
		"mm-dd-yy":   DateTime,
	} {
		c.Assert(DataTypeOf(code), qt.Equals, want, qt.Commentf("%s", code))
	}
	c.Assert(DateTime.String(), qt.Equals, "DateTime")
}
