// Package numfmt turns spreadsheet number format codes into display strings.
//
// The entry points are [Format], which renders a value with a format code,
// and [DataTypeOf], which guesses the kind of value a format is meant for.
// Format codes are tokenized with [github.com/xuri/nfp]; parsed codes are kept
// in an LRU cache since a workbook uses few distinct formats for many cells.
package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xuri/excelize/v2"
	"github.com/xuri/nfp"
)

// DataType is the kind of value a number format is meant for.
type DataType int

const (
	Number DataType = iota
	DateTime
	Text
)

func (d DataType) String() string {
	switch d {
	case DateTime:
		return "DateTime"
	case Text:
		return "Text"
	}
	return "Number"
}

const general = "General"

type sectionKind int

const (
	kindNumber sectionKind = iota
	kindDate
	kindText
)

type condition struct {
	op      string
	operand float64
}

func (c *condition) match(v float64) bool {
	switch c.op {
	case "<":
		return v < c.operand
	case "<=":
		return v <= c.operand
	case ">":
		return v > c.operand
	case ">=":
		return v >= c.operand
	case "<>":
		return v != c.operand
	case "=":
		return v == c.operand
	}
	return false
}

// absolute reports whether a value selected by the condition is shown without
// its sign, like the negative section of a plain format.
func (c *condition) absolute() bool {
	return (c.op == "<" || c.op == "<=") && c.operand <= 0
}

type section struct {
	items []nfp.Token
	cond  *condition
	kind  sectionKind
}

type format struct {
	sections []section
}

var cache *lru.Cache[string, *format]

func init() {
	var err error
	cache, err = lru.New[string, *format](256)
	if err != nil {
		panic(err)
	}
}

func parse(code string) *format {
	if f, ok := cache.Get(code); ok {
		return f
	}
	f := &format{}
	if !strings.EqualFold(strings.TrimSpace(code), general) {
		ps := nfp.NumberFormatParser()
		for _, s := range ps.Parse(code) {
			f.sections = append(f.sections, newSection(s))
		}
	}
	cache.Add(code, f)
	return f
}

func newSection(s nfp.Section) section {
	sec := section{items: s.Items}
	if s.Type == nfp.TokenSectionText {
		sec.kind = kindText
	}
	for _, tok := range s.Items {
		switch tok.TType {
		case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
			sec.kind = kindDate
		case nfp.TokenTypeCondition:
			if len(tok.Parts) == 2 {
				operand, err := strconv.ParseFloat(tok.Parts[1].Token.TValue, 64)
				if err == nil {
					sec.cond = &condition{op: tok.Parts[0].Token.TValue, operand: operand}
				}
			}
		}
	}
	return sec
}

// DataTypeOf guesses the kind of value a format code is meant for from the
// tokens it contains.
func DataTypeOf(code string) DataType {
	f := parse(code)
	if len(f.sections) == 0 {
		return Number
	}
	for _, s := range f.sections {
		if s.kind == kindDate {
			return DateTime
		}
	}
	if len(f.sections) == 1 && f.sections[0].kind == kindText {
		return Text
	}
	return Number
}

// Format renders v with the format code.  Numbers (any integer or float
// type) and time.Time values go through the numeric sections, strings through
// the text section; nil renders empty and booleans as TRUE/FALSE.
func Format(code string, v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return formatText(parse(code), val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		return formatNumber(parse(code), timeToSerial(val))
	}
	f, ok := toFloat(v)
	if !ok {
		return fmt.Sprint(v)
	}
	return formatNumber(parse(code), f)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// timeToSerial converts t to a 1900 date system serial, keeping the fictitious
// 29 February 1900 in the numbering.
func timeToSerial(t time.Time) float64 {
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	serial := float64(t.Sub(excelEpoch)) / float64(24*time.Hour)
	if t.Before(time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)) {
		serial--
	}
	return serial
}

func formatText(f *format, s string) string {
	var sec *section
	switch {
	case len(f.sections) == 4:
		sec = &f.sections[3]
	case len(f.sections) == 1 && f.sections[0].kind == kindText:
		sec = &f.sections[0]
	default:
		return s
	}
	var b strings.Builder
	for _, tok := range sec.items {
		switch tok.TType {
		case nfp.TokenTypeTextPlaceHolder:
			b.WriteString(s)
		case nfp.TokenTypeLiteral, nfp.TokenTypeAlignment:
			b.WriteString(tok.TValue)
		case nfp.TokenTypeCurrencyLanguage:
			b.WriteString(currencySymbol(tok))
		}
	}
	return b.String()
}

// selectSection picks the section for v.  The returned flag is true when the
// section expects the sign to be rendered as a leading minus.
//
//	1 section  → applies to all values
//	2 sections → [0]=positive+zero  [1]=negative
//	3 sections → [0]=positive  [1]=negative  [2]=zero
//	4 sections → as 3, [3]=text
//
// Sections carrying a condition are tried in order instead.
func selectSection(f *format, v float64) (*section, bool) {
	nums := f.sections
	if len(nums) == 4 {
		nums = nums[:3]
	}
	if nums[0].cond != nil || (len(nums) > 1 && nums[1].cond != nil) {
		for i := range nums {
			s := &nums[i]
			if s.cond == nil || s.cond.match(v) {
				return s, s.cond == nil || !s.cond.absolute()
			}
		}
		return &nums[len(nums)-1], true
	}
	switch {
	case len(nums) == 1:
		return &nums[0], true
	case v < 0:
		return &nums[1], false
	case v == 0 && len(nums) == 3:
		return &nums[2], false
	}
	return &nums[0], false
}

func formatNumber(f *format, v float64) string {
	if len(f.sections) == 0 {
		return renderGeneral(v)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return renderGeneral(v)
	}
	sec, signed := selectSection(f, v)
	if len(sec.items) == 0 {
		return ""
	}
	if sec.kind == kindDate {
		return renderDateTime(sec, v)
	}
	minus := signed && v < 0
	return renderNumber(sec, math.Abs(v), minus)
}

// renderGeneral formats a value the way the General format does: integers
// without a decimal point, everything else with up to ten significant digits.
func renderGeneral(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'G', -1, 64)
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e11 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'G', 10, 64)
}

func currencySymbol(tok nfp.Token) string {
	for _, part := range tok.Parts {
		if part.Token.TType == nfp.TokenSubTypeCurrencyString {
			return strings.TrimPrefix(part.Token.TValue, "$")
		}
	}
	return ""
}

// ── number renderer ──────────────────────────────────────────────────────────

type zone int

const (
	zoneInt zone = iota
	zoneFrac
	zoneExp
	zoneNum
	zoneDen
)

type slotKind int

const (
	slotLiteral slotKind = iota
	slotDigit
	slotDecimal
	slotExponent
	slotFraction
	slotDenominator
	slotGeneral
)

type slot struct {
	kind slotKind
	zone zone
	ph   byte
	text string
}

type numberLayout struct {
	slots       []slot
	grouping    bool
	scale       int
	percent     int
	hasExp      bool
	expPlus     bool
	hasFraction bool
	denominator int
	count       map[zone]int
}

func isPlaceholder(ttype string) bool {
	return ttype == nfp.TokenTypeZeroPlaceHolder ||
		ttype == nfp.TokenTypeHashPlaceHolder ||
		ttype == nfp.TokenTypeDigitalPlaceHolder
}

func layoutOf(items []nfp.Token) *numberLayout {
	l := &numberLayout{count: make(map[zone]int)}

	// The numerator of a fraction is the placeholder run right before '/'.
	numStart := -1
	for i, tok := range items {
		if tok.TType == nfp.TokenTypeFraction {
			l.hasFraction = true
			numStart = i
			for numStart > 0 && isPlaceholder(items[numStart-1].TType) {
				numStart--
			}
			break
		}
	}
	// Separators after the last integer placeholder scale by 1000.
	lastInt := -1
	for i, tok := range items {
		if tok.TType == nfp.TokenTypeDecimalPoint || tok.TType == nfp.TokenTypeExponential ||
			(numStart >= 0 && i >= numStart) {
			break
		}
		if isPlaceholder(tok.TType) {
			lastInt = i
		}
	}

	z := zoneInt
	for i, tok := range items {
		switch tok.TType {
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder, nfp.TokenTypeDigitalPlaceHolder:
			if z == zoneInt && numStart >= 0 && i >= numStart {
				z = zoneNum
			}
			for j := 0; j < len(tok.TValue); j++ {
				l.slots = append(l.slots, slot{kind: slotDigit, zone: z, ph: tok.TValue[j]})
				l.count[z]++
			}
		case nfp.TokenTypeDecimalPoint:
			if z == zoneInt {
				z = zoneFrac
				l.slots = append(l.slots, slot{kind: slotDecimal})
				continue
			}
			l.slots = append(l.slots, slot{text: tok.TValue})
		case nfp.TokenTypeThousandsSeparator:
			if z == zoneInt && i < lastInt {
				l.grouping = true
			} else if z == zoneInt || z == zoneFrac {
				l.scale++
			}
		case nfp.TokenTypePercent:
			l.percent += len(tok.TValue)
			l.slots = append(l.slots, slot{text: tok.TValue})
		case nfp.TokenTypeExponential:
			z = zoneExp
			l.hasExp = true
			l.expPlus = strings.Contains(tok.TValue, "+")
			l.slots = append(l.slots, slot{kind: slotExponent, text: tok.TValue[:1]})
		case nfp.TokenTypeFraction:
			z = zoneDen
			l.slots = append(l.slots, slot{kind: slotFraction, text: tok.TValue})
		case nfp.TokenTypeDenominator:
			l.denominator, _ = strconv.Atoi(tok.TValue)
			l.slots = append(l.slots, slot{kind: slotDenominator, text: tok.TValue})
		case nfp.TokenTypeLiteral, nfp.TokenTypeAlignment:
			l.slots = append(l.slots, slot{text: tok.TValue})
		case nfp.TokenTypeCurrencyLanguage:
			l.slots = append(l.slots, slot{text: currencySymbol(tok)})
		case nfp.TokenTypeGeneral, nfp.TokenTypeTextPlaceHolder:
			l.slots = append(l.slots, slot{kind: slotGeneral})
		}
	}
	return l
}

func renderNumber(sec *section, v float64, minus bool) string {
	l := layoutOf(sec.items)
	for i := 0; i < l.percent; i++ {
		v *= 100
	}
	for i := 0; i < l.scale; i++ {
		v /= 1000
	}

	digits := map[zone]string{}
	blankFraction := false
	switch {
	case l.hasExp:
		mant, exp := scientific(v, l.count[zoneInt], l.count[zoneFrac])
		digits[zoneInt], digits[zoneFrac] = splitFixed(mant, l.count[zoneFrac])
		e := exp
		if e < 0 {
			e = -e
		}
		digits[zoneExp] = strconv.Itoa(e)
		sign := ""
		switch {
		case exp < 0:
			sign = "-"
		case l.expPlus:
			sign = "+"
		}
		l.slots = withExponentSign(l.slots, sign)
	case l.hasFraction:
		whole, frac := 0.0, v
		if l.count[zoneInt] > 0 {
			whole = math.Floor(v)
			frac = v - whole
		}
		num, den := fraction(frac, l.denominator, l.count[zoneDen])
		if num == den {
			whole++
			num = 0
		}
		if whole > 0 {
			digits[zoneInt] = strconv.FormatFloat(whole, 'f', 0, 64)
		}
		if num == 0 && l.count[zoneInt] > 0 {
			blankFraction = true
		} else {
			digits[zoneNum] = strconv.Itoa(num)
			digits[zoneDen] = strconv.Itoa(den)
		}
	default:
		digits[zoneInt], digits[zoneFrac] = splitFixed(v, l.count[zoneFrac])
	}

	out := fillDigits(l, digits, blankFraction, v)
	if minus {
		return "-" + out
	}
	return out
}

func withExponentSign(slots []slot, sign string) []slot {
	for i := range slots {
		if slots[i].kind == slotExponent {
			slots[i].text = slots[i].text[:1] + sign
		}
	}
	return slots
}

// scientific splits v into a mantissa and exponent.  With more than one
// integer placeholder the exponent is a multiple of their count.
func scientific(v float64, intDigits, fracDigits int) (float64, int) {
	if v == 0 {
		return 0, 0
	}
	exp := int(math.Floor(math.Log10(v)))
	switch {
	case intDigits > 1:
		exp = int(math.Floor(float64(exp)/float64(intDigits))) * intDigits
	case intDigits == 0:
		exp++
	}
	mant := v / math.Pow10(exp)
	if intDigits <= 1 {
		limit := 10.0
		if intDigits == 0 {
			limit = 1
		}
		rounded, _ := strconv.ParseFloat(strconv.FormatFloat(mant, 'f', fracDigits, 64), 64)
		if rounded >= limit {
			mant /= 10
			exp++
		}
	}
	return mant, exp
}

// splitFixed rounds v to frac decimals and returns its integer and fraction
// digits.  A zero integer part has no digits.
func splitFixed(v float64, frac int) (string, string) {
	// half away from zero, strconv would round half to even
	p := math.Pow10(frac)
	if r := math.Round(v*p) / p; !math.IsInf(r, 0) && !math.IsNaN(r) {
		v = r
	}
	s := strconv.FormatFloat(v, 'f', frac, 64)
	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
	}
	if intPart == "0" {
		intPart = ""
	}
	return intPart, fracPart
}

// fraction approximates v in [0,1) with the fixed denominator, or with the
// closest fraction whose denominator has at most digits digits.
func fraction(v float64, fixed, digits int) (int, int) {
	if fixed > 0 {
		return int(math.Round(v * float64(fixed))), fixed
	}
	if digits < 1 {
		digits = 1
	}
	maxDen := int(math.Pow10(digits)) - 1
	bestNum, bestDen, bestErr := 0, 1, math.Inf(1)
	for den := 1; den <= maxDen; den++ {
		num := int(math.Round(v * float64(den)))
		if e := math.Abs(v - float64(num)/float64(den)); e < bestErr-1e-12 {
			bestNum, bestDen, bestErr = num, den, e
		}
	}
	return bestNum, bestDen
}

func padRune(ph byte) string {
	switch ph {
	case '0':
		return "0"
	case '?':
		return " "
	}
	return ""
}

func insertThousandsSep(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(n + n/3)
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// rightAligned spreads digits over the placeholders of a zone from the right;
// surplus digits go to the first placeholder.
func rightAligned(phs []byte, digits string) []string {
	out := make([]string, len(phs))
	d := len(digits)
	for i := len(phs) - 1; i >= 0; i-- {
		if d > 0 {
			out[i] = digits[d-1 : d]
			d--
			continue
		}
		out[i] = padRune(phs[i])
	}
	if d > 0 && len(out) > 0 {
		out[0] = digits[:d] + out[0]
	}
	return out
}

// leftAligned spreads digits over the placeholders from the left.  Trailing
// zeros are dropped for '#' and blanked for '?'.
func leftAligned(phs []byte, digits string, trimZeros bool) []string {
	out := make([]string, len(phs))
	for i := range phs {
		if i < len(digits) {
			out[i] = digits[i : i+1]
		} else {
			out[i] = padRune(phs[i])
		}
	}
	if trimZeros {
		for i := len(phs) - 1; i >= 0 && phs[i] != '0' && (out[i] == "0" || out[i] == ""); i-- {
			out[i] = padRune(phs[i])
		}
	}
	return out
}

func fillDigits(l *numberLayout, digits map[zone]string, blankFraction bool, v float64) string {
	phs := map[zone][]byte{}
	for _, s := range l.slots {
		if s.kind == slotDigit {
			phs[s.zone] = append(phs[s.zone], s.ph)
		}
	}
	filled := map[zone][]string{
		zoneInt:  rightAligned(phs[zoneInt], digits[zoneInt]),
		zoneFrac: leftAligned(phs[zoneFrac], digits[zoneFrac], true),
		zoneExp:  rightAligned(phs[zoneExp], digits[zoneExp]),
		zoneNum:  rightAligned(phs[zoneNum], digits[zoneNum]),
		zoneDen:  leftAligned(phs[zoneDen], digits[zoneDen], false),
	}
	if l.grouping && len(filled[zoneInt]) > 0 {
		joined := strings.Join(filled[zoneInt], "")
		trimmed := strings.TrimLeft(joined, " ")
		grouped := strings.Repeat(" ", len(joined)-len(trimmed)) + insertThousandsSep(trimmed)
		filled[zoneInt] = make([]string, len(filled[zoneInt]))
		filled[zoneInt][0] = grouped
	}

	var b strings.Builder
	pos := map[zone]int{}
	for _, s := range l.slots {
		switch s.kind {
		case slotDigit:
			out := filled[s.zone][pos[s.zone]]
			pos[s.zone]++
			if blankFraction && (s.zone == zoneNum || s.zone == zoneDen) {
				out = strings.Repeat(" ", len(out))
				if out == "" {
					out = " "
				}
			}
			b.WriteString(out)
		case slotDecimal:
			b.WriteByte('.')
		case slotFraction:
			if blankFraction {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(s.text)
		case slotDenominator:
			if blankFraction {
				b.WriteString(strings.Repeat(" ", len(s.text)))
				continue
			}
			b.WriteString(s.text)
		case slotGeneral:
			b.WriteString(renderGeneral(v))
		default:
			b.WriteString(s.text)
		}
	}
	return b.String()
}

// ── date/time renderer ───────────────────────────────────────────────────────

func renderDateTime(sec *section, serial float64) string {
	if serial < 0 {
		return renderGeneral(serial)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return renderGeneral(serial)
	}

	subSecond := 0
	hasAmPm := false
	for i, tok := range sec.items {
		if tok.TType == nfp.TokenTypeDateTimes {
			upper := strings.ToUpper(tok.TValue)
			if upper == "AM/PM" || upper == "A/P" {
				hasAmPm = true
			}
		}
		if tok.TType == nfp.TokenTypeDecimalPoint && i+1 < len(sec.items) &&
			sec.items[i+1].TType == nfp.TokenTypeZeroPlaceHolder {
			subSecond = len(sec.items[i+1].TValue)
		}
	}
	t = t.Round(time.Duration(math.Pow10(9 - subSecond)))

	var b strings.Builder
	lastWasHour := false
	for i := 0; i < len(sec.items); i++ {
		tok := sec.items[i]
		switch tok.TType {
		case nfp.TokenTypeDateTimes:
			upper := strings.ToUpper(tok.TValue)
			minute := lastWasHour || nextIsSecond(sec.items[i+1:])
			b.WriteString(renderDateToken(upper, t, hasAmPm, minute))
			lastWasHour = upper == "H" || upper == "HH"
		case nfp.TokenTypeElapsedDateTimes:
			upper := strings.ToUpper(tok.TValue)
			b.WriteString(renderElapsed(upper, serial))
			lastWasHour = upper == "H" || upper == "HH"
		case nfp.TokenTypeDecimalPoint:
			if subSecond > 0 && i+1 < len(sec.items) {
				frac := fmt.Sprintf("%09d", t.Nanosecond())[:subSecond]
				b.WriteString("." + frac)
				i++
				continue
			}
			b.WriteString(tok.TValue)
		case nfp.TokenTypeLiteral, nfp.TokenTypeAlignment:
			b.WriteString(tok.TValue)
		case nfp.TokenTypeCurrencyLanguage:
			b.WriteString(currencySymbol(tok))
		case nfp.TokenTypeGeneral:
			b.WriteString(renderGeneral(serial))
		default:
			lastWasHour = false
		}
	}
	if b.Len() == 0 {
		return renderGeneral(serial)
	}
	return b.String()
}

// nextIsSecond reports whether the next date token is a seconds token, which
// makes a preceding m or mm a minutes token.
func nextIsSecond(items []nfp.Token) bool {
	for _, tok := range items {
		if tok.TType == nfp.TokenTypeDateTimes || tok.TType == nfp.TokenTypeElapsedDateTimes {
			upper := strings.ToUpper(tok.TValue)
			return upper == "S" || upper == "SS"
		}
	}
	return false
}

func hour12(h int) int {
	h %= 12
	if h == 0 {
		return 12
	}
	return h
}

func renderDateToken(upper string, t time.Time, hasAmPm, minute bool) string {
	switch upper {
	case "YYYY", "YYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY", "Y":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "MMMMM":
		return t.Month().String()[:1]
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		if minute {
			return fmt.Sprintf("%02d", t.Minute())
		}
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		if minute {
			return strconv.Itoa(t.Minute())
		}
		return strconv.Itoa(int(t.Month()))
	case "DDDD":
		return t.Weekday().String()
	case "DDD":
		return t.Weekday().String()[:3]
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	case "HH":
		h := t.Hour()
		if hasAmPm {
			h = hour12(h)
		}
		return fmt.Sprintf("%02d", h)
	case "H":
		h := t.Hour()
		if hasAmPm {
			h = hour12(h)
		}
		return strconv.Itoa(h)
	case "SS":
		return fmt.Sprintf("%02d", t.Second())
	case "S":
		return strconv.Itoa(t.Second())
	case "AM/PM":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "A/P":
		if t.Hour() < 12 {
			return "A"
		}
		return "P"
	}
	return ""
}

// renderElapsed renders an elapsed token ([h], [mm], [ss] with the brackets
// stripped) from the raw serial.
func renderElapsed(upper string, serial float64) string {
	seconds := int64(math.Round(serial * 86400))
	switch upper {
	case "H", "HH":
		return fmt.Sprintf("%0*d", len(upper), seconds/3600)
	case "M", "MM":
		return fmt.Sprintf("%0*d", len(upper), seconds/60)
	case "S", "SS":
		return fmt.Sprintf("%0*d", len(upper), seconds)
	}
	return ""
}
