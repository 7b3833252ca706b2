package record

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// CleanAmount drops every character other than digits, '.' and '-'.
//
//	"$1,234.56" → "1234.56"
//	"(12.00)"   → "12.00"
func CleanAmount(raw string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)
}

// ParseLeadingFloat parses the longest numeric prefix of s after leading
// whitespace, so "12abc" is 12 and "1.2.3" is 1.2. ok is false when s has no
// numeric prefix at all.
func ParseLeadingFloat(s string) (v float64, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		// Only range errors reach here; ParseFloat already returns ±Inf or 0.
		if ne, isNum := err.(*strconv.NumError); !isNum || ne.Err != strconv.ErrRange {
			return 0, false
		}
	}
	return v, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// NormalizeAmount converts a raw amount cell into its stored magnitude.
// ok is false when the cleaned value has no numeric prefix; callers then keep
// the raw value.
func NormalizeAmount(raw string) (string, bool) {
	v, ok := ParseLeadingFloat(CleanAmount(raw))
	if !ok {
		return raw, false
	}
	return strconv.FormatFloat(math.Abs(v), 'f', -1, 64), true
}

// FormatFixed renders v with exactly digits decimals. Exact ties round away
// from zero, so 0.125 becomes "0.13".
func FormatFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	neg := v < 0
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil))
	x := new(big.Float).SetPrec(512).SetFloat64(math.Abs(v))
	x.Mul(x, scale)
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil)

	s := n.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// FormatAmount renders a stored amount for display and export: two decimals
// when it parses as a number, the raw value otherwise.
func FormatAmount(raw string) string {
	v, ok := ParseLeadingFloat(raw)
	if !ok {
		return raw
	}
	return FormatFixed(v, 2)
}
