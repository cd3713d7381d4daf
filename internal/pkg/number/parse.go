package number

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	reDecimal  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	reInteger  = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
	infinities = map[string]float64{
		"Infinity":  math.Inf(1),
		"+Infinity": math.Inf(1),
		"-Infinity": math.Inf(-1),
	}
)

// ParseNice stringifies data, turns the first comma into a decimal point,
// drops every whitespace rune and parses the rest the way a browser's
// Number() does: decimals with an optional exponent, unsigned 0x/0o/0b
// integers and the spelled-out "Infinity". Out of range decimals become
// ±Inf. Anything else, NaN included, is 0.
func ParseNice(data any) float64 {
	switch v := data.(type) {
	case nil:
		return 0
	case float64:
		return orZero(v)
	case float32:
		return orZero(float64(v))
	}

	s := strings.Replace(fmt.Sprint(data), ",", ".", 1)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if inf, ok := infinities[s]; ok {
		return inf
	}
	if reInteger.MatchString(s) {
		n, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return 0
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f
	}
	if !reDecimal.MatchString(s) {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
