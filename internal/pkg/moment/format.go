package moment

import (
	"strconv"
	"strings"
	"time"
)

// tokens is ordered so that longer tokens are tried first.
var tokens = []string{"YYYY", "SSS", "YY", "MM", "DD", "hh", "mm", "ss", "M", "D", "h", "m", "s"}

// Format renders m with a token pattern.
//
//	YYYY YY   year
//	MM M      month
//	DD D      day of month
//	hh h      hour (00-23)
//	mm m      minute
//	ss s      second
//	SSS       millisecond
//
// Text in square brackets is copied verbatim without the brackets; any other
// character is copied as is.
func (m Moment) Format(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 8)

	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			if end := strings.IndexByte(pattern[i+1:], ']'); end >= 0 {
				b.WriteString(pattern[i+1 : i+1+end])
				i += end + 2
				continue
			}
		}

		matched := false
		for _, tok := range tokens {
			if strings.HasPrefix(pattern[i:], tok) {
				b.WriteString(m.token(tok))
				i += len(tok)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}

	return b.String()
}

func (m Moment) token(tok string) string {
	t := m.t
	switch tok {
	case "YYYY":
		return pad(t.Year(), 4)
	case "YY":
		return pad(t.Year()%100, 2)
	case "MM":
		return pad(int(t.Month()), 2)
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DD":
		return pad(t.Day(), 2)
	case "D":
		return strconv.Itoa(t.Day())
	case "hh":
		return pad(t.Hour(), 2)
	case "h":
		return strconv.Itoa(t.Hour())
	case "mm":
		return pad(t.Minute(), 2)
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return pad(t.Second(), 2)
	case "s":
		return strconv.Itoa(t.Second())
	case "SSS":
		return pad(t.Nanosecond()/int(time.Millisecond), 3)
	}
	return tok
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
