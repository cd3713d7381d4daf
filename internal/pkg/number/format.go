package number

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/id"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
	"go.uber.org/atomic"
)

const (
	// DefaultLanguage is used when no language is configured.
	DefaultLanguage = "en"

	defaultMaxFraction = 3
	maxFraction        = 20
)

// Formatter renders numbers for the active language. It is safe for
// concurrent use; SetLanguage affects every later call.
type Formatter struct {
	uni  *ut.UniversalTranslator
	lang *atomic.String
}

// NewFormatter returns a Formatter whose active language is lang.
func NewFormatter(lang string) (*Formatter, error) {
	fallback := en.New()
	f := &Formatter{
		uni:  ut.New(fallback, fallback, ru.New(), de.New(), fr.New(), es.New(), id.New(), ja.New()),
		lang: atomic.NewString(DefaultLanguage),
	}

	if strings.TrimSpace(lang) == "" {
		lang = DefaultLanguage
	}
	if err := f.SetLanguage(lang); err != nil {
		return nil, err
	}
	return f, nil
}

// SetLanguage switches the active language. Region suffixes are ignored, so
// "ru-RU" and "ru_RU" select "ru".
func (f *Formatter) SetLanguage(lang string) error {
	trans, err := f.translator(lang)
	if err != nil {
		return err
	}
	f.lang.Store(trans.Locale())
	return nil
}

// Language returns the active language.
func (f *Formatter) Language() string {
	return f.lang.Load()
}

// Nice parses num with ParseNice and renders it in the active language with
// at least precision fraction digits. Up to three fraction digits are kept
// when the value has them, as browsers do by default. Infinite values render
// as ∞.
func (f *Formatter) Nice(num any, precision int) string {
	trans, err := f.translator(f.lang.Load())
	if err != nil {
		trans = f.uni.GetFallback()
	}
	return nice(trans, num, precision)
}

// NiceIn renders num like Nice but for an explicit language.
func (f *Formatter) NiceIn(lang string, num any, precision int) (string, error) {
	trans, err := f.translator(lang)
	if err != nil {
		return "", err
	}
	return nice(trans, num, precision), nil
}

func (f *Formatter) translator(lang string) (locales.Translator, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if trans, found := f.uni.GetTranslator(lang); found && trans.Locale() == lang {
		return trans, nil
	}

	base, _, _ := strings.Cut(strings.ReplaceAll(lang, "-", "_"), "_")
	if trans, found := f.uni.GetTranslator(base); found && trans.Locale() == base {
		return trans, nil
	}
	return nil, goerror.NewNotFound(fmt.Sprintf("number: unsupported language %q", lang))
}

func nice(trans locales.Translator, num any, precision int) string {
	v := ParseNice(num)
	if math.IsInf(v, 1) {
		return "∞"
	}
	if math.IsInf(v, -1) {
		// the locale's minus sign
		return strings.TrimSuffix(trans.FmtNumber(-1, 0), "1") + "∞"
	}
	return trans.FmtNumber(v, uint64(fractionDigits(v, precision)))
}

// fractionDigits picks the digit count between precision and
// max(precision, 3) that drops trailing zeros beyond precision.
func fractionDigits(v float64, precision int) int {
	precision = min(max(precision, 0), maxFraction)
	limit := max(precision, defaultMaxFraction)

	s := strconv.FormatFloat(v, 'f', limit, 64)
	_, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")
	return max(len(frac), precision)
}
