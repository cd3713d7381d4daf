// Package number parses loosely formatted numeric input and renders numbers
// with the separators of the active locale.
//
// ParseNice accepts what people type into forms ("1,5", " 1 000,25 ") and
// never fails: anything unparseable is 0. Formatter keeps the active language
// and renders through go-playground locale data.
package number
