package feature

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Coerce convierte el texto crudo en Number si tiene un prefijo numerico
// valido, o lo devuelve como Text sin modificar.
func Coerce(raw string) Value {
	if f, ok := ParsePrefix(raw); ok {
		return Number(f)
	}
	return Text(raw)
}

// ParsePrefix parsea el prefijo numerico decimal mas largo de s, con la
// semantica de parseFloat: ignora espacios iniciales, acepta signo,
// fraccion, exponente e "Infinity", y descarta todo lo que sigue.
// "42abc" -> 42, "5 days" -> 5, "abc" -> false.
func ParsePrefix(s string) (float64, bool) {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isSpace(r) {
			break
		}
		i += size
	}

	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if i > start && s[start] == '-' {
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
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	end := i
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
			end = k
		}
	}

	f, err := strconv.ParseFloat(s[start:end], 64)
	if err != nil {
		// Fuera de rango: ParseFloat ya devuelve +-Inf o 0, que es lo que queremos.
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isSpace replica StrWhiteSpaceChar: no usa unicode.IsSpace porque ese
// incluye U+0085, que parseFloat no salta.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}
