package jsvalue

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Serialize encodes v as a JavaScript literal that is safe to inline in HTML.
// Code values are written verbatim; everything else is JSON with HTML-sensitive
// characters escaped. Key order follows the Object order.
func Serialize(v Value) (string, error) {
	var b strings.Builder
	if err := write(&b, v, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Marshal converts v with From and serializes the result.
func Marshal(v any) (string, error) {
	val, err := From(v)
	if err != nil {
		return "", err
	}
	return Serialize(val)
}

// Quote returns s as an HTML-safe JavaScript string literal.
func Quote(s string) string {
	var b strings.Builder
	writeString(&b, s)
	return b.String()
}

func write(b *strings.Builder, v Value, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", ErrUnsupportedKind, MaxDepth)
	}
	switch x := v.(type) {
	case nil, Null:
		b.WriteString("null")
	case Bool:
		if x {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case Uint:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case Float:
		writeFloat(b, float64(x))
	case String:
		writeString(b, string(x))
	case Code:
		b.WriteString(string(x))
	case Array:
		b.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := write(b, item, depth+1); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case Object:
		seen := make(map[string]struct{}, len(x))
		b.WriteByte('{')
		for i, m := range x {
			if _, dup := seen[m.Key]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicateKey, m.Key)
			}
			seen[m.Key] = struct{}{}
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, m.Key)
			b.WriteByte(':')
			if err := write(b, m.Value, depth+1); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedKind, v)
	}
	return nil
}

// writeFloat formats like encoding/json: plain notation for ordinary
// magnitudes, exponent notation for very small or very large ones.
func writeFloat(b *strings.Builder, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		b.WriteString("null")
		return
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		if n := len(s); n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
	}
	b.WriteString(s)
}

const hexDigits = "0123456789abcdef"

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size == 1:
			b.WriteString(`\ufffd`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20, r == '"', r == '\'', r == '<', r == '>', r == '&':
			writeUnicodeEscape(b, r)
		case r == '\u2028', r == '\u2029':
			writeUnicodeEscape(b, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(r>>12)&0xF])
	b.WriteByte(hexDigits[(r>>8)&0xF])
	b.WriteByte(hexDigits[(r>>4)&0xF])
	b.WriteByte(hexDigits[r&0xF])
}
