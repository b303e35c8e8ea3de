package printer

import (
	"strings"
	"unicode"
)

// isIdentifierName reports whether name can be written as an unquoted
// property key. Reserved words are valid property names.
func isIdentifierName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			return false
		}
	}
	return true
}

// quote renders s as a string literal using the given quote character.
func quote(s string, q byte) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		default:
			if r < 0x20 || r == 0x2028 || r == 0x2029 {
				b.WriteString(`\u`)
				b.WriteString(hex4(r))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

func hex4(r rune) string {
	const digits = "0123456789abcdef"
	return string([]byte{
		digits[(r>>12)&0xf],
		digits[(r>>8)&0xf],
		digits[(r>>4)&0xf],
		digits[r&0xf],
	})
}

// escapeTemplate escapes text for use inside a template literal.
func escapeTemplate(s string) string {
	r := strings.NewReplacer("\\", `\\`, "`", "\\`", "${", `\${`)
	return r.Replace(s)
}
