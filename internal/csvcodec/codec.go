// Package csvcodec implements the field escaping and line parsing rules the
// data files use. The rules predate this tool and are kept byte-compatible so
// existing files keep loading: fields are quote-wrapped only when they contain
// a reserved character, embedded quotes are doubled, and a malformed line is
// parsed as far as it goes rather than rejected.
package csvcodec

import "strings"

const baseReserved = ",\"\n\r"

// Escape quote-wraps field when it contains a comma, double quote, newline or
// carriage return, doubling any embedded quotes. Other fields pass through
// unchanged.
func Escape(field string) string {
	if !strings.ContainsAny(field, baseReserved) {
		return field
	}
	return quote(field)
}

// EscapeList behaves like Escape but additionally treats a semicolon as
// reserved. It is used for fields whose value is itself a semicolon-joined
// list, so a stray semicolon cannot masquerade as a list separator.
func EscapeList(field string) string {
	if !strings.ContainsAny(field, baseReserved+";") {
		return field
	}
	return quote(field)
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// Unescape reverses Escape: if field is wrapped in double quotes the outer
// pair is stripped and doubled quotes collapse to one. Anything else is
// returned unchanged.
func Unescape(field string) string {
	if len(field) < 2 || field[0] != '"' || field[len(field)-1] != '"' {
		return field
	}
	return strings.ReplaceAll(field[1:len(field)-1], `""`, `"`)
}

// ParseLine splits one CSV line into raw field values. A comma inside quotes
// is literal, a doubled quote inside quotes yields one quote character, and
// the enclosing quotes themselves are consumed. An unterminated quote is not
// an error: the rest of the line simply lands in the final field.
func ParseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	fields = append(fields, current.String())
	return fields
}
