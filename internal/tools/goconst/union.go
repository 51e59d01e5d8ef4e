package goconst

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Field is one token of a rendered union.
type Field struct {
	// Token is the literal emitted into the artifact.
	Token string
	// Name of the Go constant.
	Name string
	// Doc is the constant's doc comment, one line per "\n".
	Doc string
}

// Union is a closed literal vocabulary ready for rendering.
type Union struct {
	// Package is the import path the constants were read from.
	Package string
	// UnionName names the value list, e.g. eventTypes.
	UnionName string
	// TypeName names the derived type, e.g. EventType.
	TypeName string
	Fields   []Field
}

// BuildUnion names the union after base (or typeName when base is empty) and
// converts constants into fields.
func BuildUnion(pkgPath string, constants []Constant, typeName, base string, emit Emit) Union {
	if strings.TrimSpace(base) == "" {
		base = typeName
	}
	fields := make([]Field, len(constants))
	for i, c := range constants {
		token := c.Value
		if emit == EmitName {
			token = c.Name
		}
		fields[i] = Field{
			Token: token,
			Name:  c.Name,
			Doc:   c.Doc,
		}
	}
	return Union{
		Package:   pkgPath,
		UnionName: lowerFirst(base) + "s",
		TypeName:  upperFirst(base),
		Fields:    fields,
	}
}

// upperFirst upper-cases the first rune only, leaving the rest untouched.
// Casers are stateful, so one is built per call.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// snakeCase converts camelCase identifiers to snake_case.
func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
