package goconst

import (
	"embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	apperrors "github.com/louisbranch/goconst/internal/platform/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateFiles = map[Format]string{
	FormatTypeScript: "templates/union.ts.tmpl",
	FormatMarkdown:   "templates/catalog.md.tmpl",
	FormatSQL:        "templates/lookup.sql.tmpl",
}

// Data is the template input: every union rendered into one target.
type Data struct {
	Unions []Union
}

// Renderer writes unions in one output format.
type Renderer interface {
	Render(w io.Writer, unions []Union) error
}

type templateRenderer struct {
	template *template.Template
}

// NewRenderer returns the renderer for format.
func NewRenderer(format Format) (Renderer, error) {
	file, ok := templateFiles[format]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeGeneratorConfig,
			fmt.Sprintf("unknown format %q", format), map[string]string{"format": string(format)})
	}
	raw, err := templateFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", file, err)
	}
	tmpl, err := template.New(string(format)).Funcs(templateFuncs).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", file, err)
	}
	return templateRenderer{template: tmpl}, nil
}

// Render executes the template for unions.
func (r templateRenderer) Render(w io.Writer, unions []Union) error {
	if w == nil {
		return fmt.Errorf("output is required")
	}
	return r.template.Execute(w, Data{Unions: unions})
}

var templateFuncs = template.FuncMap{
	"splitLines": splitLines,
	"quote":      strconv.Quote,
	"cell":       markdownCell,
	"snake":      snakeCase,
	"sqlQuote":   sqlQuote,
	"sqlList":    sqlList,
	"inc":        func(i int) int { return i + 1 },
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// markdownCell keeps a doc comment inside one table cell.
func markdownCell(s string) string {
	lines := splitLines(s)
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, "|", `\|`)
	}
	return strings.Join(lines, "<br>")
}

func sqlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sqlList(fields []Field) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = sqlQuote(field.Token)
	}
	return strings.Join(quoted, ", ")
}
