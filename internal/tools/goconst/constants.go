package goconst

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strconv"
	"strings"
)

// Constant is one typed string constant and its doc comment.
type Constant struct {
	Name  string
	Value string
	Doc   string
}

// FindConstants returns the string constants of typeName declared in pkg, in
// file and declaration order.
func FindConstants(pkg *Package, typeName string) []Constant {
	if pkg == nil {
		return nil
	}
	var found []Constant
	for _, file := range pkg.Files {
		if file == nil {
			continue
		}
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.CONST {
				continue
			}
			for _, spec := range gen.Specs {
				valueSpec, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				doc := docText(valueSpec.Doc)
				if doc == "" && !gen.Lparen.IsValid() {
					doc = docText(gen.Doc)
				}
				for idx, name := range valueSpec.Names {
					if name.Name == "_" {
						continue
					}
					value, ok := constantValue(pkg, valueSpec, idx, typeName)
					if !ok {
						continue
					}
					found = append(found, Constant{
						Name:  name.Name,
						Value: value,
						Doc:   doc,
					})
				}
			}
		}
	}
	return found
}

// constantValue resolves the string value of the idx-th name in spec when it
// is declared with typeName. Type information is preferred; bare syntax only
// matches an explicit type identifier with a string literal.
func constantValue(pkg *Package, spec *ast.ValueSpec, idx int, typeName string) (string, bool) {
	if pkg.Info != nil {
		obj, ok := pkg.Info.Defs[spec.Names[idx]].(*types.Const)
		if !ok {
			return "", false
		}
		named, ok := obj.Type().(*types.Named)
		if !ok || named.Obj().Name() != typeName {
			return "", false
		}
		if pkg.Types != nil && named.Obj().Pkg() != pkg.Types {
			return "", false
		}
		if obj.Val().Kind() != constant.String {
			return "", false
		}
		return constant.StringVal(obj.Val()), true
	}

	ident, ok := spec.Type.(*ast.Ident)
	if !ok || ident.Name != typeName {
		return "", false
	}
	valueExpr := selectValueExpr(spec.Values, idx)
	lit, ok := valueExpr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	value, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

func selectValueExpr(values []ast.Expr, index int) ast.Expr {
	if index < len(values) {
		return values[index]
	}
	return nil
}

// docText strips comment markers and joins the lines with "\n".
func docText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}
	lines := make([]string, 0, len(group.List))
	for _, comment := range group.List {
		text := comment.Text
		switch {
		case isDirective(text):
			continue
		case strings.HasPrefix(text, "//"):
			lines = append(lines, strings.TrimSpace(strings.TrimPrefix(text, "//")))
		case strings.HasPrefix(text, "/*"):
			body := strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
			for _, line := range strings.Split(body, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// isDirective reports machine-readable comments such as //go:generate.
func isDirective(text string) bool {
	body, ok := strings.CutPrefix(text, "//")
	if !ok {
		return false
	}
	colon := strings.Index(body, ":")
	if colon <= 0 || colon+1 >= len(body) {
		return false
	}
	for _, r := range body[:colon] {
		if !('a' <= r && r <= 'z' || '0' <= r && r <= '9') {
			return false
		}
	}
	next := body[colon+1]
	return 'a' <= next && next <= 'z' || '0' <= next && next <= '9'
}
