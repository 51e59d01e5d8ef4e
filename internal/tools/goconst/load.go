package goconst

import (
	"context"
	"fmt"
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	apperrors "github.com/louisbranch/goconst/internal/platform/errors"
)

// Package is a loaded Go package reduced to what constant discovery needs.
type Package struct {
	Name  string
	Path  string
	Files []*ast.File
	// Types and Info are nil for packages built from bare syntax.
	Types *types.Package
	Info  *types.Info
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Load type-checks the packages matched by patterns relative to dir.
func Load(ctx context.Context, dir string, patterns []string) ([]*Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Tests:   false,
	}
	loaded, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeGeneratorPackageErrors, "load packages", err)
	}
	if len(loaded) == 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeGeneratorPackageErrors,
			fmt.Sprintf("no packages matching %s", strings.Join(patterns, " ")),
			map[string]string{"patterns": strings.Join(patterns, " ")})
	}

	var problems []string
	packages.Visit(loaded, nil, func(pkg *packages.Package) {
		for _, pkgErr := range pkg.Errors {
			problems = append(problems, pkgErr.Error())
		}
	})
	if len(problems) > 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeGeneratorPackageErrors,
			"package errors:\n"+strings.Join(problems, "\n"),
			map[string]string{"patterns": strings.Join(patterns, " ")})
	}

	out := make([]*Package, 0, len(loaded))
	for _, pkg := range loaded {
		out = append(out, &Package{
			Name:  pkg.Name,
			Path:  pkg.PkgPath,
			Files: pkg.Syntax,
			Types: pkg.Types,
			Info:  pkg.TypesInfo,
		})
	}
	return out, nil
}
