package goconst

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/goconst/internal/platform/errors"
	"github.com/louisbranch/goconst/internal/platform/otel"
)

// Run loads cfg.Patterns, collects the constants of every requested type and
// writes the rendered artifact to cfg.Out. Nothing is written when any step
// fails.
func Run(ctx context.Context, cfg Config, stdout, stderr io.Writer) (err error) {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	logger := log.New(stderr, "goconst: ", 0)

	if err := cfg.Validate(); err != nil {
		return err
	}
	renderer, err := NewRenderer(cfg.Format)
	if err != nil {
		return err
	}

	ctx, span := otel.Tracer().Start(ctx, "goconst.run", trace.WithAttributes(
		attribute.String("goconst.types", cfg.Types),
		attribute.String("goconst.format", string(cfg.Format)),
		attribute.StringSlice("goconst.patterns", cfg.Patterns),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	unions, err := collect(ctx, cfg)
	if err != nil {
		return err
	}

	_, renderSpan := otel.Tracer().Start(ctx, "goconst.render")
	var buf bytes.Buffer
	err = renderer.Render(&buf, unions)
	renderSpan.End()
	if err != nil {
		return fmt.Errorf("render %s: %w", cfg.Format, err)
	}

	if cfg.Out == StdoutTarget {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	target := outputPath(cfg)
	if err := writeOutput(target, buf.Bytes()); err != nil {
		return err
	}
	logger.Printf("wrote %d union(s) to %s", len(unions), target)
	return nil
}

func collect(ctx context.Context, cfg Config) ([]Union, error) {
	ctx, span := otel.Tracer().Start(ctx, "goconst.load")
	defer span.End()

	pkgs, err := Load(ctx, cfg.Dir, cfg.Patterns)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("goconst.packages", len(pkgs)))

	var unions []Union
	owners := map[string]string{}
	for _, typeName := range cfg.TypeNames() {
		found := false
		for _, pkg := range pkgs {
			constants := FindConstants(pkg, typeName)
			if len(constants) == 0 {
				continue
			}
			found = true
			union := BuildUnion(pkg.Path, constants, typeName, cfg.Name, cfg.Emit)
			if owner, ok := owners[union.UnionName]; ok {
				return nil, apperrors.WithMetadata(apperrors.CodeGeneratorConfig,
					fmt.Sprintf("union %s declared by both %s and %s", union.UnionName, owner, pkg.Path),
					map[string]string{"union": union.UnionName})
			}
			owners[union.UnionName] = pkg.Path
			unions = append(unions, union)
		}
		if !found {
			paths := make([]string, len(pkgs))
			for i, pkg := range pkgs {
				paths[i] = pkg.Path
			}
			return nil, apperrors.WithMetadata(apperrors.CodeGeneratorNoConstants,
				fmt.Sprintf("no string constants of type %s in %s", typeName, strings.Join(paths, ", ")),
				map[string]string{"type": typeName})
		}
	}
	return unions, nil
}

// outputPath resolves a relative file target against cfg.Dir, the directory
// packages are loaded from.
func outputPath(cfg Config) string {
	if cfg.Dir == "" || filepath.IsAbs(cfg.Out) {
		return cfg.Out
	}
	return filepath.Join(cfg.Dir, cfg.Out)
}

func writeOutput(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
