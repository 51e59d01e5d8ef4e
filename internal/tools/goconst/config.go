package goconst

import (
	"flag"
	"fmt"
	"go/token"
	"strings"

	platformcmd "github.com/louisbranch/goconst/internal/platform/cmd"
	"github.com/louisbranch/goconst/internal/platform/enum"
	apperrors "github.com/louisbranch/goconst/internal/platform/errors"
)

// StdoutTarget selects standard output instead of a file.
const StdoutTarget = "stdout"

// Format selects the artifact rendered for each union.
type Format string

const (
	// TypeScript `as const` array plus a derived literal union type
	FormatTypeScript Format = "ts"
	// Markdown catalog table for documentation sites
	FormatMarkdown Format = "md"
	// SQLite lookup table guarded by a CHECK constraint
	FormatSQL Format = "sql"
)

var formats = enum.MustNew("Format",
	enum.Member[Format]{Value: FormatTypeScript, Description: "TypeScript `as const` array plus a derived literal union type"},
	enum.Member[Format]{Value: FormatMarkdown, Description: "Markdown catalog table for documentation sites"},
	enum.Member[Format]{Value: FormatSQL, Description: "SQLite lookup table guarded by a CHECK constraint"},
)

func (f Format) String() string { return string(f) }

// UnmarshalText accepts the same spellings as the -format flag.
func (f *Format) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}

// Set implements flag.Value.
func (f *Format) Set(value string) error {
	parsed, ok := formats.Normalize(value)
	if !ok {
		return fmt.Errorf("unknown format %q (want one of %s)", value, strings.Join(formats.Strings(), ", "))
	}
	*f = parsed
	return nil
}

// Emit selects which side of a constant declaration becomes the token.
type Emit string

const (
	// Emit the constant's string value
	EmitValue Emit = "value"
	// Emit the constant's Go identifier
	EmitName Emit = "name"
)

var emits = enum.MustNew("Emit",
	enum.Member[Emit]{Value: EmitValue, Description: "Emit the constant's string value"},
	enum.Member[Emit]{Value: EmitName, Description: "Emit the constant's Go identifier"},
)

func (e Emit) String() string { return string(e) }

// UnmarshalText accepts the same spellings as the -emit flag.
func (e *Emit) UnmarshalText(text []byte) error {
	return e.Set(string(text))
}

// Set implements flag.Value.
func (e *Emit) Set(value string) error {
	parsed, ok := emits.Normalize(value)
	if !ok {
		return fmt.Errorf("unknown emit mode %q (want one of %s)", value, strings.Join(emits.Strings(), ", "))
	}
	*e = parsed
	return nil
}

// Config holds generator configuration. Environment variables carry the
// GOCONST_ prefix; flags override them.
type Config struct {
	Types    string `env:"TYPE"`
	Out      string `env:"OUT" envDefault:"stdout"`
	Format   Format `env:"FORMAT" envDefault:"ts"`
	Emit     Emit   `env:"EMIT" envDefault:"value"`
	Name     string
	Dir      string
	Patterns []string
}

func registerFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Types, "type", cfg.Types, "comma separated list of type names (required)")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "output target: stdout or a file path, relative paths resolved against -dir")
	fs.Var(&cfg.Format, "format", "output format: "+strings.Join(formats.Strings(), ", "))
	fs.Var(&cfg.Emit, "emit", "token source: "+strings.Join(emits.Strings(), ", "))
	fs.StringVar(&cfg.Name, "name", "", "union base name override (single type only)")
	fs.StringVar(&cfg.Dir, "dir", "", "directory to load packages from (default: working dir)")
}

// ParseConfig parses environment and flags into a Config. Positional
// arguments are package patterns.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args, registerFlags); err != nil {
		return Config{}, err
	}
	cfg.Patterns = fs.Args()
	return cfg, nil
}

// TypeNames splits the -type flag into trimmed, non-empty names.
func (c Config) TypeNames() []string {
	var names []string
	for _, name := range strings.Split(c.Types, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Validate fills defaults and rejects inconsistent settings.
func (c *Config) Validate() error {
	names := c.TypeNames()
	if len(names) == 0 {
		return apperrors.New(apperrors.CodeGeneratorConfig, "-type is required")
	}
	for _, name := range names {
		if !token.IsIdentifier(name) {
			return apperrors.WithMetadata(apperrors.CodeGeneratorConfig,
				fmt.Sprintf("-type %q is not a Go identifier", name), map[string]string{"type": name})
		}
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name != "" && len(names) > 1 {
		return apperrors.New(apperrors.CodeGeneratorConfig, "-name requires a single -type")
	}
	if c.Name != "" && !token.IsIdentifier(c.Name) {
		return apperrors.WithMetadata(apperrors.CodeGeneratorConfig,
			fmt.Sprintf("-name %q is not an identifier", c.Name), map[string]string{"name": c.Name})
	}
	if c.Format == "" {
		c.Format = FormatTypeScript
	}
	if !formats.Contains(c.Format) {
		return apperrors.WithMetadata(apperrors.CodeGeneratorConfig,
			fmt.Sprintf("unknown format %q", c.Format), map[string]string{"format": string(c.Format)})
	}
	if c.Emit == "" {
		c.Emit = EmitValue
	}
	if !emits.Contains(c.Emit) {
		return apperrors.WithMetadata(apperrors.CodeGeneratorConfig,
			fmt.Sprintf("unknown emit mode %q", c.Emit), map[string]string{"emit": string(c.Emit)})
	}
	if strings.TrimSpace(c.Out) == "" {
		c.Out = StdoutTarget
	}
	if len(c.Patterns) == 0 {
		c.Patterns = []string{"."}
	}
	return nil
}
