package cli

import (
	"reflect"

	"github.com/alecthomas/kong"

	"github.com/mazrean/hashfiles/internal/domain"
)

const (
	// defaultConfigPath is the default path to the .hashfiles.toml defaults file
	defaultConfigPath = ".hashfiles.toml"
)

// settingsFlags are the flags that can also be stored in .hashfiles.toml.
// They are embedded in every command that reads or writes defaults.
type settingsFlags struct {
	Algorithm        string `help:"Hash algorithm (default SHA3-256). See 'hashfiles algorithms'" short:"a"`
	Encoding         string `help:"Output encoding: hex, base64, base32, or u32 (CRC32 only). Default hex, u32 for CRC32" short:"e"`
	SingleThread     bool   `help:"Hash files one at a time, in input order" short:"s"`
	ExcludeFilenames bool   `help:"Print only the hash, without the file name" short:"x"`
	CaseSensitive    bool   `help:"Match glob patterns case-sensitively" short:"c"`
	NoProgress       bool   `help:"Disable progress indicators" short:"n"`
	Limit            int    `help:"Hash at most this many files (0 = unlimited)" short:"l"`
	Jobs             int    `help:"Number of parallel workers (0 = one per CPU)" short:"j"`
	Summary          bool   `help:"Print an h1: summary hash over all successfully hashed files"`
}

// toConfig converts the flags into a defaults file entry.
func (f settingsFlags) toConfig() *domain.Config {
	return &domain.Config{
		Algorithm:        f.Algorithm,
		Encoding:         f.Encoding,
		Jobs:             f.Jobs,
		Limit:            f.Limit,
		SingleThread:     f.SingleThread,
		ExcludeFilenames: f.ExcludeFilenames,
		CaseSensitive:    f.CaseSensitive,
		NoProgress:       f.NoProgress,
		Summary:          f.Summary,
	}
}

// globalBool reads a boolean flag declared on the root CLI struct.
func globalBool(ctx *kong.Context, name string) bool {
	if model := ctx.Model; model != nil && model.Target.IsValid() {
		if field := model.Target.FieldByName(name); field.IsValid() && field.Kind() == reflect.Bool {
			return field.Bool()
		}
	}
	return false
}

// globalString reads a string flag declared on the root CLI struct.
func globalString(ctx *kong.Context, name, fallback string) string {
	if model := ctx.Model; model != nil && model.Target.IsValid() {
		if field := model.Target.FieldByName(name); field.IsValid() && field.Kind() == reflect.String && field.String() != "" {
			return field.String()
		}
	}
	return fallback
}
