package cli

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mazrean/hashfiles/internal/domain"
)

// AlgorithmsCmd represents the algorithms command
type AlgorithmsCmd struct{}

// Run executes the algorithms command
func (c *AlgorithmsCmd) Run(ctx *kong.Context) error {
	return c.runWithLogger(NewLogger(globalBool(ctx, "Debug")))
}

// runWithLogger lists the supported algorithms with a custom logger (for testing)
func (c *AlgorithmsCmd) runWithLogger(logger *Logger) error {
	logger.Info("%-12s %-36s %-5s %s", "NAME", "ALIASES", "BYTES", "ENCODING")
	logger.Info("%s", strings.Repeat("-", 66))

	for _, alg := range domain.SupportedAlgorithms() {
		name := alg.String()
		if alg == domain.DefaultAlgorithm {
			name += "*"
		}

		aliases := strings.Join(alg.Aliases(), ", ")
		if aliases == "" {
			aliases = "-"
		}

		encoding := domain.ResolveEncoding(alg, domain.EncodingUnspecified)
		logger.Info("%-12s %-36s %-5d %s", name, aliases, alg.DigestSize(), encoding)
	}

	logger.Info("")
	logger.Info("* default algorithm. Names and aliases are case-insensitive.")

	return nil
}
