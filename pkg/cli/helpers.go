package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/netfabric/aclmgr/pkg/ruleset"
	"github.com/netfabric/aclmgr/pkg/serializer"
)

// configureLogging installs the default slog handler. Debug wins over
// verbose; with neither flag only warnings and errors are shown.
func configureLogging(debug, verbose bool) {
	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// parseOutputFormat extracts and validates the output format from CLI flags.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json", outFormat)
	}
	return outFormat, nil
}

// configArg returns the required configuration file argument.
func configArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one configuration file argument")
	}
	return cmd.Args().First(), nil
}

// reportRuleErrors presents engine diagnostics: one line each, with the
// file name and 1-based line/column. Returns a summary error when err holds
// rule diagnostics, or err unchanged otherwise.
func reportRuleErrors(w io.Writer, path string, err error) error {
	var errs ruleset.RuleErrors
	if !errors.As(err, &errs) {
		return err
	}
	for _, re := range errs {
		fmt.Fprintf(w, "%s:%d:%d: %s\n", path, re.Loc.Line+1, re.Loc.Column+1, re.Detail())
	}
	return fmt.Errorf("%d invalid rule line(s) in %s", len(errs), path)
}
