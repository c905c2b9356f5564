package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/matheuscp10/unisports-match-play/internal/core/config"
	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
	"github.com/matheuscp10/unisports-match-play/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "unisports config validate [options]",
				Description: "Validates the configuration file, checking expiry delays, mute patterns, announcement schedules and the metrics address.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Path     string                     `json:"path"`
	Errors   []string                   `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

// The Before hook refuses to start on an invalid config, so validate loads
// the file again itself to report every problem instead of the first.
func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	report := validationReport{Valid: true, Path: cmd.flags.ConfigPath}

	cfg, err := config.Load(cmd.flags.ConfigPath)
	if err != nil {
		report.Valid = false
		report.Errors = errorLines(err)
	} else {
		report.Warnings = cfg.Warnings()
	}

	out := c.Root().Writer
	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, report); err != nil {
			return err
		}
	} else {
		printReport(out, report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func errorLines(err error) []string {
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		lines := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			lines = append(lines, fe.Field+": "+fe.Err.Error())
		}
		return lines
	}
	return []string{err.Error()}
}

func printReport(out io.Writer, r validationReport) {
	for _, w := range r.Warnings {
		line := fmt.Sprintf("! %s: %s", w.Category, w.Message)
		if w.Item != "" {
			line += fmt.Sprintf(" (%s)", w.Item)
		}
		_, _ = fmt.Fprintln(out, styles.TextWarningStyle.Render(line))
	}

	for _, e := range r.Errors {
		_, _ = fmt.Fprintln(out, styles.TextErrorStyle.Render("✗ "+e))
	}

	if r.Valid {
		_, _ = fmt.Fprintln(out, styles.TextSuccessStyle.Render("✓ Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(out, styles.TextErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(r.Errors))))
}
