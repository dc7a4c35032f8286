package main

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/errors"
	"github.com/robinrosenstock/vcard/internal/logging"
	"github.com/robinrosenstock/vcard/internal/mcp"
	"github.com/robinrosenstock/vcard/internal/ops"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

// Exit statuses.
const (
	exitFailure = 1
	exitUsage   = 2
)

// appEnv is the per-run state set up before any command runs.
type appEnv struct {
	cfg *config.Config
	log zerolog.Logger
}

// newCLIApp creates the CLI application with all commands.
// Record output goes to stdout; the logger and count reports go to stderr.
func newCLIApp(stdout, stderr io.Writer) *cli.App {
	env := &appEnv{cfg: config.DefaultConfig(), log: zerolog.Nop()}

	app := &cli.App{
		Name:    "vcard",
		Usage:   "Query, count and prune contacts in vCard files",
		Version: Version,
		Writer:  stdout,
		// Names may contain commas; categories and search terms split themselves.
		DisableSliceFlagSeparator: true,
		ErrWriter:                 stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Config file (default: ~/.vcard/config.json merged with the nearest .vcard/config.json)"},
			&cli.StringFlag{Name: "log-level", Usage: "Diagnostic level: debug|info|warn|error|off (env: " + logging.EnvLogLevel + ")"},
		},
		Before: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return outputError(err)
			}
			env.cfg = cfg
			env.log = logging.New(c.App.ErrWriter, logging.Resolve(c.String("log-level"), cfg.LogLevel))
			return nil
		},
		Commands: []*cli.Command{
			getContactsCmd(env),
			countCategoriesCmd(env),
			deleteContactsCmd(env),
			categoryDiffCmd(env),
			mcpCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// loadConfig reads an explicit config file, or merges the global and repo configs.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.NewFileNotFound(path)
			}
			return nil, errors.NewInternal(err)
		}
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid config %s: %v", path, err))
		}
		return cfg, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("could not determine home directory: %w", err))
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	cfg, err := config.LoadWithRepo(filepath.Join(homeDir, config.DirName), cwd)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid config: %v", err))
	}
	return cfg, nil
}

// getContactsCmd creates the get-contacts command.
func getContactsCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "get-contacts",
		Usage:     "Print the contacts that match the given filters",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "in", Usage: "Keep contacts in any of these categories"},
			&cli.StringSliceFlag{Name: "has", Usage: "Keep contacts in all of these categories"},
			&cli.StringSliceFlag{Name: "not", Usage: "Drop contacts in any of these categories"},
			&cli.StringSliceFlag{Name: "searchname", Usage: "Keep contacts whose name contains any of these terms"},
			&cli.StringSliceFlag{Name: "names", Usage: "Keep only contacts with exactly these names"},
			&cli.StringFlag{Name: "namefile", Usage: "File of newline-separated names to keep"},
			&cli.BoolFlag{Name: "name", Usage: "Print the name column"},
			&cli.BoolFlag{Name: "number", Usage: "Print the phone numbers column"},
			&cli.BoolFlag{Name: "category", Aliases: []string{"show-categories"}, Usage: "Print the categories column"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write output to this file instead of stdout"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return usageError(c, "at least one FILE is required")
			}

			output, err := ops.Query(env.cfg, ops.QueryInput{
				Files:       c.Args().Slice(),
				Include:     vcard.Terms(c.StringSlice("in")),
				Required:    vcard.Terms(c.StringSlice("has")),
				Exclude:     vcard.Terms(c.StringSlice("not")),
				SearchNames: c.StringSlice("searchname"),
				Names:       c.StringSlice("names"),
				NameFile:    c.String("namefile"),
			})
			if err != nil {
				return outputError(err)
			}
			env.logSkipped(output.Skipped)

			text := ops.Render(env.cfg, output.Cards, ops.Projection{
				Name:       c.Bool("name"),
				Number:     c.Bool("number"),
				Categories: c.Bool("category"),
			})
			if err := writeOutput(c.App.Writer, c.String("out"), text); err != nil {
				return outputError(err)
			}

			env.log.Debug().Int("matched", output.Matched).Int("scanned", output.Scanned).Msg("query complete")
			return nil
		},
	}
}

// countCategoriesCmd creates the count-categories command.
func countCategoriesCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "count-categories",
		Usage:     "Count how often each category occurs (report goes to stderr)",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the report to this file instead of stderr"},
			&cli.BoolFlag{Name: "json", Usage: "Print the counts as JSON on stdout"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.CountCategories(env.cfg, ops.CountInput{Files: c.Args().Slice()})
			if err != nil {
				return outputError(err)
			}
			env.logSkipped(output.Skipped)

			if c.Bool("json") {
				var buf bytes.Buffer
				if err := encodeJSON(&buf, output); err != nil {
					return outputError(errors.NewInternal(err))
				}
				if err := writeOutput(c.App.Writer, c.String("out"), buf.String()); err != nil {
					return outputError(err)
				}
				return nil
			}

			var buf bytes.Buffer
			if err := output.Counts.WriteReport(&buf); err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := writeOutput(c.App.ErrWriter, c.String("out"), buf.String()); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// deleteContactsCmd creates the delete-contacts command.
func deleteContactsCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "delete-contacts",
		Usage:     "Remove (or strip with --keep) the named contacts from a vCard file",
		ArgsUsage: "VCF [NAME...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "namefile", Usage: "File of newline-separated names to delete"},
			&cli.StringSliceFlag{Name: "keep", Usage: "Strip matches to these fields instead of deleting: name|number|photo|category"},
			&cli.BoolFlag{Name: "all", Usage: "Target every contact in the file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the result here instead of overwriting VCF"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return usageError(c, "VCF is required")
			}

			output, err := ops.Delete(env.cfg, ops.DeleteInput{
				Path:     c.Args().First(),
				Names:    c.Args().Tail(),
				NameFile: c.String("namefile"),
				All:      c.Bool("all"),
				Keep:     c.StringSlice("keep"),
				Out:      c.String("out"),
			})
			if err != nil {
				return outputError(err)
			}

			if !output.Written {
				env.log.Warn().Msg(output.Message)
				return nil
			}
			env.log.Info().
				Int("deleted", output.Deleted).
				Int("stripped", output.Stripped).
				Int("total", output.Total).
				Msg(output.Message)
			return nil
		},
	}
}

// categoryDiffCmd creates the category-diff command.
func categoryDiffCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "category-diff",
		Usage:     "Print contacts in CATEGORY_A that are not in CATEGORY_B",
		ArgsUsage: "CATEGORY_A CATEGORY_B FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write output to this file instead of stdout"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 3 {
				return usageError(c, "CATEGORY_A, CATEGORY_B and at least one FILE are required")
			}
			args := c.Args().Slice()

			output, err := ops.Diff(env.cfg, ops.DiffInput{A: args[0], B: args[1], Files: args[2:]})
			if err != nil {
				return outputError(err)
			}
			env.logSkipped(output.Skipped)

			if err := writeOutput(c.App.Writer, c.String("out"), vcard.Join(output.Cards)); err != nil {
				return outputError(err)
			}

			env.log.Info().
				Str("a", args[0]).
				Int("count_a", output.CountA).
				Str("b", args[1]).
				Int("count_b", output.CountB).
				Int("matched", output.Matched).
				Msg("category diff complete")
			return nil
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the vcard tools over MCP (stdio)",
		Action: func(c *cli.Context) error {
			for _, name := range mcp.ValidateDisabledTools(env.cfg.DisabledTools) {
				env.log.Warn().Str("tool", name).Msg("unknown tool in disabled_tools")
			}
			if err := mcp.Run(env.cfg, Version); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// logSkipped warns about input files that did not exist.
func (e *appEnv) logSkipped(files []string) {
	for _, f := range files {
		e.log.Warn().Str("file", f).Msg("file not found, skipping")
	}
}

// writeOutput writes text to path atomically, or to w when path is empty.
func writeOutput(w io.Writer, path, text string) error {
	if path == "" {
		if _, err := io.WriteString(w, text); err != nil {
			return errors.NewInternal(err)
		}
		return nil
	}
	return ops.WriteFile(path, []byte(text))
}

// encodeJSON writes v as indented JSON.
func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// usageError reports missing positional arguments.
func usageError(c *cli.Context, msg string) error {
	return cli.Exit(fmt.Sprintf("%s\nusage: %s %s %s", msg, c.App.Name, c.Command.Name, c.Command.ArgsUsage), exitUsage)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var vErr *errors.VcardError
	if stderrors.As(err, &vErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", vErr.Code, vErr.Message), exitFailure)
	}
	return cli.Exit(err.Error(), exitFailure)
}
