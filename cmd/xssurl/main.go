package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/njchilds90/xssurl"
	"github.com/urfave/cli/v2"
)

// maxLineSize is the longest URL accepted on stdin.
const maxLineSize = 1 << 20

var AppHelpTemplate = `{{.Name}} - {{.Usage}}

USAGE:
  {{.Name}} [options] URL...
  cat urls.txt | {{.Name}} [options]

Exits with status 1 when a URL is flagged in check mode.

OPTIONS:
  {{range .Flags}}{{.}}
  {{end}}
`

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "xssurl"
	app.Usage = "detect and strip script-injection sequences in URLs"
	app.HideVersion = true
	// Patterns such as "x{1,3}" contain commas.
	app.DisableSliceFlagSeparator = true
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "filter",
			Usage: "print each URL with blacklisted sequences replaced instead of checking it",
		},
		&cli.BoolFlag{
			Name:  "fixed-point",
			Usage: "with --filter, repeat filtering until the output stops changing",
		},
		&cli.BoolFlag{
			Name:  "escape",
			Usage: "print each URL HTML-escaped for display",
		},
		&cli.BoolFlag{
			Name:  "list",
			Usage: "print the effective pattern list and exit",
		},
		&cli.StringFlag{
			Name:  "replacement",
			Usage: "token substituted for each match when filtering (env XSSURL_REPLACEMENT)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "additional case-insensitive regexp pattern, repeatable (env XSSURL_INCLUDE, newline separated)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "remove a pattern from the list by its exact text, repeatable (env XSSURL_EXCLUDE, newline separated)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error (env XSSURL_LOG_LEVEL)",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "text or json (env XSSURL_LOG_FORMAT)",
		},
	}
	app.Action = run
	return app
}

func run(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if c.IsSet("replacement") {
		cfg.Replacement = c.String("replacement")
	}
	if c.IsSet("include") {
		cfg.Include = c.StringSlice("include")
	}
	if c.IsSet("exclude") {
		cfg.Exclude = c.StringSlice("exclude")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}

	logger, err := newLogger(c.App.ErrWriter, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if c.Bool("fixed-point") && !c.Bool("filter") {
		logger.Error("--fixed-point requires --filter")
		return cli.Exit("--fixed-point requires --filter", 2)
	}

	guard := xssurl.New().Exclude(cfg.Exclude...)
	if err := guard.Include(cfg.Include...); err != nil {
		logger.Error("invalid include pattern", slog.Any("error", err))
		return cli.Exit(err.Error(), 2)
	}

	if c.Bool("list") {
		for _, p := range guard.Patterns() {
			fmt.Fprintln(c.App.Writer, p)
		}
		return nil
	}

	urls := c.Args().Slice()
	if len(urls) == 0 {
		urls, err = readLines(c.App.Reader)
		if err != nil {
			return fmt.Errorf("could not read stdin: %w", err)
		}
	}

	flagged := 0
	for _, u := range urls {
		guard.SetSource(u)
		logger.Debug("scanned url", slog.String("url", u), slog.Bool("flagged", guard.IsFlagged()))
		if guard.IsFlagged() {
			flagged++
			logger.Warn("suspicious url", slog.String("url", u), slog.Any("matched", guard.Matched()))
		}

		switch {
		case c.Bool("escape"):
			fmt.Fprintln(c.App.Writer, guard.Escaped())
		case c.Bool("filter") && c.Bool("fixed-point"):
			fmt.Fprintln(c.App.Writer, guard.FilteredFixedPoint(cfg.Replacement))
		case c.Bool("filter"):
			fmt.Fprintln(c.App.Writer, guard.Filtered(cfg.Replacement))
		case guard.IsFlagged():
			fmt.Fprintf(c.App.Writer, "flagged\t%s\n", u)
		default:
			fmt.Fprintf(c.App.Writer, "clean\t%s\n", u)
		}
	}

	logger.Info("scan complete", slog.Int("urls", len(urls)), slog.Int("flagged", flagged))
	if flagged > 0 && !c.Bool("filter") && !c.Bool("escape") {
		return cli.Exit("", 1)
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, s.Err()
}

func main() {
	cli.AppHelpTemplate = AppHelpTemplate

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
