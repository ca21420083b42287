// Command steplist finds the functions in a Go module that return or build
// step drivers and generators.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/tmr232/resumable/internal/logging"
)

func list(c *cli.Context) error {
	log, err := logging.New(logging.Config{
		Writer: c.App.ErrWriter,
		Level:  c.String("log-level"),
	})
	if err != nil {
		return err
	}

	cfg := ScanConfig{
		Dir:      c.String("dir"),
		Tags:     c.StringSlice("tags"),
		Tests:    c.Bool("tests"),
		Patterns: c.Args(),
	}
	log.Debug("scanning", "dir", cfg.Dir, "tags", cfg.Tags, "patterns", cfg.Patterns)

	defs, err := Scan(cfg)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if c.Bool("positions") {
			fmt.Fprintf(c.App.Writer, "%s\t%s\n", def.Position, def)
		} else {
			fmt.Fprintln(c.App.Writer, def)
		}
	}
	log.Debug("done", "definitions", len(defs))
	return nil
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "steplist"
	app.Usage = "list step definitions in Go packages"
	app.ArgsUsage = "[packages]"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "dir", Value: ".", Usage: "directory to run the build tool in", EnvVar: "STEPLIST_DIR"},
		cli.StringSliceFlag{Name: "tags", Usage: "build tags", EnvVar: "STEPLIST_TAGS"},
		cli.BoolFlag{Name: "tests", Usage: "include test files"},
		cli.BoolFlag{Name: "positions", Usage: "prefix every line with its source position"},
		cli.StringFlag{Name: "log-level", Value: "warn", EnvVar: "STEPLIST_LOG_LEVEL"},
	}
	app.Action = list
	return app
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
