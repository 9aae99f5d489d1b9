package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"

	"icaldump/internal/config"
	"icaldump/internal/dateparse"
	"icaldump/internal/ics"
	appLog "icaldump/internal/log"
	"icaldump/internal/render"
	"icaldump/internal/task"
)

// newApp creates the CLI application with all commands.
func newApp() *cli.App {
	app := &cli.App{
		Name:    "icaldump",
		Usage:   "Dump a day's tasks from an iCalendar feed through a text template",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: defaultConfigPath(), Usage: "Path to config file"},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				appLog.SetDebug()
			}
			return nil
		},
		Commands: []*cli.Command{
			dumpCmd(),
			datesCmd(),
			watchCmd(),
		},
	}
	// Keep errors returned from Run instead of exiting, so tests can
	// assert on them.
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func dumpFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "calendar", Aliases: []string{"c"}, Usage: "Configured calendar name (defaults to the first one)"},
		&cli.StringFlag{Name: "url", Usage: "Feed URL (bypasses the configured calendars)"},
		&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Target day: DD.MM.YYYY, YYYY-MM-DD or MM/DD/YYYY (defaults to today)"},
		&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Usage: "Output template override"},
	}
}

func dumpCmd() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Print the target day's tasks once",
		Flags: dumpFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			return runDump(c.Context, cfg, c, c.App.Writer)
		},
	}
}

func datesCmd() *cli.Command {
	return &cli.Command{
		Name:      "dates",
		Usage:     "Print the quick-pick date menu",
		ArgsUsage: "[query]",
		Action: func(c *cli.Context) error {
			for _, p := range dateparse.QuickPicks(time.Now(), c.Args().First()) {
				if p.Label == "" {
					fmt.Fprintln(c.App.Writer, p.Value)
					continue
				}
				fmt.Fprintf(c.App.Writer, "%s - %s\n", p.Value, p.Label)
			}
			return nil
		},
	}
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Re-dump today's tasks on a cron schedule until interrupted",
		Flags: append(dumpFlags(),
			&cli.StringFlag{Name: "cron", Value: "*/15 * * * *", Usage: "Cron schedule for refreshes"},
		),
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			run := func() {
				if err := runDump(ctx, cfg, c, c.App.Writer); err != nil {
					appLog.Error("scheduled dump failed", err)
				}
			}

			cr := cron.New()
			if _, err := cr.AddFunc(c.String("cron"), run); err != nil {
				return fmt.Errorf("bad cron schedule %q: %w", c.String("cron"), err)
			}

			run()
			cr.Start()
			appLog.Info("watching", "cron", c.String("cron"))

			<-ctx.Done()
			cr.Stop()
			appLog.Info("watch stopped")
			return nil
		},
	}
}

// runDump fetches the selected feed, extracts the target day's tasks and
// renders them to out.
func runDump(ctx context.Context, cfg *config.Config, c *cli.Context, out io.Writer) error {
	feedURL := c.String("url")
	if feedURL == "" {
		cal, ok := cfg.Calendar(c.String("calendar"))
		if !ok {
			return errors.New("no calendar configured; add one to the config file or pass --url")
		}
		feedURL = cal.URL
	}

	template := cfg.Template
	if t := c.String("template"); t != "" {
		template = t
	}

	body, err := ics.NewClient(cfg.CacheDir).Get(ctx, feedURL)
	if err != nil {
		return err
	}

	tasks, err := task.Extract(string(body), c.String("date"))
	if err != nil {
		return err
	}

	_, err = io.WriteString(out, render.Tasks(template, tasks))
	return err
}

func defaultConfigPath() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "icaldump", "config.yaml")
	}
	return "./icaldump.yaml"
}
