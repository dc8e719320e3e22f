package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hardliner66/timetracking/internal/dashboard"
	"github.com/hardliner66/timetracking/internal/event"
	"github.com/hardliner66/timetracking/internal/settings"
	"github.com/hardliner66/timetracking/internal/store"
	"github.com/hardliner66/timetracking/internal/track"
)

// app is the per-invocation plumbing: settings, the opened store and the
// loaded event log. The log is loaded once, mutated by exactly one command
// and persisted (sorted and deduplicated) only when a command changed it.
type app struct {
	settings *settings.Settings
	store    store.Store
	events   []event.TrackingEvent
}

func openApp(cmd *cobra.Command) (*app, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	dataFile, _ := cmd.Flags().GetString("data-file")

	set, err := settings.Load(configFile)
	if err != nil {
		return nil, err
	}
	path := dataFile
	if path == "" {
		path = set.DataFile
	}
	expanded, err := store.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(expanded)
	if err != nil {
		return nil, err
	}
	events, err := st.Load()
	if err != nil {
		st.Close()
		return nil, err
	}
	slog.Debug("loaded event log", "path", expanded, "events", len(events))
	return &app{settings: set, store: st, events: events}, nil
}

func (a *app) close() {
	a.store.Close()
}

func (a *app) save(events []event.TrackingEvent) error {
	return a.store.Replace(event.SortAndDedup(events))
}

type filterFlags struct {
	from string
	to   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.from, "from", "f", "",
		`show all entries after this point in time [defaults to current day 00:00:00]`)
	cmd.Flags().StringVarP(&f.to, "to", "t", "",
		`show all entries before this point in time [defaults to start day 23:59:59]`)
}

func positionalFilter(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

type showFlags struct {
	filter         filterFlags
	plain          bool
	remaining      bool
	includeSeconds bool
	format         string
}

func (f *showFlags) register(cmd *cobra.Command) {
	f.filter.register(cmd)
	cmd.Flags().BoolVarP(&f.plain, "plain", "p", false, "show only the time with no additional text")
	cmd.Flags().BoolVarP(&f.remaining, "remaining", "r", false, "show time until the defined time goals are met")
	cmd.Flags().BoolVarP(&f.includeSeconds, "include-seconds", "i", false, "include seconds in time calculation")
	cmd.Flags().StringVar(&f.format, "format", "", `output format [default: "{hh}:{mm}:{ss}"]`)
}

func runShow(a *app, flags *showFlags, filter string) error {
	now := time.Now()
	filtered, err := track.FilterEvents(a.events, flags.filter.from, flags.filter.to, filter, now)
	if err != nil {
		return err
	}
	worked := track.WorkTime(a.settings, filtered, flags.includeSeconds, now)
	hours, minutes, seconds := track.SplitDuration(worked)

	if flags.remaining {
		if (filter != "" && filter != "week") || flags.filter.from != "" || flags.filter.to != "" {
			fmt.Fprintln(os.Stderr, `Remaining only works when "from" and "to" are not set and with no filter or filter "week"`)
			return nil
		}
		remaining, err := track.RemainingWork(a.settings, a.events, filter, worked, flags.includeSeconds, now)
		if err != nil {
			return err
		}
		hours, minutes, seconds = track.SplitDuration(remaining)
		seconds = 0
	}
	if !flags.includeSeconds {
		seconds = 0
	}

	format := flags.format
	if format == "" {
		format = track.DefaultFormat
	}
	formatted := track.FormatDuration(format, hours, minutes, seconds)
	switch {
	case flags.plain:
		fmt.Println(formatted)
	case flags.remaining:
		fmt.Println("Remaining Work Time: " + formatted)
	default:
		fmt.Println("Work Time: " + formatted)
	}
	return nil
}

func main() {
	level := slog.LevelWarn
	if os.Getenv("TT_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	defaultShow := &showFlags{}
	rootCmd := &cobra.Command{
		Use:          "tt",
		Short:        "Track your work time",
		Long:         "tt appends timestamped start/stop events to a log and reports how long you have worked.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return runShow(a, defaultShow, "")
		},
	}
	rootCmd.PersistentFlags().StringP("data-file", "d", "", "which data file to use [default: ~/timetracking.json]")
	rootCmd.PersistentFlags().StringP("config-file", "c", "", "which config file to use")

	var startAt string
	startCmd := &cobra.Command{
		Use:   "start [description]",
		Short: "Start time tracking",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			events, err := track.StartTracking(a.settings, a.events, positionalFilter(args), startAt, time.Now(), os.Stderr)
			if err != nil {
				return err
			}
			return a.save(events)
		},
	}
	startCmd.Flags().StringVarP(&startAt, "at", "a", "",
		`the time at which the event happened. format: "HH:MM:SS" or "YY-mm-dd HH:MM:SS" [defaults to current time]`)
	rootCmd.AddCommand(startCmd)

	var stopAt string
	stopCmd := &cobra.Command{
		Use:   "stop [description]",
		Short: "Stop time tracking",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			events, err := track.StopTracking(a.events, positionalFilter(args), stopAt, time.Now(), os.Stderr)
			if err != nil {
				return err
			}
			return a.save(events)
		},
	}
	stopCmd.Flags().StringVarP(&stopAt, "at", "a", "",
		`the time at which the event happened. format: "HH:MM:SS" or "YY-mm-dd HH:MM:SS" [defaults to current time]`)
	rootCmd.AddCommand(stopCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "continue",
		Short: "Continue time tracking with the last description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return a.save(track.ContinueTracking(a.events, time.Now(), os.Stderr))
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show info from the latest entry; exits 0 when tracking is active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			if active, ok := track.Status(a.events, os.Stdout); !active || !ok {
				a.close()
				os.Exit(1)
			}
			return nil
		},
	})

	listFilter := &filterFlags{}
	listCmd := &cobra.Command{
		Use:   "list [filter]",
		Short: "List all entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			filtered, err := track.FilterEvents(a.events, listFilter.from, listFilter.to, positionalFilter(args), time.Now())
			if err != nil {
				return err
			}
			for _, e := range filtered {
				fmt.Println(e.HumanReadable())
			}
			return nil
		},
	}
	listFilter.register(listCmd)
	rootCmd.AddCommand(listCmd)

	showOpts := &showFlags{}
	showCmd := &cobra.Command{
		Use:   "show [filter]",
		Short: "Show work time for the given timespan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return runShow(a, showOpts, positionalFilter(args))
		},
	}
	showOpts.register(showCmd)
	rootCmd.AddCommand(showCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Start an interactive cleanup session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return a.save(track.Cleanup(a.events, os.Stdin, os.Stdout))
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the path to the data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			fmt.Println(a.store.Path())
			return nil
		},
	})

	var exportReadable, exportPretty bool
	exportCmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export data to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			path, err := store.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if exportReadable {
				return store.WriteReadable(path, a.events)
			}
			return store.WriteJSON(path, a.events, exportPretty)
		},
	}
	exportCmd.Flags().BoolVarP(&exportReadable, "readable", "r", false,
		"export in a human readable format. This format is for reading only and cannot be imported")
	exportCmd.Flags().BoolVarP(&exportPretty, "pretty", "p", false, "pretty print json")
	rootCmd.AddCommand(exportCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "import <path>",
		Short: "Import data from a json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			path, err := store.ExpandPath(args[0])
			if err != nil {
				return err
			}
			events, err := store.ReadJSON(path)
			if err != nil {
				return err
			}
			return a.save(events)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Show a live dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return dashboard.Run(a.store, a.settings, a.events)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
