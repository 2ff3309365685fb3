package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/trendwatch/internal/config"
	"github.com/abelbrown/trendwatch/internal/fetch"
	"github.com/abelbrown/trendwatch/internal/filter"
	"github.com/abelbrown/trendwatch/internal/logging"
	"github.com/abelbrown/trendwatch/internal/store"
	"github.com/abelbrown/trendwatch/internal/theme"
	"github.com/abelbrown/trendwatch/internal/ui"
)

// historyKeep bounds the recently viewed table.
const historyKeep = 500

type rootOptions struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "trendwatch [share-link]",
		Short: "Hourly trending search keywords in the terminal",
		Long: `trendwatch shows the trending keywords of one hour and pages back
through earlier hours as you scroll.

A share link copied with "y" (or any query string with year, month, day,
time, category and sort) reopens the same view:

  trendwatch "year=2024&month=5&day=1&time=14&category=all&sort=rank"
  trendwatch --day 1 --time 14 --sort volume`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "config file (default is ~/.trendwatch/config.yaml)")
	pf.String("api-url", "", "trend service base URL")
	pf.String("timezone", "", "IANA time zone for target hours (default local)")
	pf.String("data-dir", "", "directory for the database and logs (default ~/.trendwatch)")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	f := cmd.Flags()
	f.Int("lookback", 72, "hours of history to page back through (0 = unlimited)")
	f.Int(filter.ParamYear, 0, "year to show")
	f.Int(filter.ParamMonth, 0, "month to show (1-12)")
	f.Int(filter.ParamDay, 0, "day to show (1-31)")
	f.String(filter.ParamTime, "", `hour to show ("00".."23")`)
	f.String(filter.ParamCategory, "", `category filter ("all" or a category name)`)
	f.String(filter.ParamSort, "", "sort order: rank or volume")

	cmd.AddCommand(newHistoryCmd(opts))
	return cmd
}

// setup loads config and opens logging and the store. The caller closes
// the returned store and then calls logging.Close.
func setup(cmd *cobra.Command, opts *rootOptions) (*config.Config, *store.Store, error) {
	cfg, err := config.Load(opts.cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}
	if err := logging.Init(cfg.DataDir, "trendwatch", cfg.Log.Level); err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		logging.Close()
		return nil, nil, err
	}
	return cfg, st, nil
}

func runDashboard(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, st, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer logging.Close()
	defer st.Close()

	loc := cfg.Location()
	initial, err := initialState(cmd, args, time.Now().In(loc))
	if err != nil {
		return err
	}

	if n, err := st.PruneViews(historyKeep); err != nil {
		logging.Error("prune history failed", "err", err)
	} else if n > 0 {
		logging.Debug("pruned history", "removed", n)
	}

	detector := theme.SystemDetector()
	themes, err := theme.New(st, detector)
	if err != nil {
		return err
	}

	client := fetch.NewClient(cfg.API.BaseURL, fetch.Options{
		Timeout:  cfg.API.Timeout,
		Rate:     cfg.API.RateLimit,
		Burst:    cfg.API.Burst,
		Location: loc,
	})

	logging.Info("dashboard starting",
		"api", cfg.API.BaseURL,
		"tz", loc.String(),
		"view", initial.Encode(),
		"theme", themes.Mode(),
	)

	app := ui.NewApp(initial, ui.Deps{
		FetchHour:    client.Hour,
		FetchDetail:  client.Detail,
		RecordView:   st.RecordView,
		CopyText:     clipboard.WriteAll,
		OpenURL:      ui.OpenURL,
		DetectOS:     detector,
		Theme:        themes,
		Location:     loc,
		Now:          time.Now,
		Lookback:     cfg.Lookback(),
		PrefetchRows: cfg.Loader.PrefetchRows,
		ThemePoll:    cfg.Theme.PollInterval,
	})

	ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(app, tea.WithAltScreen())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		p.Quit()
		return nil
	})
	return g.Wait()
}

// initialState builds the first view from an optional share link, then
// applies any explicitly set filter flags on top.
func initialState(cmd *cobra.Command, args []string, now time.Time) (filter.State, error) {
	state := filter.Now(now)
	if len(args) == 1 {
		parsed, err := filter.Parse(args[0], now)
		if err != nil {
			return state, fmt.Errorf("parse share link: %w", err)
		}
		state = parsed
	}

	flags := cmd.Flags()
	if flags.Changed(filter.ParamYear) {
		state.Year, _ = flags.GetInt(filter.ParamYear)
	}
	if flags.Changed(filter.ParamMonth) {
		state.Month, _ = flags.GetInt(filter.ParamMonth)
	}
	if flags.Changed(filter.ParamDay) {
		state.Day, _ = flags.GetInt(filter.ParamDay)
	}
	if flags.Changed(filter.ParamTime) {
		h, _ := flags.GetString(filter.ParamTime)
		n, err := strconv.Atoi(h)
		if err != nil || n < 0 || n > 23 {
			return state, fmt.Errorf("invalid --time %q: want 00..23", h)
		}
		state = state.WithHour(n)
	}
	if flags.Changed(filter.ParamCategory) {
		state.Category, _ = flags.GetString(filter.ParamCategory)
	}
	if flags.Changed(filter.ParamSort) {
		s, _ := flags.GetString(filter.ParamSort)
		state.Sort = filter.ParseSortKey(s)
	}
	return state, nil
}

// runContext is the command's context, or Background outside Execute.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
