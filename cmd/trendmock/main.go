// Command trendmock serves synthetic hourly trends for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/trendwatch/internal/logging"
	"github.com/abelbrown/trendwatch/internal/mockapi"
)

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "trendmock:", err)
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var (
		addr     string
		tz       string
		perHour  int
		stray    int
		latency  time.Duration
		logLevel string
	)

	cmd := &cobra.Command{
		Use:           "trendmock",
		Short:         "Serve synthetic trends on /trend and /trend/{id}",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitWriter(os.Stderr, logLevel)

			loc := time.Local
			if tz != "" {
				l, err := time.LoadLocation(tz)
				if err != nil {
					return fmt.Errorf("load timezone %q: %w", tz, err)
				}
				loc = l
			}

			api := mockapi.New(mockapi.Options{
				Location: loc,
				PerHour:  perHour,
				Stray:    stray,
				Latency:  latency,
			})
			srv := &http.Server{
				Addr:              addr,
				Handler:           handlers.LoggingHandler(os.Stdout, api.Router()),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logging.Info("mock trend service listening", "addr", addr, "tz", loc.String(), "per_hour", perHour)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	f.StringVar(&tz, "timezone", "Asia/Seoul", "IANA time zone the hours are generated in")
	f.IntVar(&perHour, "per-hour", 20, "records per hour")
	f.IntVar(&stray, "stray", 7, "every Nth record is stamped outside its hour (0 disables)")
	f.DurationVar(&latency, "latency", 300*time.Millisecond, "artificial response delay")
	f.StringVar(&logLevel, "log-level", "info", "log level")
	return cmd
}
