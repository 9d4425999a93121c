package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/ros2types/ros2types/internal/config"
	"github.com/ros2types/ros2types/internal/metrics"
	"github.com/ros2types/ros2types/internal/transport/httpapi"
	"github.com/ros2types/ros2types/internal/transport/natsq"
)

var (
	serveNATSURL  string
	serveHTTPAddr string
	serveNoNATS   bool
)

func init() {
	serveCmd.Flags().StringVar(&serveNATSURL, "nats-url", "", "NATS server URL (overrides nats.url)")
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "Also serve HTTP on this address, e.g. :8080 (overrides http.addr)")
	serveCmd.Flags().BoolVar(&serveNoNATS, "no-nats", false, "Serve HTTP only")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Index the type sources and answer queries",
	Long: `Load every type under the configured sources, then answer type and
environment queries over NATS (and HTTP when http.addr or --http is set)
until interrupted.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	s := config.Current()
	if serveNATSURL != "" {
		s.NATSURL = serveNATSURL
	}
	if serveHTTPAddr != "" {
		s.HTTPAddr = serveHTTPAddr
	}
	if serveNoNATS && s.HTTPAddr == "" {
		return fmt.Errorf("--no-nats needs an HTTP address (--http or http.addr)")
	}

	collector := metrics.New()
	start := time.Now()
	reg, err := loadRegistry(collector)
	if err != nil {
		return err
	}
	logger.Info().Int("types", reg.Len()).Dur("elapsed", time.Since(start)).Msg("type index ready")

	handler := newHandler(reg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !serveNoNATS {
		nc, err := nats.Connect(s.NATSURL,
			nats.Name(cmd.Root().Name()),
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second),
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				logger.Warn().Err(err).Msg("nats disconnected")
			}),
			nats.ReconnectHandler(func(nc *nats.Conn) {
				logger.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS at %s: %w", s.NATSURL, err)
		}
		defer nc.Drain() //nolint:errcheck

		responder := natsq.NewResponder(nc, handler,
			natsq.WithSubjectPrefix(s.SubjectPrefix),
			natsq.WithLogger(logger),
			natsq.WithObserver(collector),
		)
		if err := responder.Start(); err != nil {
			return err
		}
		defer responder.Stop()
	}

	var httpErr <-chan error
	if s.HTTPAddr != "" {
		srv := httpapi.New(handler,
			httpapi.WithLogger(logger),
			httpapi.WithObserver(collector),
			httpapi.WithGatherer(collector.Gatherer()),
		)
		httpErr = srv.Start(s.HTTPAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("http shutdown")
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		return nil
	case err := <-httpErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}
