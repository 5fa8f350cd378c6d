package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ph1losof/korni/cache"
	"github.com/ph1losof/korni/internal/httpd"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGINT,
}

func newServeCmd() *cobra.Command {
	var addr string
	var redisAddr string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP daemon exposing /v1/parse and /v1/lint",
		RunE: func(cmd *cobra.Command, args []string) error {
			httpd.ConfigureLogger(verbose)

			var c cache.Cache
			if redisAddr == "" {
				redisAddr = os.Getenv("REDIS_ADDRESS")
			}
			if redisAddr != "" {
				c = cache.NewRedis(redisAddr)
			} else {
				c = cache.NewMemory()
			}

			service := httpd.NewService(addr, c)

			ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
			defer stop()

			waitGroup, ctx := errgroup.WithContext(ctx)

			waitGroup.Go(func() error {
				log.Info().Msgf("starting HTTP daemon at %s", addr)
				err := service.Start()
				if err != nil && errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			})

			waitGroup.Go(func() error {
				<-ctx.Done()
				log.Info().Msg("shutting down HTTP daemon")

				toCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return service.Shutdown(toCtx)
			})

			return waitGroup.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for shared cache (defaults to $REDIS_ADDRESS, falls back to in-memory)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log at debug level")
	return cmd
}
