package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/komsit37/coinboard/pkg/coinboard/pipeline"
	"github.com/komsit37/coinboard/pkg/coinboard/server"
)

func newServeCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTML board and a JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(v, *cfgFile)
			if err != nil {
				return err
			}
			base, err := executeOptions(cfg, "")
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			runner := &pipeline.Runner{Source: cfg.Source.NewSource(), Logger: log.StandardLogger()}
			engine := server.New(runner, server.Options{
				Base:         base,
				AllowOrigins: cfg.Server.AllowOrigins,
				NewFilter:    newFilter(cfg.Display.SearchMode),
				Logger:       log.StandardLogger(),
			})

			srv := &http.Server{Addr: cfg.Server.Addr, Handler: engine, ReadHeaderTimeout: 10 * time.Second}
			errCh := make(chan error, 1)
			go func() {
				log.WithField("addr", cfg.Server.Addr).Info("serving coinboard")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				log.Info("shutting down")
				return srv.Shutdown(ctx)
			}
		},
	}

	f := cmd.Flags()
	f.String("addr", ":8080", "listen address")
	bind(v, f, map[string]string{"server.addr": "addr"})
	return cmd
}
