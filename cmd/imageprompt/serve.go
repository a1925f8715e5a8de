package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	glog "github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"imageprompt/pkg/analysis"
	"imageprompt/pkg/inference"
	"imageprompt/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Endpoints:
  - POST /api/v1/analyze/image  multipart upload, field "image"
  - GET  /api/v1/schema         JSON Schema of the response
  - GET  /                      status

Examples:
  imageprompt serve                  # listen on :8080
  imageprompt serve --port 3001      # custom port
  PROVIDER=gemini imageprompt serve  # use Gemini`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		describer, err := inference.New(ctx, cfg.InferenceOptions())
		if err != nil {
			return err
		}
		svc := analysis.NewService(describer, analysis.WithStrictDescribe(cfg.StrictDescribe))

		srv := server.NewServer(svc, server.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			MaxUploadSize:  cfg.MaxUploadSize,
		})
		if cfg.Level() <= log.DebugLevel {
			srv.Echo.Logger.SetLevel(glog.DEBUG)
		}

		finishedShutDown := make(chan struct{})
		go func() {
			defer close(finishedShutDown)
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("shutdown failed", "error", err)
			}
		}()

		if err := srv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		<-finishedShutDown
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "port to listen on")
	serveCmd.Flags().String("max_upload_size", "10M", "maximum request body size")

	rootCmd.AddCommand(serveCmd)
}
