package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/icdkit/icdgraph/internal/hierarchy"
	"github.com/icdkit/icdgraph/internal/lib"
	"github.com/icdkit/icdgraph/internal/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP/websocket server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	level, err := lib.ParseSLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := lib.NiceLogger(os.Stdout, level)

	hier := hierarchy.NewManager()
	if err := hier.Load(cfg.HierarchyPath); err != nil {
		logger.Warn("loading hierarchy snapshot", "err", err)
	}
	if err := hier.LoadUMLS(cfg.UMLSPath); err != nil {
		logger.Warn("loading UMLS mappings", "err", err)
	}

	cases := mustOpenStore(cfg)
	defer cases.Close()

	s := server.New(logger, cfg, newPredictor(cfg), hier, cases)

	logger.Info("starting server", "bind", cfg.Bind, "staticDir", cfg.StaticDir)
	return http.ListenAndServe(cfg.Bind, s.Routes())
}
