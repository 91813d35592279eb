// ResearchSynthesis — AI-powered research synthesis platform backend.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/researchsynth/researchsynth/internal/client"
	"github.com/researchsynth/researchsynth/internal/config"
	"github.com/researchsynth/researchsynth/internal/server"
	"github.com/researchsynth/researchsynth/internal/system"
)

const asciiLogo = `
 ██████╗ ███████╗███████╗██╗   ██╗███╗   ██╗████████╗██╗  ██╗
 ██╔══██╗██╔════╝╚══███╔╝╚██╗ ██╔╝████╗  ██║╚══██╔══╝██║  ██║
 ██████╔╝███████╗  ███╔╝  ╚████╔╝ ██╔██╗ ██║   ██║   ███████║
 ██╔══██╗╚════██║ ███╔╝    ╚██╔╝  ██║╚██╗██║   ██║   ██╔══██║
 ██║  ██║███████║███████╗   ██║   ██║ ╚████║   ██║   ██║  ██║
 ╚═╝  ╚═╝╚══════╝╚══════╝   ╚═╝   ╚═╝  ╚═══╝   ╚═╝   ╚═╝  ╚═╝
`

func printBanner(mode string) {
	fmt.Printf("%s\n", asciiLogo)
	fmt.Printf("  ► ResearchSynthesis v%s  |  Mode: %s\n\n", server.Version, mode)
}

func main() {
	root := &cobra.Command{
		Use:   "researchsynth",
		Short: "ResearchSynthesis — research synthesis platform backend",
		Long: `ResearchSynthesis is a single-binary backend for ingesting research
documents into a knowledge index, querying them by keyword relevance and
synthesizing combined answers with source references.`,
		SilenceUsage: true,
	}

	// ── server subcommand ─────────────────────────────────────────────────────
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Start the ResearchSynthesis API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner("SERVER")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			system.SetDebug(cfg.Debug)

			if err := server.InitDB(cfg); err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}

			server.SetJWTSecret(cfg.JWTSecret)
			if err := server.SetAdminCredentials(cfg.AdminUser, cfg.AdminPass); err != nil {
				return fmt.Errorf("setting admin credentials: %w", err)
			}
			server.InitComponents(cfg)

			if !cfg.Debug {
				gin.SetMode(gin.ReleaseMode)
			}
			engine := gin.New()
			engine.Use(gin.Recovery(), server.CORSMiddleware())
			server.RegisterRoutes(engine)
			server.RegisterStaticFiles(engine)

			addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.Port)
			fmt.Printf("  ✓ API + landing page → http://%s\n", addr)
			fmt.Printf("  ✓ Health check       → http://%s/health\n", addr)
			fmt.Printf("  ✓ Admin login        → POST http://%s/api/login\n\n", addr)

			srv := &http.Server{Addr: addr, Handler: engine}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt) // os.Interrupt = SIGINT; works on all platforms

			select {
			case err := <-errCh:
				return err
			case <-quit:
				fmt.Println("\n  → Shutting down gracefully…")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}

	// ── ingest subcommand ─────────────────────────────────────────────────────
	ingestCmd := &cobra.Command{
		Use:   "ingest [files...]",
		Short: "Push local documents into a running ResearchSynthesis server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			// CLI flags override config values.
			apiURL := cfg.APIURL
			if v, _ := cmd.Flags().GetString("server"); v != "" {
				apiURL = v
			}
			source := cfg.IngestSource
			if v, _ := cmd.Flags().GetString("source"); v != "" {
				source = v
			}
			batch, _ := cmd.Flags().GetBool("batch")

			c := client.New(apiURL, source)
			if _, err := c.Health(); err != nil {
				return fmt.Errorf("server not reachable at %s: %w", apiURL, err)
			}

			failed := 0
			for _, path := range args {
				if batch {
					resp, err := c.IngestBatchFile(path)
					if err != nil {
						system.Logger.Error("batch ingest failed", "file", path, "err", err)
						failed++
						continue
					}
					system.Logger.Info("batch ingested", "file", path, "count", resp.IngestedCount)
					continue
				}

				resp, err := c.IngestFile(path)
				if err != nil {
					system.Logger.Error("ingest failed", "file", path, "err", err)
					failed++
					continue
				}
				system.Logger.Info("ingested", "file", path, "id", resp.ID, "title", resp.Title)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d ingests failed", failed, len(args))
			}
			return nil
		},
	}
	ingestCmd.Flags().String("server", "", "Server base URL, e.g. http://127.0.0.1:8000 (overrides config)")
	ingestCmd.Flags().String("source", "", "Source label attached to ingested documents")
	ingestCmd.Flags().Bool("batch", false, "Treat each file as a JSON array of documents")

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print ResearchSynthesis version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ResearchSynthesis v%s\n", server.Version)
		},
	}

	root.AddCommand(serverCmd, ingestCmd, versionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
