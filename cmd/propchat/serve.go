package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/ayadlabs/propchat/config"
	"github.com/ayadlabs/propchat/internal/dialogue"
	"github.com/ayadlabs/propchat/internal/server"
	"github.com/ayadlabs/propchat/internal/telemetry"
	"github.com/ayadlabs/propchat/internal/tools"
	"github.com/ayadlabs/propchat/provider"
)

func serveCMD() *cobra.Command {
	var cfgPath string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the WhatsApp webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			ctx := context.Background()

			llm, err := provider.NewProvider(cfg.LLM)
			if err != nil {
				return err
			}

			logger := log.New(log.Writer(), "[SERVE] ", log.LstdFlags)
			properties, faqs, err := buildStores(cfg, llm, logger)
			if err != nil {
				return err
			}
			if err := ingestCorpora(ctx, cfg, properties, faqs); err != nil {
				return err
			}

			sessions, err := buildSessions(ctx, cfg)
			if err != nil {
				return err
			}

			tel := telemetry.New(nil)
			router := tools.NewRouter(properties, faqs, tel, logger)
			orch := dialogue.New(llm, router, sessions, tel, cfg.General.TurnTimeout, logger)

			return server.New(orch, cfg.Server).Run()
		},
	}
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return serve
}
