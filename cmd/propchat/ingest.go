package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/ayadlabs/propchat/config"
	"github.com/ayadlabs/propchat/internal/index"
	"github.com/ayadlabs/propchat/provider"
)

func ingestCMD() *cobra.Command {
	var cfgPath string
	var recreate bool
	var ingest = &cobra.Command{
		Use:   "ingest",
		Short: "Index the property and FAQ corpora",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			ctx := context.Background()

			llm, err := provider.NewProvider(cfg.LLM)
			if err != nil {
				return err
			}

			logger := log.New(log.Writer(), "[INGEST] ", log.LstdFlags)
			propIx, faqIx, err := buildIndexes(cfg)
			if err != nil {
				return err
			}
			if recreate {
				for _, ix := range []index.VectorIndex{propIx, faqIx} {
					if c, ok := ix.(interface{ Clear(context.Context) error }); ok {
						if err := c.Clear(ctx); err != nil {
							return err
						}
					}
				}
				// collections were dropped, reopen them
				propIx, faqIx, err = buildIndexes(cfg)
				if err != nil {
					return err
				}
			}

			properties, faqs, err := buildStoresWith(llm, propIx, faqIx, logger)
			if err != nil {
				return err
			}
			if err := ingestCorpora(ctx, cfg, properties, faqs); err != nil {
				return err
			}
			logger.Println("ingestion complete")
			return nil
		},
	}
	ingest.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	ingest.Flags().BoolVar(&recreate, "recreate", false, "drop and rebuild the collections before indexing")

	return ingest
}
