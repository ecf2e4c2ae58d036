package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ayadlabs/propchat/config"
	"github.com/ayadlabs/propchat/internal/dialogue"
	"github.com/ayadlabs/propchat/internal/telemetry"
	"github.com/ayadlabs/propchat/internal/tools"
	"github.com/ayadlabs/propchat/provider"
	"github.com/ayadlabs/propchat/session/inmemory"
)

func chatCMD() *cobra.Command {
	var cfgPath string
	var chat = &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			ctx := context.Background()

			llm, err := provider.NewProvider(cfg.LLM)
			if err != nil {
				return err
			}

			logger := log.New(log.Writer(), "[CHAT] ", log.LstdFlags)
			properties, faqs, err := buildStores(cfg, llm, logger)
			if err != nil {
				return err
			}
			if err := ingestCorpora(ctx, cfg, properties, faqs); err != nil {
				return err
			}

			tel := telemetry.New(nil)
			router := tools.NewRouter(properties, faqs, tel, logger)
			orch := dialogue.New(llm, router, inmemory.NewStore(), tel, cfg.General.TurnTimeout, logger)

			fmt.Println("👋 Welcome to Siraa! Your Real Estate Assistant.")
			fmt.Println("Type 'exit' to quit the chat.")
			fmt.Println(strings.Repeat("-", 50))

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("\nYou: ")
				if !scanner.Scan() {
					break
				}
				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}
				if strings.EqualFold(input, "exit") {
					fmt.Println("Siraa: 👋 Goodbye!")
					break
				}
				fmt.Printf("Siraa: %s\n", orch.Respond(ctx, "terminal", input))
			}
			return scanner.Err()
		},
	}
	chat.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return chat
}
