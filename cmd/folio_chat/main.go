package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"folio_chat/pkg/ai"
	_ "folio_chat/pkg/ai/providers"
	"folio_chat/pkg/chat"
	"folio_chat/pkg/config"
	"folio_chat/pkg/console"
	"folio_chat/pkg/logging"
	"folio_chat/pkg/profile"
	"folio_chat/pkg/ui"

	tea "charm.land/bubbletea/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const appName = "folio_chat"

type options struct {
	configPath string
	profile    string
	provider   string
	plain      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := options{}
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Portfolio page with an AI chat assistant",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", config.GetConfigPath(), "Path to the config file")
	rootCmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "Built-in profile name or path to a profile YAML file")
	rootCmd.Flags().StringVar(&opts.provider, "provider", "", "Override the LLM provider (groq, openai, google)")
	rootCmd.Flags().BoolVar(&opts.plain, "plain", false, "Use the line-oriented console even on a terminal")
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func run(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv(os.Getenv)

	profileName := firstNonEmpty(opts.profile, cfg.Profile, profile.DefaultName)
	p, err := profile.Load(profileName)
	if err != nil {
		return err
	}
	applyProfile(&cfg, p, os.Getenv)
	if opts.provider != "" {
		cfg.LLMProvider = opts.provider
	}

	logger, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("config_invalid", "error", err)
		return err
	}

	provider, err := ai.GetProviderFromConfig(cfg)
	if err != nil {
		logger.Error("provider_init_failed", "provider", cfg.LLMProvider, "error", err)
		return err
	}

	settings, _ := cfg.Provider(cfg.LLMProvider)
	temperature := settings.Temperature
	conv := chat.New(provider, chat.Options{
		SystemPrompt: p.Instruction(),
		Greeting:     p.GreetingText(),
		History:      chat.ParseHistoryMode(cfg.Chat.History),
		MaxHistory:   cfg.Chat.MaxHistoryMessages,
		Model:        settings.Model,
		Temperature:  &temperature,
		MaxTokens:    settings.MaxTokens,
		Logger:       logger,
	})

	logger.Info("session_start",
		"profile", p.Name,
		"provider", cfg.LLMProvider,
		"model", settings.Model,
		"history", cfg.Chat.History,
		"conversation_id", conv.ID(),
	)

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if opts.plain || !interactive {
		c := console.New(p, conv, interactive)
		if err := c.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}

	program := tea.NewProgram(ui.NewModel(p, conv, settings.Model), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		logger.Error("ui_exit", "error", err)
		return err
	}
	logger.Info("session_end", "conversation_id", conv.ID(), "messages", conv.Len())
	return nil
}

// applyProfile lets a page variant pick its backend and history mode.
// FOLIO_CHAT_PROVIDER still wins over the profile, and a history mode set in
// the config file wins over the profile's.
func applyProfile(cfg *config.Config, p *profile.Profile, getenv func(string) string) {
	if v := strings.TrimSpace(p.Chat.Provider); v != "" && strings.TrimSpace(getenv(config.EnvProvider)) == "" {
		cfg.LLMProvider = v
	}
	if cfg.Chat.History == "" {
		cfg.Chat.History = p.Chat.History
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
