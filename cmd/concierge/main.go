// Command concierge runs the assistant as an interactive terminal chat.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/sorcery-ai/concierge/assistants"
	"github.com/sorcery-ai/concierge/chatmodel"
	"github.com/sorcery-ai/concierge/config"
	"github.com/sorcery-ai/concierge/pkg/llmfactory"
	"github.com/sorcery-ai/concierge/pkg/llmutils"
	"github.com/sorcery-ai/concierge/store"
	"github.com/sorcery-ai/concierge/tools/clock"
	"github.com/sorcery-ai/concierge/tools/mailgun"
)

var (
	cfgFile string
	chatID  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:          "concierge",
	Short:        "An assistant that can tell the time and send emails",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "cfg", "concierge.yaml", "configuration file")
	rootCmd.Flags().StringVar(&chatID, "chat", "", "chat ID to resume, a new one is generated when empty")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "print turn and tool events")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if verbose {
		xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.ERROR)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	model, err := llmfactory.New(&cfg.LLM).DefaultModel()
	if err != nil {
		return err
	}

	gateway := mailgun.NewGateway(cfg.Mailgun.Domain, cfg.Mailgun.APIKey)
	emailTool, err := mailgun.New(gateway)
	if err != nil {
		return err
	}
	timeTool, err := clock.New()
	if err != nil {
		return err
	}

	var messageStore store.MessageStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		messageStore = store.NewRedisStore(client, cfg.Redis.Prefix)
	} else {
		messageStore = store.NewMemoryStore()
	}

	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = assistants.DefaultSystemPrompt(cfg.Sender)
	}

	opts := []assistants.Option{
		assistants.WithMessageStore(messageStore),
	}
	if verbose {
		opts = append(opts, assistants.WithCallback(assistants.NewPrinterCallback(os.Stderr)))
	}

	assistant := assistants.NewAssistant(model, systemPrompt, opts...).
		WithTools(timeTool, emailTool)

	chatCtx := chatmodel.NewChatContext(chatID, nil)
	ctx = chatmodel.WithChatContext(ctx, chatCtx)

	fmt.Printf("chat %s, /reset clears the transcript, /save <file> exports it, /quit exits\n", chatCtx.GetChatID())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/reset":
			if err := messageStore.Reset(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "failed to reset: %s\n", err.Error())
			}
			continue
		case line == "/history":
			llmutils.PrintMessages(os.Stdout, messageStore.Messages(ctx))
			continue
		case strings.HasPrefix(line, "/save "):
			name := strings.TrimSpace(strings.TrimPrefix(line, "/save "))
			data := llmutils.ToYAML(messageStore.Messages(ctx))
			if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "failed to save: %s\n", err.Error())
			}
			continue
		}

		resp, err := assistant.Chat(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
			continue
		}
		fmt.Println(resp.Choices[0].Content)
	}
}
