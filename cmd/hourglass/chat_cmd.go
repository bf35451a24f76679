package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/hourglass-ai/hourglass/pkg/agent"
	"github.com/hourglass-ai/hourglass/pkg/bus"
	"github.com/hourglass-ai/hourglass/pkg/config"
	"github.com/hourglass-ai/hourglass/pkg/intent"
	"github.com/hourglass-ai/hourglass/pkg/logger"
	"github.com/hourglass-ai/hourglass/pkg/providers"
	"github.com/hourglass-ai/hourglass/pkg/session"
	"github.com/hourglass-ai/hourglass/pkg/tools"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat, or answer a single message with -m",
		RunE:  runChat,
	}
	addChatFlags(cmd)
	return cmd
}

func addChatFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message", "m", "", "Process one message and exit")
	cmd.Flags().StringP("session", "s", "cli:default", "Session key scoping conversation history")
	cmd.Flags().String("config", "", "Config file path (default ~/.hourglass/config.json)")
	cmd.Flags().BoolP("debug", "d", false, "Enable debug logging")
}

func runChat(cmd *cobra.Command, args []string) error {
	message, _ := cmd.Flags().GetString("message")
	sessionKey, _ := cmd.Flags().GetString("session")
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if debug || cfg.Log.Debug {
		logger.SetLevel(logger.DEBUG)
	}
	if cfg.Log.File != "" {
		if err := logger.EnableFileLogging(cfg.Log.File); err != nil {
			fmt.Printf("Warning: file logging disabled: %v\n", err)
		}
	}

	provider := providers.NewOpenAIProvider(cfg.LLM.APIKey, cfg.LLM.BaseURL)

	registry := tools.NewRegistry()
	registry.Register(tools.NewClockTool(cfg.Agent.DefaultTimezone))
	registry.Register(tools.NewWeatherTool())
	registry.Register(tools.NewStockTool())
	registry.Register(tools.NewCalculatorTool())

	sessions := session.NewManager(cfg.Agent.SessionsDir)

	router := agent.NewRouter(
		intent.NewClassifier(provider, cfg.LLM.Model),
		agent.NewTimeAgent(registry, cfg.Agent.DefaultTimezone),
		agent.NewGeneralAgent(provider, registry, cfg.LLM.Model,
			agent.WithCompletionOptions(map[string]any{
				"max_tokens":  cfg.LLM.MaxTokens,
				"temperature": cfg.LLM.Temperature,
			})),
		sessions,
	)

	logger.InfoCF("chat", "Assistant initialized", map[string]any{
		"model":       cfg.LLM.Model,
		"tools_count": len(registry.Definitions()),
		"session":     sessionKey,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgBus := bus.NewMessageBus()
	defer msgBus.Close()

	// The router runs on its own goroutine; the input loop below only
	// talks to the bus.
	go func() {
		for {
			inbound, ok := msgBus.ConsumeInbound(ctx)
			if !ok {
				return
			}
			reply := router.HandleTurn(ctx, inbound.SessionKey, inbound.Content)
			msgBus.PublishOutbound(bus.OutboundMessage{
				SessionKey: inbound.SessionKey,
				Content:    reply,
			})
		}
	}()

	ask := func(input string) string {
		msgBus.PublishInbound(bus.InboundMessage{SessionKey: sessionKey, Content: input})
		outbound, ok := msgBus.ConsumeOutbound(ctx)
		if !ok {
			return ""
		}
		return outbound.Content
	}

	if message != "" {
		typewriterPrint(ask(message))
		return nil
	}

	printBanner(registry)
	interactiveMode(ask)
	return nil
}

func printBanner(registry *tools.Registry) {
	fmt.Printf("%s Welcome! I can answer questions and use these tools:\n", logo)
	for _, tool := range registry.List() {
		fmt.Printf("  - %s: %s\n", tool.Name(), tool.Description())
	}
	fmt.Println(`Try: "现在几点了？", "What's the date today?", "北京今天天气怎么样？"`)
	fmt.Println("Type 'exit' to quit.")
	fmt.Println()
}

func isExitWord(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit", "q", "退出":
		return true
	}
	return false
}

func interactiveMode(ask func(string) string) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "You: ",
		HistoryFile:     filepath.Join(os.TempDir(), ".hourglass_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		fmt.Println("Falling back to simple input mode...")
		simpleInteractiveMode(ask)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if isExitWord(input) {
			fmt.Println("Goodbye!")
			return
		}

		typewriterPrint(ask(input))
	}
}

func simpleInteractiveMode(ask func(string) string) {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("You: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if isExitWord(input) {
			fmt.Println("Goodbye!")
			return
		}

		typewriterPrint(ask(input))
	}
}
