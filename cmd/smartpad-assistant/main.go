// Command smartpad-assistant runs the Smartpad note assistant from the
// terminal: an interactive chat against the configured model with the full
// note and settings function surface.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/maripally-gautam/smartpad-assistant/pkg/agent"
	"github.com/maripally-gautam/smartpad-assistant/pkg/config"
	"github.com/maripally-gautam/smartpad-assistant/pkg/conversation"
	"github.com/maripally-gautam/smartpad-assistant/pkg/llm"
	"github.com/maripally-gautam/smartpad-assistant/pkg/llm/gemini"
	"github.com/maripally-gautam/smartpad-assistant/pkg/notes"
	"github.com/maripally-gautam/smartpad-assistant/pkg/storage"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "smartpad-assistant",
		Short: "Conversational assistant for Smartpad notes",
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(),
		"path to the config file")

	root.AddCommand(chatCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			store, err := buildStore(cfg)
			if err != nil {
				return err
			}
			return runREPL(cmd.Context(), store)
		},
	}
}

func buildStore(cfg *config.Config) (*conversation.Store, error) {
	var kv storage.KV
	var err error
	switch cfg.Storage.Backend {
	case config.BackendFile:
		kv, err = storage.NewFileKV(cfg.Storage.Path)
	default:
		kv, err = storage.NewSQLiteKV(cfg.Storage.Path)
	}
	if err != nil {
		return nil, err
	}

	var clientOpts []gemini.Option
	if cfg.Provider.Model != "" {
		clientOpts = append(clientOpts, gemini.WithModel(cfg.Provider.Model))
	}
	if cfg.Provider.BaseURL != "" {
		clientOpts = append(clientOpts, gemini.WithBaseURL(cfg.Provider.BaseURL))
	}
	client, err := gemini.New(cfg.Provider.APIKey, clientOpts...)
	if err != nil {
		return nil, err
	}

	orchOpts := []agent.Option{
		agent.WithMaxIterations(cfg.Agent.MaxIterations),
		agent.WithGenerationConfig(llmGeneration(cfg)),
	}
	if cfg.Agent.SilentOnCap {
		orchOpts = append(orchOpts, agent.WithCapPolicy(agent.CapPolicySilent))
	}
	orch := agent.New(client, orchOpts...)

	return conversation.NewStore(kv, orch, notes.NewMemoryHost())
}

func llmGeneration(cfg *config.Config) llm.GenerationConfig {
	return llm.GenerationConfig{
		Temperature:     cfg.Agent.Temperature,
		MaxOutputTokens: cfg.Agent.MaxOutputTokens,
	}
}

var (
	promptColor    = color.New(color.FgCyan, color.Bold)
	assistantColor = color.New(color.FgGreen)
	toolColor      = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
)

func runREPL(ctx context.Context, store *conversation.Store) error {
	fmt.Println("Smartpad assistant. Type /help for commands, /quit to exit.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		promptColor.Print("you> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := handleCommand(store, line); quit {
				return nil
			}
			continue
		}

		reply, err := store.SendMessage(ctx, line)
		if err != nil {
			errorColor.Printf("error: %v\n", err)
			continue
		}
		for _, call := range reply.ToolCalls {
			toolColor.Printf("  [%s]\n", call.Name)
		}
		assistantColor.Println(reply.Content)
	}
}

func handleCommand(store *conversation.Store, line string) (quit bool) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/exit":
		return true

	case "/new":
		c, err := store.CreateConversation()
		if err != nil {
			errorColor.Printf("error: %v\n", err)
			return false
		}
		fmt.Printf("started conversation %s\n", c.ID)

	case "/list":
		active := store.Active()
		for _, c := range store.Conversations() {
			marker := " "
			if active != nil && c.ID == active.ID {
				marker = "*"
			}
			fmt.Printf("%s %s  %s\n", marker, c.ID, c.Title)
		}

	case "/switch":
		if len(args) != 1 {
			fmt.Println("usage: /switch <conversation-id>")
			return false
		}
		c, err := store.SelectConversation(args[0])
		if err != nil {
			errorColor.Printf("error: %v\n", err)
			return false
		}
		fmt.Printf("switched to %q\n", c.Title)
		for _, m := range c.Messages {
			switch m.Role {
			case conversation.RoleUser:
				promptColor.Printf("you> ")
				fmt.Println(m.Content)
			case conversation.RoleAssistant:
				assistantColor.Println(m.Content)
			}
		}

	case "/delete":
		if len(args) != 1 {
			fmt.Println("usage: /delete <conversation-id>")
			return false
		}
		if err := store.DeleteConversation(args[0]); err != nil {
			errorColor.Printf("error: %v\n", err)
		}

	case "/clear":
		if err := store.ClearAll(); err != nil {
			errorColor.Printf("error: %v\n", err)
		}

	case "/help":
		fmt.Println("/new            start a new conversation")
		fmt.Println("/list           list conversations")
		fmt.Println("/switch <id>    switch to a conversation")
		fmt.Println("/delete <id>    delete a conversation")
		fmt.Println("/clear          delete all conversations")
		fmt.Println("/quit           exit")

	default:
		fmt.Printf("unknown command %s\n", cmd)
	}
	return false
}
