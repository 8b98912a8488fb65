package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"a2ui/agent"
	"a2ui/config"
	"a2ui/mcp"
	"a2ui/model"
	"a2ui/provider"
	"a2ui/storage"
	"a2ui/ui"
	"a2ui/web"
)

const Version = "v0.01.00"

var (
	cfg      *config.Config
	modeFlag string
	addrFlag string
)

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		showError("Configuration Error", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "a2ui",
	Short:   "Agent-driven interactive UIs in the terminal",
	Version: Version,
	Long: `a2ui lets a language model drive an interactive form. Each reply is a
UI schema that is rendered in the terminal; every button click is sent back
to the model, which answers with the next UI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the agent loop over a websocket at /ws",
	RunE:  runServe,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the schema tools as an MCP server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.Serve(Version)
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the scripted name form, no backend needed",
	RunE: func(cmd *cobra.Command, args []string) error {
		data := model.NewModel(cfg, nil, nil, agent.NewStaticAgent(), nil, provider.FromSettings, false, Version)
		data.Static = true
		return runProgram(ui.NewAppView(data))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "dual", `reply shape: "ui" (UI only) or "dual" (chatbot text plus UI)`)
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd, mcpCmd, demoCmd)
}

func parseMode() (agent.Mode, error) {
	switch modeFlag {
	case "ui":
		return agent.UIOnly, nil
	case "dual", "":
		return agent.Dual, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want ui or dual)", modeFlag)
}

// openSettings opens the key/value store and reads the provider settings.
func openSettings() (*storage.KVStore, *config.SettingsStore, *config.ProviderSettings, error) {
	kv, err := storage.NewKVStore(config.SettingsDBPath(cfg.DataDir()))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open settings database: %w", err)
	}
	store, err := config.NewSettingsStore(kv, cfg)
	if err != nil {
		kv.Close()
		return nil, nil, nil, err
	}
	settings, err := store.Load(cfg)
	if err != nil {
		kv.Close()
		return nil, nil, nil, fmt.Errorf("failed to load provider settings: %w", err)
	}
	return kv, store, settings, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	mode, err := parseMode()
	if err != nil {
		return err
	}

	kv, store, settings, err := openSettings()
	if err != nil {
		showError("Settings Error", err)
		return err
	}
	defer kv.Close()

	if config.NeedsSetup(cfg, settings) {
		kb, err := config.LoadKeybindings(cfg.DataDir())
		if err != nil {
			kb = config.DefaultKeybindings()
		}
		final, err := tea.NewProgram(
			ui.NewWelcomeModel(cfg, kb, settings, store, provider.FromSettings),
			tea.WithAltScreen(),
		).Run()
		if err != nil {
			return fmt.Errorf("error running welcome wizard: %w", err)
		}
		wm, ok := final.(ui.WelcomeModel)
		if !ok || !wm.IsComplete() {
			return nil
		}
		settings = wm.Settings()
	}

	// A backend that cannot be built is reported by the first turn and fixed
	// from the settings modal.
	p, err := provider.FromSettings(cfg, settings)
	if err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("[Main] Provider unavailable: %v", err)
	}

	newAgent := func(p model.Provider, dual bool) model.Agent {
		m := agent.UIOnly
		if dual {
			m = agent.Dual
		}
		return agent.NewLLMAgent(p, m, cfg.SystemPrompt)
	}

	dual := mode == agent.Dual
	data := model.NewModel(cfg, settings, store, newAgent(p, dual), p, provider.FromSettings, dual, Version)
	data.NewAgent = newAgent
	return runProgram(ui.NewAppView(data))
}

func runProgram(app ui.AppView) error {
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running a2ui: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	mode, err := parseMode()
	if err != nil {
		return err
	}

	kv, _, settings, err := openSettings()
	if err != nil {
		return err
	}
	kv.Close()

	if config.NeedsSetup(cfg, settings) {
		return errors.New("no provider configured: run a2ui once to complete setup")
	}
	p, err := provider.FromSettings(cfg, settings)
	if err != nil {
		return fmt.Errorf("%w\n%s", err, model.Hint(err))
	}

	srv, err := web.NewServer(func() model.Agent {
		return agent.NewLLMAgent(p, mode, cfg.SystemPrompt)
	}, cfg.SessionCacheSize)
	if err != nil {
		return err
	}

	addr := addrFlag
	if addr == "" {
		addr = cfg.WebAddr
	}
	fmt.Fprintf(cmd.OutOrStdout(), "a2ui %s serving %s on ws://%s/ws\n", Version, p.GetDisplayName(), addr)
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Web] Listening on %s (mode=%s)", addr, mode)
	}
	return http.ListenAndServe(addr, srv.Handler())
}

func showError(title string, err error) {
	if _, runErr := tea.NewProgram(ui.NewErrorModalFor(title, err), tea.WithAltScreen()).Run(); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
