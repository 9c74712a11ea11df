package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/idursun/layerview/internal/config"
	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/logging"
	"github.com/idursun/layerview/internal/navigation"
	"github.com/idursun/layerview/internal/signal"
	"github.com/idursun/layerview/internal/ui"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/viewer"
)

var (
	configPath string
	logFile    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "layerview",
	Short: "Browse and rearrange groups of viewer layers in the terminal",
	Long: `layerview opens one panel per layer group from the configuration. Layers can be
dragged between panels, toggled, edited and inspected while a slice view follows
the navigation position.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

// Execute runs the root command and exits with a non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("LAYERVIEW_CONFIG"), "Configuration file read over the built-in defaults")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	config.Current = cfg
	common.FrameInterval = cfg.UI.FrameInterval()
	common.DefaultPalette.Update(cfg.UI.Colors)
	return cfg, nil
}

// buildTargets creates the configured groups. All groups share one peer
// position; the link of each group decides how it follows the peer.
func buildTargets(groups []config.GroupConfig) ([]viewer.Target, error) {
	peer := signal.NewWatchable(navigation.Position{})
	targets := make([]viewer.Target, 0, len(groups))
	for _, g := range groups {
		link, err := config.ParseLink(g.Link)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		group := layer.NewListSpecification(g.Name, nil)
		for _, spec := range g.Layers {
			l, err := group.NewLayer(spec)
			if err != nil {
				return nil, fmt.Errorf("group %q layer %q: %w", g.Name, spec.Name, err)
			}
			group.Add(l, -1)
		}
		targets = append(targets, viewer.Target{
			Group:    group,
			Position: navigation.NewLinkedPosition(peer, link),
		})
	}
	return targets, nil
}

func run() error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.Open(logFile, level)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	targets, err := buildTargets(cfg.Groups)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no layer groups configured")
	}
	slog.Info("starting", "config", configPath, "groups", len(targets))

	model, closeUI := ui.New(targets)
	defer closeUI()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
