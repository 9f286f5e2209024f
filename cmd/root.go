// Package cmd implements the quill command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/quill/internal/app"
	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/store"
	"github.com/zjrosen/quill/internal/tracing"
)

func init() {
	// Query the terminal background before bubbletea takes over stdin.
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

// rootOptions is the state shared by every subcommand of one invocation.
type rootOptions struct {
	cfgFile string
	debug   bool

	cfg     config.Config
	cfgPath string

	closeLog func()
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "quill [file]",
		Short: "A terminal editor for lightweight emphasis and link markup",
		Long: `Quill edits plain text files written in a small markup language:
**bold**, *italic* or _italic_, ***both***, [label](url) links and bare
URLs or email addresses. The same document can be edited as source or in
a formatted view, and read with a bionic reading overlay that bolds the
start of every word.

Without a file argument quill opens an unsaved scratch buffer.`,
		Version:           version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: opts.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, opts, args)
		},
	}

	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "",
		"config file (default: .quill/config.yaml, then ~/.config/quill/config.yaml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"write debug logs to $QUILL_LOG or ./debug.log")

	root.Flags().String("view", "", "initial view: source or formatted")
	root.Flags().Bool("bionic", false, "start with the reading overlay on")
	root.Flags().String("strength", "", "reading overlay strength: light, medium or strong")
	root.Flags().Bool("no-autolink", false, "do not turn bare URLs and emails into links")
	root.Flags().Bool("no-spell", false, "disable spell checking")
	root.Flags().Bool("no-watch", false, "do not reload the file when it changes on disk")

	root.AddCommand(
		newCheckCmd(opts),
		newLinksCmd(opts),
		newRenderCmd(opts),
		newDictCmd(opts),
	)
	return root, opts
}

// setup turns on logging and loads the configuration.
func (o *rootOptions) setup(_ *cobra.Command, _ []string) error {
	if os.Getenv("QUILL_DEBUG") != "" || o.debug {
		o.debug = true
		logPath := os.Getenv("QUILL_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		closeLog, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing log: %w", err)
		}
		o.closeLog = closeLog
		log.Info(log.CatConfig, "quill starting", "version", version)
	}

	cfg, path, err := config.Load(viper.New(), o.cfgFile)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.cfgPath = path
	return nil
}

func (o *rootOptions) close() {
	if o.closeLog != nil {
		o.closeLog()
	}
}

// applyEditorFlags overrides cfg with the flags the user set and reports
// whether any setting changed.
func applyEditorFlags(cmd *cobra.Command, cfg *config.Config) (bool, error) {
	flags := cmd.Flags()
	changed := false
	if flags.Changed("view") {
		cfg.Editor.DefaultView, _ = flags.GetString("view")
		changed = true
	}
	if flags.Changed("bionic") {
		cfg.Bionic.Enabled, _ = flags.GetBool("bionic")
		changed = true
	}
	if flags.Changed("strength") {
		cfg.Bionic.Strength, _ = flags.GetString("strength")
		changed = true
	}
	if flags.Changed("no-autolink") {
		off, _ := flags.GetBool("no-autolink")
		cfg.Editor.AutoLink = !off
		changed = true
	}
	if flags.Changed("no-spell") {
		off, _ := flags.GetBool("no-spell")
		cfg.Editor.SpellCheck = !off
		changed = true
	}
	if flags.Changed("no-watch") {
		off, _ := flags.GetBool("no-watch")
		cfg.Watch.Enabled = !off
	}
	if err := config.Validate(*cfg); err != nil {
		return false, fmt.Errorf("invalid flags: %w", err)
	}
	return changed, nil
}

// editorServices builds the app collaborators for one editing session.
// The returned cleanup releases them.
func editorServices(ctx context.Context, cmd *cobra.Command, o *rootOptions, args []string) (app.Services, func(), error) {
	cfg := o.cfg
	overridden, err := applyEditorFlags(cmd, &cfg)
	if err != nil {
		return app.Services{}, nil, err
	}

	provider, err := tracing.NewProvider(tracing.FromConfig(cfg.Tracing))
	if err != nil {
		return app.Services{}, nil, fmt.Errorf("initializing tracing: %w", err)
	}
	sp := openSpelling(ctx, cfg.Dictionary)

	svc := app.Services{
		Config:  cfg,
		Checker: sp.checker,
		Custom:  sp.custom,
		Tracer:  provider.Tracer(),
		Debug:   o.debug,
	}
	// Settings passed as flags apply to this session only.
	if !overridden {
		svc.ConfigPath = o.cfgPath
	}
	if len(args) == 1 {
		svc.Store = store.New(args[0])
		svc.Watch = cfg.Watch.Enabled
	}

	cleanup := func() {
		sp.close()
		if err := provider.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatConfig, "Tracing shutdown failed", err)
		}
	}
	return svc, cleanup, nil
}

func runEditor(cmd *cobra.Command, o *rootOptions, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := editorServices(ctx, cmd, o, args)
	if err != nil {
		return err
	}
	defer cleanup()

	model, err := app.New(ctx, svc)
	if err != nil {
		return err
	}

	zone.NewGlobal()
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	model.Close()

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	root, opts := newRootCmd()
	defer opts.close()
	return root.Execute()
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}
