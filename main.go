package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/llehouerou/ripple/internal/app"
	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/credentials"
	"github.com/llehouerou/ripple/internal/engine"
	"github.com/llehouerou/ripple/internal/events"
	"github.com/llehouerou/ripple/internal/icons"
	"github.com/llehouerou/ripple/internal/keymap"
	"github.com/llehouerou/ripple/internal/logging"
	"github.com/llehouerou/ripple/internal/mpris"
	"github.com/llehouerou/ripple/internal/playback"
	"github.com/llehouerou/ripple/internal/playlist"
	"github.com/llehouerou/ripple/internal/state"
	"github.com/llehouerou/ripple/internal/stderr"
	"github.com/llehouerou/ripple/internal/subsonic"
)

const shutdownTimeout = 2 * time.Second

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	debugPath  string
}

func main() {
	var opts options

	root := &cobra.Command{
		Use:           "ripple",
		Short:         "Terminal client for Subsonic-compatible music servers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: user config then ./config.toml)")
	root.PersistentFlags().StringVar(&opts.debugPath, "debug", "", "write a debug log to this file")

	root.AddCommand(
		infoCommand(&opts),
		loginCommand(&opts),
		logoutCommand(),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "ripple:", err)
		os.Exit(1)
	}
}

func newLogger(opts options) (*zap.Logger, error) {
	logger, err := logging.New(opts.debugPath, zapcore.DebugLevel)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return logger, nil
}

func credentialStore() (*credentials.Store, error) {
	path, err := credentials.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("credentials path: %w", err)
	}
	return credentials.NewStore(path), nil
}

// resolveCredentials prefers the stored token. A password in the config
// file is turned into a fresh token without being stored.
func resolveCredentials(store *credentials.Store, cfg *config.Config) (credentials.Credentials, error) {
	creds, err := store.Load()
	if err == nil {
		return creds, nil
	}
	if !errors.Is(err, credentials.ErrNotFound) {
		return credentials.Credentials{}, err
	}
	if !cfg.HasPassword() {
		return credentials.Credentials{}, errors.New("not logged in, run 'ripple login' first")
	}
	token, salt := subsonic.NewToken(cfg.Server.Password)
	return credentials.Credentials{
		Server:   cfg.Server.URL,
		Username: cfg.Server.Username,
		Token:    token,
		Salt:     salt,
	}, nil
}

func clientOptions(cfg *config.Config, logger *zap.Logger) subsonic.Options {
	return subsonic.Options{
		ClientID:   cfg.Server.ClientID,
		Format:     cfg.Playback.Format,
		MaxBitRate: cfg.Playback.Bitrate,
		Logger:     logger,
	}
}

// initialVolume returns the configured volume, else the saved one, else nil
// for full volume.
func initialVolume(st state.Interface, cfg *config.Config, logger *zap.Logger) *uint16 {
	if v, ok := cfg.Volume(); ok {
		return &v
	}
	v, ok, err := st.GetVolume()
	if err != nil {
		logger.Warn("failed to read saved volume", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	return &v
}

func run(ctx context.Context, opts options) error {
	logger, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	icons.Init(cfg.UI.Icons)

	keys, keyErrs := keymap.NewResolver(keymap.Defaults, cfg.Keybindings)
	if len(keyErrs) > 0 {
		return fmt.Errorf("keybindings: %w", errors.Join(keyErrs...))
	}

	store, err := credentialStore()
	if err != nil {
		return err
	}
	creds, err := resolveCredentials(store, cfg)
	if err != nil {
		return err
	}

	st, err := state.Open("")
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("failed to close state", zap.Error(err))
		}
	}()

	// Audio libraries write to fd 2 once the device opens.
	if err := stderr.Start(logger); err != nil {
		logger.Warn("failed to capture stderr", zap.Error(err))
	}
	defer stderr.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eng := engine.New(engine.Config{
		Client:  clientOptions(cfg, logger),
		Session: subsonic.SessionConfig{Keepalive: cfg.Playback.Keepalive},
		Logger:  logger,
	})
	queue := events.NewQueue[playback.Event]()
	ctrl, err := playback.NewController(ctx, playback.Config{
		Engine:         eng,
		Sink:           queue,
		Credentials:    creds,
		Logger:         logger,
		Volume:         initialVolume(st, cfg, logger),
		ReconnectDelay: cfg.Playback.ReconnectDelay,
	})
	if err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}
	logger.Info("connected", zap.String("server", creds.Server), zap.String("user", ctrl.User()))

	tracks := playlist.NewQueue(ctrl)
	model := app.New(ctx, app.Options{
		Controller:    ctrl,
		Queue:         tracks,
		Catalog:       subsonic.New(creds, clientOptions(cfg, logger)),
		State:         st,
		Keys:          keys,
		Credentials:   store,
		Events:        queue,
		Logger:        logger,
		CommandKey:    cfg.UI.CommandKey,
		InitialScreen: cfg.UI.InitialScreen,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	dispatch := func(cmds ...command.Command) {
		p.Send(app.CommandMsg{Commands: cmds})
	}

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(ctrl, tracks, dispatch, logger)
		if err != nil {
			logger.Warn("mpris unavailable", zap.Error(err))
		} else {
			defer adapter.Close()
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			logger.Info("received signal", zap.Stringer("signal", sig))
			dispatch(command.Quit{})
		case <-ctx.Done():
		}
	}()

	_, runErr := p.Run()
	// quit already asked the worker to stop; this covers abnormal exits.
	ctrl.Shutdown()
	select {
	case <-ctrl.WorkerDone():
	case <-time.After(shutdownTimeout):
		logger.Warn("worker did not stop in time")
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run: %w", runErr)
	}
	return nil
}
