package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/credentials"
	"github.com/llehouerou/ripple/internal/subsonic"
)

const loginTimeout = 15 * time.Second

type loginFlags struct {
	server   string
	user     string
	password string
}

func loginCommand(opts *options) *cobra.Command {
	var flags loginFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify and store credentials for a server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(*opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			store, err := credentialStore()
			if err != nil {
				return err
			}
			creds, err := login(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), flags, cfg, logger)
			if err != nil {
				return err
			}
			if err := store.Save(creds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s on %s\n", creds.Username, creds.Server)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.server, "server", "", "server URL (default: server.url from the config)")
	cmd.Flags().StringVar(&flags.user, "user", "", "user name (default: server.username from the config)")
	cmd.Flags().StringVar(&flags.password, "password", "", "password (prompted when absent)")
	return cmd
}

// login fills missing flags from the config, then from a prompt, and pings
// the server with the derived token.
func login(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	flags loginFlags,
	cfg *config.Config,
	logger *zap.Logger,
) (credentials.Credentials, error) {
	server := firstNonEmpty(flags.server, cfg.Server.URL)
	user := firstNonEmpty(flags.user, cfg.Server.Username)
	password := firstNonEmpty(flags.password, cfg.Server.Password)
	if server == "" || user == "" {
		return credentials.Credentials{}, errors.New("--server and --user are required")
	}
	if password == "" {
		fmt.Fprint(out, "Password: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return credentials.Credentials{}, fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
		if password == "" {
			return credentials.Credentials{}, errors.New("empty password")
		}
	}

	token, salt := subsonic.NewToken(password)
	creds := credentials.Credentials{
		Server:   strings.TrimSuffix(server, "/"),
		Username: user,
		Token:    token,
		Salt:     salt,
	}

	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()
	client := subsonic.New(creds, clientOptions(cfg, logger))
	if err := client.Ping(ctx); err != nil {
		return credentials.Credentials{}, fmt.Errorf("login failed: %w", err)
	}
	return creds, nil
}

func logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := credentialStore()
			if err != nil {
				return err
			}
			if err := store.Remove(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
