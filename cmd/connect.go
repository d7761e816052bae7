package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"protect-cli/internal/client"
	"protect-cli/internal/config"
)

var errNoCredentials = &client.Error{
	Code: client.ExitAuth,
	Op:   "login",
	Err:  errors.New("no credentials: pass --username/--password, set PROTECT_USERNAME/PROTECT_PASSWORD, or run 'protect-cli login'"),
}

// bindFlags ties the flags of cmd, inherited ones included, to their keys
// in v. A flag only overrides the config file and environment when set.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if e := v.BindPFlag(key, f); e != nil {
			err = fmt.Errorf("binding flag %s: %w", f.Name, e)
		}
	})
	return err
}

// stdin is where credential prompts read from
var stdin = os.Stdin

// connect returns a client ready to query the NVR. Explicit credentials
// trigger a fresh login; otherwise a session saved for the same server is
// reused. Missing credentials are prompted for when stdin is a terminal.
func connect(ctx context.Context) (*client.ProtectClient, config.Settings, error) {
	s := config.Load(settings)
	if s.Address == "" {
		return nil, s, fmt.Errorf("no Protect server address configured")
	}

	if !s.HasCredentials() {
		if session, ok := s.SavedSession(); ok {
			api := client.New(s.ClientConfig())
			api.UseSession(session)
			logger.Debug("using saved session", zap.String("server", s.ClientConfig().BaseURL()))
			return api, s, nil
		}
		if s.Session.Valid() {
			logger.Debug("ignoring saved session issued by another server",
				zap.String("session_server", s.SessionServer.BaseURL()),
				zap.String("server", s.ClientConfig().BaseURL()),
			)
		}
	}

	if err := promptCredentials(&s, stdin, os.Stderr); err != nil {
		return nil, s, err
	}

	api := client.New(s.ClientConfig())
	logger.Debug("logging in", zap.String("server", s.ClientConfig().BaseURL()), zap.String("username", s.Username))
	if _, err := api.Login(ctx); err != nil {
		return nil, s, err
	}
	return api, s, nil
}

// promptCredentials asks for whatever part of the credentials is missing.
// Prompts go to out so stdout stays reserved for command output.
func promptCredentials(s *config.Settings, in *os.File, out io.Writer) error {
	if s.HasCredentials() {
		return nil
	}
	if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
		return errNoCredentials
	}

	if s.Username == "" {
		fmt.Fprint(out, "Username of local Protect user: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading username: %w", err)
		}
		s.Username = strings.TrimSpace(line)
	}

	if s.Password == "" {
		fmt.Fprint(out, "Password for local Protect user: ")
		pw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		s.Password = string(pw)
	}

	if !s.HasCredentials() {
		return errNoCredentials
	}
	return nil
}
