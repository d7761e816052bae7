package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"protect-cli/internal/client"
	"protect-cli/internal/config"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the UniFi Protect server",
	Long: `Authenticates with the given credentials and saves the session token
locally, so later commands can run without a password.

Example:
  protect-cli login --address 192.168.1.1 --username admin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Load(settings)
		if err := promptCredentials(&s, stdin, os.Stderr); err != nil {
			return err
		}

		logger.Info("authenticating",
			zap.String("server", s.ClientConfig().BaseURL()),
			zap.String("username", s.Username),
		)

		api := client.New(s.ClientConfig())
		session, err := api.Login(cmd.Context())
		if err != nil {
			return err
		}

		if err := config.SaveSession(settings, s, session); err != nil {
			return err
		}

		logger.Info("login successful, session saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
