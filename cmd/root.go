package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"protect-cli/internal/client"
	"protect-cli/internal/config"
	"protect-cli/internal/logging"
)

var cfgFile string
var jsonOutput bool

// settings is rebuilt for every invocation in PersistentPreRunE
var settings = viper.New()

// flagKeys maps flag names to the config keys they override
var flagKeys = map[string]string{
	"log-level":    config.KeyLogLevel,
	"address":      config.KeyAddress,
	"port":         config.KeyPort,
	"not-unifi-os": config.KeyNotUnifiOS,
	"username":     config.KeyUsername,
	"password":     config.KeyPassword,
	"verify-ssl":   config.KeyVerifySSL,
	"timeout":      config.KeyTimeout,
	"cameras":      config.KeyCameras,
}

// logger is replaced in PersistentPreRunE once the log level is known
var logger = zap.NewNop()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "protect-cli",
	Short: "A CLI for inspecting cameras and footage on a UniFi Protect NVR",
	Long: `List cameras and the time ranges of their recorded footage on a
UniFi Protect video recorder, take snapshots, or export footage metrics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings = viper.New()
		if err := bindFlags(settings, cmd); err != nil {
			return err
		}
		if err := config.InitConfig(settings, cfgFile); err != nil {
			return err
		}
		l, err := logging.New(settings.GetString(config.KeyLogLevel))
		if err != nil {
			return err
		}
		logger = l
		if used := settings.ConfigFileUsed(); used != "" {
			logger.Debug("loaded config", zap.String("path", used))
		}
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()

	if err != nil {
		// Logs may be filtered by level; the error itself always reaches stderr
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(client.ExitCode(err))
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.protect-cli.yaml)")
	flags.BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")

	// Connection flags, also read from PROTECT_<NAME> and the config file
	flags.String("address", "unifi", "IP address or hostname of the UniFi Protect server")
	flags.Int("port", 0, "Port of the UniFi Protect server (default 443, or 7443 with --not-unifi-os)")
	flags.Bool("not-unifi-os", false, "Use this for systems without UniFi OS")
	flags.StringP("username", "u", "", "Username of a user with local access")
	flags.StringP("password", "p", "", "Password of a user with local access")
	flags.Bool("verify-ssl", false, "Verify the Protect SSL certificate")
	flags.Duration("timeout", 0, "HTTP request timeout (default 30s)")
}
