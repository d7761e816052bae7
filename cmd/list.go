package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"protect-cli/internal/footage"
)

var listOutput string

// listCmd prints the footage ranges of the selected cameras
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available footage ranges for each camera in JSON format",
	Long: `Prints a JSON object keyed by camera ID. Every selected camera appears with
its name and the intervals for which recorded footage exists; cameras without
known footage have an empty interval list.`,
	Example: `  protect-cli list --address 192.168.1.1 --username admin
  protect-cli list --cameras "id_1,id_2" --output footage.json
  PROTECT_CAMERAS=all protect-cli list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		api, settings, err := connect(ctx)
		if err != nil {
			return err
		}

		cameras, err := api.FootageCameras(ctx)
		if err != nil {
			return err
		}

		sel := footage.ParseSelection(settings.Cameras)
		report := footage.Collect(cameras, sel)
		logger.Debug("built footage report",
			zap.Int("cameras", len(cameras)),
			zap.Bool("all", sel.All()),
			zap.Strings("requested", sel.IDs()),
			zap.Int("reported", len(report)),
		)

		// Encode fully before writing so a failure leaves no partial output
		data, err := footage.Marshal(report)
		if err != nil {
			return err
		}

		if listOutput != "" {
			if err := os.WriteFile(listOutput, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", listOutput, err)
			}
			logger.Info("footage report saved", zap.String("path", listOutput), zap.Int("cameras", len(report)))
			return nil
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("cameras", footage.SelectAll,
		`Comma-separated list of one or more camera IDs ('--cameras="id_1,id_2,id_3,..."'). `+
			`Use '--cameras=all' to list footage ranges for all available cameras.`)
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "Write the report to a file instead of stdout")
}
