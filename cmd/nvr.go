package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"protect-cli/pkg/models"
)

var nvrCmd = &cobra.Command{
	Use:   "nvr",
	Short: "Show the UniFi Protect recorder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, _, err := connect(cmd.Context())
		if err != nil {
			return err
		}

		nvr, err := api.GetNVR(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(nvr)
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderNVRTable(nvr))
		return nil
	},
}

func renderNVRTable(nvr *models.NVR) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "NAME", "VERSION", "FIRMWARE", "HOST", "TIMEZONE", "UPTIME"})
	uptime := (time.Duration(nvr.Uptime) * time.Millisecond).Truncate(time.Second)
	tw.AppendRow(table.Row{nvr.ID, nvr.Name, nvr.Version, nvr.FirmwareVersion, nvr.Host, nvr.Timezone, uptime.String()})
	return tw.Render()
}

func init() {
	rootCmd.AddCommand(nvrCmd)
}
