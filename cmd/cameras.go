package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"protect-cli/internal/client"
	"protect-cli/internal/footage"
	"protect-cli/pkg/models"
)

// Variables to hold flag values
var (
	cameraID   string
	outputFile string
)

// Parent Command
var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "Inspect cameras",
	Long:  `List cameras with their recording state, or take snapshots.`,
}

// List Command
var camerasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cameras",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, _, err := connect(cmd.Context())
		if err != nil {
			return err
		}

		cameras, err := api.GetCameras(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cameras)
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderCameraTable(cameras))
		return nil
	},
}

// renderCameraTable lays out one row per camera with its footage bounds.
func renderCameraTable(cameras []models.Camera) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "NAME", "MODEL", "STATE", "IP", "RECORDING", "FOOTAGE START", "FOOTAGE END"})

	for i, cam := range client.ToFootageCameras(cameras) {
		wire := cameras[i]
		start, end := "-", "-"
		if iv := footage.Intervals(cam); len(iv) == 1 {
			start, end = iv[0].Start, iv[0].End
		}
		ip := wire.Host
		if ip == "" {
			ip = "unknown"
		}
		tw.AppendRow(table.Row{cam.ID, cam.Name, wire.Type, wire.State, ip, strconv.FormatBool(wire.IsRecording), start, end})
	}
	return tw.Render()
}

// Snapshot Command
var camerasSnapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Short:   "Take a JPEG snapshot from a camera",
	Example: `  protect-cli cameras snapshot --id "camera_id_string" --output "image.jpg"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, _, err := connect(cmd.Context())
		if err != nil {
			return err
		}

		logger.Info("requesting snapshot", zap.String("camera", cameraID))

		imgData, err := api.GetSnapshot(cmd.Context(), cameraID)
		if err != nil {
			return err
		}

		if err := os.WriteFile(outputFile, imgData, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputFile, err)
		}

		logger.Info("snapshot saved", zap.String("path", outputFile), zap.Int("bytes", len(imgData)))
		return nil
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(camerasCmd)

	// Register Subcommands
	camerasCmd.AddCommand(camerasListCmd)
	camerasCmd.AddCommand(camerasSnapshotCmd)

	// Flags for Snapshot
	camerasSnapshotCmd.Flags().StringVar(&cameraID, "id", "", "ID of the camera")
	camerasSnapshotCmd.Flags().StringVar(&outputFile, "output", "snapshot.jpg", "Output filename")
	_ = camerasSnapshotCmd.MarkFlagRequired("id")
}
