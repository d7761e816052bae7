package client

import (
	"context"
	"time"

	"protect-cli/internal/footage"
	"protect-cli/pkg/models"
)

// GetBootstrap fetches the NVR description together with all adopted devices.
func (c *ProtectClient) GetBootstrap(ctx context.Context) (*models.Bootstrap, error) {
	var respData models.Bootstrap
	if err := c.get(ctx, "get bootstrap", "/bootstrap", &respData); err != nil {
		return nil, err
	}
	return &respData, nil
}

func (c *ProtectClient) GetCameras(ctx context.Context) ([]models.Camera, error) {
	var cameras []models.Camera
	if err := c.get(ctx, "get cameras", "/cameras", &cameras); err != nil {
		return nil, err
	}
	return cameras, nil
}

func (c *ProtectClient) GetNVR(ctx context.Context) (*models.NVR, error) {
	var nvr models.NVR
	if err := c.get(ctx, "get nvr", "/nvr", &nvr); err != nil {
		return nil, err
	}
	return &nvr, nil
}

// FootageCameras lists all cameras as footage directory entries.
func (c *ProtectClient) FootageCameras(ctx context.Context) ([]footage.Camera, error) {
	bootstrap, err := c.GetBootstrap(ctx)
	if err != nil {
		return nil, err
	}
	return ToFootageCameras(bootstrap.Cameras), nil
}

// ToFootageCameras converts wire cameras, mapping a zero recording bound to nil.
func ToFootageCameras(cameras []models.Camera) []footage.Camera {
	out := make([]footage.Camera, 0, len(cameras))
	for _, cam := range cameras {
		out = append(out, footage.Camera{
			ID:             cam.ID,
			Name:           cam.Name,
			RecordingStart: fromMillis(cam.Stats.Video.RecordingStart),
			RecordingEnd:   fromMillis(cam.Stats.Video.RecordingEnd),
		})
	}
	return out
}

func fromMillis(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}
