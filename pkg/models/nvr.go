package models

// NVR describes the recording server itself
type NVR struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Version         string `json:"version"` // Protect application version
	FirmwareVersion string `json:"firmwareVersion"`
	Host            string `json:"host"`
	Timezone        string `json:"timezone"`
	Uptime          int64  `json:"uptime"` // milliseconds
}
