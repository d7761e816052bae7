package models

// Bootstrap represents the subset of GET /bootstrap this CLI consumes
type Bootstrap struct {
	NVR     NVR      `json:"nvr"`
	Cameras []Camera `json:"cameras"`
}

// Camera represents a single Protect camera device
type Camera struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Type            string      `json:"type"`  // Model key, e.g. "UVC G4 Bullet"
	State           string      `json:"state"` // "CONNECTED", "DISCONNECTED", ...
	Host            string      `json:"host"`  // Camera IP address
	MAC             string      `json:"mac"`
	FirmwareVersion string      `json:"firmwareVersion"`
	IsConnected     bool        `json:"isConnected"`
	IsRecording     bool        `json:"isRecording"`
	Stats           CameraStats `json:"stats"`
}

type CameraStats struct {
	Video VideoStats `json:"video"`
}

// VideoStats carries the earliest and latest recorded footage as epoch
// milliseconds. Zero means the NVR has no footage for that bound.
type VideoStats struct {
	RecordingStart int64 `json:"recordingStart"`
	RecordingEnd   int64 `json:"recordingEnd"`
}
