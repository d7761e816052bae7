package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"protect-cli/internal/auth"
	"protect-cli/internal/client"
	"protect-cli/internal/footage"
)

type fakeDirectory struct {
	cameras  []footage.Camera
	errs     []error // returned by successive FootageCameras calls
	calls    int
	logins   int
	loginErr error
}

func (f *fakeDirectory) FootageCameras(context.Context) ([]footage.Camera, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.cameras, nil
}

func (f *fakeDirectory) Login(context.Context) (auth.Session, error) {
	f.logins++
	return auth.Session{Token: "tok"}, f.loginErr
}

func testCameras() []footage.Camera {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return []footage.Camera{
		{ID: "cam1", Name: "Front", RecordingStart: &start, RecordingEnd: &end},
		{ID: "cam2", Name: "Back"},
	}
}

func TestFootageCollector_Metrics(t *testing.T) {
	dir := &fakeDirectory{cameras: testCameras()}
	c := NewFootageCollector(dir, footage.ParseSelection("all"), time.Second, nil)

	expected := `
# HELP protect_camera_footage_end_timestamp_seconds Latest recorded footage.
# TYPE protect_camera_footage_end_timestamp_seconds gauge
protect_camera_footage_end_timestamp_seconds{id="cam1",name="Front"} 1.7041536e+09
# HELP protect_camera_footage_seconds Length of the recorded footage range.
# TYPE protect_camera_footage_seconds gauge
protect_camera_footage_seconds{id="cam1",name="Front"} 86400
# HELP protect_camera_footage_start_timestamp_seconds Earliest recorded footage.
# TYPE protect_camera_footage_start_timestamp_seconds gauge
protect_camera_footage_start_timestamp_seconds{id="cam1",name="Front"} 1.7040672e+09
# HELP protect_camera_has_footage Whether both footage bounds are known.
# TYPE protect_camera_has_footage gauge
protect_camera_has_footage{id="cam1",name="Front"} 1
protect_camera_has_footage{id="cam2",name="Back"} 0
# HELP protect_cameras_total Number of selected cameras.
# TYPE protect_cameras_total gauge
protect_cameras_total 2
# HELP protect_up Was the last scrape successful.
# TYPE protect_up gauge
protect_up 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"protect_camera_footage_end_timestamp_seconds",
		"protect_camera_footage_seconds",
		"protect_camera_footage_start_timestamp_seconds",
		"protect_camera_has_footage",
		"protect_cameras_total",
		"protect_up",
	)
	if err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestFootageCollector_Selection(t *testing.T) {
	dir := &fakeDirectory{cameras: testCameras()}
	c := NewFootageCollector(dir, footage.ParseSelection("cam2,missing"), 0, nil)

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	expected := `
# HELP protect_cameras_total Number of selected cameras.
# TYPE protect_cameras_total gauge
protect_cameras_total 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "protect_cameras_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if n, err := testutil.GatherAndCount(reg, "protect_camera_footage_seconds"); err != nil || n != 0 {
		t.Errorf("footage_seconds series = %d (%v), want 0", n, err)
	}
}

func TestFootageCollector_ReloginOnAuthError(t *testing.T) {
	authErr := &client.Error{Code: client.ExitAuth, Op: "get bootstrap", Status: 401, Err: errors.New("unauthorized")}
	dir := &fakeDirectory{cameras: testCameras(), errs: []error{authErr}}

	core, logs := observer.New(zap.InfoLevel)
	c := NewFootageCollector(dir, footage.ParseSelection("all"), 0, zap.New(core))

	if got := testutil.CollectAndCount(c, "protect_up"); got != 1 {
		t.Fatalf("protect_up series = %d, want 1", got)
	}
	if dir.logins != 1 {
		t.Errorf("logins = %d, want 1", dir.logins)
	}
	if dir.calls != 2 {
		t.Errorf("FootageCameras calls = %d, want 2", dir.calls)
	}
	if logs.FilterMessage("session rejected, logging in again").Len() != 1 {
		t.Errorf("missing re-login log entry, got %v", logs.All())
	}
}

func TestFootageCollector_ScrapeFailure(t *testing.T) {
	reqErr := &client.Error{Code: client.ExitRequest, Op: "get bootstrap", Err: errors.New("connection refused")}
	dir := &fakeDirectory{errs: []error{reqErr}}

	core, logs := observer.New(zap.WarnLevel)
	c := NewFootageCollector(dir, footage.ParseSelection("all"), 0, zap.New(core))

	expected := `
# HELP protect_up Was the last scrape successful.
# TYPE protect_up gauge
protect_up 0
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "protect_up"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if dir.logins != 0 {
		t.Errorf("logins = %d, want 0", dir.logins)
	}
	if logs.FilterMessage("scrape cameras").Len() != 1 {
		t.Errorf("missing scrape failure log entry, got %v", logs.All())
	}
}
