package client

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// GetSnapshot downloads a JPEG snapshot for the given camera ID.
// Returns the binary byte slice of the image.
func (c *ProtectClient) GetSnapshot(ctx context.Context, cameraID string) ([]byte, error) {
	const op = "get snapshot"

	if !c.session.Valid() {
		return nil, &Error{Code: ExitAuth, Op: op, Err: errors.New("not logged in")}
	}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetHeader("Accept", "image/jpeg").
		SetQueryParam("ts", strconv.FormatInt(time.Now().UnixMilli(), 10)). // Bypass the NVR's snapshot cache
		SetQueryParam("force", "true").
		SetPathParam("id", cameraID).
		Get(c.Config.apiPrefix() + "/cameras/{id}/snapshot")
	if err != nil {
		return nil, &Error{Code: ExitRequest, Op: op, Err: err}
	}

	if resp.IsError() {
		return nil, statusError(op, resp.StatusCode(), resp.String())
	}

	if len(resp.Body()) == 0 {
		return nil, &Error{Code: ExitDecode, Op: op, Status: resp.StatusCode(), Err: errors.New("response body is empty")}
	}

	return resp.Body(), nil
}
