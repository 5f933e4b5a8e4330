package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// GenerateSnapshot asks the dashboard to produce a still image for the
// camera. A nil timestamp means "now". The returned URL is not fetchable
// immediately; see FetchImage.
func (c *DashboardClient) GenerateSnapshot(serial string, timestamp *time.Time) (*models.SnapshotLink, error) {
	body := map[string]interface{}{
		"fullframe": false,
	}
	if timestamp != nil {
		body["timestamp"] = timestamp.UTC().Format(time.RFC3339)
	}

	var link models.SnapshotLink

	resp, err := c.HTTP.R().
		SetPathParam("serial", serial).
		SetBody(body).
		SetResult(&link).
		Post("/devices/{serial}/camera/generateSnapshot")

	if err != nil {
		return nil, fmt.Errorf("failed to request snapshot for %s: %w", serial, err)
	}

	if resp.IsError() {
		return nil, newAPIError(resp)
	}

	if link.URL == "" {
		return nil, errors.New("snapshot accepted but no URL returned")
	}

	return &link, nil
}

// FetchImage downloads the snapshot bytes from a pre-signed URL. The
// dashboard returns the URL before the image is staged, so a 404 means
// "not ready yet" and is polled with doubling waits up to the configured
// attempt count.
func (c *DashboardClient) FetchImage(url string) ([]byte, error) {
	wait := c.Config.ImageReadyWait

	for attempt := 0; attempt < c.Config.ImageReadyAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(wait)
			wait *= 2
		}

		resp, err := c.download.R().Get(url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch snapshot image: %w", err)
		}

		if resp.IsSuccess() {
			if len(resp.Body()) == 0 {
				return nil, errors.New("snapshot response body is empty")
			}
			return resp.Body(), nil
		}

		if resp.StatusCode() != http.StatusNotFound {
			return nil, newAPIError(resp)
		}
	}

	return nil, fmt.Errorf("snapshot not ready after %d attempts", c.Config.ImageReadyAttempts)
}
