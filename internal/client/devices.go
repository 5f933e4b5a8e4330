package client

import (
	"fmt"
	"strings"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// GetCameraDevices lists the camera devices of one network. Non-camera
// devices (switches, APs, sensors) are filtered out here so callers only
// ever see snapshot candidates.
func (c *DashboardClient) GetCameraDevices(networkID string) ([]models.Camera, error) {
	var devices []models.Camera

	resp, err := c.HTTP.R().
		SetPathParam("networkId", networkID).
		SetResult(&devices).
		Get("/networks/{networkId}/devices")

	if err != nil {
		return nil, fmt.Errorf("failed to list devices for network %s: %w", networkID, err)
	}

	if resp.IsError() {
		return nil, newAPIError(resp)
	}

	var cameras []models.Camera
	for _, d := range devices {
		if isCameraDevice(d) {
			cameras = append(cameras, d)
		}
	}
	return cameras, nil
}

// isCameraDevice matches on productType when the firmware reports it,
// falling back to the MV model prefix for older responses that omit it.
func isCameraDevice(d models.Camera) bool {
	if d.ProductType != "" {
		return strings.EqualFold(d.ProductType, "camera")
	}
	return strings.HasPrefix(d.Model, "MV")
}

// GetDeviceStatuses returns the org-wide device status list, used by the
// exporter and to tell "camera offline" apart from other snapshot failures.
func (c *DashboardClient) GetDeviceStatuses(orgID string) ([]models.DeviceStatus, error) {
	var statuses []models.DeviceStatus

	resp, err := c.HTTP.R().
		SetPathParam("orgId", orgID).
		SetResult(&statuses).
		Get("/organizations/{orgId}/devices/statuses")

	if err != nil {
		return nil, fmt.Errorf("failed to list device statuses for org %s: %w", orgID, err)
	}

	if resp.IsError() {
		return nil, newAPIError(resp)
	}

	return statuses, nil
}
