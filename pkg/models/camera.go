package models

import "strings"

// Camera represents a single camera device as returned by
// GET /networks/{networkId}/devices.
type Camera struct {
	Serial      string `json:"serial"`
	Name        string `json:"name"`
	Model       string `json:"model"`
	NetworkID   string `json:"networkId"`
	MAC         string `json:"mac,omitempty"`
	LanIP       string `json:"lanIp,omitempty"`
	Firmware    string `json:"firmware,omitempty"`
	ProductType string `json:"productType,omitempty"`
}

// SupportsSnapshot reports whether the device can serve the
// generateSnapshot endpoint. Only the MV camera family can.
func (c Camera) SupportsSnapshot() bool {
	return strings.HasPrefix(c.Model, "MV")
}

// DisplayName returns the configured device name, falling back to the
// serial for unnamed devices.
func (c Camera) DisplayName() string {
	if c.Name == "" {
		return c.Serial
	}
	return c.Name
}

// DeviceStatus is one entry of GET /organizations/{id}/devices/statuses.
type DeviceStatus struct {
	Serial         string `json:"serial"`
	Name           string `json:"name"`
	Status         string `json:"status"` // "online", "offline", "alerting", "dormant"
	NetworkID      string `json:"networkId"`
	ProductType    string `json:"productType,omitempty"`
	LanIP          string `json:"lanIp,omitempty"`
	PublicIP       string `json:"publicIp,omitempty"`
	LastReportedAt string `json:"lastReportedAt,omitempty"`
}
