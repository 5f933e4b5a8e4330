package client

import (
	"fmt"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// GetNetworks lists the networks of one organization.
func (c *DashboardClient) GetNetworks(orgID string) ([]models.Network, error) {
	var networks []models.Network

	resp, err := c.HTTP.R().
		SetPathParam("orgId", orgID).
		SetResult(&networks).
		Get("/organizations/{orgId}/networks")

	if err != nil {
		return nil, fmt.Errorf("failed to list networks for org %s: %w", orgID, err)
	}

	if resp.IsError() {
		return nil, newAPIError(resp)
	}

	return networks, nil
}
