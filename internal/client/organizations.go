package client

import (
	"fmt"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// GetOrganizations lists every organization the API key can access.
func (c *DashboardClient) GetOrganizations() ([]models.Organization, error) {
	var orgs []models.Organization

	resp, err := c.HTTP.R().
		SetResult(&orgs).
		Get("/organizations")

	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	if resp.IsError() {
		return nil, newAPIError(resp)
	}

	return orgs, nil
}
