package collector

import (
	"time"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// NewReport groups results by organization then network, preserving the
// input order exactly. Purely structural: no result is dropped, reordered
// across groups, or touched.
func NewReport(results []models.SnapshotResult) *models.CollectionReport {
	report := &models.CollectionReport{
		GeneratedAt: time.Now(),
	}

	index := make(map[string]int)
	for _, res := range results {
		key := res.Organization.ID + "/" + res.Network.ID
		i, ok := index[key]
		if !ok {
			i = len(report.Groups)
			index[key] = i
			report.Groups = append(report.Groups, models.ReportGroup{
				Organization: res.Organization,
				Network:      res.Network,
			})
		}
		report.Groups[i].Results = append(report.Groups[i].Results, res)
	}

	return report
}
