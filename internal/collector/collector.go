package collector

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/client"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// API is the slice of the dashboard client the collector needs. Tests
// substitute a mock server-less implementation.
type API interface {
	GetOrganizations() ([]models.Organization, error)
	GetNetworks(orgID string) ([]models.Network, error)
	GetCameraDevices(networkID string) ([]models.Camera, error)
	GenerateSnapshot(serial string, timestamp *time.Time) (*models.SnapshotLink, error)
	FetchImage(url string) ([]byte, error)
}

type Options struct {
	// Timestamp is the historical instant to snapshot; nil means now.
	Timestamp *time.Time
	// OrgFilter restricts the run to one organization, matched by ID or
	// name. Empty collects every accessible organization.
	OrgFilter string
	// Concurrency caps the camera worker pool. The dashboard allows
	// roughly 10 req/s per org, so the default stays well under it.
	Concurrency int
}

const defaultConcurrency = 4

type Collector struct {
	api  API
	opts Options
}

func New(api API, opts Options) *Collector {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Collector{api: api, opts: opts}
}

// task pairs a discovered camera with its slot in the result order.
type task struct {
	idx     int
	org     models.Organization
	network models.Network
	camera  models.Camera
}

// ErrNoOrganizations means the key authenticated but sees nothing to collect.
var ErrNoOrganizations = errors.New("no organizations accessible with this API key")

// Collect walks organizations, networks and cameras in API enumeration
// order and produces exactly one SnapshotResult per discovered camera.
// Camera-level failures never abort the run; only failing to enumerate
// organizations at all is fatal.
func (c *Collector) Collect() (*models.CollectionReport, error) {
	orgs, err := c.api.GetOrganizations()
	if err != nil {
		return nil, fmt.Errorf("organization enumeration failed: %w", err)
	}

	if c.opts.OrgFilter != "" {
		orgs = filterOrgs(orgs, c.opts.OrgFilter)
		if len(orgs) == 0 {
			return nil, fmt.Errorf("no organization matches %q", c.opts.OrgFilter)
		}
	}
	if len(orgs) == 0 {
		return nil, ErrNoOrganizations
	}

	// Discovery pass: enumerate everything up front so every camera has
	// a fixed slot before any snapshot work starts. A failing org or
	// network branch is logged and skipped, never fatal.
	var results []models.SnapshotResult
	var tasks []task

	for _, org := range orgs {
		networks, err := c.api.GetNetworks(org.ID)
		if err != nil {
			log.Printf("skipping org %q: %v", org.Name, err)
			continue
		}
		for _, network := range networks {
			cameras, err := c.api.GetCameraDevices(network.ID)
			if err != nil {
				log.Printf("skipping network %q in org %q: %v", network.Name, org.Name, err)
				continue
			}
			for _, cam := range cameras {
				idx := len(results)
				results = append(results, models.SnapshotResult{
					Organization: org,
					Network:      network,
					Camera:       cam,
				})
				if !cam.SupportsSnapshot() {
					// No API call for incapable devices.
					results[idx].Status = models.StatusUnavailable
					results[idx].Reason = fmt.Sprintf("model %s does not support snapshots", cam.Model)
					continue
				}
				tasks = append(tasks, task{idx: idx, org: org, network: network, camera: cam})
			}
		}
	}

	c.runPool(tasks, results)

	report := NewReport(results)
	report.RequestedAt = c.opts.Timestamp
	return report, nil
}

// runPool fans the snapshot tasks out over a fixed worker count. Each
// task owns its slot in results, so workers never write the same element.
func (c *Collector) runPool(tasks []task, results []models.SnapshotResult) {
	if len(tasks) == 0 {
		return
	}

	workers := c.opts.Concurrency
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan task)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				results[t.idx] = c.snapshotOne(t)
			}
		}()
	}

	for _, t := range tasks {
		jobs <- t
	}
	close(jobs)
	wg.Wait()
}

// snapshotOne requests and retrieves a single camera's image, folding
// any failure into the result status instead of returning an error.
func (c *Collector) snapshotOne(t task) models.SnapshotResult {
	res := models.SnapshotResult{
		Organization: t.org,
		Network:      t.network,
		Camera:       t.camera,
	}

	link, err := c.api.GenerateSnapshot(t.camera.Serial, c.opts.Timestamp)
	if err != nil {
		res.Status = models.StatusError
		res.Reason = failureReason(err)
		return res
	}
	res.ImageURL = link.URL

	img, err := c.api.FetchImage(link.URL)
	if err != nil {
		res.Status = models.StatusError
		res.Reason = failureReason(err)
		return res
	}

	res.Image = img
	res.Status = models.StatusSuccess
	return res
}

// failureReason keeps the dashboard's own wording where available, so the
// report can tell "snapshot not available at that time" apart from an
// offline camera without inventing categories the API doesn't have.
func failureReason(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Temporary() {
			return fmt.Sprintf("transient: %v", apiErr)
		}
		return apiErr.Error()
	}
	return err.Error()
}

func filterOrgs(orgs []models.Organization, needle string) []models.Organization {
	var out []models.Organization
	for _, org := range orgs {
		if org.ID == needle || strings.EqualFold(org.Name, needle) {
			out = append(out, org)
		}
	}
	return out
}
