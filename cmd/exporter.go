package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/client"
)

// Variables to hold flag values
var (
	expBaseURL    string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	api    *client.DashboardClient
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	// 1. Validate the key once up front.
	log.Println("Validating dashboard API key...")
	if _, err := p.api.GetOrganizations(); err != nil {
		log.Printf("Fatal: dashboard not reachable with this key: %v", err)
		// Exit so the service manager attempts a restart.
		os.Exit(1)
	}
	log.Println("Dashboard reachable.")

	// 2. Setup Prometheus
	registry := prometheus.NewRegistry()
	collector := &MerakiCollector{Client: p.api}
	registry.MustRegister(collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("Meraki Exporter listening on %s", addr)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COLLECTOR LOGIC ---

type MerakiCollector struct {
	Client *client.DashboardClient
	Mutex  sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"meraki_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"meraki_scrape_duration_seconds", "Time taken to scrape the dashboard API.", nil, nil,
	)
	orgCountDesc = prometheus.NewDesc(
		"meraki_organizations_total", "Number of accessible organizations.", nil, nil,
	)
	networkCountDesc = prometheus.NewDesc(
		"meraki_networks_total", "Number of networks per organization.", []string{"org"}, nil,
	)
	cameraUpDesc = prometheus.NewDesc(
		"meraki_camera_up", "Camera connection status.", []string{"serial", "name", "org"}, nil,
	)
	cameraCountDesc = prometheus.NewDesc(
		"meraki_cameras_total", "Total cameras grouped by status.", []string{"org", "status"}, nil,
	)
)

func (c *MerakiCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- orgCountDesc
	ch <- networkCountDesc
	ch <- cameraUpDesc
	ch <- cameraCountDesc
}

func (c *MerakiCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	start := time.Now()
	success := 1.0

	orgs, err := c.Client.GetOrganizations()
	if err != nil {
		log.Printf("Error scraping organizations: %v", err)
		ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 0)
		ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
		return
	}
	ch <- prometheus.MustNewConstMetric(orgCountDesc, prometheus.GaugeValue, float64(len(orgs)))

	for _, org := range orgs {
		if networks, err := c.Client.GetNetworks(org.ID); err == nil {
			ch <- prometheus.MustNewConstMetric(networkCountDesc, prometheus.GaugeValue, float64(len(networks)), org.Name)
		} else {
			success = 0.0
			log.Printf("Error scraping networks for %s: %v", org.Name, err)
		}

		statuses, err := c.Client.GetDeviceStatuses(org.ID)
		if err != nil {
			success = 0.0
			log.Printf("Error scraping device statuses for %s: %v", org.Name, err)
			continue
		}

		statusCounts := make(map[string]float64)
		for _, st := range statuses {
			if !strings.EqualFold(st.ProductType, "camera") {
				continue
			}

			isUp := 0.0
			if strings.EqualFold(st.Status, "online") {
				isUp = 1.0
			}
			name := st.Name
			if name == "" {
				name = st.Serial
			}
			ch <- prometheus.MustNewConstMetric(cameraUpDesc, prometheus.GaugeValue, isUp, st.Serial, name, org.Name)

			s := strings.ToLower(st.Status)
			if s == "" {
				s = "unknown"
			}
			statusCounts[s]++
		}
		for s, cnt := range statusCounts {
			ch <- prometheus.MustNewConstMetric(cameraCountDesc, prometheus.GaugeValue, cnt, org.Name, s)
		}
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus exporter service",
	Long: `Starts a long-running HTTP server that exposes Meraki camera fleet
metrics. Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Setup Client Config
		key := resolveAPIKey()
		if key == "" {
			log.Fatal("Error: You must provide an API key (--apikey or MERAKI_DASHBOARD_API_KEY).")
		}

		cfg := client.ClientConfig{
			BaseURL: strings.TrimRight(expBaseURL, "/"),
			APIKey:  key,
		}

		// 2. Define Service Configuration
		svcConfig := &service.Config{
			Name:        "mv-exporter",
			DisplayName: "Meraki Camera Prometheus Exporter",
			Description: "Exposes Meraki MV camera fleet metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--apikey", key,
				"--port", expPort,
			},
		}
		if expBaseURL != "" {
			svcConfig.Arguments = append(svcConfig.Arguments, "--baseurl", expBaseURL)
		}

		prg := &program{
			api: client.New(cfg),
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// 3. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if serviceAction == "install" && apiKey == "" {
				log.Fatal("Error: Pass the key explicitly with --apikey when installing the service.")
			}

			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 4. Run the Service (Blocking)
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expBaseURL, "baseurl", "", "Dashboard API base URL")
	exporterCmd.Flags().StringVar(&expPort, "port", "9101", "Port to listen on")

	// Flag for Service Control
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
