package output

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>MV Snapshot Report</title>
<style>
body { font-family: sans-serif; margin: 2em; background: #f5f5f5; }
h1 { border-bottom: 2px solid #444; padding-bottom: 0.3em; }
h2 { margin-top: 1.5em; color: #333; }
.summary { background: #fff; border: 1px solid #ddd; padding: 1em; margin-bottom: 1em; }
.cameras { display: flex; flex-wrap: wrap; gap: 1em; }
.camera { background: #fff; border: 1px solid #ddd; padding: 0.8em; width: 320px; }
.camera img { max-width: 100%; }
.camera .name { font-weight: bold; }
.camera .serial { color: #777; font-size: 0.85em; }
.skipped { color: #a00; }
</style>
</head>
<body>
<h1>MV Snapshot Report</h1>
<div class="summary">
<p>Generated: {{.GeneratedAt}}</p>
{{if .RequestedAt}}<p>Snapshots requested for: {{.RequestedAt}}</p>{{end}}
<p>{{.SuccessCount}} collected, {{.UnavailableCount}} unavailable, {{.ErrorCount}} failed</p>
</div>
{{range .Sections}}
<h2>{{.Organization}} / {{.Network}}</h2>
<div class="cameras">
{{range .Cameras}}
<div class="camera">
<div class="name">{{.Name}}</div>
<div class="serial">{{.Serial}}</div>
{{if .ImagePath}}<a href="{{.ImagePath}}"><img src="{{.ImagePath}}" alt="{{.Name}}"></a>
{{else}}<p class="skipped">{{.Note}}</p>{{end}}
</div>
{{end}}
</div>
{{end}}
</body>
</html>
`

type indexData struct {
	GeneratedAt      string
	RequestedAt      string
	SuccessCount     int
	UnavailableCount int
	ErrorCount       int
	Sections         []indexSection
}

type indexSection struct {
	Organization string
	Network      string
	Cameras      []indexCamera
}

type indexCamera struct {
	Name      string
	Serial    string
	ImagePath string
	Note      string
}

// RenderHTML writes <outputDir>/index.html referencing exactly the files
// produced by Save. Cameras whose snapshot was not saved appear with
// their skip reason and no image reference.
func RenderHTML(report *models.CollectionReport, saved []SavedFile, outputDir string) (string, error) {
	byCamera := make(map[string]string, len(saved))
	for _, s := range saved {
		byCamera[s.Serial] = s.Rel
	}

	success, unavailable, failed := report.Counts()
	data := indexData{
		GeneratedAt:      report.GeneratedAt.Format(time.RFC1123),
		SuccessCount:     success,
		UnavailableCount: unavailable,
		ErrorCount:       failed,
	}
	if report.RequestedAt != nil {
		data.RequestedAt = report.RequestedAt.Format(time.RFC1123)
	}

	for _, group := range report.Groups {
		section := indexSection{
			Organization: group.Organization.Name,
			Network:      group.Network.Name,
		}
		for _, res := range group.Results {
			cam := indexCamera{
				Name:   res.Camera.DisplayName(),
				Serial: res.Camera.Serial,
			}
			if rel, ok := byCamera[res.Camera.Serial]; ok && res.Status == models.StatusSuccess {
				cam.ImagePath = rel
			} else if res.Reason != "" {
				cam.Note = res.Reason
			} else {
				cam.Note = "snapshot not saved"
			}
			section.Cameras = append(section.Cameras, cam)
		}
		data.Sections = append(data.Sections, section)
	}

	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	path := filepath.Join(outputDir, "index.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	return path, nil
}
