// Package output persists a collection run to disk and optionally
// renders it as a browsable HTML index.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// SavedFile records where one successful snapshot landed on disk.
type SavedFile struct {
	// Path is the full path of the written file.
	Path string
	// Rel is the path relative to the output root, used by the HTML index.
	Rel    string
	Serial string
	Camera models.Camera
}

// SaveError records a per-file write failure. These never abort the run.
type SaveError struct {
	Path   string
	Serial string
	Err    error
}

func (e SaveError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

type Writer struct {
	Root string
}

// NewWriter creates the output root. An unwritable root is the one
// filesystem failure that is fatal to the run.
func NewWriter(root string) (*Writer, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %w", root, err)
	}
	return &Writer{Root: root}, nil
}

// Save writes every Success result to <root>/<org>/<network>/<camera>.jpg.
// Path collisions are disambiguated with the camera serial, then a numeric
// suffix; an existing file is never silently overwritten with different
// content identifiers. Per-file failures are returned alongside the saves.
func (w *Writer) Save(report *models.CollectionReport) ([]SavedFile, []SaveError) {
	var saved []SavedFile
	var failed []SaveError

	taken := make(map[string]bool)

	for _, group := range report.Groups {
		dir := filepath.Join(w.Root, sanitize(group.Organization.Name), sanitize(group.Network.Name))

		for _, res := range group.Results {
			if res.Status != models.StatusSuccess {
				continue
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				failed = append(failed, SaveError{Path: dir, Serial: res.Camera.Serial, Err: err})
				continue
			}

			path := uniquePath(dir, sanitize(res.Camera.DisplayName()), res.Camera.Serial, taken)
			if err := os.WriteFile(path, res.Image, 0644); err != nil {
				failed = append(failed, SaveError{Path: path, Serial: res.Camera.Serial, Err: err})
				continue
			}

			rel, err := filepath.Rel(w.Root, path)
			if err != nil {
				rel = path
			}
			saved = append(saved, SavedFile{
				Path:   path,
				Rel:    filepath.ToSlash(rel),
				Serial: res.Camera.Serial,
				Camera: res.Camera,
			})
		}
	}

	return saved, failed
}

// uniquePath picks the first free name among <name>.jpg, <name>-<serial>.jpg,
// <name>-<serial>-2.jpg, ... within this run.
func uniquePath(dir, name, serial string, taken map[string]bool) string {
	candidate := filepath.Join(dir, name+".jpg")
	if !taken[candidate] {
		taken[candidate] = true
		return candidate
	}

	candidate = filepath.Join(dir, fmt.Sprintf("%s-%s.jpg", name, sanitize(serial)))
	for n := 2; taken[candidate]; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%s-%d.jpg", name, sanitize(serial), n))
	}
	taken[candidate] = true
	return candidate
}

// sanitize makes org/network/camera names safe as path components.
func sanitize(name string) string {
	if name == "" {
		return "unnamed"
	}
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
	)
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "unnamed"
	}
	return cleaned
}
