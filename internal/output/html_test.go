package output_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/collector"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/output"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

func TestRenderHTMLReferencesOnlySavedFiles(t *testing.T) {
	root := t.TempDir()
	w, err := output.NewWriter(root)
	require.NoError(t, err)

	failedCam := successResult("O", "N", "Broken", "S-BAD")
	failedCam.Status = models.StatusError
	failedCam.Reason = "dashboard API error 404"
	failedCam.Image = nil

	report := collector.NewReport([]models.SnapshotResult{
		successResult("O", "N", "Lobby", "S-OK1"),
		successResult("O", "N", "Dock", "S-OK2"),
		failedCam,
	})

	saved, failedWrites := w.Save(report)
	require.Empty(t, failedWrites)
	require.Len(t, saved, 2)

	htmlPath, err := output.RenderHTML(report, saved, root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "index.html"), htmlPath)

	raw, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	html := string(raw)

	for _, s := range saved {
		require.Contains(t, html, `src="`+s.Rel+`"`)
	}

	// The failed camera appears with its reason, but never as an image.
	require.Contains(t, html, "Broken")
	require.Contains(t, html, "dashboard API error 404")
	require.Equal(t, len(saved), strings.Count(html, "<img "))

	require.Contains(t, html, "2 collected, 0 unavailable, 1 failed")
}

func TestRenderHTMLEmptyReport(t *testing.T) {
	root := t.TempDir()

	htmlPath, err := output.RenderHTML(collector.NewReport(nil), nil, root)
	require.NoError(t, err)

	raw, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	require.Contains(t, string(raw), "0 collected, 0 unavailable, 0 failed")
	require.NotContains(t, string(raw), "<img ")
}
