package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/collector"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/output"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

func successResult(org, network, name, serial string) models.SnapshotResult {
	return models.SnapshotResult{
		Organization: models.Organization{ID: "id-" + org, Name: org},
		Network:      models.Network{ID: "id-" + network, Name: network},
		Camera:       models.Camera{Serial: serial, Name: name, Model: "MV12W"},
		Status:       models.StatusSuccess,
		Image:        []byte("jpeg-" + serial),
	}
}

func TestSaveDeterministicPaths(t *testing.T) {
	root := t.TempDir()
	w, err := output.NewWriter(root)
	require.NoError(t, err)

	report := collector.NewReport([]models.SnapshotResult{
		successResult("O", "N", "A", "S-A"),
		successResult("O", "N", "B", "S-B"),
	})

	saved, failed := w.Save(report)
	require.Empty(t, failed)
	require.Len(t, saved, 2)
	require.Equal(t, filepath.Join(root, "O", "N", "A.jpg"), saved[0].Path)
	require.Equal(t, filepath.Join(root, "O", "N", "B.jpg"), saved[1].Path)

	data, err := os.ReadFile(saved[0].Path)
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg-S-A"), data)
}

func TestSaveDisambiguatesCollisions(t *testing.T) {
	root := t.TempDir()
	w, err := output.NewWriter(root)
	require.NoError(t, err)

	// Two distinct cameras share a display name; neither write may clobber
	// the other.
	report := collector.NewReport([]models.SnapshotResult{
		successResult("O", "N", "Door", "S-1"),
		successResult("O", "N", "Door", "S-2"),
	})

	saved, failed := w.Save(report)
	require.Empty(t, failed)
	require.Len(t, saved, 2)
	require.Equal(t, filepath.Join(root, "O", "N", "Door.jpg"), saved[0].Path)
	require.Equal(t, filepath.Join(root, "O", "N", "Door-S-2.jpg"), saved[1].Path)

	a, _ := os.ReadFile(saved[0].Path)
	b, _ := os.ReadFile(saved[1].Path)
	require.Equal(t, []byte("jpeg-S-1"), a)
	require.Equal(t, []byte("jpeg-S-2"), b)
}

func TestSaveSanitizesNames(t *testing.T) {
	root := t.TempDir()
	w, err := output.NewWriter(root)
	require.NoError(t, err)

	report := collector.NewReport([]models.SnapshotResult{
		successResult("Org/Inc", "Site: East", "Cam?1", "S-1"),
	})

	saved, failed := w.Save(report)
	require.Empty(t, failed)
	require.Len(t, saved, 1)
	require.Equal(t, filepath.Join(root, "Org-Inc", "Site- East", "Cam-1.jpg"), saved[0].Path)
}

func TestSaveSkipsNonSuccess(t *testing.T) {
	root := t.TempDir()
	w, err := output.NewWriter(root)
	require.NoError(t, err)

	bad := successResult("O", "N", "Down", "S-9")
	bad.Status = models.StatusError
	bad.Image = nil

	saved, failed := w.Save(collector.NewReport([]models.SnapshotResult{bad}))
	require.Empty(t, failed)
	require.Empty(t, saved)
}

func TestNewWriterRejectsUnwritableRoot(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := output.NewWriter(filepath.Join(file, "sub"))
	require.Error(t, err)
}
