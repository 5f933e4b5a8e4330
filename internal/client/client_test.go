package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/client"
)

// testClient points a client at the mock server with waits short enough
// for tests.
func testClient(baseURL string) *client.DashboardClient {
	return client.New(client.ClientConfig{
		BaseURL:            baseURL,
		APIKey:             "test-key",
		Timeout:            2 * time.Second,
		RetryWait:          time.Millisecond,
		ImageReadyWait:     time.Millisecond,
		ImageReadyAttempts: 3,
	})
}

func TestGetOrganizationsRetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		// [429, 429, 200]: exactly two retries then success.
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{{"id": "o1", "name": "Org One"}})
	}))
	defer ts.Close()

	orgs, err := testClient(ts.URL).GetOrganizations()
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	require.Equal(t, "Org One", orgs[0].Name)
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGetOrganizationsSurfacesAuthError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":["Invalid API key"]}`))
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).GetOrganizations()
	require.Error(t, err)

	apiErr, ok := err.(*client.APIError)
	require.True(t, ok)
	require.True(t, apiErr.Unauthorized())
	require.False(t, apiErr.Temporary())
	require.Contains(t, apiErr.Error(), "Invalid API key")
}

func TestGenerateSnapshotPermanentErrorNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":["Device not found"]}`))
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).GenerateSnapshot("QQQQ-1111-2222", nil)
	require.Error(t, err)
	// 4xx other than 429 is permanent: one attempt only.
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))

	apiErr, ok := err.(*client.APIError)
	require.True(t, ok)
	require.False(t, apiErr.Temporary())
}

func TestGenerateSnapshotSendsTimestamp(t *testing.T) {
	var gotBody map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/devices/Q234-ABCD-5678/camera/generateSnapshot", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": "https://spn.meraki.com/x.jpg"})
	}))
	defer ts.Close()

	when := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	link, err := testClient(ts.URL).GenerateSnapshot("Q234-ABCD-5678", &when)
	require.NoError(t, err)
	require.Equal(t, "https://spn.meraki.com/x.jpg", link.URL)
	require.Equal(t, "2026-08-24T09:00:00Z", gotBody["timestamp"])
}

func TestFetchImagePollsUntilReady(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The pre-signed URL must not carry our bearer token.
		require.Empty(t, r.Header.Get("Authorization"))
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("jpeg-bytes"))
	}))
	defer ts.Close()

	img, err := testClient(ts.URL).FetchImage(ts.URL + "/snap.jpg")
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg-bytes"), img)
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestFetchImageGivesUpWhenNeverReady(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).FetchImage(ts.URL + "/snap.jpg")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not ready")
}

func TestGetCameraDevicesFiltersNonCameras(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/networks/N_1/devices", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{
			{"serial": "Q1", "model": "MV12W", "name": "Lobby"},
			{"serial": "Q2", "model": "MS120-8", "name": "Switch"},
			{"serial": "Q3", "model": "MV2", "productType": "camera"},
			{"serial": "Q4", "model": "MR36", "productType": "wireless"},
		})
	}))
	defer ts.Close()

	cams, err := testClient(ts.URL).GetCameraDevices("N_1")
	require.NoError(t, err)
	require.Len(t, cams, 2)
	require.Equal(t, "Q1", cams[0].Serial)
	require.Equal(t, "Q3", cams[1].Serial)
}
