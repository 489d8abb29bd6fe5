package coordinator_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/0xPolygon/zero-coordinator/coordinator"
	"github.com/0xPolygon/zero-coordinator/coordinator/db"
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/prover"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const localFileRequest = `{"run_name":"bench","source":{"localFile":{"filepath":"/data/blocks.json"}}}`

type serverTest struct {
	queue  *coordinator.Queue
	ledger *db.RequestStorage
	srv    *httptest.Server
}

func newServerTest(t *testing.T, capacity int) *serverTest {
	t.Helper()

	s := &serverTest{
		queue:  coordinator.NewQueue(capacity),
		ledger: newLedger(t),
	}
	cfg := coordinator.Config{QueueCapacity: capacity, MaxRequestBodyBytes: 1 << 20}
	server := coordinator.NewServer(log.WithFields("module", "server"), cfg, s.queue, s.ledger)
	s.srv = httptest.NewServer(server.Handler())
	t.Cleanup(s.srv.Close)
	return s
}

func (s *serverTest) post(t *testing.T, body string) (*http.Response, string) {
	t.Helper()

	resp, err := http.Post(s.srv.URL+"/", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestServerHealth(t *testing.T) {
	s := newServerTest(t, 1)

	resp, err := http.Get(s.srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
}

func TestServerAcceptsRequest(t *testing.T) {
	s := newServerTest(t, 2)

	resp, body := s.post(t, localFileRequest)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var accepted coordinator.AcceptedResponse
	require.NoError(t, json.Unmarshal([]byte(body), &accepted))
	require.Equal(t, "accepted", accepted.Status)
	require.NotEqual(t, uuid.Nil, accepted.ID)

	require.Equal(t, 1, s.queue.Len())
	req, err := s.queue.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, accepted.ID, req.ID)
	require.Equal(t, "bench", req.RunName)
	require.Equal(t, "/data/blocks.json", req.Source.LocalFile.Path)
	require.Equal(t, prover.DefaultConfig(), req.ProverConfig)
	require.False(t, req.ReceivedAt.IsZero())

	stored, err := s.ledger.Get(accepted.ID)
	require.NoError(t, err)
	require.Equal(t, db.StatusQueued, stored.Status)
	require.Equal(t, "local_file", stored.Source)

	getResp, err := http.Get(s.srv.URL + "/requests/" + accepted.ID.String())
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var view coordinator.RequestView
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&view))
	require.Equal(t, accepted.ID, view.ID)
	require.Equal(t, db.StatusQueued, view.Status)
	require.Equal(t, "bench", view.RunName)
}

func TestServerRejectsBadRequests(t *testing.T) {
	s := newServerTest(t, 2)

	for name, body := range map[string]string{
		"not json":                 `{"source":`,
		"no source":                `{"run_name":"x"}`,
		"bad interval":             `{"source":{"rpc":{"rpc_url":"http://n","block_interval":"latest"}}}`,
		"underflow":                `{"source":{"rpc":{"rpc_url":"http://n","block_interval":"0","checkpoint":{"blockNumberNegativeOffset":1}}}}`,
		"bad run name":             `{"run_name":"../etc","source":{"localFile":{"filepath":"a"}}}`,
		"default offset underflow": `{"source":{"rpc":{"rpc_url":"http://n","block_interval":"0"}}}`,
		"huge range":               `{"source":{"rpc":{"rpc_url":"http://n","block_interval":"1..=4611686018427387904"}}}`,
		"whole block space":        `{"source":{"rpc":{"rpc_url":"http://n","block_interval":"0..=18446744073709551615","checkpoint":{"constant":0}}}}`,
		"bad batch size":           `{"source":{"localFile":{"filepath":"a"}},"prover_config":{"batch_size":0}}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, _ := s.post(t, body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
	require.Equal(t, 0, s.queue.Len())
}

func TestServerRejectsWrongContentType(t *testing.T) {
	s := newServerTest(t, 1)

	resp, err := http.Post(s.srv.URL+"/", "text/plain", strings.NewReader(localFileRequest))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestServerQueueClosed(t *testing.T) {
	s := newServerTest(t, 1)
	s.queue.Close()

	resp, _ := s.post(t, localFileRequest)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	failed, err := s.ledger.ListByStatus(db.StatusFailed)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	require.Contains(t, *failed[0].Error, coordinator.ErrQueueClosed.Error())
}

func TestServerGetRequestErrors(t *testing.T) {
	s := newServerTest(t, 1)

	resp, err := http.Get(s.srv.URL + "/requests/not-a-uuid")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(s.srv.URL + "/requests/" + uuid.NewString())
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerMetrics(t *testing.T) {
	s := newServerTest(t, 1)
	s.post(t, localFileRequest)

	resp, err := http.Get(s.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "zero_server_requests_received_total")
}
