package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/rteeter/logCollection/internal/config"
)

// ServerSuite starts the real server on a free port and talks to it over HTTP.
type ServerSuite struct {
	suite.Suite
	baseURL string
	token   string
	cancel  context.CancelFunc
	done    chan error
	client  *http.Client
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func (s *ServerSuite) SetupSuite() {
	logDir := s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(logDir, "app.log"), []byte("a ERROR 1\nb INFO 2\nc ERROR 3\n"), 0o644))

	port := freePort(s.T())
	s.token = "secret"
	s.baseURL = fmt.Sprintf("http://127.0.0.1:%d", port)
	s.client = &http.Client{Timeout: 5 * time.Second}

	cfg := &config.Config{
		APIPort:        port,
		AuthToken:      s.token,
		LogDir:         logDir,
		LogLevel:       "error",
		GinMode:        "test",
		DefaultLines:   1000,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		RequestTimeout: 5 * time.Second,
		TrustedProxies: "nil",
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan error, 1)
	go func() { s.done <- run(ctx, cfg) }()

	s.Require().Eventually(func() bool {
		resp, err := s.client.Get(s.baseURL + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond, "server did not come up")
}

func (s *ServerSuite) TearDownSuite() {
	s.cancel()
	select {
	case err := <-s.done:
		s.NoError(err)
	case <-time.After(15 * time.Second):
		s.Fail("server did not shut down")
	}
}

func (s *ServerSuite) getAuthHeaders(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func (s *ServerSuite) doRequest(path string, headers http.Header) ([]byte, int) {
	s.T().Helper()
	req, err := http.NewRequest(http.MethodGet, s.baseURL+path, nil)
	s.Require().NoError(err)
	req.Header = headers
	resp, err := s.client.Do(req)
	s.Require().NoError(err, "Request execution failed")
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return body, resp.StatusCode
}

func (s *ServerSuite) TestFilteredTail() {
	body, status := s.doRequest("/logs?filename=app.log&filter=ERROR&lines=1", s.getAuthHeaders(s.token))
	s.Require().Equal(http.StatusOK, status, "Body: %s", string(body))
	s.JSONEq(`{"filename":"app.log","total_entries":1,"entries":["c ERROR 3\n"]}`, string(body))
}

func (s *ServerSuite) TestMissingToken() {
	body, status := s.doRequest("/logs?filename=app.log", s.getAuthHeaders(""))
	s.Equal(http.StatusUnauthorized, status)

	var errResp struct {
		Message string `json:"message"`
	}
	s.Require().NoError(json.Unmarshal(body, &errResp))
	s.NotEmpty(errResp.Message)
}

func (s *ServerSuite) TestWrongToken() {
	_, status := s.doRequest("/logs?filename=app.log", s.getAuthHeaders("wrong"))
	s.Equal(http.StatusUnauthorized, status)
}

func (s *ServerSuite) TestEncodedTraversal() {
	_, status := s.doRequest("/logs?filename=%2e%2e%2f%2e%2e%2fetc%2fpasswd", s.getAuthHeaders(s.token))
	s.Equal(http.StatusBadRequest, status)
}

func (s *ServerSuite) TestMissingFile() {
	_, status := s.doRequest("/logs?filename=missing.log", s.getAuthHeaders(s.token))
	s.Equal(http.StatusNotFound, status)
}

func (s *ServerSuite) TestIndexPage() {
	body, status := s.doRequest("/", s.getAuthHeaders(""))
	s.Equal(http.StatusOK, status)
	s.Contains(string(body), "<html")
}

func TestRunRejectsMissingLogDir(t *testing.T) {
	cfg := &config.Config{
		APIPort:      freePort(t),
		LogDir:       filepath.Join(t.TempDir(), "missing"),
		LogLevel:     "error",
		DefaultLines: 1000,
	}
	err := run(context.Background(), cfg)
	require.Error(t, err)
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()

	port := cmd.Flags().ShorthandLookup("p")
	require.NotNil(t, port)
	require.Equal(t, "port", port.Name)
	require.Equal(t, "8000", port.DefValue)

	token := cmd.Flags().ShorthandLookup("t")
	require.NotNil(t, token)
	require.Equal(t, "token", token.Name)
	require.Empty(t, token.DefValue)
}
