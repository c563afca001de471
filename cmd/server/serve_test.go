package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/RawAnimal/EncounterBuilder/internal/config"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/session"
	"github.com/RawAnimal/EncounterBuilder/internal/logging"
	"github.com/RawAnimal/EncounterBuilder/internal/mcp"
)

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(r)
}

func startHTTP(t *testing.T, token string) (string, *session.Service) {
	t.Helper()
	isolate(t)

	a, err := loadBase(config.TransportHTTP)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	require.NoError(t, a.openStore(context.Background()))
	builders, err := a.newBuilders()
	require.NoError(t, err)

	server := mcp.NewServer(a.mcpConfig())
	ts := httptest.NewServer(newHTTPHandler(server, builders, config.ServerConfig{AuthToken: token}, logging.Discard()))
	t.Cleanup(ts.Close)
	return ts.URL, builders
}

func connect(t *testing.T, url, token string) *sdkmcp.ClientSession {
	t.Helper()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "http-client", Version: "v0.0.1"}, nil)
	transport := &sdkmcp.StreamableClientTransport{
		Endpoint:   url + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: token, base: http.DefaultTransport}},
	}
	cs, err := client.Connect(context.Background(), transport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func partySize(t *testing.T, cs *sdkmcp.ClientSession) int {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "get_encounter", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out mcp.EncounterResponse
	require.NoError(t, json.Unmarshal(data, &out))
	return len(out.State.Party)
}

func TestHTTPTransport_BuilderPerSession(t *testing.T) {
	url, builders := startHTTP(t, "secret")
	first := connect(t, url, "secret")
	second := connect(t, url, "secret")

	res, err := first.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "add_character",
		Arguments: map[string]any{"name": "Ayla", "level": 3},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.Equal(t, 1, partySize(t, first))
	require.Equal(t, 0, partySize(t, second))
	require.Len(t, builders.Sessions(), 2)
}

func TestHTTPTransport_RejectsMissingToken(t *testing.T) {
	url, _ := startHTTP(t, "secret")

	resp, err := http.Post(url+"/mcp", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(url + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
