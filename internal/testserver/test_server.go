// Package testserver runs the MCP server in memory over SQLite for tests.
package testserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/session"
	"github.com/RawAnimal/EncounterBuilder/internal/mcp"
	"github.com/RawAnimal/EncounterBuilder/internal/refdata"
	"github.com/RawAnimal/EncounterBuilder/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Session  *sdkmcp.ClientSession
	DB       *sqlite.DB
	Records  *record.Service
	Builders *session.Service
}

// New starts a server on a fresh :memory: database and connects a client to it.
func New(t *testing.T) *TestServer {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)

	data, err := refdata.Embedded()
	require.NoError(t, err)

	recordRepo := sqlite.NewRecordRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)

	recordSvc := record.NewService(recordRepo, activityRepo, searchRepo, nil)
	require.NoError(t, recordSvc.Init(ctx))
	activitySvc := activity.NewService(activityRepo, nil)
	calc := encounter.NewCalculator(data.XPTable, data.Flavor)
	builders := session.NewService(recordSvc, calc, data.Catalog, session.Defaults{}, nil)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Records:    recordSvc,
			Activity:   activitySvc,
			Builders:   builders,
			Calculator: calc,
			Catalog:    data.Catalog,
			Classes:    data.Classes,
			Species:    data.Species,
		},
	})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = clientSession.Close()
		_ = serverSession.Close()
		_ = db.Close()
	})

	return &TestServer{
		Session:  clientSession,
		DB:       db,
		Records:  recordSvc,
		Builders: builders,
	}
}

// Call invokes a tool and returns the raw result. Protocol errors fail the test;
// tool errors come back with IsError set.
func (ts *TestServer) Call(t *testing.T, name string, args any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := ts.Session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return res
}

// CallOK invokes a tool, requires success and decodes the structured result into out.
func (ts *TestServer) CallOK(t *testing.T, name string, args, out any) {
	t.Helper()
	res := ts.Call(t, name, args)
	require.False(t, res.IsError, "%s failed: %s", name, Text(res))
	if out == nil {
		return
	}
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

// CallErr invokes a tool, requires a tool error and returns its text.
func (ts *TestServer) CallErr(t *testing.T, name string, args any) string {
	t.Helper()
	res := ts.Call(t, name, args)
	require.True(t, res.IsError, "%s unexpectedly succeeded: %s", name, Text(res))
	return Text(res)
}

// Text joins the text content of a tool result.
func Text(res *sdkmcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
