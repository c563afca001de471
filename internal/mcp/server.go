package mcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/session"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// RecordService defines record store operations needed by MCP.
type RecordService interface {
	Save(ctx context.Context, c record.Collection, req record.SaveRequest) (string, error)
	Get(ctx context.Context, c record.Collection, id string) (*record.Record, bool, error)
	List(ctx context.Context, c record.Collection) ([]record.Record, error)
	Remove(ctx context.Context, c record.Collection, id string) (bool, error)
	LoadAll(ctx context.Context) (record.Snapshot, error)
	Search(ctx context.Context, c record.Collection, query string, opts record.SearchOptions) ([]record.SearchResult, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// BuilderService defines the per-session encounter builder operations needed by MCP.
type BuilderService interface {
	State(id string) session.State
	Summary(id string) encounter.Summary
	AddCharacter(id string, c party.Character) (party.Character, error)
	RemoveCharacter(id string, index int) (party.Character, error)
	AddAdversary(id string, req session.AddAdversaryRequest) (adversary.Entry, error)
	RemoveAdversary(id, name string) (int, error)
	SetDifficulty(id string, d encounter.Difficulty) error
	SetMode(id string, m encounter.Mode) error
	Execute(ctx context.Context, id string, cmd session.Command) (session.Result, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Records    RecordService
	Activity   ActivityService
	Builders   BuilderService
	Calculator *encounter.Calculator
	Catalog    *adversary.Catalog
	// Classes and Species are suggestions for add_character; any string is accepted.
	Classes []string
	Species []string
}

// Config contains server configuration.
type Config struct {
	Services Services
	// Version is reported to clients in the initialize handshake.
	Version string
	Logger  *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "encounter-architect",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server, cfg.Services.Calculator)

	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, &handler{services: cfg.Services})

	return server
}
