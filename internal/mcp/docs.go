package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `encounter-architect balances 2024-rules combat encounters: a party's XP budget against the XP of the adversaries you pick.

Core concepts:
- Builder: the party, adversaries, difficulty and XP mode you are working on. One per MCP session ("default" over stdio).
- XP budget: per-character XP for the chosen difficulty. Group mode uses the average party level times party size; individual mode sums each member's own value.
- Balance: budget minus total adversary XP. Positive is a surplus, negative a deficit.
- Records: named saves of a party, an adversary list or a whole encounter, kept in the local store.

Default workflow:
1) Build the party with add_character; find creatures with search_adversaries and add them with add_adversary.
2) Check get_encounter; adjust with set_difficulty / set_xp_mode / remove_*.
3) Keep work with run_command (save-party, save-encounter ...) and reload it later with run_command load + record_id.
4) Browse saves with list_records / search_records / recent_activity.

For a one-off figure with no builder state, use calculate_encounter.

Docs:
- encounter://docs/index
- encounter://reference/xp-budget
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "encounter://docs/index",
		Name:        "docs_index",
		Title:       "encounter-architect docs index",
		Description: "Entry point: tools by task, the budget rules and known limits.",
		Content: `# encounter-architect: Docs Index

## Tools by task

- Party: ` + "`add_character`" + `, ` + "`remove_character`" + `, ` + "`character_options`" + `
- Adversaries: ` + "`search_adversaries`" + `, ` + "`adversary_lookups`" + `, ` + "`add_adversary`" + `, ` + "`remove_adversary`" + `
- Settings: ` + "`set_difficulty`" + ` (low, moderate, high), ` + "`set_xp_mode`" + ` (group, individual)
- Result: ` + "`get_encounter`" + `
- Saving: ` + "`run_command`" + ` with action save/load/delete/clear and target party/adversary/encounter
- Store: ` + "`save_record`" + `, ` + "`load_record`" + `, ` + "`list_records`" + `, ` + "`delete_record`" + `, ` + "`load_all_records`" + `, ` + "`search_records`" + `, ` + "`recent_activity`" + `
- Stateless: ` + "`calculate_encounter`" + `

## Budget rules

- Average party level is the floor of the mean level. An empty party has a budget of 0.
- Group: per-character value at the average level times party size.
- Individual: sum of each member's own per-character value.
- A level missing from the XP table makes the budget unavailable; the summary then reports state "unavailable" and the reason.

## Difficulty index

A 0-10 reading of total adversary XP against the budget, nudged by party level. It picks the flavor message in the summary.

## Limits

- Loading a saved party replaces the whole party; there is no merge.
- Record ids are unique per collection. Saving again under the same name creates a new record.
`,
	},
}

func registerDocResources(server *sdkmcp.Server, calc *encounter.Calculator) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			return textResource(req, doc.URI, "text/markdown", doc.Content), nil
		})
	}

	if calc == nil {
		return
	}
	const xpURI = "encounter://reference/xp-budget"
	server.AddResource(&sdkmcp.Resource{
		URI:         xpURI,
		Name:        "xp_budget",
		Title:       "XP budget per character",
		Description: "The XP table in use: per-character XP by level and difficulty.",
		MIMEType:    "application/json",
	}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		data, err := json.MarshalIndent(xpBudgetRows(calc.Table()), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal xp table: %w", err)
		}
		return textResource(req, xpURI, "application/json", string(data)), nil
	})
}

// XPBudgetRow is one level of the XP table resource.
type XPBudgetRow struct {
	Level int            `json:"level"`
	XP    map[string]int `json:"xp"`
}

func xpBudgetRows(table encounter.XPTable) []XPBudgetRow {
	rows := make([]XPBudgetRow, 0, len(table))
	for _, level := range table.Levels() {
		xp := make(map[string]int, len(table[level]))
		for d, v := range table[level] {
			xp[string(d)] = v
		}
		rows = append(rows, XPBudgetRow{Level: level, XP: xp})
	}
	return rows
}

func textResource(req *sdkmcp.ReadResourceRequest, uri, mime, text string) *sdkmcp.ReadResourceResult {
	if req != nil && req.Params != nil && req.Params.URI != "" {
		uri = req.Params.URI
	}
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{{
			URI:      uri,
			MIMEType: mime,
			Text:     text,
		}},
	}
}
