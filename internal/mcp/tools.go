package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func readOnly() *sdkmcp.ToolAnnotations {
	return &sdkmcp.ToolAnnotations{ReadOnlyHint: true}
}

// registerTools adds every tool to server.
func registerTools(server *sdkmcp.Server, h *handler) {
	// Builder
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_character",
		Description: "Add a character to the current party. Level defaults to 5.",
	}, h.addCharacter)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "character_options",
		Description: "List suggested class and species names for add_character",
		Annotations: readOnly(),
	}, h.characterOptions)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_character",
		Description: "Remove the party member at a zero-based index",
	}, h.removeCharacter)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_adversary",
		Description: "Add one adversary to the encounter by catalog name, or ad hoc with challenge_rating and experience_points. Adding a name already present increments its quantity.",
	}, h.addAdversary)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_adversary",
		Description: "Remove one of the named adversary; the entry disappears at zero",
	}, h.removeAdversary)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_difficulty",
		Description: "Select the encounter difficulty used for the XP budget",
	}, h.setDifficulty)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_xp_mode",
		Description: "Select group (average level x party size) or individual (sum per member) budgeting",
	}, h.setMode)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_encounter",
		Description: "Get the current party, adversaries and encounter summary: average party level, XP budget, total adversary XP, balance, difficulty index and flavor message",
		Annotations: readOnly(),
	}, h.getEncounter)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "run_command",
		Description: "Save, load, delete or clear the party, adversary list or whole encounter. Load and delete need record_id; save needs name.",
	}, h.runCommand)

	// Calculator
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "calculate_encounter",
		Description: "Compute an encounter summary from party levels and adversary XP without touching the builder",
		Annotations: readOnly(),
	}, h.calculateEncounter)

	// Store
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_record",
		Description: "Save a party, adversary list or encounter under a name. Returns the record id.",
	}, h.saveRecord)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "load_record",
		Description: "Load one saved record by id; found is false when it does not exist",
		Annotations: readOnly(),
	}, h.loadRecord)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_records",
		Description: "List saved records in a collection, oldest first",
		Annotations: readOnly(),
	}, h.listRecords)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_record",
		Description: "Delete a saved record; removed is false when it did not exist",
	}, h.deleteRecord)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "load_all_records",
		Description: "Load every saved party, adversary list and encounter",
		Annotations: readOnly(),
	}, h.loadAllRecords)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_records",
		Description: "Search saved record names within a collection; each query word must start a word of the name",
		Annotations: readOnly(),
	}, h.searchRecords)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent saves and deletes, newest first",
		Annotations: readOnly(),
	}, h.recentActivity)

	// Catalog
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_adversaries",
		Description: "Filter the adversary catalog by name, challenge rating, habitat, type and group",
		Annotations: readOnly(),
	}, h.searchAdversaries)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "adversary_lookups",
		Description: "List the distinct challenge ratings, habitats, types and groups in the catalog",
		Annotations: readOnly(),
	}, h.adversaryLookups)
}
