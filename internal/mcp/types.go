package mcp

// Empty is the input of tools that take no arguments.
type Empty struct{}

// CurrentActivityOutput is the output of get_current_activity.
type CurrentActivityOutput struct {
	Activity  string `json:"activity"`
	Workspace string `json:"workspace,omitempty"`
}

// ListActivitiesOutput is the output of list_activities.
type ListActivitiesOutput struct {
	Current    string   `json:"current"`
	Activities []string `json:"activities"`
}

// SwitchInput names the activity or workspace to switch to.
type SwitchInput struct {
	Name string `json:"name" jsonschema:"Activity or raw workspace name. Unknown names are created."`
}

// SwitchOutput reports where the switch landed.
type SwitchOutput struct {
	Activity  string `json:"activity"`
	Workspace string `json:"workspace"`
}

// CycleInput selects what to step through and in which direction.
type CycleInput struct {
	Target    string `json:"target" jsonschema:"What to cycle: activity or workspace"`
	Direction string `json:"direction,omitempty" jsonschema:"next (default) or previous"`
}

// RankInput is the input of the rank tool.
type RankInput struct {
	Query      string `json:"query" jsonschema:"Text to match against activity and workspace names"`
	MaxEntries int    `json:"max_entries,omitempty" jsonschema:"Maximum number of entries (default: launcher.max_entries from config)"`
}

// RankedEntry is one ranked candidate.
type RankedEntry struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// RankOutput is the output of the rank tool.
type RankOutput struct {
	Entries []RankedEntry `json:"entries"`
}
