package rallylog

import (
	"github.com/invopop/jsonschema"
)

// recordDoc documents the keys readers look for. Every key is optional and
// unknown keys are allowed.
type recordDoc struct {
	Round  any    `json:"round,omitempty" jsonschema:"description=Round identifier shown in the header. Defaults to the entry's position in the log."`
	Who    string `json:"who,omitempty" jsonschema:"description=Speaker label. Defaults to 'user'."`
	Prompt string `json:"prompt,omitempty" jsonschema:"description=Text sent to the speaker. Omitted from output when empty."`
	Output string `json:"output,omitempty" jsonschema:"description=Text the speaker replied with. Omitted from output when empty."`
	Type   string `json:"type,omitempty" jsonschema:"enum=meta,enum=seed,enum=turn,description=Entry kind written by rally runs."`
	Input  string `json:"input,omitempty" jsonschema:"description=Text a rally turn was given."`
	Error  bool   `json:"error,omitempty" jsonschema:"description=Set on rally turns that failed."`
	Text   string `json:"text,omitempty" jsonschema:"description=Seed text of a rally."`
	A      string `json:"a,omitempty" jsonschema:"description=First participant of a rally."`
	B      string `json:"b,omitempty" jsonschema:"description=Second participant of a rally."`
	First  string `json:"first,omitempty" jsonschema:"description=Participant that speaks first in each round."`
	Rounds int    `json:"rounds,omitempty" jsonschema:"description=Number of rounds a rally was configured for."`
	TS     string `json:"ts,omitempty" jsonschema:"format=date-time,description=Time the entry was written."`
}

// Schema returns the JSON schema of a log file: an array of records.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:                 true,
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
	}
	item := r.Reflect(&recordDoc{})
	item.Version = ""
	item.Required = nil

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Rally log",
		Description: "A JSON array of conversation log entries.",
		Type:        "array",
		Items:       item,
	}
}
