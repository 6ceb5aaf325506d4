package rallylog

import "errors"

var (
	// ErrMissingMeta is returned when a log has no entry of type "meta".
	ErrMissingMeta = errors.New("missing meta entry")
	// ErrMissingSeed is returned when a log has no entry of type "seed".
	ErrMissingSeed = errors.New("missing seed entry")
)

// Resume statuses.
const (
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

// Meta is the header entry a rally writes before its first turn.
type Meta struct {
	A      string
	B      string
	First  string
	Rounds int
}

// Turn is one speaker's reply within a round.
type Turn struct {
	Round  int
	Who    string
	Input  string
	Output string
	Failed bool
}

// Rally is the typed view of a log produced by a rally run.
type Rally struct {
	Meta  Meta
	Seed  string
	Turns []Turn
}

// ResumeState describes where an interrupted rally should continue.
type ResumeState struct {
	Status      string
	NextRound   int
	NextWho     string
	CurrentText string
	Meta        Meta
	Seed        string
}

// ParseRally picks the meta, seed and turn entries out of records. The first
// meta and seed entries win; turns keep their log order.
func ParseRally(records []Record) (*Rally, error) {
	var (
		rally              Rally
		haveMeta, haveSeed bool
	)
	for _, r := range records {
		switch r.Text("type") {
		case "meta":
			if haveMeta {
				continue
			}
			haveMeta = true
			rally.Meta = Meta{
				A:      r.Text("a"),
				B:      r.Text("b"),
				First:  r.Text("first"),
				Rounds: int(r.Number("rounds")),
			}
		case "seed":
			if haveSeed {
				continue
			}
			haveSeed = true
			if r.Has("text") {
				rally.Seed = r.Text("text")
			}
		case "turn":
			t := Turn{
				Round:  int(r.Number("round")),
				Who:    r.Text("who"),
				Failed: r.Has("error"),
			}
			if r.Has("input") {
				t.Input = r.Text("input")
			}
			if r.Has("output") {
				t.Output = r.Text("output")
			}
			rally.Turns = append(rally.Turns, t)
		}
	}
	if !haveMeta {
		return nil, ErrMissingMeta
	}
	if !haveSeed {
		return nil, ErrMissingSeed
	}
	return &rally, nil
}

// ComputeResume works out the next round and speaker from the last turn that
// produced output without failing.
func ComputeResume(records []Record) (*ResumeState, error) {
	rally, err := ParseRally(records)
	if err != nil {
		return nil, err
	}
	meta := rally.Meta
	other := meta.A
	if meta.First == meta.A {
		other = meta.B
	}

	state := &ResumeState{
		Status:      StatusReady,
		NextRound:   1,
		NextWho:     meta.First,
		CurrentText: rally.Seed,
		Meta:        meta,
		Seed:        rally.Seed,
	}

	var last *Turn
	for i := len(rally.Turns) - 1; i >= 0; i-- {
		t := rally.Turns[i]
		if t.Output != "" && !t.Failed {
			last = &rally.Turns[i]
			break
		}
	}
	if last == nil {
		return state, nil
	}

	state.NextRound = last.Round
	if state.NextRound == 0 {
		state.NextRound = 1
	}
	if last.Who == meta.First {
		state.NextWho = other
	} else {
		state.NextWho = meta.First
		state.NextRound++
	}
	if state.NextRound > meta.Rounds {
		state.Status = StatusCompleted
	}
	state.CurrentText = last.Output
	return state, nil
}
