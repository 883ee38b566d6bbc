package harness

// Event records the controller as seen right after one step.
type Event struct {
	Seq    int      `json:"seq"`
	Op     string   `json:"op"`
	Index  *int     `json:"index,omitempty"`
	State  string   `json:"state"`
	Titles []string `json:"titles"`
	Viewed string   `json:"viewed,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step and expectation matched.
	Pass bool `json:"pass"`

	// Trace has one event per step, in order.
	Trace []Event `json:"trace"`

	// Stored is the final serialized list; empty when the key is absent.
	Stored string `json:"stored"`

	// Errors lists every mismatch. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []Event{},
		Errors: []string{},
	}
}

// AddError adds a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
