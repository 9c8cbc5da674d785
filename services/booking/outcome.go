package booking

// Outcome is the result of parsing or validating one slot input: either a
// normalized value, or a human-readable failure reason. Never both. Callers
// branch on the structured status, not on the wording of the reason.
type Outcome struct {
	Value  string
	Reason string
}

// OK reports whether the input was accepted.
func (o Outcome) OK() bool { return o.Reason == "" }

func accept(value string) Outcome { return Outcome{Value: value} }

func reject(reason string) Outcome { return Outcome{Reason: reason} }
