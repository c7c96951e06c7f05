package engine

import (
	"fmt"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/soltree"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

// Attempt records one decomposition method attempt, in session order.
type Attempt struct {
	Node   types.ID `json:"node"`
	Label  string   `json:"label"`
	Method string   `json:"method"`
}

// Trace accumulates the path of attempted decompositions so a fatal
// exhaustion error is diagnosable without re-running with tracing
// enabled.
type Trace struct {
	Attempts []Attempt `json:"attempts"`
}

func (t *Trace) recordAttempt(node *soltree.Node, method string) {
	t.Attempts = append(t.Attempts, Attempt{
		Node:   node.ID,
		Label:  node.Label(),
		Method: method,
	})
}

// AttemptLines renders the attempts as "label via method" lines.
func (t *Trace) AttemptLines() []string {
	lines := make([]string, len(t.Attempts))
	for i, a := range t.Attempts {
		lines[i] = fmt.Sprintf("%s via %s", a.Label, a.Method)
	}
	return lines
}
