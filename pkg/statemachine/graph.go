package statemachine

import (
	"fmt"
	"strings"
)

// Graph renders the configured transitions as a Mermaid flowchart, one edge
// per transition in configuration order.
func (m *Machine[S, T, E]) Graph() string {
	var b strings.Builder
	b.WriteString("```mermaid\ngraph TD;\n")
	for _, value := range m.order {
		for _, r := range m.states[value].all() {
			fmt.Fprintf(&b, "%v-->%v;\n", value, r.destination)
		}
	}
	b.WriteString("```\n")
	return b.String()
}
