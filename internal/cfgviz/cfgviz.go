// Package cfgviz renders a function's CFG as Graphviz DOT text.
// Grounded on original_source/uc_block.py's CFG class, which drives a
// Python graphviz.Digraph with a "record"-shaped node per block (one
// edge for a BasicBlock's branch, two "T"/"F" edges for a
// ConditionBlock's taken/fall_through). No Go Graphviz binding is
// vetted anywhere in the reference pack, so this package emits raw DOT
// text via the standard library's text/template instead — the one
// domain concern left on the standard library, justified per
// SPEC_FULL §8.
package cfgviz

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"ucc/internal/ir"
)

type node struct {
	Name  string
	Label string
}

type edge struct {
	From string
	To   string
	Port string // "", "f0" or "f1"
}

var dotTemplate = template.Must(template.New("cfg").Parse(
	`digraph g {
  node [shape=record];
{{range .Nodes}}  "{{.Name}}" [label="{{.Label}}"];
{{end}}{{range .Edges}}  "{{.From}}"{{if .Port}}:{{.Port}}{{end}} -> "{{.To}}";
{{end}}}
`))

// Render writes fn's CFG as a DOT graph to w, one record node per
// block and edges matching the block's own successor links.
func Render(w io.Writer, fn *ir.Function) error {
	var nodes []node
	var edges []edge

	nodes = append(nodes, node{Name: fn.Name, Label: ""})
	if len(fn.Blocks) > 0 {
		edges = append(edges, edge{From: fn.Name, To: fn.Blocks[0].Label()})
	}

	for _, blk := range fn.Blocks {
		nodes = append(nodes, node{Name: blk.Label(), Label: formatBlock(blk)})
		switch b := blk.(type) {
		case *ir.BasicBlock:
			if b.Branch != nil {
				edges = append(edges, edge{From: blk.Label(), To: b.Branch.Label()})
			}
		case *ir.ConditionBlock:
			if b.Taken != nil {
				edges = append(edges, edge{From: blk.Label(), To: b.Taken.Label(), Port: "f0"})
			}
			if b.FallThrough != nil {
				edges = append(edges, edge{From: blk.Label(), To: b.FallThrough.Label(), Port: "f1"})
			}
		}
	}

	return dotTemplate.Execute(w, struct {
		Nodes []node
		Edges []edge
	}{nodes, edges})
}

// formatBlock renders a block's label and instructions as a
// left-justified Graphviz record label, escaping quotes the way a
// record label requires.
func formatBlock(blk ir.Block) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{%s:\\l", blk.Label())
	for _, instr := range blk.Instructions() {
		b.WriteString("\\l\t")
		b.WriteString(escapeRecord(instr.String()))
	}
	b.WriteString("\\l}")
	return b.String()
}

func escapeRecord(s string) string {
	r := strings.NewReplacer(`"`, `\"`, "{", `\{`, "}", `\}`, "|", `\|`)
	return r.Replace(s)
}
