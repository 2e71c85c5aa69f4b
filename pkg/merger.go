package pkg

import (
	"sort"

	"github.com/hansbonini/nanitools/pkg/common"
)

// scriptNode is one compiled sheet in the script graph
type scriptNode struct {
	name  string
	lines []string
}

// ScriptGraph inlines choice targets into the sheets that reference them.
//
// Nodes are keyed by sheet name and edges are the targets of their choice lines,
// recomputed from the current lines on every pass. A node is absorbed at most once,
// so the absorbed set only grows and the fixed-point loop terminates on any goto
// graph, cycles included.
type ScriptGraph struct {
	nodes      map[string]*scriptNode
	absorbed   map[string]string // target -> sheet it was inlined into
	passes     int
	totalMerge int
}

// NewScriptGraph builds a graph from compiled sheets. The line slices are copied.
func NewScriptGraph(scripts []SheetScript) *ScriptGraph {
	g := &ScriptGraph{
		nodes:    make(map[string]*scriptNode, len(scripts)),
		absorbed: make(map[string]string),
	}
	for _, script := range scripts {
		lines := make([]string, len(script.Lines))
		copy(lines, script.Lines)
		g.nodes[script.Name] = &scriptNode{name: script.Name, lines: lines}
	}
	return g
}

// Merge runs merge passes until one performs no merge and returns the merges made by this call.
// Calling it again on a merged graph is a no-op.
func (g *ScriptGraph) Merge() int {
	total := 0
	for {
		g.passes++
		merged := g.pass()
		common.LogDebug(common.DebugMergePass, g.passes, merged)
		if merged == 0 {
			break
		}
		total += merged
	}
	g.totalMerge += total
	return total
}

// pass visits every root in lexicographic order once and returns the number of merges.
func (g *ScriptGraph) pass() int {
	merges := 0
	for _, name := range g.sortedNames() {
		if g.IsMergedAway(name) {
			continue
		}
		merges += g.absorbTargets(g.nodes[name])
	}
	return merges
}

// absorbTargets inlines every mergeable choice target of node. Choice lines stay in
// place; the target bodies follow the node's own lines in discovery order.
func (g *ScriptGraph) absorbTargets(node *scriptNode) int {
	var blocks [][]string
	for _, target := range g.Edges(node.name) {
		if !g.canAbsorb(node.name, target) {
			common.LogDebug(common.DebugChoiceUnmerged, target, node.name)
			continue
		}

		block := SectionHeader(target)
		block = append(block, g.nodes[target].lines...)
		blocks = append(blocks, block)
		g.absorbed[target] = node.name
		common.LogDebug(common.DebugSheetMerged, target, node.name)
	}

	if len(blocks) == 0 {
		return 0
	}
	merged := make([]string, 0, len(node.lines))
	merged = append(merged, node.lines...)
	for _, block := range blocks {
		merged = append(merged, block...)
	}
	node.lines = merged
	return len(blocks)
}

func (g *ScriptGraph) canAbsorb(source, target string) bool {
	if target == source {
		return false
	}
	if _, exists := g.nodes[target]; !exists {
		return false
	}
	return !g.IsMergedAway(target)
}

func (g *ScriptGraph) sortedNames() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Edges returns the choice targets of a sheet in line order, as its lines currently stand.
func (g *ScriptGraph) Edges(name string) []string {
	node, ok := g.nodes[name]
	if !ok {
		return nil
	}
	var targets []string
	for _, line := range node.lines {
		if target, ok := ChoiceTarget(line); ok {
			targets = append(targets, target)
		}
	}
	return targets
}

// IsMergedAway reports whether a sheet was inlined into another
func (g *ScriptGraph) IsMergedAway(name string) bool {
	_, ok := g.absorbed[name]
	return ok
}

// MergedInto returns the sheet that absorbed name
func (g *ScriptGraph) MergedInto(name string) (string, bool) {
	into, ok := g.absorbed[name]
	return into, ok
}

// Roots returns the sheets that were not inlined anywhere, sorted
func (g *ScriptGraph) Roots() []string {
	var roots []string
	for _, name := range g.sortedNames() {
		if !g.IsMergedAway(name) {
			roots = append(roots, name)
		}
	}
	return roots
}

// MergedAway returns the inlined sheets, sorted
func (g *ScriptGraph) MergedAway() []string {
	names := make([]string, 0, len(g.absorbed))
	for name := range g.absorbed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lines returns the current lines of a sheet
func (g *ScriptGraph) Lines(name string) []string {
	node, ok := g.nodes[name]
	if !ok {
		return nil
	}
	return node.lines
}

// Len returns the number of sheets in the graph
func (g *ScriptGraph) Len() int {
	return len(g.nodes)
}

// Passes returns the number of merge passes run so far, including the final empty one
func (g *ScriptGraph) Passes() int {
	return g.passes
}

// TotalMerges returns the number of sheets inlined across all Merge calls
func (g *ScriptGraph) TotalMerges() int {
	return g.totalMerge
}
