package layout

import (
	"sort"

	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/text"
)

// Assembler orders accepted heading candidates and repairs level nesting.
// Repair is demotion-only: a candidate that would skip a depth is moved to
// the next valid depth, never promoted. Assembly is idempotent: the same
// candidate sequence always yields the same outline.
type Assembler struct{}

// NewAssembler creates an outline assembler
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Repair returns a copy of the accepted (H1-H3) candidates, in document
// order, with nesting-violating levels demoted. Demoted candidates carry
// the "demoted-for-nesting" rationale tag.
func (a *Assembler) Repair(candidates []HeadingCandidate) []HeadingCandidate {
	accepted := make([]HeadingCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Level.Depth() > 0 {
			accepted = append(accepted, c)
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].Fragment.Page != accepted[j].Fragment.Page {
			return accepted[i].Fragment.Page < accepted[j].Fragment.Page
		}
		return accepted[i].Fragment.LineID < accepted[j].Fragment.LineID
	})

	// Walk with a depth stack keyed by classified level. Each entry
	// remembers the depth it was actually emitted at, so siblings of a
	// demoted heading demote the same way.
	type stackEntry struct {
		classified int
		emitted    int
	}
	var stack []stackEntry

	repaired := make([]HeadingCandidate, len(accepted))
	for i, c := range accepted {
		classified := c.Level.Depth()

		for len(stack) > 0 && stack[len(stack)-1].classified >= classified {
			stack = stack[:len(stack)-1]
		}

		emitted := 1
		if len(stack) > 0 {
			emitted = stack[len(stack)-1].emitted + 1
		}
		if classified < emitted {
			emitted = classified
		}

		repaired[i] = c
		if emitted != classified {
			repaired[i].Level = levelForDepth(emitted)
			repaired[i].Rationale = append(append([]string(nil), c.Rationale...), TagDemoted)
		}

		stack = append(stack, stackEntry{classified: classified, emitted: emitted})
	}

	return repaired
}

// Assemble produces the final ordered outline from classified candidates.
// Identical (text, page) pairs are emitted once.
func (a *Assembler) Assemble(candidates []HeadingCandidate) []model.OutlineNode {
	repaired := a.Repair(candidates)

	type nodeKey struct {
		text string
		page int
	}
	seen := make(map[nodeKey]bool)

	nodes := make([]model.OutlineNode, 0, len(repaired))
	for _, c := range repaired {
		cleaned := text.CleanHeading(c.Fragment.Text)
		if cleaned == "" {
			continue
		}
		key := nodeKey{text: cleaned, page: c.Fragment.Page}
		if seen[key] {
			continue
		}
		seen[key] = true
		nodes = append(nodes, model.OutlineNode{
			Level: c.Level.OutlineLevel(),
			Text:  cleaned,
			Page:  c.Fragment.Page,
		})
	}

	return nodes
}
