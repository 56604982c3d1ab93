package layout

import (
	"regexp"
	"strings"

	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/text"
)

// CandidateLevel is the classification assigned to a fragment
type CandidateLevel int

const (
	LevelNone CandidateLevel = iota
	LevelTitle
	LevelH1
	LevelH2
	LevelH3
)

// String returns a string representation of the candidate level
func (l CandidateLevel) String() string {
	switch l {
	case LevelTitle:
		return "title"
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	default:
		return "none"
	}
}

// Depth returns the outline depth (H1=1, H2=2, H3=3; 0 otherwise)
func (l CandidateLevel) Depth() int {
	switch l {
	case LevelH1:
		return 1
	case LevelH2:
		return 2
	case LevelH3:
		return 3
	default:
		return 0
	}
}

// OutlineLevel converts the candidate level to the output model level
func (l CandidateLevel) OutlineLevel() model.OutlineLevel {
	switch l {
	case LevelH1:
		return model.OutlineLevelH1
	case LevelH2:
		return model.OutlineLevelH2
	case LevelH3:
		return model.OutlineLevelH3
	default:
		return model.OutlineLevelUnknown
	}
}

// levelForDepth returns the candidate level at a given outline depth
func levelForDepth(depth int) CandidateLevel {
	switch depth {
	case 1:
		return LevelH1
	case 2:
		return LevelH2
	case 3:
		return LevelH3
	default:
		return LevelNone
	}
}

// Rule tags recorded in a candidate's rationale
const (
	TagSizeRank   = "size-rank"
	TagBold       = "bold"
	TagItalicOnly = "italic-only"
	TagAllCaps    = "all-caps"
	TagPattern    = "numbering-pattern"
	TagIsolated   = "isolated"
	TagTooLong    = "length-ceiling"
	TagSentence   = "sentence-punctuation"
	TagDemoted    = "demoted-for-nesting"
)

// HeadingCandidate is the classifier's verdict for one fragment
type HeadingCandidate struct {
	// Fragment is the line being classified
	Fragment text.TextFragment

	// Level is the assigned level (LevelNone when rejected)
	Level CandidateLevel

	// Confidence is the winning cumulative score, clamped to [0,1]
	Confidence float64

	// Rationale lists the tags of the rules that fired
	Rationale []string
}

// HasTag reports whether a rule tag is present in the rationale
func (c HeadingCandidate) HasTag(tag string) bool {
	for _, t := range c.Rationale {
		if t == tag {
			return true
		}
	}
	return false
}

// numberedPattern maps a heading numbering regex to the outline depth it
// implies. depth 0 means the depth is the number of dot-separated
// components in the first capture group.
type numberedPattern struct {
	re    *regexp.Regexp
	depth int
}

// ClassifierConfig holds the weights and thresholds of the scoring rules.
// The rule categories and their interaction order are fixed; the numbers
// are a calibration surface.
type ClassifierConfig struct {
	// SizeRankWeights score the top distinct sizes above body text, by
	// rank (rank 0 = largest). Ranks beyond the slice score nothing.
	SizeRankWeights []float64

	// PatternWeight scores a numbering-pattern match. Pattern matches
	// also fix the level regardless of font size.
	PatternWeight float64

	// BoldBonus is added when the fragment's font is bold
	BoldBonus float64

	// ItalicPenalty is subtracted for italic-only body-sized fragments
	// (emphasized text is rarely a heading)
	ItalicPenalty float64

	// AllCapsBonus is added for all-caps fragments
	AllCapsBonus float64

	// IsolationBonus is added when the fragment has clear space above
	// and below
	IsolationBonus float64

	// IsolationRatio scales the document median line gap into the
	// blank-space threshold for the isolation rule (default: 1.5)
	IsolationRatio float64

	// AcceptThreshold is the minimum cumulative score for a level to be
	// assigned (default: 0.4)
	AcceptThreshold float64

	// MaxHeadingTokens forces NONE for fragments with more tokens
	// (paragraph proxy, default: 20)
	MaxHeadingTokens int

	// MinTextLength and MaxTextLength bound plausible heading text in
	// runes (defaults: 3 and 150)
	MinTextLength int
	MaxTextLength int
}

// DefaultClassifierConfig returns the calibrated default configuration
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		SizeRankWeights:  []float64{0.5, 0.45, 0.4},
		PatternWeight:    0.45,
		BoldBonus:        0.2,
		ItalicPenalty:    0.2,
		AllCapsBonus:     0.1,
		IsolationBonus:   0.15,
		IsolationRatio:   1.5,
		AcceptThreshold:  0.4,
		MaxHeadingTokens: 20,
		MinTextLength:    3,
		MaxTextLength:    150,
	}
}

// HeadingClassifier assigns a level to each fragment using an ordered set
// of weighted scoring rules over the immutable (fragment, profile) pair
type HeadingClassifier struct {
	config   ClassifierConfig
	patterns []numberedPattern
}

// NewHeadingClassifier creates a classifier with default configuration
func NewHeadingClassifier() *HeadingClassifier {
	return NewHeadingClassifierWithConfig(DefaultClassifierConfig())
}

// NewHeadingClassifierWithConfig creates a classifier with custom
// configuration
func NewHeadingClassifierWithConfig(config ClassifierConfig) *HeadingClassifier {
	return &HeadingClassifier{
		config: config,
		patterns: []numberedPattern{
			{re: regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+\S`), depth: 0},
			{re: regexp.MustCompile(`(?i)^(chapter\s+\d+)\b`), depth: 1},
			{re: regexp.MustCompile(`(?i)^(section\s+\d+)\b`), depth: 1},
			{re: regexp.MustCompile(`(?i)^(appendix\s+[A-Z])\b`), depth: 1},
			{re: regexp.MustCompile(`^([IVXLCDM]+)\.\s+\S`), depth: 1},
			{re: regexp.MustCompile(`^([A-Z])\.\s+\S`), depth: 2},
		},
	}
}

// FragmentContext carries the neighborhood information a single fragment
// needs for the isolation rule
type FragmentContext struct {
	// GapAbove and GapBelow are the vertical distances to the adjacent
	// fragments on the same page (negative when unknown)
	GapAbove float64
	GapBelow float64

	// MedianGap is the document-wide median inter-line gap
	MedianGap float64
}

// Classify evaluates every fragment in document order and returns one
// candidate per fragment, including NONE-level candidates
func (c *HeadingClassifier) Classify(fragments []text.TextFragment, profile *StyleProfile) []HeadingCandidate {
	contexts := buildContexts(fragments)
	candidates := make([]HeadingCandidate, 0, len(fragments))
	for i, frag := range fragments {
		candidates = append(candidates, c.ClassifyFragment(frag, contexts[i], profile))
	}
	return candidates
}

// ClassifyFragment scores a single fragment. Pure function of the
// (fragment, context, profile) triple; the rules run in a fixed order.
func (c *HeadingClassifier) ClassifyFragment(frag text.TextFragment, ctx FragmentContext, profile *StyleProfile) HeadingCandidate {
	candidate := HeadingCandidate{Fragment: frag, Level: LevelNone}

	// Rule 1: token/length ceiling. Paragraph-length text is never a
	// heading, whatever its style.
	runeLen := len([]rune(frag.Text))
	if frag.WordCount() > c.config.MaxHeadingTokens ||
		runeLen > c.config.MaxTextLength || runeLen < c.config.MinTextLength {
		candidate.Rationale = append(candidate.Rationale, TagTooLong)
		return candidate
	}

	// Rule 2: sentence punctuation. Headings do not end mid-prose.
	if strings.HasSuffix(frag.Text, ",") || strings.HasSuffix(frag.Text, ";") ||
		strings.HasSuffix(frag.Text, "!") || strings.HasSuffix(frag.Text, "?") {
		candidate.Rationale = append(candidate.Rationale, TagSentence)
		return candidate
	}

	scores := make(map[CandidateLevel]float64)

	// Rule 3: numbering pattern. An exact numbering-depth match fixes
	// the level even at body font size.
	patternLevel := LevelNone
	if level, ok := c.matchPattern(frag.Text); ok {
		patternLevel = level
		scores[level] += c.config.PatternWeight
		candidate.Rationale = append(candidate.Rationale, TagPattern)
	}

	// Rule 4: size rank. The top distinct sizes above body text map to
	// H1/H2/H3.
	bucketed := profile.Bucket(frag.FontSize)
	if rank := profile.SizeRank(bucketed); rank >= 0 && rank < len(c.config.SizeRankWeights) {
		level := levelForDepth(rank + 1)
		scores[level] += c.config.SizeRankWeights[rank]
		candidate.Rationale = append(candidate.Rationale, TagSizeRank)
	}

	if len(scores) == 0 {
		// Body-sized, un-numbered text: italic-only emphasis confirms
		// the rejection for diagnostics
		if frag.Italic && !frag.Bold {
			candidate.Rationale = append(candidate.Rationale, TagItalicOnly)
		}
		return candidate
	}

	// Rule 5: style. Bold reinforces every proposed level; italic-only
	// emphasis weakens body-sized proposals.
	if frag.Bold {
		for level := range scores {
			scores[level] += c.config.BoldBonus
		}
		candidate.Rationale = append(candidate.Rationale, TagBold)
	} else if frag.Italic && bucketed <= profile.BodyFontSize {
		for level := range scores {
			scores[level] -= c.config.ItalicPenalty
		}
		candidate.Rationale = append(candidate.Rationale, TagItalicOnly)
	}

	// Rule 6: all caps
	if isAllCaps(frag.Text) {
		for level := range scores {
			scores[level] += c.config.AllCapsBonus
		}
		candidate.Rationale = append(candidate.Rationale, TagAllCaps)
	}

	// Rule 7: isolation. Clear space above and below beyond the
	// document-relative threshold marks display text.
	if c.isIsolated(ctx) {
		for level := range scores {
			scores[level] += c.config.IsolationBonus
		}
		candidate.Rationale = append(candidate.Rationale, TagIsolated)
	}

	// Pick the best-scoring level; ties resolve toward the shallower one
	best := LevelNone
	bestScore := 0.0
	for _, level := range []CandidateLevel{LevelH1, LevelH2, LevelH3} {
		score, ok := scores[level]
		if !ok {
			continue
		}
		if score > bestScore {
			best = level
			bestScore = score
		}
	}

	if bestScore < c.config.AcceptThreshold {
		return candidate
	}

	// A high-confidence numbering match overrides a size-rank level: the
	// numbering depth is authoritative
	if patternLevel != LevelNone {
		best = patternLevel
	}

	candidate.Level = best
	candidate.Confidence = clamp01(bestScore)
	return candidate
}

// matchPattern returns the outline level implied by a numbered heading
// prefix
func (c *HeadingClassifier) matchPattern(s string) (CandidateLevel, bool) {
	for _, pattern := range c.patterns {
		match := pattern.re.FindStringSubmatch(s)
		if match == nil {
			continue
		}
		depth := pattern.depth
		if depth == 0 {
			depth = strings.Count(match[1], ".") + 1
		}
		if depth > 3 {
			return LevelNone, false
		}
		return levelForDepth(depth), true
	}
	return LevelNone, false
}

// isIsolated reports whether both vertical gaps exceed the
// document-relative threshold. Fragments with unknown gaps (page edges)
// count as open on that side.
func (c *HeadingClassifier) isIsolated(ctx FragmentContext) bool {
	if ctx.MedianGap <= 0 {
		return false
	}
	threshold := ctx.MedianGap * c.config.IsolationRatio
	above := ctx.GapAbove < 0 || ctx.GapAbove > threshold
	below := ctx.GapBelow < 0 || ctx.GapBelow > threshold
	return above && below
}

// buildContexts computes per-fragment vertical gaps and the document
// median gap from the ordered fragment sequence
func buildContexts(fragments []text.TextFragment) []FragmentContext {
	contexts := make([]FragmentContext, len(fragments))
	var gaps []float64

	for i := range fragments {
		contexts[i].GapAbove = -1
		contexts[i].GapBelow = -1

		if i > 0 && fragments[i-1].Page == fragments[i].Page {
			gap := fragments[i-1].BBox.Bottom() - fragments[i].BBox.Top()
			if gap >= 0 {
				contexts[i].GapAbove = gap
				gaps = append(gaps, gap)
			}
		}
		if i < len(fragments)-1 && fragments[i+1].Page == fragments[i].Page {
			gap := fragments[i].BBox.Bottom() - fragments[i+1].BBox.Top()
			if gap >= 0 {
				contexts[i].GapBelow = gap
			}
		}
	}

	median := medianOf(gaps)
	for i := range contexts {
		contexts[i].MedianGap = median
	}
	return contexts
}

// medianOf returns the median of a slice (0 when empty)
func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// isAllCaps reports whether text is predominantly uppercase letters
func isAllCaps(s string) bool {
	upper, lower := 0, 0
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper++
		case r >= 'a' && r <= 'z':
			lower++
		}
	}
	if upper+lower < 3 {
		return false
	}
	return lower == 0 || float64(upper)/float64(upper+lower) > 0.9
}

// clamp01 clamps a score into [0,1]
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
