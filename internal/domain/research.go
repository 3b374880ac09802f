package domain

// ResearchResult is the structured synthesis produced by one research run.
// Fields may be empty strings when the model omitted a section; they are
// never conceptually absent. A result is immutable once created; a new
// run produces a new value that replaces the old one wholesale.
type ResearchResult struct {
	Summary         string
	TargetAudience  string
	KeyFeatures     string
	DesignDirection string
}

// Fields returns the result as a field-name → text mapping. Every key is
// always present, matching the wire contract of the section parser.
func (r ResearchResult) Fields() map[string]string {
	return map[string]string{
		"summary":          r.Summary,
		"target_audience":  r.TargetAudience,
		"key_features":     r.KeyFeatures,
		"design_direction": r.DesignDirection,
	}
}

// Target selects the output prompt format.
type Target string

const (
	TargetV0    Target = "v0"
	TargetFigma Target = "figma"
)

// ValidTargets is the canonical set of accepted target strings.
var ValidTargets = map[Target]bool{
	TargetV0:    true,
	TargetFigma: true,
}
