package research

import "strings"

// Section headers the model is instructed to emit. Parsing is tolerant:
// headers may be wrapped in markdown decoration ("## SUMMARY:",
// "**summary:**") and matched case-insensitively, because models drift
// from format instructions under load.
const (
	sectionSummary  = "SUMMARY"
	sectionAudience = "AUDIENCE"
	sectionFeatures = "FEATURES"
	sectionDesign   = "DESIGN"
)

var sectionNames = []string{sectionSummary, sectionAudience, sectionFeatures, sectionDesign}

// ParseSections splits raw completion text into the fixed section scheme.
// Every known section name is always present in the returned map; missing
// sections map to the empty string. The bool reports whether at least one
// section header was recognized.
func ParseSections(raw string) (map[string]string, bool) {
	sections := make(map[string]string, len(sectionNames))
	for _, name := range sectionNames {
		sections[name] = ""
	}

	current := ""
	var buf strings.Builder
	found := false

	flush := func() {
		if current == "" {
			buf.Reset()
			return
		}
		sections[current] = strings.TrimSpace(buf.String())
		buf.Reset()
	}

	for _, line := range strings.Split(raw, "\n") {
		if name, rest, ok := matchHeader(line); ok {
			flush()
			current = name
			found = true
			if rest != "" {
				buf.WriteString(rest)
				buf.WriteString("\n")
			}
			continue
		}
		if current != "" {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	flush()

	return sections, found
}

// matchHeader reports whether a line starts a known section, returning the
// canonical section name and any text following the colon on the same line.
func matchHeader(line string) (name, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "#*- ")

	idx := strings.IndexByte(trimmed, ':')
	if idx < 0 {
		return "", "", false
	}

	label := strings.ToUpper(strings.TrimSpace(strings.Trim(trimmed[:idx], "*_ ")))
	for _, candidate := range sectionNames {
		if label == candidate {
			rest = strings.TrimSpace(strings.Trim(trimmed[idx+1:], "*_"))
			return candidate, rest, true
		}
	}
	return "", "", false
}
