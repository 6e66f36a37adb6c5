package md2doc

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

// LineKind classifies one non-blank source line.
type LineKind int

// Line kinds, from most to least specific marker.
const (
	KindHeading1 LineKind = iota + 1
	KindHeading2
	KindHeading3
	KindBullet
	KindNumbered
	KindParagraph
)

var lineKindNames = map[LineKind]string{
	KindHeading1:  "heading1",
	KindHeading2:  "heading2",
	KindHeading3:  "heading3",
	KindBullet:    "bullet",
	KindNumbered:  "numbered",
	KindParagraph: "paragraph",
}

func (k LineKind) String() string {
	if name, ok := lineKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsHeading reports whether k is one of the three heading kinds.
func (k LineKind) IsHeading() bool {
	return k == KindHeading1 || k == KindHeading2 || k == KindHeading3
}

// HeadingLevel returns 1-3 for heading kinds and 0 otherwise.
func (k LineKind) HeadingLevel() int {
	if !k.IsHeading() {
		return 0
	}
	return int(k-KindHeading1) + 1
}

// IsListItem reports whether k is a bullet or numbered item.
func (k LineKind) IsListItem() bool {
	return k == KindBullet || k == KindNumbered
}

// LineRecord is the typed form of one non-blank source line.
// Text has the leading marker stripped.
type LineRecord struct {
	Kind LineKind
	Text string
}

func (r LineRecord) String() string {
	return r.Kind.String() + ":" + r.Text
}

// numberedPrefix matches an ordered list marker such as "12. " or "١. ".
// Digits and the following blank are matched in any script.
var numberedPrefix = regexp.MustCompile(`^\p{Nd}+\.[\s\p{Z}]`)

// ParseStructure returns the line records of src in source order.
// The sequence is lazy and can be ranged over any number of times.
//
// Lines are trimmed before classification and blank lines yield nothing.
// Markers are matched textually, so a line inside a code fence that starts
// with "# " is still a heading.
func ParseStructure(src string) iter.Seq[LineRecord] {
	return func(yield func(LineRecord) bool) {
		for line := range strings.SplitSeq(src, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(classifyLine(line)) {
				return
			}
		}
	}
}

// Records collects ParseStructure(src) into a slice.
func Records(src string) []LineRecord {
	return slices.Collect(ParseStructure(src))
}

// classifyLine applies the marker rules to a trimmed, non-blank line.
func classifyLine(line string) LineRecord {
	switch {
	case strings.HasPrefix(line, "# "):
		return LineRecord{Kind: KindHeading1, Text: line[2:]}
	case strings.HasPrefix(line, "## "):
		return LineRecord{Kind: KindHeading2, Text: line[3:]}
	case strings.HasPrefix(line, "### "):
		return LineRecord{Kind: KindHeading3, Text: line[4:]}
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return LineRecord{Kind: KindBullet, Text: line[2:]}
	}
	if loc := numberedPrefix.FindStringIndex(line); loc != nil {
		return LineRecord{Kind: KindNumbered, Text: line[loc[1]:]}
	}
	return LineRecord{Kind: KindParagraph, Text: line}
}
