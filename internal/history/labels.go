package history

import (
	"regexp"
	"strings"
)

// labelLine matches "Name: value" and "Name=value" trailers
var labelLine = regexp.MustCompile(`^([A-Za-z][\w-]*)(?:=|: )(.*)$`)

// ParseLabels extracts the labels from the trailer block of a commit message,
// which is its last paragraph. Every line of that paragraph must be a label,
// otherwise the message has no trailers.
func ParseLabels(message string) []Label {
	paragraphs := strings.Split(strings.TrimSpace(strings.ReplaceAll(message, "\r\n", "\n")), "\n\n")
	if len(paragraphs) < 2 {
		return nil
	}
	last := paragraphs[len(paragraphs)-1]

	var labels []Label
	for _, line := range strings.Split(last, "\n") {
		m := labelLine.FindStringSubmatch(strings.TrimRight(line, " \t"))
		if m == nil {
			return nil
		}
		labels = append(labels, Label{Name: m[1], Value: strings.TrimSpace(m[2])})
	}
	return labels
}
