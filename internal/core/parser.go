package core

import "strings"

const codeFence = "```"

// ParseCandidates turns the model's reply into candidate messages: one per
// non-blank line, trimmed, with markdown fence lines removed.
func ParseCandidates(content string) []string {
	var candidates []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, codeFence) {
			continue
		}
		candidates = append(candidates, line)
	}
	return candidates
}
