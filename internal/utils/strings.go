package utils

import "strings"

// StripFences removes markdown code-fence markers from model output. The
// report prompt forbids fences, but models still emit them often enough that
// the parser has to unwrap defensively.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func NormalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
