package llm

import "strings"

// CleanJSONBlock removes markdown code fences from a model response.
// A ```json fence wins over a bare ``` fence; the text between the opening fence and the
// next fence is kept. Unfenced text is returned trimmed.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	}

	if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// ExtractJSONObject slices text from the first '{' to the last '}'.
// It reports false when no '{' is present.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	text = text[start:]
	if end := strings.LastIndex(text, "}"); end >= 0 {
		text = text[:end+1]
	}
	return text, true
}
