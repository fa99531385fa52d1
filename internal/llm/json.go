package llm

import "strings"

// CleanJSONResponse strips markdown code fences and surrounding prose from a
// model response so the remaining text can be parsed as JSON.
func CleanJSONResponse(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		endIdx := len(lines) - 1
		for i := len(lines) - 1; i > 0; i-- {
			if strings.TrimSpace(lines[i]) == "```" {
				endIdx = i
				break
			}
		}
		text = strings.Join(lines[1:endIdx], "\n")
		text = strings.TrimSpace(text)
	}

	// Some responses wrap the JSON object in extra prose.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return text
}
