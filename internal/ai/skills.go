package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

const summarizeSystemPrompt = `You are a news analyst. Read the article you are given and answer ONLY with valid JSON of the form {"summary": "...", "keyPoints": ["..."], "entities": ["..."]}. The summary is 2-3 sentences. keyPoints holds 3-5 short bullet points. entities lists the main people, organizations and locations involved. Do NOT wrap the JSON in prose.`

// SummarizePrompt builds the system and user prompts for the news
// summarization operation.
func SummarizePrompt(content string) (systemPrompt string, userPrompt string) {
	systemPrompt = summarizeSystemPrompt

	var b strings.Builder
	b.WriteString("Please analyze the following news article and provide a concise summary with key points.\n\n")
	b.WriteString("Article: ")
	b.WriteString(content)

	userPrompt = b.String()
	return systemPrompt, userPrompt
}

// extractJSON strips markdown code fences from a string that may contain
// JSON wrapped in ```json ... ``` or ``` ... ``` blocks. This handles the
// common case where LLMs return JSON inside code fences.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Try ```json ... ``` first.
	if after, found := strings.CutPrefix(s, "```json"); found {
		if idx := strings.LastIndex(after, "```"); idx >= 0 {
			after = after[:idx]
		}
		return strings.TrimSpace(after)
	}

	// Try plain ``` ... ```.
	if after, found := strings.CutPrefix(s, "```"); found {
		if idx := strings.LastIndex(after, "```"); idx >= 0 {
			after = after[:idx]
		}
		return strings.TrimSpace(after)
	}

	return s
}

var objectRe = regexp.MustCompile(`(?s)\{.*\}`)

// parseDigest reads a Digest out of generated text. The outermost {...}
// block is decoded; when there is none, or it is not valid JSON, the whole
// text becomes the summary.
func parseDigest(text string) Digest {
	fallback := Digest{Summary: text, KeyPoints: []string{}, Entities: []string{}}

	match := objectRe.FindString(extractJSON(text))
	if match == "" {
		return fallback
	}

	var d Digest
	if err := json.Unmarshal([]byte(match), &d); err != nil {
		return fallback
	}
	if d.KeyPoints == nil {
		d.KeyPoints = []string{}
	}
	if d.Entities == nil {
		d.Entities = []string{}
	}
	return d
}
