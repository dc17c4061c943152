package lesson

import "strings"

// Section markers the model is instructed to emit.
const (
	beginCode        = "[BEGIN CODE]"
	endCode          = "[END CODE]"
	beginNarration   = "[BEGIN NARRATION]"
	endNarration     = "[END NARRATION]"
	beginExplanation = "[BEGIN EXPLANATION]"
	endExplanation   = "[END EXPLANATION]"
)

// Sections holds the parts of a model reply. A nil field was not present.
type Sections struct {
	Code        *string
	Narration   *string
	Explanation *string
}

// ParseSections extracts each delimited section of reply independently.
func ParseSections(reply string) Sections {
	return Sections{
		Code:        extractSection(reply, beginCode, endCode),
		Narration:   extractSection(reply, beginNarration, endNarration),
		Explanation: extractSection(reply, beginExplanation, endExplanation),
	}
}

// extractSection returns the trimmed text between the first begin marker
// and the first end marker after it. Both markers must appear somewhere in
// text. When no end marker follows the begin marker, the rest of the text
// is returned.
func extractSection(text, begin, end string) *string {
	if !strings.Contains(text, begin) || !strings.Contains(text, end) {
		return nil
	}

	_, after, _ := strings.Cut(text, begin)
	body, _, _ := strings.Cut(after, end)
	body = strings.TrimSpace(body)
	return &body
}
