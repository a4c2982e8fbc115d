package interview

import (
	"fmt"
	"regexp"
	"strings"
)

// Question is one interview prompt with its per-question countdown.
type Question struct {
	Text  string `json:"question"`
	Timer int    `json:"timer"`
}

// questionTimerSeconds is the fixed countdown applied to every question.
const questionTimerSeconds = 60

const boilerplateHeader = "Technical Interview Question:"

// boldLine matches lines that are only a markdown bold wrapper, with an
// optional list-number prefix ("**Intro**", "1. **Intro**"). Generated
// question sets use these as section markers, not questions.
var boldLine = regexp.MustCompile(`^(?:\d+\.\s*)?\*\*(.*)\*\*$`)

// formatQuestions flattens raw question strings into numbered prompts. Each
// string may embed several lines; boilerplate headers and bold section
// markers are dropped, survivors are trimmed and numbered "Q{n}: {text}".
func formatQuestions(raw []string) []Question {
	questions := make([]Question, 0, len(raw))
	for _, block := range raw {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.Contains(line, boilerplateHeader) || boldLine.MatchString(line) {
				continue
			}
			questions = append(questions, Question{
				Text:  fmt.Sprintf("Q%d: %s", len(questions)+1, line),
				Timer: questionTimerSeconds,
			})
		}
	}
	return questions
}
