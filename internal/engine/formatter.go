package engine

import (
	"strings"

	"questflow/internal/models/survey_models"
)

// Placeholder is replaced by the answer summary in a survey's final text.
const Placeholder = "{answers}"

const untitledQuestion = "Вопрос"

// AnswerLines renders one "title: value" entry per answer, in submission order.
// A value may itself contain newlines.
func AnswerLines(answers []survey_models.Answer) []string {
	lines := make([]string, 0, len(answers))
	for _, a := range answers {
		title := a.QuestionTitle
		if title == "" {
			title = a.QID
		}
		if title == "" {
			title = untitledQuestion
		}
		lines = append(lines, title+": "+a.ValueText)
	}
	return lines
}

// AnswersText joins AnswerLines with newlines.
func AnswersText(answers []survey_models.Answer) string {
	return strings.Join(AnswerLines(answers), "\n")
}

// Render substitutes the answer summary into template. A template without the
// placeholder comes back unchanged.
func Render(template string, answers []survey_models.Answer) string {
	if !strings.Contains(template, Placeholder) {
		return template
	}
	return strings.ReplaceAll(template, Placeholder, AnswersText(answers))
}
