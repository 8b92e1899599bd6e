package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"questflow/internal/models/survey_models"
)

func TestRender(t *testing.T) {
	answers := []survey_models.Answer{
		{QID: "Q1", QuestionTitle: "Name", ValueText: "Ann"},
		{QID: "Q2", ValueText: "42"},
		{ValueText: "x"},
	}

	got := Render("Head\n{answers}\nTail", answers)
	assert.Equal(t, "Head\nName: Ann\nQ2: 42\nВопрос: x\nTail", got)

	lines := strings.Split(AnswersText(answers), "\n")
	assert.Len(t, lines, len(answers))
}

func TestRender_NoPlaceholder(t *testing.T) {
	answers := []survey_models.Answer{{QID: "Q1", QuestionTitle: "Name", ValueText: "Ann"}}
	assert.Equal(t, "Thanks for your time", Render("Thanks for your time", answers))
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "Result: ", Render("Result: {answers}", nil))
}
