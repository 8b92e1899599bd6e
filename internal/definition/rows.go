package definition

import (
	"fmt"
	"strings"

	"questflow/internal/models/survey_models"
)

// Column names of the definition sheet.
const (
	ColRowType     = "RowType"
	ColSurveyTitle = "SurveyTitle"
	ColSurveyDesc  = "SurveyDescription"
	ColStartQID    = "StartQuestionId"
	ColFinalTitle  = "FinalTitle"
	ColFinalText   = "FinalText"

	ColQID    = "Id"
	ColQTitle = "QuestionTitle"
	ColQText  = "QuestionText"
	ColQLong  = "LongText"
	ColHints  = "Hints"
	ColType   = "Type"
	ColNextID = "NextId"
)

var requiredColumns = []string{
	ColRowType,
	ColSurveyTitle, ColSurveyDesc, ColStartQID, ColFinalTitle, ColFinalText,
	ColQID, ColQTitle, ColQText, ColQLong, ColHints, ColType,
	ColNextID,
}

func answerColumn(i int) string { return fmt.Sprintf("Answer%d", i) }
func nextColumn(i int) string   { return fmt.Sprintf("NextIfAnswer%d", i) }

const (
	rowTypeSurvey   = "survey"
	rowTypeQuestion = "question"
)

// SurveyMeta is the survey metadata row.
type SurveyMeta struct {
	Title       string
	Description string
	StartQID    string
	FinalTitle  string
	FinalText   string
}

// AnswerSlot is one AnswerN/NextIfAnswerN pair.
type AnswerSlot struct {
	Text string
	Next string
}

// QuestionRow is a question row before type validation.
type QuestionRow struct {
	ID       string
	Type     string
	Title    string
	Text     string
	LongText string
	Hints    string
	NextID   string
	Slots    [survey_models.MaxOptions]AnswerSlot
}

// classified holds every row of a table split by RowType.
type classified struct {
	metas     []SurveyMeta
	questions []QuestionRow
}

func classify(t Table) classified {
	cols := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}

	var out classified
	for _, cells := range t.Rows {
		r := record{cols: cols, cells: cells}
		switch strings.ToLower(r.get(ColRowType)) {
		case rowTypeSurvey:
			out.metas = append(out.metas, SurveyMeta{
				Title:       r.get(ColSurveyTitle),
				Description: r.get(ColSurveyDesc),
				StartQID:    r.get(ColStartQID),
				FinalTitle:  r.get(ColFinalTitle),
				FinalText:   r.get(ColFinalText),
			})
		case rowTypeQuestion:
			q := QuestionRow{
				ID:       r.get(ColQID),
				Type:     r.get(ColType),
				Title:    r.get(ColQTitle),
				Text:     r.get(ColQText),
				LongText: r.get(ColQLong),
				Hints:    r.get(ColHints),
				NextID:   r.get(ColNextID),
			}
			for i := range q.Slots {
				q.Slots[i] = AnswerSlot{
					Text: r.get(answerColumn(i + 1)),
					Next: r.get(nextColumn(i + 1)),
				}
			}
			out.questions = append(out.questions, q)
		}
	}
	return out
}

func missingColumns(header []string) []string {
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[h] = struct{}{}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
