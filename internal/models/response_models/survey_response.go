package response_models

import "questflow/internal/models/survey_models"

type OptionResponse struct {
	Idx  int    `json:"idx"`
	Text string `json:"text"`
}

type QuestionResponse struct {
	OK        bool             `json:"ok"`
	SurveyKey string           `json:"survey_key"`
	QID       string           `json:"qid"`
	Type      string           `json:"type"`
	Title     string           `json:"title"`
	Text      string           `json:"text"`
	LongText  string           `json:"long_text"`
	Hints     string           `json:"hints"`
	Options   []OptionResponse `json:"options"`
}

// AnswerResponse is either an advance (NextQID set) or, when Finished, the
// final screen.
type AnswerResponse struct {
	OK         bool                   `json:"ok"`
	Finished   bool                   `json:"finished"`
	NextQID    string                 `json:"next_qid,omitempty"`
	FinalTitle string                 `json:"final_title,omitempty"`
	FinalText  string                 `json:"final_text,omitempty"`
	Answers    []survey_models.Answer `json:"answers"`
}

type SurveyCard struct {
	Key         string
	Title       string
	Description string
	FileName    string
	Questions   int
}
