package survey_models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type QuestionType string

const (
	QuestionSingle QuestionType = "single"
	QuestionMulti  QuestionType = "multi"
	QuestionText   QuestionType = "text"
	QuestionNumber QuestionType = "number"
)

// ParseQuestionType matches s case-insensitively against the known types.
func ParseQuestionType(s string) (QuestionType, bool) {
	switch t := QuestionType(strings.ToLower(strings.TrimSpace(s))); t {
	case QuestionSingle, QuestionMulti, QuestionText, QuestionNumber:
		return t, true
	default:
		return t, false
	}
}

// HasOptions reports whether answers to this type are picked from Options.
func (t QuestionType) HasOptions() bool {
	return t == QuestionSingle || t == QuestionMulti
}

// MaxOptions is the number of Answer/NextIfAnswer column pairs a definition may carry.
const MaxOptions = 10

type Option struct {
	Idx  int
	Text string
	// NextQID is only read for single questions. Empty means finish.
	NextQID string
}

type Question struct {
	ID       string
	Type     QuestionType
	Title    string
	Text     string
	LongText string
	Hints    string
	Options  []Option
	// NextID is shared by multi, text and number questions. Empty means finish.
	NextID string
}

// Option returns the option with the given 1-based index.
func (q *Question) Option(idx int) (Option, bool) {
	for _, o := range q.Options {
		if o.Idx == idx {
			return o, true
		}
	}
	return Option{}, false
}

// Survey is one loaded questionnaire. It is never mutated after the parser returns it.
type Survey struct {
	Key         string
	FileName    string
	Title       string
	Description string
	StartQID    string
	FinalTitle  string
	FinalText   string
	Questions   map[string]*Question
	// Order holds question ids as they appeared in the source.
	Order []string
}

func (s *Survey) Question(qid string) (*Question, bool) {
	q, ok := s.Questions[qid]
	return q, ok
}

// WithKey returns a shallow copy of s registered under another key.
func (s *Survey) WithKey(key string) *Survey {
	cp := *s
	cp.Key = key
	return &cp
}

// Answer is one entry of the client-carried answer list.
type Answer struct {
	QID           string       `json:"qid"`
	QuestionTitle string       `json:"question_title"`
	QuestionText  string       `json:"question_text"`
	Type          QuestionType `json:"type"`
	ValueText     string       `json:"value_text"`
}

// UnmarshalJSON accepts any scalar for the text fields, since clients echo
// answers back as they received or stored them.
func (a *Answer) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return err
	}
	*a = Answer{
		QID:           scalarText(fields["qid"]),
		QuestionTitle: scalarText(fields["question_title"]),
		QuestionText:  scalarText(fields["question_text"]),
		Type:          QuestionType(scalarText(fields["type"])),
		ValueText:     scalarText(fields["value_text"]),
	}
	return nil
}

func scalarText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
