// Package engine evaluates one answer against a survey question and decides
// where the respondent goes next. It keeps no state between calls: the caller
// carries the current question id and the answers given so far.
package engine

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"questflow/internal/models/survey_models"
	"questflow/pkg/utils"
)

// Payload is the raw answer for one question. Which field is read depends on
// the question type.
type Payload struct {
	OptionIdx  *int
	OptionIdxs []int
	Value      any
}

// Result is either an advance to NextQID or, when Finished is set, the end of
// the survey with its rendered summary.
type Result struct {
	Finished   bool
	NextQID    string
	FinalTitle string
	FinalText  string
	Answers    []survey_models.Answer
}

// Submit evaluates p as the answer to q. Rejected answers come back as one of
// the utils request errors and leave prior untouched.
func Submit(s *survey_models.Survey, q *survey_models.Question, prior []survey_models.Answer, p Payload) (Result, error) {
	var (
		value string
		next  string
		err   error
	)

	switch q.Type {
	case survey_models.QuestionSingle:
		value, next, err = evalSingle(q, p)
	case survey_models.QuestionMulti:
		value, err = evalMulti(q, p)
		next = q.NextID
	case survey_models.QuestionText:
		value, err = evalText(p)
		next = q.NextID
	case survey_models.QuestionNumber:
		value, err = evalNumber(p)
		next = q.NextID
	default:
		return Result{}, utils.ErrUnsupportedType
	}
	if err != nil {
		return Result{}, err
	}

	answers := make([]survey_models.Answer, len(prior), len(prior)+1)
	copy(answers, prior)
	answers = append(answers, survey_models.Answer{
		QID:           q.ID,
		QuestionTitle: q.Title,
		QuestionText:  q.Text,
		Type:          q.Type,
		ValueText:     value,
	})

	if next == "" {
		return Result{
			Finished:   true,
			FinalTitle: s.FinalTitle,
			FinalText:  Render(s.FinalText, answers),
			Answers:    answers,
		}, nil
	}
	if _, ok := s.Questions[next]; !ok {
		return Result{}, &utils.NextQuestionMissingError{SurveyKey: s.Key, From: q.ID, NextQID: next}
	}
	return Result{NextQID: next, Answers: answers}, nil
}

func evalSingle(q *survey_models.Question, p Payload) (string, string, error) {
	if p.OptionIdx == nil {
		return "", "", utils.ErrBadRequest
	}
	opt, ok := q.Option(*p.OptionIdx)
	if !ok {
		return "", "", utils.ErrInvalidOption
	}
	return opt.Text, opt.NextQID, nil
}

func evalMulti(q *survey_models.Question, p Payload) (string, error) {
	if p.OptionIdxs == nil {
		return "", utils.ErrBadRequest
	}
	idxs := make([]int, len(p.OptionIdxs))
	copy(idxs, p.OptionIdxs)
	sort.Ints(idxs)

	var chosen []string
	for i, idx := range idxs {
		if i > 0 && idx == idxs[i-1] {
			continue
		}
		if opt, ok := q.Option(idx); ok {
			chosen = append(chosen, opt.Text)
		}
	}
	if len(chosen) == 0 {
		return "", utils.ErrNoSelection
	}
	return strings.Join(chosen, ", "), nil
}

func evalText(p Payload) (string, error) {
	var v string
	switch raw := p.Value.(type) {
	case nil:
	case string:
		v = raw
	case json.Number:
		v = raw.String()
	case float64:
		v = FormatNumber(raw)
	case int:
		v = strconv.Itoa(raw)
	case bool:
		v = strconv.FormatBool(raw)
	default:
		return "", utils.ErrBadRequest
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", utils.ErrEmptyValue
	}
	return v, nil
}

func evalNumber(p Payload) (string, error) {
	var (
		f   float64
		err error
	)
	switch raw := p.Value.(type) {
	case float64:
		f = raw
	case int:
		f = float64(raw)
	case json.Number:
		f, err = raw.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(raw), 64)
	default:
		return "", utils.ErrBadNumber
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", utils.ErrBadNumber
	}
	return FormatNumber(f), nil
}

// FormatNumber renders f in its shortest decimal form: 5, 2.5, -0.125.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
