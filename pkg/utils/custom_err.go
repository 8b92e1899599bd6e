package utils

import (
	"errors"
	"fmt"
)

// Error values double as the machine readable codes sent to clients.
var (
	ErrBadRequest          = errors.New("bad_request")
	ErrSurveyNotFound      = errors.New("survey_not_found")
	ErrQuestionNotFound    = errors.New("question_not_found")
	ErrInvalidOption       = errors.New("invalid_option")
	ErrNoSelection         = errors.New("no_selection")
	ErrEmptyValue          = errors.New("empty_value")
	ErrBadNumber           = errors.New("bad_number")
	ErrUnsupportedType     = errors.New("unsupported_type")
	ErrNextQuestionMissing = errors.New("next_question_missing")
	ErrDatabaseError       = errors.New("database error")
)

// NextQuestionMissingError is returned when a branch points at a question the
// survey does not define.
type NextQuestionMissingError struct {
	SurveyKey string
	From      string
	NextQID   string
}

func (e *NextQuestionMissingError) Error() string {
	return fmt.Sprintf("%s: survey %s: question %s branches to unknown %s",
		ErrNextQuestionMissing, e.SurveyKey, e.From, e.NextQID)
}

func (e *NextQuestionMissingError) Unwrap() error { return ErrNextQuestionMissing }
