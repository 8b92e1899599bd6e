package definition

import (
	"fmt"
	"path/filepath"
)

// DefinitionError reports a structural defect in a survey definition.
type DefinitionError struct {
	Source     string
	QuestionID string
	Reason     string
	Err        error
}

func (e *DefinitionError) Error() string {
	if e.QuestionID != "" {
		return fmt.Sprintf("%s: question %s: %s", e.Source, e.QuestionID, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Reason)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

func sourceError(path, action string, err error) error {
	return &DefinitionError{Source: filepath.Base(path), Reason: action + ": " + err.Error(), Err: err}
}
