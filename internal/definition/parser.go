// Package definition turns spreadsheet survey definitions into survey graphs.
package definition

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"questflow/internal/models/survey_models"
)

const (
	DefaultFinalTitle = "Готово"
	DefaultFinalText  = "Спасибо! Ваши ответы:\n{answers}"
	DefaultKey        = "survey"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
)

// Slugify derives a survey key from a file name.
func Slugify(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = whitespaceRun.ReplaceAllString(base, "_")
	base = nonSlugChars.ReplaceAllString(base, "")
	if base == "" {
		return DefaultKey
	}
	return base
}

// IsDefinitionFile reports whether name looks like a loadable definition.
// Office lock files (~$name.xlsx) are rejected.
func IsDefinitionFile(name string) bool {
	if strings.HasPrefix(name, "~$") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// ParseFile reads and parses a definition file. sheet applies to .xlsx only.
func ParseFile(path, sheet string) (*survey_models.Survey, error) {
	var (
		t   Table
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		t, err = ReadXLSX(path, sheet)
	case ".csv":
		t, err = ReadCSV(path)
	default:
		return nil, &DefinitionError{Source: filepath.Base(path), Reason: "unsupported file type"}
	}
	if err != nil {
		return nil, err
	}
	return Parse(t)
}

// Parse builds a survey from a table. The key is derived from t.Source.
func Parse(t Table) (*survey_models.Survey, error) {
	if missing := missingColumns(t.Header); len(missing) > 0 {
		sort.Strings(missing)
		return nil, &DefinitionError{
			Source: t.Source,
			Reason: fmt.Sprintf("missing columns: %s", strings.Join(missing, ", ")),
		}
	}

	rows := classify(t)
	if len(rows.metas) == 0 {
		return nil, &DefinitionError{Source: t.Source, Reason: "no RowType=survey row found"}
	}
	meta := rows.metas[0]

	key := Slugify(t.Source)
	s := &survey_models.Survey{
		Key:         key,
		FileName:    t.Source,
		Title:       meta.Title,
		Description: meta.Description,
		StartQID:    meta.StartQID,
		FinalTitle:  meta.FinalTitle,
		FinalText:   meta.FinalText,
		Questions:   make(map[string]*survey_models.Question),
	}
	if s.Title == "" {
		s.Title = key
	}
	if s.FinalTitle == "" {
		s.FinalTitle = DefaultFinalTitle
	}
	if s.FinalText == "" {
		s.FinalText = DefaultFinalText
	}

	for _, row := range rows.questions {
		if row.ID == "" {
			continue
		}
		q, err := buildQuestion(t.Source, row)
		if err != nil {
			return nil, err
		}
		if _, seen := s.Questions[q.ID]; !seen {
			s.Order = append(s.Order, q.ID)
		}
		s.Questions[q.ID] = q
	}

	if len(s.Questions) == 0 {
		return nil, &DefinitionError{Source: t.Source, Reason: "no questions found (RowType=question)"}
	}

	if _, ok := s.Questions[s.StartQID]; !ok {
		s.StartQID = s.Order[0]
	}
	return s, nil
}

func buildQuestion(source string, row QuestionRow) (*survey_models.Question, error) {
	qtype, ok := survey_models.ParseQuestionType(row.Type)
	if !ok {
		return nil, &DefinitionError{
			Source:     source,
			QuestionID: row.ID,
			Reason:     fmt.Sprintf("invalid Type=%q", string(qtype)),
		}
	}

	var opts []survey_models.Option
	for i, slot := range row.Slots {
		if slot.Text == "" {
			continue
		}
		opts = append(opts, survey_models.Option{Idx: i + 1, Text: slot.Text, NextQID: slot.Next})
	}
	if qtype.HasOptions() && len(opts) == 0 {
		return nil, &DefinitionError{
			Source:     source,
			QuestionID: row.ID,
			Reason:     fmt.Sprintf("no answers provided (Answer1..Answer%d)", survey_models.MaxOptions),
		}
	}

	return &survey_models.Question{
		ID:       row.ID,
		Type:     qtype,
		Title:    row.Title,
		Text:     row.Text,
		LongText: row.LongText,
		Hints:    row.Hints,
		Options:  opts,
		NextID:   row.NextID,
	}, nil
}

// DanglingTargets lists branch targets that name no question of s, formatted
// as "<qid> -> <target>". Empty targets mean finish and are not reported.
func DanglingTargets(s *survey_models.Survey) []string {
	var out []string
	check := func(from, to string) {
		if to == "" {
			return
		}
		if _, ok := s.Questions[to]; !ok {
			out = append(out, fmt.Sprintf("%s -> %s", from, to))
		}
	}
	for _, qid := range s.Order {
		q := s.Questions[qid]
		if q.Type == survey_models.QuestionSingle {
			for _, o := range q.Options {
				check(fmt.Sprintf("%s#%d", q.ID, o.Idx), o.NextQID)
			}
			continue
		}
		check(q.ID, q.NextID)
	}
	return out
}
