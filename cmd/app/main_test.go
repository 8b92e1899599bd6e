package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "RowType,SurveyTitle,SurveyDescription,StartQuestionId,FinalTitle,FinalText,Id,QuestionTitle,QuestionText,LongText,Hints,Type,NextId,Answer1,NextIfAnswer1\n"

func TestValidate_SampleData(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, validate(context.Background(), &out, filepath.Join("..", "..", "data"), "data"))
	assert.Contains(t, out.String(), "coffee")
	assert.Contains(t, out.String(), "Кофе")
}

func TestValidate_ReportsDanglingTargets(t *testing.T) {
	dir := t.TempDir()
	body := header +
		"survey,Broken,,Q1,,,,,,,,,,,\n" +
		"question,,,,,,Q1,First,,,,single,,Go,Q7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.csv"), []byte(body), 0o644))

	var out bytes.Buffer
	err := validate(context.Background(), &out, dir, "data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 branch target")
	assert.Contains(t, out.String(), "Q1#1 -> Q7")
}

func TestValidate_ParseError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"), []byte("RowType\nsurvey\n"), 0o644))

	var out bytes.Buffer
	err := validate(context.Background(), &out, dir, "data")
	require.Error(t, err)
	assert.Empty(t, out.String())
}
