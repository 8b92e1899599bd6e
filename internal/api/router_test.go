package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"questflow/internal/api/controllers"
	"questflow/internal/models/survey_models"
	"questflow/internal/registry"
	"questflow/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testSurveys() []*survey_models.Survey {
	yesNo := &survey_models.Survey{
		Key:         "pets",
		Title:       "Pets",
		Description: "About your pets",
		StartQID:    "Q1",
		FinalTitle:  "Готово",
		FinalText:   "Ваши ответы:\n{answers}",
		Questions: map[string]*survey_models.Question{
			"Q1": {
				ID: "Q1", Type: survey_models.QuestionSingle, Title: "Have a pet?", Text: "Any pet counts",
				Options: []survey_models.Option{{Idx: 1, Text: "Yes", NextQID: "Q2"}, {Idx: 2, Text: "No"}},
			},
			"Q2": {
				ID: "Q2", Type: survey_models.QuestionMulti, Title: "Which?", NextID: "Q3",
				Options: []survey_models.Option{{Idx: 1, Text: "Cat"}, {Idx: 2, Text: "Dog"}},
			},
			"Q3": {ID: "Q3", Type: survey_models.QuestionNumber, Title: "How many?", NextID: "Q9"},
		},
		Order: []string{"Q1", "Q2", "Q3"},
	}
	other := &survey_models.Survey{
		Key:       "aaa",
		Title:     "another",
		StartQID:  "T",
		Questions: map[string]*survey_models.Question{"T": {ID: "T", Type: survey_models.QuestionText, Title: "Say"}},
		Order:     []string{"T"},
	}
	return []*survey_models.Survey{yesNo, other}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	log := zaptest.NewLogger(t)
	holder := registry.NewHolder(registry.New(testSurveys()))
	svc := services.NewSurveyService(holder, services.NewResultService(nil), log)

	r, err := NewRouter(log, controllers.NewSurveyController(svc), controllers.NewPageController(svc))
	require.NoError(t, err)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestGetQuestion(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodGet, "/api/s/pets/q/Q1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "pets", body["survey_key"])
	assert.Equal(t, "Q1", body["qid"])
	assert.Equal(t, "single", body["type"])
	assert.Equal(t, "Any pet counts", body["text"])
	assert.Equal(t, "", body["long_text"])
	assert.Equal(t, []any{
		map[string]any{"idx": float64(1), "text": "Yes"},
		map[string]any{"idx": float64(2), "text": "No"},
	}, body["options"])
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestGetQuestion_NotFound(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodGet, "/api/s/pets/q/Q42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "question_not_found", body["error"])

	w, body = do(t, r, http.MethodGet, "/api/s/unknownKey/q/Q1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "survey_not_found", body["error"])
}

func TestSubmitAnswer_Finish(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/s/pets/answer", `{"qid":"Q1","answers":[],"option_idx":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["finished"])
	assert.Equal(t, "Готово", body["final_title"])
	assert.Equal(t, "Ваши ответы:\nHave a pet?: No", body["final_text"])

	answers := body["answers"].([]any)
	require.Len(t, answers, 1)
	assert.Equal(t, map[string]any{
		"qid":            "Q1",
		"question_title": "Have a pet?",
		"question_text":  "Any pet counts",
		"type":           "single",
		"value_text":     "No",
	}, answers[0])
}

func TestSubmitAnswer_Advance(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/s/pets/answer", `{"qid":"Q1","answers":[],"option_idx":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["finished"])
	assert.Equal(t, "Q2", body["next_qid"])
	assert.NotContains(t, body, "final_text")

	prior, err := json.Marshal(body["answers"])
	require.NoError(t, err)
	w, body = do(t, r, http.MethodPost, "/api/s/pets/answer",
		`{"qid":"Q2","answers":`+string(prior)+`,"option_idxs":[2,2,1,7]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Q3", body["next_qid"])
	answers := body["answers"].([]any)
	require.Len(t, answers, 2)
	assert.Equal(t, "Cat, Dog", answers[1].(map[string]any)["value_text"])
}

func TestSubmitAnswer_Errors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"not json", "/api/s/pets/answer", `nope`, http.StatusBadRequest, "bad_request"},
		{"missing qid", "/api/s/pets/answer", `{"answers":[]}`, http.StatusBadRequest, "bad_request"},
		{"string option", "/api/s/pets/answer", `{"qid":"Q1","option_idx":"1"}`, http.StatusBadRequest, "bad_request"},
		{"missing option", "/api/s/pets/answer", `{"qid":"Q1"}`, http.StatusBadRequest, "bad_request"},
		{"unknown question", "/api/s/pets/answer", `{"qid":"Q8","option_idx":1}`, http.StatusNotFound, "question_not_found"},
		{"invalid option", "/api/s/pets/answer", `{"qid":"Q1","option_idx":3}`, http.StatusBadRequest, "invalid_option"},
		{"empty multi", "/api/s/pets/answer", `{"qid":"Q2","option_idxs":[]}`, http.StatusBadRequest, "no_selection"},
		{"unresolved multi", "/api/s/pets/answer", `{"qid":"Q2","option_idxs":[5,6]}`, http.StatusBadRequest, "no_selection"},
		{"bad number", "/api/s/pets/answer", `{"qid":"Q3","value":"many"}`, http.StatusBadRequest, "bad_number"},
		{"number out of range", "/api/s/pets/answer", `{"qid":"Q3","value":1e400}`, http.StatusBadRequest, "bad_number"},
		{"empty text", "/api/s/aaa/answer", `{"qid":"T","value":"   "}`, http.StatusBadRequest, "empty_value"},
		{"unknown survey", "/api/s/nope/answer", `{"qid":"Q1","option_idx":1}`, http.StatusNotFound, "survey_not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tt.code, body["error"])
		})
	}
}

func TestSubmitAnswer_NextQuestionMissing(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/s/pets/answer", `{"qid":"Q3","answers":[],"value":"4"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "next_question_missing", body["error"])
	assert.Equal(t, "Q9", body["next_qid"])
}

func TestSubmitAnswer_TextAcceptsNumber(t *testing.T) {
	r := newTestRouter(t)
	w, body := do(t, r, http.MethodPost, "/api/s/aaa/answer", `{"qid":"T","value":12.5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["finished"])
	answers := body["answers"].([]any)
	assert.Equal(t, "12.5", answers[0].(map[string]any)["value_text"])
}

func TestSubmitAnswer_LoosePriorAnswers(t *testing.T) {
	r := newTestRouter(t)
	w, body := do(t, r, http.MethodPost, "/api/s/pets/answer",
		`{"qid":"Q2","answers":[{"qid":"Q1","question_title":"Have a pet?","value_text":5}],"option_idxs":[1]}`)
	require.Equal(t, http.StatusOK, w.Code)
	answers := body["answers"].([]any)
	require.Len(t, answers, 2)
	assert.Equal(t, "5", answers[0].(map[string]any)["value_text"])
	assert.Equal(t, "Cat", answers[1].(map[string]any)["value_text"])
}

func TestPages(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, `href="/s/pets"`)
	assert.Less(t, strings.Index(page, "another"), strings.Index(page, "Pets"))

	w, _ = do(t, r, http.MethodGet, "/s/pets", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-start="Q1"`)

	w, _ = do(t, r, http.MethodGet, "/s/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodGet, "/result", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/static/survey.js", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
}

func TestTraceIDIsEchoed(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Trace-ID", "5f0c6a1e-7d3b-4f7e-9a43-2d7f1c8e9b10")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "5f0c6a1e-7d3b-4f7e-9a43-2d7f1c8e9b10", w.Header().Get("X-Trace-ID"))
}
