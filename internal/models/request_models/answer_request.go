package request_models

import (
	"bytes"
	"encoding/json"

	"questflow/internal/models/survey_models"
)

// SubmitAnswerRequest carries the answer to one question together with every
// answer given so far. Only the field matching the question type is read.
type SubmitAnswerRequest struct {
	QID        string                 `json:"qid"`
	Answers    []survey_models.Answer `json:"answers"`
	OptionIdx  *int                   `json:"option_idx,omitempty"`
	OptionIdxs []int                  `json:"option_idxs,omitempty"`
	Value      any                    `json:"value,omitempty"`
}

// UnmarshalJSON keeps numeric values as json.Number so that range checks are
// left to the question evaluation.
func (r *SubmitAnswerRequest) UnmarshalJSON(data []byte) error {
	type plain SubmitAnswerRequest
	var body struct {
		plain
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	*r = SubmitAnswerRequest(body.plain)
	r.Value = nil

	if len(body.Value) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body.Value))
	dec.UseNumber()
	return dec.Decode(&r.Value)
}
