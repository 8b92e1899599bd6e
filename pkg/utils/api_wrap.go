package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIError struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	NextQID string `json:"next_qid,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, APIError{
		OK:      false,
		Error:   err.Error(),
		TraceID: c.GetString("trace_id"),
	})
}

// requestErrors are client mistakes answered with 400 and their own code.
var requestErrors = []error{ErrBadRequest, ErrInvalidOption, ErrNoSelection, ErrEmptyValue, ErrBadNumber}

func HandleServiceError(c *gin.Context, err error) {
	for _, reqErr := range requestErrors {
		if errors.Is(err, reqErr) {
			RespondError(c, http.StatusBadRequest, reqErr)
			return
		}
	}

	var missing *NextQuestionMissingError
	switch {
	case errors.Is(err, ErrSurveyNotFound):
		RespondError(c, http.StatusNotFound, ErrSurveyNotFound)
	case errors.Is(err, ErrQuestionNotFound):
		RespondError(c, http.StatusNotFound, ErrQuestionNotFound)
	case errors.As(err, &missing):
		zap.L().Error("branch target missing",
			zap.String("survey", missing.SurveyKey),
			zap.String("from", missing.From),
			zap.String("next_qid", missing.NextQID),
			zap.String("trace_id", c.GetString("trace_id")))
		c.JSON(http.StatusInternalServerError, APIError{
			OK:      false,
			Error:   ErrNextQuestionMissing.Error(),
			NextQID: missing.NextQID,
			TraceID: c.GetString("trace_id"),
		})
	case errors.Is(err, ErrUnsupportedType):
		zap.L().Error("question has unsupported type", zap.String("path", c.Request.URL.Path))
		RespondError(c, http.StatusInternalServerError, ErrUnsupportedType)
	default:
		zap.L().Error("unexpected error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, errors.New("internal_error"))
	}
}
