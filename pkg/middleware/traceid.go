package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const TraceHeader = "X-Trace-ID"

// TraceIDMiddleware tags each request with a trace id. A well-formed id sent
// by the caller is kept so browser logs and server logs line up.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Set("trace_id", traceID)
		c.Writer.Header().Set(TraceHeader, traceID)
		c.Next()
	}
}
