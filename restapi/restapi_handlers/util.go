package restapi_handlers

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	st "github.com/nsac-nust/stray-tracker/settings"
)

// Error is the body of every non 2xx response raised by the service itself.
type Error struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// JSONError replies to the request with the specified error message and HTTP code.
// It does not otherwise end the request; the caller should ensure no further
// writes are done to the gin context.
func JSONError(c *gin.Context, code int, title string, baseErr error) {
	if baseErr == nil {
		baseErr = errors.New("no error provided")
	}
	if code >= 500 && code <= 599 {
		// zerolog Stack() needs a pkg/errors style error, print the goroutine stack instead
		debug.PrintStack()
		st.Logger.Err(baseErr).Int("code", code).Str("title", title).Str("path", c.FullPath()).Msg("internal restapi error")
	}
	JSONResponse(c, code, Error{Status: fmt.Sprint(code), Title: title, Detail: baseErr.Error()})
}

// JSONResponse writes body as json with the given status code.
func JSONResponse(c *gin.Context, code int, body any) {
	out, err := json.Marshal(body)
	if err != nil {
		st.Logger.Err(err).Int("code", code).Msg("restapi failed to encode json response")
		code = 500
		out = []byte(`{"status":"500","title":"response encoding failed","detail":""}`)
	}
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
	c.Writer.WriteHeader(code)
	_, err = c.Writer.Write(out)
	c.Writer.Flush()
	if err != nil {
		st.Logger.Warn().Err(err).Msg("restapi failed to write response")
	}
}
