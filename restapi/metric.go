package restapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/nsac-nust/stray-tracker/prom"
	st "github.com/nsac-nust/stray-tracker/settings"
)

// loggingResponseWriter remembers the status code and, for failures, the body sent to the client.
type loggingResponseWriter struct {
	gin.ResponseWriter
	statusCode   int
	responseBody []byte
}

func newLoggingResponseWriter(c *gin.Context) *loggingResponseWriter {
	lrw := &loggingResponseWriter{ResponseWriter: c.Writer, statusCode: http.StatusOK}
	c.Writer = lrw
	return lrw
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(data []byte) (int, error) {
	n, err := lrw.ResponseWriter.Write(data)
	if lrw.statusCode >= 400 {
		lrw.responseBody = append(lrw.responseBody, data...)
	}
	return n, err
}

type RestapiLogLine struct {
	Time                string          `json:"time"`
	DurationS           string          `json:"duration_s"`
	Status              int             `json:"status"`
	Method              string          `json:"method"`
	Route               string          `json:"route"`
	Path                string          `json:"path"`
	Query               string          `json:"query"`
	Remote              string          `json:"remote"`
	Useragent           string          `json:"user_agent"`
	ResponseBodyInvalid bool            `json:"response_body_invalid,omitempty"`
	ResponseBody        json.RawMessage `json:"response_body,omitempty"`
}

// MetricHandler times fn, counts its response code and writes an access log line.
// The route template can't be recovered from the request so must be supplied on startup.
func MetricHandler(tpath string, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		lrw := newLoggingResponseWriter(c)

		start := time.Now()
		fn(c)
		elapsed := time.Since(start).Seconds()
		prom.RestapiTimes.WithLabelValues(c.Request.Method, tpath).Observe(elapsed)
		prom.RestapiCodes.WithLabelValues(c.Request.Method, tpath, fmt.Sprint(lrw.statusCode)).Inc()

		// json rather than logfmt so client supplied paths can't break the line
		line := RestapiLogLine{
			Time:         start.Format(time.RFC3339),
			DurationS:    fmt.Sprintf("%.4f", elapsed),
			Status:       lrw.statusCode,
			Method:       c.Request.Method,
			Route:        tpath,
			Path:         c.Request.URL.Path,
			Query:        c.Request.URL.RawQuery,
			Remote:       c.ClientIP(),
			Useragent:    c.Request.UserAgent(),
			ResponseBody: lrw.responseBody,
		}
		if len(line.ResponseBody) > 0 && !json.Valid(line.ResponseBody) {
			line.ResponseBody = nil
			line.ResponseBodyInvalid = true
		}
		raw, err := json.Marshal(line)
		if err != nil {
			st.Logger.Error().Err(err).Str("route", tpath).Msg("could not marshal restapi log line")
			return
		}
		if lrw.statusCode < 400 {
			st.ChLogRestapiOk <- raw
		} else {
			st.ChLogRestapiErr <- raw
		}
	}
}
