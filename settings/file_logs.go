package settings

import (
	"path"

	zlog "github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Access lines for responses below 400.
var ChLogRestapiOk chan []byte

// Access lines for 4xx and 5xx responses, including the response body.
var ChLogRestapiErr chan []byte

// One line per accepted tag vote, for auditing karma.
var ChLogVotes chan []byte

// fileLogger drains a channel into a size rotated file so request goroutines never block on disk.
func fileLogger(filename string, buffer int) chan []byte {
	out := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    2, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	ch := make(chan []byte, buffer)
	go func() {
		for line := range ch {
			if len(line) == 0 {
				continue
			}
			if _, err := out.Write(append(line, '\n')); err != nil {
				zlog.Warn().Err(err).Int("bytes", len(line)+1).Str("file", filename).Msg("dropped log line")
			}
		}
	}()
	return ch
}

func createFileLoggers(logpath string) {
	ChLogRestapiOk = fileLogger(path.Join(logpath, "restapi.ok.log"), 20)
	ChLogRestapiErr = fileLogger(path.Join(logpath, "restapi.err.log"), 20)
	ChLogVotes = fileLogger(path.Join(logpath, "votes.log"), 50)
}
