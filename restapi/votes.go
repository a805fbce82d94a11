package restapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/nsac-nust/stray-tracker/animals"
	"github.com/nsac-nust/stray-tracker/dedupe"
	"github.com/nsac-nust/stray-tracker/prom"
	"github.com/nsac-nust/stray-tracker/restapi/restapi_handlers"
	st "github.com/nsac-nust/stray-tracker/settings"
)

const (
	voteKarma     = 5
	maxTagLength  = 32
	maxVoteBody   = 4096
	duplicateVote = "You already voted for this today!"
)

type voteAccepted struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Karma   int    `json:"karma"`
}

type voteRejected struct {
	Error string `json:"error"`
	Karma int    `json:"karma"`
}

type voteAudit struct {
	Time     string `json:"time"`
	Remote   string `json:"remote"`
	AnimalID int64  `json:"animal_id"`
	Tag      string `json:"tag"`
	Added    bool   `json:"added"`
}

// parseID reads a positive animal id from the route.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id %q is not a positive integer", c.Param("id"))
	}
	return id, nil
}

// validTag rejects tags that can't be stored in a comma separated tag list or shown on a page.
func validTag(tag string) error {
	if tag == "" {
		return errors.New("tag is required")
	}
	if len(tag) > maxTagLength {
		return fmt.Errorf("tag is longer than %d bytes", maxTagLength)
	}
	for _, r := range tag {
		if unicode.IsControl(r) || r == ',' || r == unicode.ReplacementChar {
			return fmt.Errorf("tag contains invalid character %q", r)
		}
	}
	return nil
}

// PostVoteTag adds a personality tag to an animal, accepting one vote per voter, animal and tag.
func (s *Server) PostVoteTag(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		prom.TagVotes.WithLabelValues("invalid").Inc()
		restapi_handlers.JSONError(c, 400, "invalid animal id", err)
		return
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxVoteBody))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		prom.TagVotes.WithLabelValues("invalid").Inc()
		restapi_handlers.JSONError(c, 413, "vote body too large", err)
		return
	} else if err != nil {
		prom.TagVotes.WithLabelValues("invalid").Inc()
		restapi_handlers.JSONError(c, 400, "could not read body", err)
		return
	}
	if !gjson.ValidBytes(raw) {
		prom.TagVotes.WithLabelValues("invalid").Inc()
		restapi_handlers.JSONError(c, 400, "body is not json", errors.New(`expected {"tag": "..."}`))
		return
	}
	field := gjson.GetBytes(raw, "tag")
	if field.Type != gjson.String {
		prom.TagVotes.WithLabelValues("invalid").Inc()
		restapi_handlers.JSONError(c, 400, "invalid tag", errors.New("tag must be a string"))
		return
	}
	tag := strings.TrimSpace(field.String())
	if err := validTag(tag); err != nil {
		prom.TagVotes.WithLabelValues("invalid").Inc()
		restapi_handlers.JSONError(c, 400, "invalid tag", err)
		return
	}

	remote := c.ClientIP()
	key := dedupe.Key(remote, strconv.FormatInt(id, 10), tag)
	if s.votes.Contains(key) {
		prom.TagVotes.WithLabelValues("duplicate").Inc()
		restapi_handlers.JSONResponse(c, 403, voteRejected{Error: duplicateVote, Karma: 0})
		return
	}

	added, err := s.animals.AddTag(c.Request.Context(), id, tag)
	if errors.Is(err, animals.ErrNotFound) {
		prom.TagVotes.WithLabelValues("not_found").Inc()
		restapi_handlers.JSONError(c, 404, "animal not found", err)
		return
	} else if err != nil {
		// vote is not remembered so the voter may retry
		prom.TagVotes.WithLabelValues("error").Inc()
		restapi_handlers.JSONError(c, 500, "could not add tag", err)
		return
	}
	s.votes.Insert(key)
	prom.TagVotes.WithLabelValues("accepted").Inc()
	s.auditVote(remote, id, tag, added)

	restapi_handlers.JSONResponse(c, 200, voteAccepted{
		Success: true,
		Message: fmt.Sprintf("Tag '%s' added! +%d Karma", tag, voteKarma),
		Karma:   voteKarma,
	})
}

func (s *Server) auditVote(remote string, id int64, tag string, added bool) {
	line, err := json.Marshal(voteAudit{
		Time:     time.Now().UTC().Format(time.RFC3339),
		Remote:   remote,
		AnimalID: id,
		Tag:      tag,
		Added:    added,
	})
	if err != nil {
		st.Logger.Warn().Err(err).Msg("could not marshal vote audit line")
		return
	}
	st.ChLogVotes <- line
}
