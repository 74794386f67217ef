package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rshade/planetprint/internal/demo"
	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/greenops"
	"github.com/rshade/planetprint/internal/insights"
	"github.com/rshade/planetprint/internal/logging"
	"github.com/rshade/planetprint/internal/profile"
	"github.com/rshade/planetprint/internal/session"
)

// ScoreView is the scored form of a profile returned by the API.
type ScoreView struct {
	Result        footprint.Result            `json:"result"`
	CO2Kg         int64                       `json:"co2Kg"`
	Percentages   map[profile.Domain]float64  `json:"percentages"`
	Message       string                      `json:"message"`
	Equivalencies *greenops.EquivalencyOutput `json:"equivalencies,omitempty"`
	Comparison    *insights.Comparison        `json:"comparison,omitempty"`
}

// SessionView is a session together with its current score.
type SessionView struct {
	ID         string          `json:"id"`
	Profile    profile.Profile `json:"profile"`
	Completion float64         `json:"completion"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Score      ScoreView       `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.store.Len()})
}

func (s *Server) handleQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": profile.Fields()})
}

func (s *Server) handleFootprint(c *gin.Context) {
	region, ok := s.region(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	p, err := profile.LoadBytes(body, profile.FormatJSON)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	view, err := s.score(p, region)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	s.metrics.ObserveResult(view.Result)
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	sess := s.store.Create()
	logging.FromContext(c.Request.Context()).Debug().Ctx(c.Request.Context()).
		Str("component", "server").
		Str("session_id", sess.ID).
		Msg("session created")
	s.respondSession(c, http.StatusCreated, sess, true)
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.respondSession(c, http.StatusOK, sess, false)
}

// handleAnswers applies a {"field": value} map. Values go through
// profile.ParseAnswer, so null or "" clears a field and garbage numbers
// become unanswered.
func (s *Server) handleAnswers(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	answers := make([]profile.Answer, 0, len(raw))
	for key, value := range raw {
		fs, err := profile.Lookup(key)
		if err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
		text, err := rawAnswer(value)
		if err != nil {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("field %s: %w", key, err))
			return
		}
		a, err := profile.ParseAnswer(fs.Field, text)
		if err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
		answers = append(answers, a)
	}

	sess, err := s.store.Apply(c.Param("id"), answers...)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.respondSession(c, http.StatusOK, sess, true)
}

func (s *Server) handleClearAnswer(c *gin.Context) {
	fs, err := profile.Lookup(c.Param("field"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	sess, err := s.store.Clear(c.Param("id"), fs.Field)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.respondSession(c, http.StatusOK, sess, true)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleInsights(c *gin.Context) {
	region, ok := s.region(c)
	if !ok {
		return
	}
	sess, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	result := footprint.Calculate(sess.Profile)
	report, err := insights.Build(sess.Profile, result, region)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleFacts(c *gin.Context) {
	facts, err := insights.FactsByDomain(profile.Domain(c.Query("domain")))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"facts": facts})
}

func (s *Server) handleDemoAdmin(c *gin.Context) {
	users := defaultDemoUsers
	if raw := c.Query("users"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
		users = n
	}
	seed := s.opts.DemoSeed
	if raw := c.Query("seed"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
		seed = n
	}

	report, err := demo.AdminSnapshot(c.Request.Context(), users, seed, s.opts.Now())
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleDemoGrid(c *gin.Context) {
	now := s.opts.Now()
	reading := demo.GridIntensity(now, demo.NewRand(s.opts.DemoSeed^uint64(now.Unix())))
	c.JSON(http.StatusOK, reading)
}

func (s *Server) handleDemoModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": demo.ModelCards(), "datasets": demo.Datasets()})
}

// score runs the engine and the display helpers on p. It does not touch
// the metrics; callers observe results that came from a new answer set.
func (s *Server) score(p profile.Profile, region insights.Region) (ScoreView, error) {
	result := footprint.Calculate(p)

	view := ScoreView{
		Result:      result,
		CO2Kg:       footprint.CO2Equivalent(result.TotalScore),
		Percentages: result.Breakdown.Percentages(),
		Message:     result.Category.Message(),
	}

	eq, err := greenops.FromScore(result.TotalScore, s.opts.GreenOps)
	if err != nil {
		return ScoreView{}, err
	}
	if !eq.IsEmpty {
		view.Equivalencies = &eq
	}

	if region != "" {
		cmp, err := insights.Compare(result, region)
		if err != nil {
			return ScoreView{}, err
		}
		view.Comparison = &cmp
	}
	return view, nil
}

// respondSession writes the scored view of sess. changed marks a session
// whose answers were just created or modified, which counts as a
// calculation; plain reads do not.
func (s *Server) respondSession(c *gin.Context, status int, sess session.Session, changed bool) {
	view, err := s.score(sess.Profile, "")
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if changed {
		s.metrics.ObserveResult(view.Result)
	}
	c.JSON(status, SessionView{
		ID:         sess.ID,
		Profile:    sess.Profile,
		Completion: sess.Profile.Completion(),
		UpdatedAt:  sess.UpdatedAt,
		Score:      view,
	})
}

// region reads ?region=, falling back to the configured default. It
// writes a 400 and returns false for unknown regions.
func (s *Server) region(c *gin.Context) (insights.Region, bool) {
	raw := c.Query("region")
	if raw == "" {
		return s.opts.Region, true
	}
	r, err := insights.ParseRegion(raw)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return "", false
	}
	return r, true
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

// rawAnswer turns a decoded JSON scalar back into user input.
func rawAnswer(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %T", profile.ErrTypeMismatch, v)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, profile.ErrUnknownField),
		errors.Is(err, profile.ErrUnknownValue),
		errors.Is(err, profile.ErrTypeMismatch),
		errors.Is(err, profile.ErrOutOfRange),
		errors.Is(err, insights.ErrUnknownRegion):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
