// Package api exposes HTTP handlers for the exercise tracker.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikolacukic/exercise-tracker/internal/domain"
)

var errUnparsableBody = domain.ValidationError("unable to parse body")

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", healthz)

	users := r.Group("/api/users")
	users.GET("", h.listUsers)
	users.POST("", h.createUser)
	users.POST("/:id/exercises", h.createExercise)
	users.GET("/:id/logs", h.userLogs)
}

// healthz reports a simple OK status for container health checks.
func healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]UserView, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserView(u))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createUser(c *gin.Context) {
	var req CreateUserRequest
	if err := decodeBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	user, err := h.service.RegisterUser(c.Request.Context(), req.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserView(*user))
}

func (h *Handler) createExercise(c *gin.Context) {
	ownerID, err := domain.ParseUserID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var req CreateExerciseRequest
	if err := decodeBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	exercise, err := h.service.LogExercise(c.Request.Context(), ownerID, domain.ExerciseInput{
		Description: req.Description,
		Duration:    req.Duration,
		Date:        req.Date,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExerciseView{
		ID:          exercise.OwnerID,
		Username:    exercise.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
	})
}

func (h *Handler) userLogs(c *gin.Context) {
	userID, err := domain.ParseUserID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	log, err := h.service.UserLog(c.Request.Context(), userID, domain.LogQuery{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Limit: c.Query("limit"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := UserLogView{
		ID:       log.User.ID,
		Username: log.User.Username,
		Logs:     make([]LogEntryView, 0, len(log.Logs)),
		Count:    log.Count,
	}
	for _, e := range log.Logs {
		resp.Logs = append(resp.Logs, LogEntryView{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.Date,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// decodeBody reads a JSON body into dst keeping numbers as json.Number. An empty body
// leaves dst untouched so field checks report what is missing.
func decodeBody(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errUnparsableBody
	}
	return nil
}

// CreateUserRequest is the payload for POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// CreateExerciseRequest is the payload for POST /api/users/:id/exercises. Fields stay
// untyped so the validator can report what the client actually sent.
type CreateExerciseRequest struct {
	Description any `json:"description"`
	Duration    any `json:"duration"`
	Date        any `json:"date"`
}

// UserView is the public shape of a user.
type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ExerciseView echoes a created exercise together with its owner.
type ExerciseView struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntryView is an exercise inside a user log.
type LogEntryView struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// UserLogView packages a user with their filtered exercises.
type UserLogView struct {
	ID       int64          `json:"id"`
	Username string         `json:"username"`
	Logs     []LogEntryView `json:"logs"`
	Count    int            `json:"count"`
}

func toUserView(u domain.User) UserView {
	return UserView{ID: u.ID, Username: u.Username}
}
