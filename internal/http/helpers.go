package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/services"
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

// --- Response Types ---

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  string                `json:"status"`
	Message string                `json:"msg,omitempty"`
	Data    any                   `json:"data,omitempty"`
	Errors  []services.FieldError `json:"errors,omitempty"`
}

// ListResponse is one page of a listing.
type ListResponse struct {
	Status      string `json:"status"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	TotalCount  int64  `json:"totalCount"`
	Data        any    `json:"data"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Status  string               `json:"status"`
	Message string               `json:"msg"`
	User    entities.UserSummary `json:"user"`
	Token   string               `json:"token"`
}

// emptyListResponse keeps "data": [] in 404 listings.
type emptyListResponse struct {
	Status  string `json:"status"`
	Message string `json:"msg"`
	Data    []any  `json:"data"`
}

// --- Error Response Helpers ---

func respondFailure(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Status: statusFailed, Message: message})
}

func respondBadRequest(c *gin.Context, message string) {
	respondFailure(c, http.StatusBadRequest, message)
}

// respondInternalError logs the error and sends a 500 response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).Error("Unhandled internal server error")
	_ = c.Error(err)
	respondFailure(c, http.StatusInternalServerError, "internal server error")
}

// recoverPanic renders a panic as the standard 500 envelope.
func recoverPanic(c *gin.Context, recovered any) {
	logrus.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"panic":  recovered,
	}).Error("Recovered from panic")
	c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Status: statusFailed, Message: "internal server error"})
}

// respondServiceError maps a service error onto its HTTP status.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, Response{Status: statusFailed, Message: verr.Message, Errors: verr.Fields})
	case errors.Is(err, services.ErrNotFound):
		respondFailure(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		respondFailure(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		respondFailure(c, http.StatusUnauthorized, err.Error())
	default:
		respondInternalError(c, err)
	}
}

// respondListError is respondServiceError for listings, where "not found"
// means the requested page is empty.
func respondListError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, emptyListResponse{Status: statusFailed, Message: err.Error(), Data: []any{}})
		return
	}
	respondServiceError(c, err)
}

// --- Success Response Helpers ---

func respondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Status: statusSuccess, Message: message, Data: data})
}

func respondPage[T any](c *gin.Context, result *entities.PageResult[T]) {
	c.JSON(http.StatusOK, ListResponse{
		Status:      statusSuccess,
		CurrentPage: result.Page.Number,
		TotalPages:  result.TotalPages(),
		TotalCount:  result.Total,
		Data:        result.Items,
	})
}

// --- Parameter Parsing ---

// bindJSON decodes the request body or responds with 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logrus.WithError(err).Debug("Rejected request body")
		respondBadRequest(c, "invalid request body")
		return false
	}
	return true
}

// parsePage reads the page and limit query parameters. Missing, malformed
// or non-positive values fall back to the defaults.
func parsePage(c *gin.Context) entities.Page {
	number, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return entities.NewPage(number, limit)
}
