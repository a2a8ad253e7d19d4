package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"winespace/internal/actions"
	ierr "winespace/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const internalErrorMessage = "something went wrong, please try again"

// statusOf maps an action error to the HTTP status and the message shown to the user.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, ierr.NotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ierr.AlreadyExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ierr.Forbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, ierr.Unauthorized):
		return http.StatusUnauthorized, "please sign in"
	case errors.Is(err, ierr.Invalid):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

func fail(c *gin.Context, err error) {
	status, msg := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msgf("%s %s failed", c.Request.Method, c.Request.URL.Path)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, actions.Result{Message: msg})
}

// respond writes the result of an action, or its error.
func respond(c *gin.Context, status int, res actions.Result, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, res)
}

// bind reads the request body as JSON or form data. On failure it writes the
// 400 response and returns false.
func bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBind(dst); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}

func badRequest(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, actions.Result{Message: "the request could not be read"})
		return
	}

	fields := make(map[string]string, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fieldMessage(fe)
		fields[lowerFirst(fe.Field())] = msg
		messages = append(messages, msg)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, actions.Result{Message: strings.Join(messages, "; "), Data: fields})
}

func fieldMessage(fe validator.FieldError) string {
	name := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s needs at least %s item(s)", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be more than %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return name + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
