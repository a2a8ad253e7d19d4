package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"winespace/internal/actions"
	ierr "winespace/internal/errors"
	"winespace/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	actorKey   = "actor"
	refusedKey = "refused"
)

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Int("bytes", c.Writer.Size()).
			Msg("request")
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Msgf("panic serving %s %s", c.Request.Method, c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, actions.Result{Message: internalErrorMessage})
	})
}

// bearer returns the session token from the Authorization header or the session cookie.
func (s *Server) bearer(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	token, err := c.Cookie(s.cnf.CookieName)
	if err != nil {
		return ""
	}
	return token
}

// authenticate puts the actor of a valid session on the context. Requests
// without one continue anonymously. A suspended or pending account also
// continues anonymously, with the refusal kept for requireSession.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := s.bearer(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := s.tokens.Parse(token)
		if err != nil {
			log.Debug().Err(err).Msg("rejected session token")
			c.Next()
			return
		}

		// role and status come from the stored user, not the token
		actor, err := s.actions.Session(c.Request.Context(), claims.UserId())
		switch {
		case errors.Is(err, ierr.Unauthorized):
			c.Next()
			return
		case errors.Is(err, ierr.Forbidden):
			c.Set(refusedKey, err)
			c.Next()
			return
		case err != nil:
			fail(c, err)
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func actorFrom(c *gin.Context) actions.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return actions.Actor{}
	}
	actor, _ := v.(actions.Actor)
	return actor
}

func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorFrom(c).Id == "" {
			if v, ok := c.Get(refusedKey); ok {
				fail(c, v.(error))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, actions.Result{Message: "please sign in"})
			return
		}
		c.Next()
	}
}

func requireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !actorFrom(c).Is(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, actions.Result{Message: "your role cannot access this page"})
			return
		}
		c.Next()
	}
}
