package api

import (
	"errors"
	"net/http"

	"winespace/internal/actions"
	ierr "winespace/internal/errors"
	"winespace/internal/model"

	"github.com/gin-gonic/gin"
)

func (s *Server) register(c *gin.Context) {
	var in actions.RegisterInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.Register(c.Request.Context(), in)
	respond(c, http.StatusCreated, res, err)
}

type session struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// login sets the session cookie and also returns the token for API clients.
func (s *Server) login(c *gin.Context) {
	var in actions.LoginInput
	if !bind(c, &in) {
		return
	}

	user, err := s.actions.Login(c.Request.Context(), in)
	if errors.Is(err, ierr.Unauthorized) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, actions.Result{Message: "invalid email or password"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	token, err := s.tokens.Issue(user, s.now())
	if err != nil {
		fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cnf.CookieName, token, int(s.tokens.TTL().Seconds()), "/", "", s.cnf.SecureCookie, true)
	c.JSON(http.StatusOK, actions.Result{Success: true, Message: "Signed in", Data: session{User: user, Token: token}})
}

func (s *Server) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cnf.CookieName, "", -1, "/", "", s.cnf.SecureCookie, true)
	c.JSON(http.StatusOK, actions.Result{Success: true, Message: "Signed out"})
}

func (s *Server) me(c *gin.Context) {
	res, err := s.actions.Me(c.Request.Context(), actorFrom(c))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) updateProfile(c *gin.Context) {
	var in actions.ProfileInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.UpdateProfile(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) dashboard(c *gin.Context) {
	res, err := s.actions.Dashboard(c.Request.Context(), actorFrom(c))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) listUsers(c *gin.Context) {
	res, err := s.actions.ListUsers(c.Request.Context(), actorFrom(c), model.Role(c.Query("role")))
	respond(c, http.StatusOK, res, err)
}

type userStatusInput struct {
	Status model.UserStatus `json:"status" form:"status" binding:"required"`
}

func (s *Server) setUserStatus(c *gin.Context) {
	var in userStatusInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.SetUserStatus(c.Request.Context(), actorFrom(c), c.Param("id"), in.Status)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) setCustomerTier(c *gin.Context) {
	var in actions.TierInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.SetCustomerTier(c.Request.Context(), actorFrom(c), c.Param("producerId"), in.Tier)
	respond(c, http.StatusOK, res, err)
}
