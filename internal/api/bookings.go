package api

import (
	"net/http"

	"winespace/internal/actions"

	"github.com/gin-gonic/gin"
)

type rangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

func (s *Server) listAvailability(c *gin.Context) {
	var q rangeQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.actions.ListAvailability(c.Request.Context(), actorFrom(c), c.Query("providerId"), q.From, q.To)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) addAvailability(c *gin.Context) {
	var in actions.AvailabilityInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.AddAvailability(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusCreated, res, err)
}

func (s *Server) removeAvailability(c *gin.Context) {
	res, err := s.actions.RemoveAvailability(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

type providerQuery struct {
	Date        string `form:"date" binding:"required"`
	ServiceType string `form:"serviceType"`
}

func (s *Server) findProviders(c *gin.Context) {
	var q providerQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.actions.FindProviders(c.Request.Context(), q.Date, q.ServiceType)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) listBookings(c *gin.Context) {
	var q rangeQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.actions.ListBookings(c.Request.Context(), actorFrom(c), q.From, q.To)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) createBooking(c *gin.Context) {
	var in actions.BookingInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.CreateBooking(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusCreated, res, err)
}

func (s *Server) calendar(c *gin.Context) {
	res, err := s.actions.Calendar(c.Request.Context(), actorFrom(c), c.Query("month"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) workOrders(c *gin.Context) {
	var q rangeQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.actions.WorkOrders(c.Request.Context(), actorFrom(c), q.From, q.To)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) setBookingStatus(c *gin.Context) {
	var in actions.BookingStatusInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.SetBookingStatus(c.Request.Context(), actorFrom(c), c.Param("id"), in.Status)
	respond(c, http.StatusOK, res, err)
}
