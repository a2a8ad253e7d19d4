package api

import (
	"net/http"

	"winespace/internal/actions"
	"winespace/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (s *Server) listOrders(c *gin.Context) {
	res, err := s.actions.ListOrders(c.Request.Context(), actorFrom(c), model.OrderStatus(c.Query("status")))
	respond(c, http.StatusOK, res, err)
}

// checkout answers 201 when every supplier took its order and 207 when some
// did not. When none did, the per supplier failures are still returned.
func (s *Server) checkout(c *gin.Context) {
	var in actions.CheckoutInput
	if !bind(c, &in) {
		return
	}

	res, err := s.actions.Checkout(c.Request.Context(), actorFrom(c), in)
	if err != nil && res.Data != nil {
		log.Error().Err(err).Msgf("checkout failed, buyer: %s", actorFrom(c).Id)
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	if err == nil && !res.Success {
		c.JSON(http.StatusMultiStatus, res)
		return
	}
	respond(c, http.StatusCreated, res, err)
}

func (s *Server) parseMessage(c *gin.Context) {
	var in actions.ParseMessageInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.ParseOrderMessage(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) getOrder(c *gin.Context) {
	res, err := s.actions.GetOrder(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) setOrderStatus(c *gin.Context) {
	var in actions.OrderStatusInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.SetOrderStatus(c.Request.Context(), actorFrom(c), c.Param("id"), in.Status)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) deleteOrder(c *gin.Context) {
	res, err := s.actions.DeleteOrder(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) listRFQs(c *gin.Context) {
	res, err := s.actions.ListRFQs(c.Request.Context(), actorFrom(c))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) createRFQ(c *gin.Context) {
	var in actions.RFQInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.CreateRFQ(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusCreated, res, err)
}

func (s *Server) closeRFQ(c *gin.Context) {
	res, err := s.actions.CloseRFQ(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) listQuotes(c *gin.Context) {
	res, err := s.actions.ListQuotes(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) submitQuote(c *gin.Context) {
	var in actions.QuoteInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.SubmitQuote(c.Request.Context(), actorFrom(c), c.Param("id"), in)
	respond(c, http.StatusCreated, res, err)
}

func (s *Server) acceptQuote(c *gin.Context) {
	res, err := s.actions.AcceptQuote(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}
