package api

import (
	"net/http"

	"winespace/internal/actions"
	"winespace/internal/model"

	"github.com/gin-gonic/gin"
)

func (s *Server) listReturns(c *gin.Context) {
	res, err := s.actions.ListReturns(c.Request.Context(), actorFrom(c), c.Query("producerId"), c.Query("year"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) saveReturn(c *gin.Context) {
	var in actions.SawisInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.SaveReturn(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) periodSummary(c *gin.Context) {
	res, err := s.actions.PeriodSummary(c.Request.Context(), actorFrom(c), c.Query("period"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) submitReturn(c *gin.Context) {
	res, err := s.actions.SubmitReturn(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) listOffenders(c *gin.Context) {
	res, err := s.actions.ListOffenders(c.Request.Context(), actorFrom(c), c.Query("q"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) reportOffender(c *gin.Context) {
	var in actions.OffenderInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.ReportOffender(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusCreated, res, err)
}

func (s *Server) deleteOffender(c *gin.Context) {
	res, err := s.actions.DeleteOffender(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

type bulkWineQuery struct {
	SellerId  string  `form:"sellerId"`
	Cultivar  string  `form:"cultivar"`
	Vintage   int     `form:"vintage"`
	Region    string  `form:"region"`
	MinVolume float64 `form:"minVolume" binding:"gte=0"`
}

func (s *Server) listBulkWine(c *gin.Context) {
	var q bulkWineQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.actions.ListListings(c.Request.Context(), model.BulkWineFilter{
		SellerId:  q.SellerId,
		Cultivar:  q.Cultivar,
		Vintage:   q.Vintage,
		Region:    q.Region,
		MinVolume: q.MinVolume,
	})
	respond(c, http.StatusOK, res, err)
}

func (s *Server) createListing(c *gin.Context) {
	var in actions.BulkWineInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.CreateListing(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusCreated, res, err)
}

func (s *Server) updateListing(c *gin.Context) {
	var in actions.BulkWineUpdateInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.UpdateListing(c.Request.Context(), actorFrom(c), c.Param("id"), in)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) deleteListing(c *gin.Context) {
	res, err := s.actions.DeleteListing(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}
