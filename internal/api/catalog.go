package api

import (
	"net/http"

	"winespace/internal/actions"
	"winespace/internal/handler/catalogimport"
	"winespace/internal/model"

	"github.com/gin-gonic/gin"
)

type productQuery struct {
	SupplierId string `form:"supplierId"`
	Category   string `form:"category"`
}

func (s *Server) listProducts(c *gin.Context) {
	var q productQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.actions.ListProducts(c.Request.Context(), actorFrom(c), model.ProductFilter{SupplierId: q.SupplierId, Category: q.Category})
	respond(c, http.StatusOK, res, err)
}

func (s *Server) getProduct(c *gin.Context) {
	res, err := s.actions.GetProduct(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) createProduct(c *gin.Context) {
	var in actions.ProductInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.CreateProduct(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusCreated, res, err)
}

func (s *Server) updateProduct(c *gin.Context) {
	var in actions.ProductUpdateInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.UpdateProduct(c.Request.Context(), actorFrom(c), c.Param("id"), in)
	respond(c, http.StatusOK, res, err)
}

func (s *Server) deleteProduct(c *gin.Context) {
	res, err := s.actions.DeleteProduct(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) priceFor(c *gin.Context) {
	res, err := s.actions.PriceFor(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) importCatalog(c *gin.Context) {
	var in actions.ImportInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.ImportCatalog(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusOK, res, err)
}

type saveImportInput struct {
	Products []catalogimport.Product `json:"products" binding:"required,min=1"`
}

// saveImport stores products the supplier reviewed after an import.
func (s *Server) saveImport(c *gin.Context) {
	var in saveImportInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.SaveImportedProducts(c.Request.Context(), actorFrom(c), in.Products)
	respond(c, http.StatusCreated, res, err)
}

func (s *Server) listPromotions(c *gin.Context) {
	res, err := s.actions.ListPromotions(c.Request.Context(), actorFrom(c), c.Query("supplierId"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) createPromotion(c *gin.Context) {
	var in actions.PromotionInput
	if !bind(c, &in) {
		return
	}
	res, err := s.actions.CreatePromotion(c.Request.Context(), actorFrom(c), in)
	respond(c, http.StatusCreated, res, err)
}

func (s *Server) togglePromotion(c *gin.Context) {
	res, err := s.actions.TogglePromotion(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}

func (s *Server) deletePromotion(c *gin.Context) {
	res, err := s.actions.DeletePromotion(c.Request.Context(), actorFrom(c), c.Param("id"))
	respond(c, http.StatusOK, res, err)
}
