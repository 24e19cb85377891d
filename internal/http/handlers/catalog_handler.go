// Catalog HTTP handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lucho2590/LaburoYA/internal/domain"
)

// CatalogResponse lists the rubro/puesto vocabulary and the served zones.
type CatalogResponse struct {
	Rubros []domain.Category `json:"rubros"`
	Zonas  []string          `json:"zonas"`
}

// Catalog godoc
// @ID          catalog
// @Summary     Rubro, puesto, and zona vocabulary
// @Description Returns the fixed catalog the matching rubric is defined over.
// @Tags        Catalog
// @Produce     json
//
// @Success     200  {object}  handlers.CatalogResponse
// @Router      /catalog [get]
func (h *Handlers) Catalog(c *gin.Context) {
	ok(c, http.StatusOK, CatalogResponse{
		Rubros: domain.Categories,
		Zonas:  domain.Zonas,
	})
}
