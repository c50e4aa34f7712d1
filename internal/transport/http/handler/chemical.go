package handler

import (
	"github.com/gin-gonic/gin"

	"pfas-demo/internal/app"
	"pfas-demo/internal/query"
	"pfas-demo/internal/transport/http/response"
)

type ChemicalHandler struct {
	chemicalService *app.ChemicalService
}

type chemicalListParams struct {
	listParams
	Supplier string `form:"supplier"`
}

type ReviewRequest struct {
	Action string `json:"action" binding:"required"`
}

func NewChemicalHandler(chemicalService *app.ChemicalService) *ChemicalHandler {
	return &ChemicalHandler{chemicalService: chemicalService}
}

func (h *ChemicalHandler) List(c *gin.Context) {
	var p chemicalListParams
	if err := c.ShouldBindQuery(&p); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}
	risk, err := rangeParam(c, "min_risk", "max_risk")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	year, err := rangeParam(c, "min_year", "max_year")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	page, err := h.chemicalService.Search(app.ChemicalQuery{
		Text:      p.Text,
		Status:    p.Status,
		Supplier:  p.Supplier,
		Risk:      risk,
		Year:      year,
		SortBy:    p.Sort,
		Direction: query.ParseDirection(p.Dir),
		Page:      p.Page,
		PageSize:  p.PageSize,
	})
	if err != nil {
		writeError(c, err, "list chemicals failed")
		return
	}
	response.OK(c, page)
}

func (h *ChemicalHandler) Get(c *gin.Context) {
	record, err := h.chemicalService.Get(c.Param("id"))
	if err != nil {
		writeError(c, err, "get chemical failed")
		return
	}
	response.OK(c, record)
}

// Review accepts {"action": "verify" | "flag" | "reset"}.
func (h *ChemicalHandler) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload")
		return
	}

	record, err := h.chemicalService.Review(c.Param("id"), req.Action)
	if err != nil {
		writeError(c, err, "review chemical failed")
		return
	}
	response.OK(c, record)
}
