package handler

import (
	"github.com/gin-gonic/gin"

	"pfas-demo/internal/app"
	"pfas-demo/internal/query"
	"pfas-demo/internal/transport/http/response"
)

type DocumentHandler struct {
	documentService *app.DocumentService
}

type documentListParams struct {
	listParams
	Source string `form:"source"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewDocumentHandler(documentService *app.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// List serves GET /documents?q=&status=&source=&min_size=&max_size=&sort=&dir=&page=&page_size=
func (h *DocumentHandler) List(c *gin.Context) {
	var p documentListParams
	if err := c.ShouldBindQuery(&p); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}
	size, err := rangeParam(c, "min_size", "max_size")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	page, err := h.documentService.Search(app.DocumentQuery{
		Text:      p.Text,
		Status:    p.Status,
		Source:    p.Source,
		Size:      size,
		SortBy:    p.Sort,
		Direction: query.ParseDirection(p.Dir),
		Page:      p.Page,
		PageSize:  p.PageSize,
	})
	if err != nil {
		writeError(c, err, "list documents failed")
		return
	}
	response.OK(c, page)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documentService.Get(c.Param("id"))
	if err != nil {
		writeError(c, err, "get document failed")
		return
	}
	response.OK(c, doc)
}

func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload")
		return
	}

	doc, err := h.documentService.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err, "update document status failed")
		return
	}
	response.OK(c, doc)
}
