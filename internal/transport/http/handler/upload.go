package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"pfas-demo/internal/app"
	"pfas-demo/internal/transport/http/response"
)

type UploadHandler struct {
	uploadService *app.UploadService
}

// SubmitUploadRequest describes a file by name and size. Browsers may send
// the file itself as multipart "file" instead; only its metadata is kept.
type SubmitUploadRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	SizeBytes int64  `json:"size_bytes" binding:"gte=0"`
}

func NewUploadHandler(uploadService *app.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) Submit(c *gin.Context) {
	input, ok := bindUpload(c)
	if !ok {
		return
	}

	task, err := h.uploadService.Submit(input)
	if err != nil {
		writeError(c, err, "submit upload failed")
		return
	}
	response.Created(c, task)
}

func bindUpload(c *gin.Context) (app.UploadInput, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "missing file")
			return app.UploadInput{}, false
		}
		return app.UploadInput{Name: fh.Filename, ByteSize: fh.Size}, true
	}

	var req SubmitUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload")
		return app.UploadInput{}, false
	}
	return app.UploadInput{Name: req.Name, ByteSize: req.SizeBytes}, true
}

func (h *UploadHandler) List(c *gin.Context) {
	response.OK(c, h.uploadService.List())
}

func (h *UploadHandler) Get(c *gin.Context) {
	task, err := h.uploadService.Get(c.Param("id"))
	if err != nil {
		writeError(c, err, "get upload failed")
		return
	}
	response.OK(c, task)
}

func (h *UploadHandler) Approve(c *gin.Context) {
	result, err := h.uploadService.Approve(c.Param("id"))
	if err != nil {
		writeError(c, err, "approve upload failed")
		return
	}
	response.Created(c, result)
}

func (h *UploadHandler) Dismiss(c *gin.Context) {
	id := c.Param("id")
	if err := h.uploadService.Dismiss(id); err != nil {
		writeError(c, err, "dismiss upload failed")
		return
	}
	response.OK(c, gin.H{"dismissed_task_id": id})
}
