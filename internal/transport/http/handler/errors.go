package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pfas-demo/internal/app"
	"pfas-demo/internal/ingest"
	"pfas-demo/internal/pkg/logger"
	"pfas-demo/internal/transport/http/response"
)

type errorMapping struct {
	err    error
	status int
	code   int
}

var errorMappings = []errorMapping{
	{app.ErrInvalidInput, http.StatusBadRequest, response.CodeBadRequest},
	{app.ErrEmailRequired, http.StatusBadRequest, response.CodeEmailRequired},
	{app.ErrEmailInvalid, http.StatusBadRequest, response.CodeEmailInvalid},
	{app.ErrPasswordTooShort, http.StatusBadRequest, response.CodePasswordTooShort},
	{app.ErrUsernameExists, http.StatusBadRequest, response.CodeUsernameExists},
	{app.ErrEmailExists, http.StatusBadRequest, response.CodeEmailExists},
	{app.ErrInvalidCredential, http.StatusUnauthorized, response.CodeInvalidCredentials},
	{app.ErrInvalidSortKey, http.StatusBadRequest, response.CodeInvalidSortKey},
	{app.ErrInvalidStatus, http.StatusBadRequest, response.CodeInvalidStatus},
	{app.ErrInvalidAction, http.StatusBadRequest, response.CodeInvalidAction},
	{app.ErrMessageEmpty, http.StatusBadRequest, response.CodeBadRequest},
	{app.ErrSessionNotFound, http.StatusNotFound, response.CodeSessionNotFound},
	{app.ErrDocumentNotFound, http.StatusNotFound, response.CodeDocumentNotFound},
	{app.ErrChemicalNotFound, http.StatusNotFound, response.CodeChemicalNotFound},
	{app.ErrTaskNotFound, http.StatusNotFound, response.CodeTaskNotFound},
	{app.ErrTaskNotComplete, http.StatusConflict, response.CodeTaskNotComplete},
	{app.ErrMessageEnqueue, http.StatusServiceUnavailable, response.CodeUnavailable},
	{ingest.ErrPipelineClosed, http.StatusServiceUnavailable, response.CodeUnavailable},
}

// writeError maps known service errors to their status and business code.
// Anything else is logged and reported as fallback.
func writeError(c *gin.Context, err error, fallback string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			response.Error(c, m.status, m.code, m.err.Error())
			return
		}
	}
	logger.Error(c.Request.Context(), fallback, "error", err)
	response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
}

func badRequest(c *gin.Context, message string) {
	response.Error(c, http.StatusBadRequest, response.CodeBadRequest, message)
}
