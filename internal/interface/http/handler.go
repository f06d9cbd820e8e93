// Package handlers contains the Gin HTTP handlers for the API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"blogapi/internal/application"
	"blogapi/pkg/response"
	"blogapi/pkg/validation"
)

// bindStrictJSON decodes a JSON body into req, rejecting unknown fields, then
// runs the usual binding validation. Arbitrary extra fields never reach the
// store.
func bindStrictJSON(c *gin.Context, req any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(req)
}

// respondServiceError maps service errors onto the HTTP error taxonomy.
// Unexpected errors are logged with full detail and surface as a generic 500.
func respondServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, "invalid payload", verr.Fields)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrEmailTaken), errors.Is(err, application.ErrNameTaken):
		response.Error(c, http.StatusConflict, "already exists", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func bindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
