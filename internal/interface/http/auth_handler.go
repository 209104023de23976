package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/playtrove/gamestore/internal/application"
	"github.com/playtrove/gamestore/pkg/response"
	"github.com/playtrove/gamestore/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Handle string `json:"handle" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validation.IsMissingFields(err) {
			response.Fail(c, http.StatusBadRequest, response.CodeMissingFields, validation.ToDetails(err))
			return
		}
		response.Fail(c, http.StatusBadRequest, response.CodeInvalidPayload, validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Handle, req.Secret)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.CodeInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.CodeDBError)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"token": res.Token, "role": res.Role})
}
