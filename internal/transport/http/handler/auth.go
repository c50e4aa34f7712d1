package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pfas-demo/internal/app"
	"pfas-demo/internal/model"
	"pfas-demo/internal/transport/http/middleware"
	"pfas-demo/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

// Field rules live in the service so the form gets a specific message for
// each failure; binding only caps sizes.
type RegisterRequest struct {
	Username string `json:"username" binding:"max=64"`
	Email    string `json:"email" binding:"max=128"`
	Password string `json:"password" binding:"max=128"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload")
		return
	}

	result, err := h.authService.Register(app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err, "register failed")
		return
	}

	response.OK(c, gin.H{
		"token": result.Token,
		"user":  userView(result.User),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload")
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err, "login failed")
		return
	}

	response.OK(c, gin.H{
		"token": result.Token,
		"user":  userView(result.User),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		writeError(c, err, "fetch current user failed")
		return
	}
	if user == nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found")
		return
	}

	response.OK(c, userView(user))
}

func userView(u *model.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	}
}
