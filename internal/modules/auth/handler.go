package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subscriptionservice/internal/pkg/response"
)

// Handler manages HTTP interactions for service registration and login
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

// Register creates a new service credential.
// @Summary		Register a service
// @Tags		Auth
// @Param		request	body	CredentialsRequest	true	"service_id and password"
// @Success		201	{object}	RegisterResponse
// @Failure		400	{object}	map[string]interface{} "Missing fields"
// @Failure		409	{object}	map[string]interface{} "service_id already taken"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, ErrMissingCredentials)
		return
	}

	svc, err := h.service.Register(c.Request.Context(), req.ServiceID, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, RegisterResponse{ServiceID: svc.ServiceID})
}

// Login returns a bearer token for the service.
// @Summary		Log in a service
// @Tags		Auth
// @Param		request	body	CredentialsRequest	true	"service_id and password"
// @Success		200	{object}	LoginResponse
// @Failure		400	{object}	map[string]interface{} "Missing fields or unknown service_id"
// @Failure		401	{object}	map[string]interface{} "Wrong password"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, ErrMissingCredentials)
		return
	}

	tok, err := h.service.Login(c.Request.Context(), req.ServiceID, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{Token: tok.TokenID})
}
