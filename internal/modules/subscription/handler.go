package subscription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subscriptionservice/internal/pkg/response"
)

// Handler handles HTTP requests for the subscription ledger.
// Every route authenticates with service_id + token_id taken from the body.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	sub := api.Group("/subscription")
	{
		sub.POST("/subscribe", h.Subscribe)
		sub.POST("/unsubscribe", h.Unsubscribe)
		sub.POST("/status", h.GetStatus)
		sub.POST("/delete", h.Delete)
		sub.POST("/list", h.List)
	}
}

// Subscribe activates a phone number for the calling service.
// @Summary		Subscribe a phone number
// @Tags		Subscriptions
// @Param		request	body	SubscriptionRequest	true	"service_id, token_id and phone_number"
// @Success		200	{object}	SubscribeResponse
// @Failure		400	{object}	map[string]interface{} "Missing fields or unknown service_id"
// @Failure		401	{object}	map[string]interface{} "Invalid or expired token"
// @Failure		409	{object}	map[string]interface{} "Already subscribed"
// @Router		/subscription/subscribe [POST]
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, ErrMissingFields)
		return
	}

	id, err := h.service.Subscribe(c.Request.Context(), req.ServiceID, req.TokenID, req.PhoneNumber)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, SubscribeResponse{SubscriptionID: id})
}

// Unsubscribe deactivates a phone number's subscription.
// @Summary		Unsubscribe a phone number
// @Tags		Subscriptions
// @Param		request	body	SubscriptionRequest	true	"service_id, token_id and phone_number"
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	map[string]interface{} "Missing fields or unknown service_id"
// @Failure		401	{object}	map[string]interface{} "Invalid or expired token"
// @Failure		404	{object}	map[string]interface{} "No active subscription"
// @Router		/subscription/unsubscribe [POST]
func (h *Handler) Unsubscribe(c *gin.Context) {
	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, ErrMissingFields)
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), req.ServiceID, req.TokenID, req.PhoneNumber); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, MessageResponse{Message: "Unsubscribed successfully"})
}

// GetStatus reports whether a phone number is subscribed.
// @Summary		Get subscription status
// @Tags		Subscriptions
// @Param		request	body	SubscriptionRequest	true	"service_id, token_id and phone_number"
// @Success		200	{object}	StatusView
// @Failure		400	{object}	map[string]interface{} "Missing fields or unknown service_id"
// @Failure		401	{object}	map[string]interface{} "Invalid or expired token"
// @Router		/subscription/status [POST]
func (h *Handler) GetStatus(c *gin.Context) {
	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, ErrMissingFields)
		return
	}

	view, err := h.service.GetStatus(c.Request.Context(), req.ServiceID, req.TokenID, req.PhoneNumber)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Delete removes every subscription row for a phone number.
// @Summary		Delete a phone number's subscriptions
// @Tags		Subscriptions
// @Param		request	body	SubscriptionRequest	true	"service_id, token_id and phone_number"
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	map[string]interface{} "Missing fields or unknown service_id"
// @Failure		401	{object}	map[string]interface{} "Invalid or expired token"
// @Failure		404	{object}	map[string]interface{} "Subscription not found"
// @Router		/subscription/delete [POST]
func (h *Handler) Delete(c *gin.Context) {
	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, ErrMissingFields)
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ServiceID, req.TokenID, req.PhoneNumber); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, MessageResponse{Message: "Subscription deleted successfully"})
}

// List returns the calling service's subscriptions.
// @Summary		List subscriptions
// @Tags		Subscriptions
// @Param		request	body	ListRequest	true	"service_id, token_id and optional from/to on created_at"
// @Success		200	{object}	ListResponse
// @Failure		400	{object}	map[string]interface{} "Missing fields, bad range or unknown service_id"
// @Failure		401	{object}	map[string]interface{} "Invalid or expired token"
// @Failure		404	{object}	map[string]interface{} "No subscriptions found"
// @Router		/subscription/list [POST]
func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, ErrBadListBody)
		return
	}

	subs, err := h.service.List(c.Request.Context(), req.ServiceID, req.TokenID, req.From, req.To)
	if err != nil {
		response.FromError(c, err)
		return
	}

	items := make([]SubscriptionItem, 0, len(subs))
	for _, s := range subs {
		items = append(items, SubscriptionItem{
			SubscriptionID: s.SubscriptionID,
			PhoneNumber:    s.PhoneNumber,
			IsActive:       s.IsActive,
			CreatedAt:      s.CreatedAt,
			UpdatedAt:      s.UpdatedAt,
		})
	}
	response.Success(c, http.StatusOK, ListResponse{Subscriptions: items})
}
