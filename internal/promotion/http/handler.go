package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sewakantor/booking-backend/internal/pkg/request"
	"github.com/sewakantor/booking-backend/internal/pkg/response"
	"github.com/sewakantor/booking-backend/internal/promotion"
)

type Handler struct {
	service promotion.Service
}

func NewHandler(service promotion.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListPromotionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	promos, total, err := h.service.List(c.Request.Context(), promotion.Filter{
		ActiveOnly: req.ActiveOnly,
		Keyword:    req.Keyword,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PromotionResponse, len(promos))
	for i, p := range promos {
		items[i] = NewPromotionResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPage(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPromotionResponse(p))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreatePromotionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), promotion.CreateRequest{
		Code:           body.Code,
		Name:           body.Name,
		DiscountAmount: body.DiscountAmount,
		ValidFrom:      body.ValidFrom,
		ValidUntil:     body.ValidUntil,
		IsActive:       body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPromotionResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdatePromotionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.Update(c.Request.Context(), uri.ID, promotion.UpdateRequest{
		Name:           body.Name,
		DiscountAmount: body.DiscountAmount,
		ValidFrom:      body.ValidFrom,
		ValidUntil:     body.ValidUntil,
		IsActive:       body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPromotionResponse(p))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
