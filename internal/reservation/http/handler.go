package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sewakantor/booking-backend/internal/auth"
	"github.com/sewakantor/booking-backend/internal/pkg/request"
	"github.com/sewakantor/booking-backend/internal/pkg/response"
	"github.com/sewakantor/booking-backend/internal/pricing"
	"github.com/sewakantor/booking-backend/internal/reservation"
	"github.com/sewakantor/booking-backend/internal/user"
)

type Handler struct {
	service     reservation.Service
	userService user.Service
}

func NewHandler(service reservation.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// respondError maps engine errors to HTTP responses. Invalid transitions are
// not AppErrors (they carry the current and attempted state), so they are
// handled before the generic responder.
func respondError(c *gin.Context, err error) {
	var transitionErr *reservation.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
		return
	}
	response.Error(c, err)
}

// isAdmin checks if the current user has the admin flag set.
func (h *Handler) isAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsAdmin
}

func (h *Handler) Submit(c *gin.Context) {
	var body SubmitReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	startDate, err := parseDate(body.StartDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	endDate, err := parseDate(body.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	tier, err := pricing.ParseTier(body.RateTier)
	if err != nil {
		response.Error(c, err)
		return
	}

	rsv, err := h.service.Submit(c.Request.Context(), reservation.SubmitRequest{
		ResourceID:    body.ResourceID,
		RequesterID:   userID,
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		StartDate:     startDate,
		EndDate:       endDate,
		RateTier:      tier,
		PromoCode:     body.PromoCode,
		Notes:         body.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(rsv))
}

func (h *Handler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	req.Normalize()

	filter := reservation.Filter{
		ResourceID:    req.ResourceID,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		Search:        req.Search,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}

	if req.StartDateFrom != "" {
		t, err := parseDate(req.StartDateFrom)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.StartDateFrom = &t
	}
	if req.EndDateTo != "" {
		t, err := parseDate(req.EndDateTo)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.EndDateTo = &t
	}

	// Regular users only ever see their own reservations; admins may filter
	// by any requester or see everything.
	currentUserID := auth.GetUserID(c)
	if h.isAdmin(c, currentUserID) {
		filter.RequesterID = req.RequesterID
	} else {
		filter.RequesterID = currentUserID
	}

	reservations, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, rsv := range reservations {
		items[i] = NewReservationResponse(rsv)
	}

	c.JSON(http.StatusOK, response.NewPage(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rsv, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	userID := auth.GetUserID(c)
	if rsv.RequesterID != userID && !h.isAdmin(c, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(rsv))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	// Owners may cancel their own reservation; admins may cancel any.
	rsv, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	userID := auth.GetUserID(c)
	if rsv.RequesterID != userID && !h.isAdmin(c, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	rsv, err = h.service.Cancel(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(rsv))
}

func (h *Handler) Complete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rsv, err := h.service.Complete(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(rsv))
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdatePaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	status, err := reservation.ParsePaymentStatus(body.PaymentStatus)
	if err != nil {
		response.Error(c, err)
		return
	}

	rsv, err := h.service.UpdatePayment(c.Request.Context(), uri.ID, reservation.PaymentUpdate{
		Status:    status,
		Method:    body.PaymentMethod,
		Reference: body.PaymentReference,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(rsv))
}
