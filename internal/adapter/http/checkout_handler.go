package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/logging"
	"github.com/topupid/checkout-api/internal/usecase"
)

type CheckoutHandler struct {
	inquiry  *usecase.CreateInquiry
	validate *usecase.ValidatePromo
	commit   *usecase.CommitOrder
	orders   usecase.OrderRepo
	cache    usecase.OrderCache
}

func NewCheckoutHandler(inquiry *usecase.CreateInquiry, validate *usecase.ValidatePromo, commit *usecase.CommitOrder, orders usecase.OrderRepo, cache usecase.OrderCache) *CheckoutHandler {
	return &CheckoutHandler{inquiry: inquiry, validate: validate, commit: commit, orders: orders, cache: cache}
}

type inquiryReq struct {
	ItemCode    string `json:"itemCode" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gte=1,lte=10"`
	ChannelCode string `json:"channelCode" binding:"required"`
	PromoCode   string `json:"promoCode"`
	Region      string `json:"region"`

	Contact struct {
		Phone string `json:"phone" binding:"required"`
		Email string `json:"email"`
	} `json:"contact" binding:"required"`

	DeviceID string `json:"deviceId"`
}

type inquiryResp struct {
	Token     string                `json:"token"`
	Breakdown domain.PriceBreakdown `json:"breakdown"`
	ExpiresAt time.Time             `json:"expiresAt"`
}

// CreateInquiry prices the draft and issues the single-use validation
// token the later commit must present.
func (h *CheckoutHandler) CreateInquiry(c *gin.Context) {
	var req inquiryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	out, err := h.inquiry.Execute(ctx, usecase.InquiryInput{
		ItemCode:       req.ItemCode,
		Quantity:       req.Quantity,
		ChannelCode:    req.ChannelCode,
		PromoCode:      req.PromoCode,
		Phone:          req.Contact.Phone,
		Email:          req.Contact.Email,
		Region:         req.Region,
		UserID:         c.GetString("userID"),
		DeviceID:       req.DeviceID,
		IPAddress:      c.ClientIP(),
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
	})
	if err != nil {
		inquiriesTotal.WithLabelValues("rejected").Inc()
		writeError(c, err)
		return
	}

	inquiriesTotal.WithLabelValues("quoted").Inc()
	c.JSON(http.StatusOK, inquiryResp{Token: out.Token, Breakdown: out.Breakdown, ExpiresAt: out.ExpiresAt})
}

type validatePromoReq struct {
	PromoCode   string `json:"promoCode" binding:"required"`
	ItemCode    string `json:"itemCode" binding:"required"`
	ChannelCode string `json:"channelCode"`
	Quantity    int    `json:"quantity" binding:"required,gte=1,lte=10"`
	Region      string `json:"region"`
	DeviceID    string `json:"deviceId"`
}

// ValidatePromo previews eligibility; ineligibility is a normal response,
// not an error.
func (h *CheckoutHandler) ValidatePromo(c *gin.Context) {
	var req validatePromoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	out, err := h.validate.Execute(ctx, usecase.ValidatePromoInput{
		PromoCode:   req.PromoCode,
		ItemCode:    req.ItemCode,
		ChannelCode: req.ChannelCode,
		Quantity:    req.Quantity,
		Region:      req.Region,
		UserID:      c.GetString("userID"),
		DeviceID:    req.DeviceID,
		IPAddress:   c.ClientIP(),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if !out.Eligible {
		promoRejections.WithLabelValues(string(out.Reason)).Inc()
		c.JSON(http.StatusOK, gin.H{"eligible": false, "reason": out.Reason})
		return
	}
	c.JSON(http.StatusOK, gin.H{"eligible": true, "discountAmount": out.Discount})
}

type commitReq struct {
	Token string `json:"token" binding:"required"`
}

// CommitOrder redeems the validation token and persists the order.
func (h *CheckoutHandler) CommitOrder(c *gin.Context) {
	var req commitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 8*time.Second)
	defer cancel()

	out, err := h.commit.Execute(ctx, usecase.CommitInput{
		Token:  req.Token,
		UserID: c.GetString("userID"),
	})
	if err != nil {
		commitsTotal.WithLabelValues("failed").Inc()
		writeError(c, err)
		return
	}

	commitsTotal.WithLabelValues("committed").Inc()
	logging.From(c).Info("order committed",
		"invoice", out.InvoiceNumber, "total", out.Breakdown.Total, "status", out.Status)

	c.JSON(http.StatusCreated, gin.H{
		"invoiceNumber": out.InvoiceNumber,
		"breakdown":     out.Breakdown,
		"status":        out.Status,
	})
}

func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	invoice := c.Param("invoice")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	// status polling fast path
	if status, ok, _ := h.cache.GetStatus(ctx, invoice); ok && c.Query("statusOnly") == "true" {
		c.JSON(http.StatusOK, gin.H{"invoiceNumber": invoice, "status": status})
		return
	}

	o, err := h.orders.GetByInvoice(ctx, invoice)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"invoiceNumber": o.InvoiceNumber,
		"itemCode":      o.ItemCode,
		"quantity":      o.Quantity,
		"channelCode":   o.ChannelCode,
		"promoCode":     o.PromoCode,
		"breakdown":     o.Breakdown,
		"status":        o.Status,
		"createdAt":     o.CreatedAt,
	})
}

// writeError maps engine outcomes to HTTP. Codes are stable; the UIs key
// message translation off them.
func writeError(c *gin.Context, err error) {
	code := domain.Code(err)

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": code, "fields": ve.Fields})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSKUNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrChannelNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrChannelUnavailable),
		errors.Is(err, domain.ErrAuthenticationRequired),
		errors.Is(err, domain.ErrInsufficientBalance):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrTokenAlreadyUsed),
		errors.Is(err, domain.ErrDuplicateInquiry):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrGatewayUnavailable):
		status = http.StatusServiceUnavailable
	}

	var pe *domain.PromoError
	if errors.As(err, &pe) {
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		logging.From(c).Error("checkout internal error", "err", err.Error())
		c.JSON(status, gin.H{"error": "INTERNAL_ERROR"})
		return
	}
	c.JSON(status, gin.H{"error": code})
}
