package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/fitcoach/internal/api/dto"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/utils"
	"github.com/pratik-mahalle/fitcoach/internal/services"
)

// CheckoutHandler handles Stripe checkout endpoints
type CheckoutHandler struct {
	service *services.CheckoutService
	logger  *logger.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *services.CheckoutService, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  log,
	}
}

// VerifySession verifies a completed checkout session
// @Summary Verify checkout session
// @Description Look up a checkout session and report the buyer and purchased tier
// @Tags Checkout
// @Produce json
// @Param session_id query string true "Checkout session ID"
// @Success 200 {object} utils.SuccessResponse{data=payment.CheckoutSession} "Session details"
// @Failure 400 {object} utils.ErrorResponse "Missing or unknown session"
// @Failure 500 {object} utils.ErrorResponse "Payment provider failure"
// @Router /stripe/verify-checkout-session [get]
func (h *CheckoutHandler) VerifySession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.VerifyCheckoutSession(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, session)
}

// ProductType maps a price id to the tier it grants
// @Summary Product type for price
// @Tags Checkout
// @Produce json
// @Param priceId query string true "Price ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ProductTypeResponse} "Tier"
// @Failure 400 {object} utils.ErrorResponse "Missing price id"
// @Router /stripe/product-type [get]
func (h *CheckoutHandler) ProductType(w http.ResponseWriter, r *http.Request) {
	priceID := r.URL.Query().Get("priceId")
	if priceID == "" {
		writeError(w, r, h.logger, errors.InvalidInput("Missing priceId"))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ProductTypeResponse{
		PriceID:     priceID,
		ProductType: string(h.service.ProductTypeForPrice(priceID)),
	})
}
