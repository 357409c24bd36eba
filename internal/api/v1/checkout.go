package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/molnpaket/checkout/internal/api/dto"
	ierr "github.com/molnpaket/checkout/internal/errors"
	"github.com/molnpaket/checkout/internal/logger"
	"github.com/molnpaket/checkout/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *logger.Logger
}

func NewCheckoutHandler(checkoutService service.CheckoutService, logger *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// @Summary Check a coupon code
// @Description Resolves a promotion code to a discount description
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body dto.CheckCouponRequest true "Coupon request"
// @Success 200 {object} dto.CheckCouponResponse
// @Router /api/check-coupon [post]
func (h *CheckoutHandler) CheckCoupon(c *gin.Context) {
	var req dto.CheckCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// a malformed body degrades to "not valid", same as a bad code
		c.JSON(http.StatusOK, &dto.CheckCouponResponse{Valid: false})
		return
	}

	c.JSON(http.StatusOK, h.checkoutService.CheckCoupon(c.Request.Context(), req))
}

// @Summary Create a subscription
// @Description Creates a customer and subscription for a catalog product
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Subscribe request"
// @Success 200 {object} dto.SubscribeResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/subscribe [post]
func (h *CheckoutHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint(dto.MsgMissingRequiredFields).
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.checkoutService.Subscribe(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
