package public

import (
	"errors"

	"github.com/unimart/unimart/internal/http/response"
	"github.com/unimart/unimart/internal/i18n"
	"github.com/unimart/unimart/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrCartTypeInvalid, code: response.CodeBadRequest, key: "error.cart_type_invalid"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrRestaurantMismatch, code: response.CodeBadRequest, key: "error.restaurant_mismatch"},
	{target: service.ErrRestaurantClosed, code: response.CodeBadRequest, key: "error.restaurant_closed"},
	{target: service.ErrDishUnavailable, code: response.CodeBadRequest, key: "error.dish_unavailable"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_inactive"},
	{target: service.ErrOutOfStock, code: response.CodeBadRequest, key: "error.out_of_stock"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.invalid_request"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrCartTypeInvalid, code: response.CodeBadRequest, key: "error.cart_type_invalid"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrOutOfStock, code: response.CodeBadRequest, key: "error.out_of_stock"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrOrderNotDeliverable, code: response.CodeBadRequest, key: "error.order_not_deliverable"},
	{target: service.ErrOtpInvalid, code: response.CodeBadRequest, key: "error.otp_invalid"},
	{target: service.ErrOtpExpired, code: response.CodeBadRequest, key: "error.otp_expired"},
	{target: service.ErrOtpUsed, code: response.CodeBadRequest, key: "error.otp_used"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.invalid_request"},
}

var bookingErrorRules = []mappedHandlerError{
	{target: service.ErrBookingDatesInvalid, code: response.CodeBadRequest, key: "error.booking_dates_invalid"},
	{target: service.ErrBookingGuestsInvalid, code: response.CodeBadRequest, key: "error.booking_guests_invalid"},
	{target: service.ErrBookingStatusInvalid, code: response.CodeBadRequest, key: "error.booking_status_invalid"},
	{target: service.ErrRoomUnavailable, code: response.CodeBadRequest, key: "error.room_unavailable"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.booking_not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.invalid_request"},
}

var rideErrorRules = []mappedHandlerError{
	{target: service.ErrVehicleTypeInvalid, code: response.CodeBadRequest, key: "error.vehicle_type_invalid"},
	{target: service.ErrCoordsInvalid, code: response.CodeBadRequest, key: "error.coords_invalid"},
	{target: service.ErrRideStatusInvalid, code: response.CodeBadRequest, key: "error.ride_status_invalid"},
	{target: service.ErrDriverUnavailable, code: response.CodeBadRequest, key: "error.driver_unavailable"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.ride_not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.invalid_request"},
}

func (h *Handler) respondCartError(c *gin.Context, err error) {
	// 超限错误需要带上具体上限数值
	if errors.Is(err, service.ErrQuantityExceedsLimit) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.quantity_exceeds_limit", h.Config.Cart.MaxQuantityPerItem)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
}

func respondBookingError(c *gin.Context, err error) {
	respondWithMappedError(c, err, bookingErrorRules, response.CodeInternal, "error.internal")
}

func respondRideError(c *gin.Context, err error) {
	respondWithMappedError(c, err, rideErrorRules, response.CodeInternal, "error.internal")
}
