package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/unimart/unimart/internal/http/response"
	"github.com/unimart/unimart/internal/repository"
	"github.com/unimart/unimart/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateBookingRequest 酒店预订请求
type CreateBookingRequest struct {
	RoomID   uint   `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests"`
}

// CreateBooking 创建酒店预订
func (h *Handler) CreateBooking(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	checkIn, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.booking_dates_invalid", nil)
		return
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.booking_dates_invalid", nil)
		return
	}

	booking, err := h.BookingService.Book(service.BookHotelInput{
		UserID:   uid,
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, booking)
}

// ListBookings 用户预订列表
func (h *Handler) ListBookings(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.BookingListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	bookings, total, err := h.BookingService.ListBookings(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, bookings, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetBooking 用户预订详情
func (h *Handler) GetBooking(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookingID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}
	booking, err := h.BookingService.GetBooking(uid, bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, booking)
}

// CancelBooking 用户取消预订
func (h *Handler) CancelBooking(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookingID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}
	booking, err := h.BookingService.CancelBooking(uid, bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, booking)
}
