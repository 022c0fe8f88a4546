package public

import (
	"strconv"
	"strings"

	"github.com/unimart/unimart/internal/http/response"
	"github.com/unimart/unimart/internal/repository"
	"github.com/unimart/unimart/internal/service"

	"github.com/gin-gonic/gin"
)

// RequestRideRequest 叫车请求
type RequestRideRequest struct {
	VehicleType    string  `json:"vehicle_type" binding:"required"`
	PickupAddress  string  `json:"pickup_address" binding:"required"`
	PickupLat      float64 `json:"pickup_lat"`
	PickupLng      float64 `json:"pickup_lng"`
	DropoffAddress string  `json:"dropoff_address" binding:"required"`
	DropoffLat     float64 `json:"dropoff_lat"`
	DropoffLng     float64 `json:"dropoff_lng"`
}

// RequestRide 乘客叫车
func (h *Handler) RequestRide(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	ride, err := h.RideService.RequestRide(service.RequestRideInput{
		UserID:         uid,
		VehicleType:    req.VehicleType,
		PickupAddress:  req.PickupAddress,
		PickupLat:      req.PickupLat,
		PickupLng:      req.PickupLng,
		DropoffAddress: req.DropoffAddress,
		DropoffLat:     req.DropoffLat,
		DropoffLng:     req.DropoffLng,
	})
	if err != nil {
		respondRideError(c, err)
		return
	}
	response.Success(c, ride)
}

// ListRides 乘客行程列表
func (h *Handler) ListRides(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.RideListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	rides, total, err := h.RideService.ListRides(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, rides, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetRide 乘客行程详情
func (h *Handler) GetRide(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rideID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}
	ride, err := h.RideService.GetRide(uid, rideID)
	if err != nil {
		respondRideError(c, err)
		return
	}
	response.Success(c, ride)
}

// CancelRide 乘客取消行程
func (h *Handler) CancelRide(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rideID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}
	ride, err := h.RideService.CancelRide(uid, rideID)
	if err != nil {
		respondRideError(c, err)
		return
	}
	response.Success(c, ride)
}

// RegisterDriverRequest 司机注册请求
type RegisterDriverRequest struct {
	VehicleType string `json:"vehicle_type" binding:"required"`
	VehicleNo   string `json:"vehicle_no" binding:"required"`
}

// RegisterDriver 注册司机档案
func (h *Handler) RegisterDriver(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	driver, err := h.RideService.RegisterDriver(uid, req.VehicleType, req.VehicleNo)
	if err != nil {
		respondRideError(c, err)
		return
	}
	response.Success(c, driver)
}

// UpdateDriverStatusRequest 司机上下线请求
type UpdateDriverStatusRequest struct {
	Online *bool `json:"online" binding:"required"`
}

// UpdateDriverStatus 司机上线/下线
func (h *Handler) UpdateDriverStatus(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateDriverStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Online == nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	driver, err := h.RideService.SetDriverOnline(uid, *req.Online)
	if err != nil {
		respondRideError(c, err)
		return
	}
	response.Success(c, driver)
}

// ListOpenRides 司机端待接单列表
func (h *Handler) ListOpenRides(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rides, err := h.RideService.ListOpenRides(uid, limit)
	if err != nil {
		respondRideError(c, err)
		return
	}
	response.Success(c, gin.H{"items": rides})
}

// AcceptRide 司机接单
func (h *Handler) AcceptRide(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rideID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}
	ride, err := h.RideService.AcceptRide(uid, rideID)
	if err != nil {
		respondRideError(c, err)
		return
	}
	response.Success(c, ride)
}

// StartRide 司机开始行程
func (h *Handler) StartRide(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rideID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}
	ride, err := h.RideService.StartRide(uid, rideID)
	if err != nil {
		respondRideError(c, err)
		return
	}
	response.Success(c, ride)
}

// CompleteRide 司机完成行程
func (h *Handler) CompleteRide(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rideID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}
	ride, err := h.RideService.CompleteRide(uid, rideID)
	if err != nil {
		respondRideError(c, err)
		return
	}
	response.Success(c, ride)
}
