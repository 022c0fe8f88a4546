package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/logger"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/queue"
	"github.com/unimart/unimart/internal/repository"

	"github.com/shopspring/decimal"
)

// BookHotelInput 酒店预订输入
type BookHotelInput struct {
	UserID   uint
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// allowedBookingTransitions 预订状态机：checked_out 与 cancelled 为终态
var allowedBookingTransitions = map[string]map[string]bool{
	constants.BookingStatusPending: {
		constants.BookingStatusConfirmed: true,
		constants.BookingStatusCancelled: true,
	},
	constants.BookingStatusConfirmed: {
		constants.BookingStatusCheckedIn: true,
		constants.BookingStatusCancelled: true,
	},
	constants.BookingStatusCheckedIn: {
		constants.BookingStatusCheckedOut: true,
	},
}

// BookingService 酒店预订服务
type BookingService struct {
	cfg         *config.Config
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	queueClient *queue.Client
}

// NewBookingService 创建预订服务
func NewBookingService(cfg *config.Config, bookingRepo repository.BookingRepository, roomRepo repository.RoomRepository, queueClient *queue.Client) *BookingService {
	return &BookingService{
		cfg:         cfg,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		queueClient: queueClient,
	}
}

// Book 创建预订：总价 = 晚数 × 每晚价格
func (s *BookingService) Book(input BookHotelInput) (*models.Booking, error) {
	if input.UserID == 0 || input.RoomID == 0 {
		return nil, ErrInvalidInput
	}
	checkIn := truncateToDay(input.CheckIn)
	checkOut := truncateToDay(input.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, ErrBookingDatesInvalid
	}

	room, err := s.roomRepo.GetByID(input.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrNotFound
	}
	if !room.IsActive || (room.Hotel != nil && !room.Hotel.IsActive) {
		return nil, ErrRoomUnavailable
	}
	guests := input.Guests
	if guests <= 0 {
		guests = 1
	}
	if guests > room.Capacity {
		return nil, ErrBookingGuestsInvalid
	}

	// 库存校验：重叠区间内的有效预订数不得超过房间数
	overlapping, err := s.roomRepo.CountOverlapping(room.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if overlapping >= int64(room.RoomCount) {
		return nil, ErrRoomUnavailable
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	total := room.RatePerNight.Decimal.Mul(decimal.NewFromInt(int64(nights)))

	now := time.Now()
	booking := &models.Booking{
		BookingNo:   generateBookingNo(),
		UserID:      input.UserID,
		RoomID:      room.ID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      guests,
		Status:      constants.BookingStatusPending,
		TotalAmount: models.NewMoneyFromDecimal(total),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, err
	}

	s.enqueueStatusEmail(booking.ID, booking.Status)
	return s.bookingRepo.GetByID(booking.ID)
}

// GetBooking 获取用户预订详情
func (s *BookingService) GetBooking(userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByIDAndUser(bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	return booking, nil
}

// ListBookings 用户预订列表
func (s *BookingService) ListBookings(filter repository.BookingListFilter) ([]models.Booking, int64, error) {
	return s.bookingRepo.ListByUser(filter)
}

// ListAdminBookings 管理端预订列表
func (s *BookingService) ListAdminBookings(filter repository.BookingListFilter) ([]models.Booking, int64, error) {
	return s.bookingRepo.ListAdmin(filter)
}

// UpdateStatus 管理端推进预订状态
func (s *BookingService) UpdateStatus(bookingID uint, newStatus string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	newStatus = strings.ToLower(strings.TrimSpace(newStatus))
	if !canTransitionBooking(booking.Status, newStatus) {
		return nil, ErrBookingStatusInvalid
	}
	if err := s.bookingRepo.UpdateStatus(bookingID, newStatus); err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(bookingID, newStatus)
	return s.bookingRepo.GetByID(bookingID)
}

// CancelBooking 用户取消预订，入住后不可取消
func (s *BookingService) CancelBooking(userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByIDAndUser(bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if !canTransitionBooking(booking.Status, constants.BookingStatusCancelled) {
		return nil, ErrBookingStatusInvalid
	}
	if err := s.bookingRepo.UpdateStatus(bookingID, constants.BookingStatusCancelled); err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(bookingID, constants.BookingStatusCancelled)
	return s.bookingRepo.GetByID(bookingID)
}

func (s *BookingService) enqueueStatusEmail(bookingID uint, status string) {
	if err := s.queueClient.EnqueueBookingStatusEmail(queue.BookingStatusEmailPayload{
		BookingID: bookingID,
		Status:    status,
	}); err != nil {
		logger.Errorw("booking_status_email_enqueue_failed", "booking_id", bookingID, "error", err)
	}
}

func canTransitionBooking(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if from == to {
		return false
	}
	targets, ok := allowedBookingTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func generateBookingNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("BK%s%s", now, randNumeric(6))
}
