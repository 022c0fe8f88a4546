package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openBookingTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.Booking{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newBookingTestService(db *gorm.DB) *BookingService {
	return NewBookingService(
		&config.Config{},
		repository.NewBookingRepository(db),
		repository.NewRoomRepository(db),
		nil,
	)
}

func seedRoom(t *testing.T, db *gorm.DB, rate float64, capacity, roomCount int) *models.Room {
	t.Helper()
	hotel := models.Hotel{Name: "湖景国际酒店", City: "杭州", IsActive: true}
	if err := db.Create(&hotel).Error; err != nil {
		t.Fatalf("create hotel failed: %v", err)
	}
	room := models.Room{
		HotelID:      hotel.ID,
		Name:         "标准大床房",
		RatePerNight: models.NewMoneyFromDecimal(decimal.NewFromFloat(rate)),
		Capacity:     capacity,
		RoomCount:    roomCount,
		IsActive:     true,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("create room failed: %v", err)
	}
	return &room
}

func TestBookComputesNightsTimesRate(t *testing.T) {
	db := openBookingTestDB(t, "booking_total")
	svc := newBookingTestService(db)
	room := seedRoom(t, db, 88.00, 2, 5)

	checkIn := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 4, 11, 0, 0, 0, time.UTC)
	booking, err := svc.Book(BookHotelInput{
		UserID:   1,
		RoomID:   room.ID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   2,
	})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	if !strings.HasPrefix(booking.BookingNo, "BK") {
		t.Fatalf("unexpected booking no: %s", booking.BookingNo)
	}
	if booking.Status != constants.BookingStatusPending {
		t.Fatalf("expected pending, got %s", booking.Status)
	}
	// 时间截断到日，3 晚 × 88
	expected := decimal.NewFromFloat(88.00).Mul(decimal.NewFromInt(3))
	if !booking.TotalAmount.Decimal.Equal(expected) {
		t.Fatalf("expected total %s, got %s", expected.String(), booking.TotalAmount.String())
	}
	if booking.CheckIn.Hour() != 0 || booking.CheckOut.Hour() != 0 {
		t.Fatalf("expected dates truncated to day, got %v / %v", booking.CheckIn, booking.CheckOut)
	}
}

func TestBookRejectsInvalidDates(t *testing.T) {
	db := openBookingTestDB(t, "booking_dates")
	svc := newBookingTestService(db)
	room := seedRoom(t, db, 88.00, 2, 5)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Book(BookHotelInput{UserID: 1, RoomID: room.ID, CheckIn: day, CheckOut: day}); !errors.Is(err, ErrBookingDatesInvalid) {
		t.Fatalf("expected dates invalid for same day, got: %v", err)
	}
	// 同一天不同钟点仍视为 0 晚
	if _, err := svc.Book(BookHotelInput{
		UserID:   1,
		RoomID:   room.ID,
		CheckIn:  day.Add(8 * time.Hour),
		CheckOut: day.Add(20 * time.Hour),
	}); !errors.Is(err, ErrBookingDatesInvalid) {
		t.Fatalf("expected dates invalid for same-day hours, got: %v", err)
	}
	if _, err := svc.Book(BookHotelInput{UserID: 1, RoomID: room.ID, CheckIn: day.AddDate(0, 0, 2), CheckOut: day}); !errors.Is(err, ErrBookingDatesInvalid) {
		t.Fatalf("expected dates invalid for reversed range, got: %v", err)
	}
}

func TestBookRejectsTooManyGuests(t *testing.T) {
	db := openBookingTestDB(t, "booking_guests")
	svc := newBookingTestService(db)
	room := seedRoom(t, db, 88.00, 2, 5)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Book(BookHotelInput{
		UserID:   1,
		RoomID:   room.ID,
		CheckIn:  day,
		CheckOut: day.AddDate(0, 0, 1),
		Guests:   3,
	})
	if !errors.Is(err, ErrBookingGuestsInvalid) {
		t.Fatalf("expected guests invalid, got: %v", err)
	}
}

func TestBookGuestsDefaultsToOne(t *testing.T) {
	db := openBookingTestDB(t, "booking_guest_default")
	svc := newBookingTestService(db)
	room := seedRoom(t, db, 88.00, 2, 5)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	booking, err := svc.Book(BookHotelInput{
		UserID:   1,
		RoomID:   room.ID,
		CheckIn:  day,
		CheckOut: day.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if booking.Guests != 1 {
		t.Fatalf("expected guests default 1, got %d", booking.Guests)
	}
}

func TestBookRejectsWhenRoomsExhausted(t *testing.T) {
	db := openBookingTestDB(t, "booking_overlap")
	svc := newBookingTestService(db)
	room := seedRoom(t, db, 88.00, 2, 1)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Book(BookHotelInput{
		UserID:   1,
		RoomID:   room.ID,
		CheckIn:  day,
		CheckOut: day.AddDate(0, 0, 3),
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// 区间重叠且库存 1，第二单拒绝
	_, err := svc.Book(BookHotelInput{
		UserID:   2,
		RoomID:   room.ID,
		CheckIn:  day.AddDate(0, 0, 1),
		CheckOut: day.AddDate(0, 0, 2),
	})
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("expected room unavailable, got: %v", err)
	}

	// 退房日与入住日相接不算重叠
	if _, err := svc.Book(BookHotelInput{
		UserID:   2,
		RoomID:   room.ID,
		CheckIn:  day.AddDate(0, 0, 3),
		CheckOut: day.AddDate(0, 0, 4),
	}); err != nil {
		t.Fatalf("back-to-back booking failed: %v", err)
	}
}

func TestCancelledBookingFreesInventory(t *testing.T) {
	db := openBookingTestDB(t, "booking_free_on_cancel")
	svc := newBookingTestService(db)
	room := seedRoom(t, db, 88.00, 2, 1)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	first, err := svc.Book(BookHotelInput{
		UserID:   1,
		RoomID:   room.ID,
		CheckIn:  day,
		CheckOut: day.AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.CancelBooking(1, first.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := svc.Book(BookHotelInput{
		UserID:   2,
		RoomID:   room.ID,
		CheckIn:  day,
		CheckOut: day.AddDate(0, 0, 2),
	}); err != nil {
		t.Fatalf("expected cancelled booking to free inventory, got: %v", err)
	}
}

func TestBookingStatusMachine(t *testing.T) {
	db := openBookingTestDB(t, "booking_status")
	svc := newBookingTestService(db)
	room := seedRoom(t, db, 88.00, 2, 5)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	booking, err := svc.Book(BookHotelInput{
		UserID:   1,
		RoomID:   room.ID,
		CheckIn:  day,
		CheckOut: day.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	// pending 不能直接 checked_in
	if _, err := svc.UpdateStatus(booking.ID, constants.BookingStatusCheckedIn); !errors.Is(err, ErrBookingStatusInvalid) {
		t.Fatalf("expected pending->checked_in rejected, got: %v", err)
	}

	for _, status := range []string{
		constants.BookingStatusConfirmed,
		constants.BookingStatusCheckedIn,
		constants.BookingStatusCheckedOut,
	} {
		updated, err := svc.UpdateStatus(booking.ID, status)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected %s, got %s", status, updated.Status)
		}
	}

	// checked_out 为终态
	if _, err := svc.UpdateStatus(booking.ID, constants.BookingStatusCancelled); !errors.Is(err, ErrBookingStatusInvalid) {
		t.Fatalf("expected terminal state to reject transitions, got: %v", err)
	}
}

func TestCancelBookingRejectedAfterCheckIn(t *testing.T) {
	db := openBookingTestDB(t, "booking_cancel_late")
	svc := newBookingTestService(db)
	room := seedRoom(t, db, 88.00, 2, 5)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	booking, err := svc.Book(BookHotelInput{
		UserID:   1,
		RoomID:   room.ID,
		CheckIn:  day,
		CheckOut: day.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if _, err := svc.UpdateStatus(booking.ID, constants.BookingStatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := svc.UpdateStatus(booking.ID, constants.BookingStatusCheckedIn); err != nil {
		t.Fatalf("check in failed: %v", err)
	}

	if _, err := svc.CancelBooking(1, booking.ID); !errors.Is(err, ErrBookingStatusInvalid) {
		t.Fatalf("expected cancel after check-in rejected, got: %v", err)
	}
}

func TestBookInactiveRoom(t *testing.T) {
	db := openBookingTestDB(t, "booking_inactive")
	svc := newBookingTestService(db)
	room := seedRoom(t, db, 88.00, 2, 5)
	if err := db.Model(&models.Room{}).Where("id = ?", room.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate room failed: %v", err)
	}

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Book(BookHotelInput{
		UserID:   1,
		RoomID:   room.ID,
		CheckIn:  day,
		CheckOut: day.AddDate(0, 0, 1),
	})
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("expected room unavailable, got: %v", err)
	}
}
