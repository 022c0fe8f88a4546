package service

import (
	"errors"
	"fmt"
	"math"
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

func openRideTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Ride{}, &models.Driver{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newRideTestService(db *gorm.DB) *RideService {
	cfg := &config.Config{}
	cfg.Ride.BaseFare = 3
	cfg.Ride.PerKM = 1.5
	cfg.Ride.PorterFactor = 1.8
	return NewRideService(cfg, repository.NewRideRepository(db), repository.NewDriverRepository(db))
}

func requestTestRide(t *testing.T, svc *RideService, userID uint, vehicleType string) *models.Ride {
	t.Helper()
	ride, err := svc.RequestRide(RequestRideInput{
		UserID:         userID,
		VehicleType:    vehicleType,
		PickupAddress:  "幸福路 88 号",
		PickupLat:      31.2304,
		PickupLng:      121.4737,
		DropoffAddress: "中央大街 12 号",
		DropoffLat:     31.2397,
		DropoffLng:     121.4998,
	})
	if err != nil {
		t.Fatalf("request ride failed: %v", err)
	}
	return ride
}

func onlineTestDriver(t *testing.T, svc *RideService, userID uint, vehicleType string) *models.Driver {
	t.Helper()
	driver, err := svc.RegisterDriver(userID, vehicleType, "沪A12345")
	if err != nil {
		t.Fatalf("register driver failed: %v", err)
	}
	if driver.Status != constants.DriverStatusOffline {
		t.Fatalf("expected new driver offline, got %s", driver.Status)
	}
	driver, err = svc.SetDriverOnline(userID, true)
	if err != nil {
		t.Fatalf("set online failed: %v", err)
	}
	return driver
}

func TestRequestRideEstimatesFare(t *testing.T) {
	db := openRideTestDB(t, "ride_fare")
	svc := newRideTestService(db)

	ride := requestTestRide(t, svc, 1, constants.VehicleTypeTaxi)
	if !strings.HasPrefix(ride.RideNo, "RD") {
		t.Fatalf("unexpected ride no: %s", ride.RideNo)
	}
	if ride.Status != constants.RideStatusRequested {
		t.Fatalf("expected requested, got %s", ride.Status)
	}
	if ride.DistanceKM <= 0 {
		t.Fatalf("expected positive distance, got %f", ride.DistanceKM)
	}

	distance := haversineKM(31.2304, 121.4737, 31.2397, 121.4998)
	expected := decimal.NewFromFloat(3).Add(decimal.NewFromFloat(1.5).Mul(decimal.NewFromFloat(distance)))
	if !ride.FareAmount.Decimal.Equal(models.NewMoneyFromDecimal(expected).Decimal) {
		t.Fatalf("expected fare %s, got %s", expected.String(), ride.FareAmount.String())
	}
}

func TestRequestRidePorterFactor(t *testing.T) {
	db := openRideTestDB(t, "ride_porter")
	svc := newRideTestService(db)

	taxi := requestTestRide(t, svc, 1, constants.VehicleTypeTaxi)
	porter := requestTestRide(t, svc, 2, constants.VehicleTypePorter)

	ratio := porter.FareAmount.Decimal.Div(taxi.FareAmount.Decimal)
	factor, _ := ratio.Float64()
	if math.Abs(factor-1.8) > 0.01 {
		t.Fatalf("expected porter fare about 1.8x taxi, got %f", factor)
	}
}

func TestRequestRideValidation(t *testing.T) {
	db := openRideTestDB(t, "ride_validation")
	svc := newRideTestService(db)

	_, err := svc.RequestRide(RequestRideInput{
		UserID:      1,
		VehicleType: "bike",
		PickupLat:   31, PickupLng: 121,
		DropoffLat: 31.1, DropoffLng: 121.1,
	})
	if !errors.Is(err, ErrVehicleTypeInvalid) {
		t.Fatalf("expected vehicle type invalid, got: %v", err)
	}

	_, err = svc.RequestRide(RequestRideInput{
		UserID:      1,
		VehicleType: constants.VehicleTypeTaxi,
		PickupLat:   91, PickupLng: 121,
		DropoffLat: 31.1, DropoffLng: 121.1,
	})
	if !errors.Is(err, ErrCoordsInvalid) {
		t.Fatalf("expected coords invalid, got: %v", err)
	}
}

func TestRideDriverLifecycle(t *testing.T) {
	db := openRideTestDB(t, "ride_lifecycle")
	svc := newRideTestService(db)

	ride := requestTestRide(t, svc, 1, constants.VehicleTypeTaxi)
	driver := onlineTestDriver(t, svc, 100, constants.VehicleTypeTaxi)

	open, err := svc.ListOpenRides(100, 10)
	if err != nil {
		t.Fatalf("list open rides failed: %v", err)
	}
	if len(open) != 1 || open[0].ID != ride.ID {
		t.Fatalf("expected requested ride visible to driver, got %d rides", len(open))
	}

	accepted, err := svc.AcceptRide(100, ride.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != constants.RideStatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}
	if accepted.DriverID == nil || *accepted.DriverID != driver.ID {
		t.Fatalf("expected driver %d bound, got %v", driver.ID, accepted.DriverID)
	}
	busy, err := repository.NewDriverRepository(db).GetByID(driver.ID)
	if err != nil || busy == nil {
		t.Fatalf("reload driver failed: %v", err)
	}
	if busy.Status != constants.DriverStatusBusy {
		t.Fatalf("expected busy driver, got %s", busy.Status)
	}

	// 接单期间不可下线
	if _, err := svc.SetDriverOnline(100, false); !errors.Is(err, ErrDriverUnavailable) {
		t.Fatalf("expected busy driver to reject offline, got: %v", err)
	}

	started, err := svc.StartRide(100, ride.ID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if started.Status != constants.RideStatusInProgress {
		t.Fatalf("expected in_progress, got %s", started.Status)
	}

	completed, err := svc.CompleteRide(100, ride.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != constants.RideStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("expected completed_at set")
	}

	released, err := repository.NewDriverRepository(db).GetByID(driver.ID)
	if err != nil || released == nil {
		t.Fatalf("reload driver failed: %v", err)
	}
	if released.Status != constants.DriverStatusOnline {
		t.Fatalf("expected driver released to online, got %s", released.Status)
	}
}

func TestAcceptRideVehicleTypeMismatch(t *testing.T) {
	db := openRideTestDB(t, "ride_mismatch")
	svc := newRideTestService(db)

	ride := requestTestRide(t, svc, 1, constants.VehicleTypeTaxi)
	onlineTestDriver(t, svc, 100, constants.VehicleTypePorter)

	if _, err := svc.AcceptRide(100, ride.ID); !errors.Is(err, ErrVehicleTypeInvalid) {
		t.Fatalf("expected vehicle type mismatch, got: %v", err)
	}

	// 待接单列表按车辆类型过滤
	open, err := svc.ListOpenRides(100, 10)
	if err != nil {
		t.Fatalf("list open rides failed: %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("expected no taxi rides for porter driver, got %d", len(open))
	}
}

func TestAcceptRideRequiresOnlineDriver(t *testing.T) {
	db := openRideTestDB(t, "ride_offline_driver")
	svc := newRideTestService(db)

	ride := requestTestRide(t, svc, 1, constants.VehicleTypeTaxi)
	if _, err := svc.RegisterDriver(100, constants.VehicleTypeTaxi, "沪A12345"); err != nil {
		t.Fatalf("register driver failed: %v", err)
	}

	if _, err := svc.AcceptRide(100, ride.ID); !errors.Is(err, ErrDriverUnavailable) {
		t.Fatalf("expected offline driver rejected, got: %v", err)
	}
}

func TestCancelRideReleasesDriver(t *testing.T) {
	db := openRideTestDB(t, "ride_cancel")
	svc := newRideTestService(db)

	ride := requestTestRide(t, svc, 1, constants.VehicleTypeTaxi)
	driver := onlineTestDriver(t, svc, 100, constants.VehicleTypeTaxi)
	if _, err := svc.AcceptRide(100, ride.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	cancelled, err := svc.CancelRide(1, ride.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.RideStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at set")
	}

	released, err := repository.NewDriverRepository(db).GetByID(driver.ID)
	if err != nil || released == nil {
		t.Fatalf("reload driver failed: %v", err)
	}
	if released.Status != constants.DriverStatusOnline {
		t.Fatalf("expected driver released to online, got %s", released.Status)
	}
}

func TestCancelRideRejectedAfterStart(t *testing.T) {
	db := openRideTestDB(t, "ride_cancel_late")
	svc := newRideTestService(db)

	ride := requestTestRide(t, svc, 1, constants.VehicleTypeTaxi)
	onlineTestDriver(t, svc, 100, constants.VehicleTypeTaxi)
	if _, err := svc.AcceptRide(100, ride.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := svc.StartRide(100, ride.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if _, err := svc.CancelRide(1, ride.ID); !errors.Is(err, ErrRideStatusInvalid) {
		t.Fatalf("expected cancel after start rejected, got: %v", err)
	}
}

func TestRegisterDriverIdempotent(t *testing.T) {
	db := openRideTestDB(t, "ride_register")
	svc := newRideTestService(db)

	first, err := svc.RegisterDriver(100, constants.VehicleTypeTaxi, "沪A12345")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	second, err := svc.RegisterDriver(100, constants.VehicleTypePorter, "沪B67890")
	if err != nil {
		t.Fatalf("re-register failed: %v", err)
	}
	if second.ID != first.ID || second.VehicleType != constants.VehicleTypeTaxi {
		t.Fatalf("expected existing profile returned, got %+v", second)
	}
}
