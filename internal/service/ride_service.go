package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/repository"

	"github.com/shopspring/decimal"
)

// RequestRideInput 叫车输入
type RequestRideInput struct {
	UserID         uint
	VehicleType    string
	PickupAddress  string
	PickupLat      float64
	PickupLng      float64
	DropoffAddress string
	DropoffLat     float64
	DropoffLng     float64
}

// allowedRideTransitions 行程状态机：completed 与 cancelled 为终态
var allowedRideTransitions = map[string]map[string]bool{
	constants.RideStatusRequested: {
		constants.RideStatusAccepted:  true,
		constants.RideStatusCancelled: true,
	},
	constants.RideStatusAccepted: {
		constants.RideStatusInProgress: true,
		constants.RideStatusCancelled:  true,
	},
	constants.RideStatusInProgress: {
		constants.RideStatusCompleted: true,
	},
}

// RideService 出行服务（出租车/搬运）
type RideService struct {
	cfg        *config.Config
	rideRepo   repository.RideRepository
	driverRepo repository.DriverRepository
}

// NewRideService 创建出行服务
func NewRideService(cfg *config.Config, rideRepo repository.RideRepository, driverRepo repository.DriverRepository) *RideService {
	return &RideService{
		cfg:        cfg,
		rideRepo:   rideRepo,
		driverRepo: driverRepo,
	}
}

// RequestRide 叫车：按球面距离预估里程与车费
func (s *RideService) RequestRide(input RequestRideInput) (*models.Ride, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	vehicleType := strings.ToLower(strings.TrimSpace(input.VehicleType))
	if vehicleType != constants.VehicleTypeTaxi && vehicleType != constants.VehicleTypePorter {
		return nil, ErrVehicleTypeInvalid
	}
	if !validCoords(input.PickupLat, input.PickupLng) || !validCoords(input.DropoffLat, input.DropoffLng) {
		return nil, ErrCoordsInvalid
	}

	distance := haversineKM(input.PickupLat, input.PickupLng, input.DropoffLat, input.DropoffLng)
	fare := s.estimateFare(vehicleType, distance)

	now := time.Now()
	ride := &models.Ride{
		RideNo:         generateRideNo(),
		UserID:         input.UserID,
		VehicleType:    vehicleType,
		Status:         constants.RideStatusRequested,
		PickupAddress:  input.PickupAddress,
		PickupLat:      input.PickupLat,
		PickupLng:      input.PickupLng,
		DropoffAddress: input.DropoffAddress,
		DropoffLat:     input.DropoffLat,
		DropoffLng:     input.DropoffLng,
		DistanceKM:     math.Round(distance*100) / 100,
		FareAmount:     fare,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.rideRepo.Create(ride); err != nil {
		return nil, err
	}
	return ride, nil
}

// GetRide 获取乘客行程详情
func (s *RideService) GetRide(userID, rideID uint) (*models.Ride, error) {
	ride, err := s.rideRepo.GetByIDAndUser(rideID, userID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, ErrNotFound
	}
	return ride, nil
}

// ListRides 乘客行程列表
func (s *RideService) ListRides(filter repository.RideListFilter) ([]models.Ride, int64, error) {
	return s.rideRepo.ListByUser(filter)
}

// CancelRide 乘客取消行程，行程开始后不可取消
func (s *RideService) CancelRide(userID, rideID uint) (*models.Ride, error) {
	ride, err := s.rideRepo.GetByIDAndUser(rideID, userID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, ErrNotFound
	}
	if !canTransitionRide(ride.Status, constants.RideStatusCancelled) {
		return nil, ErrRideStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at":   now,
		"cancelled_at": now,
	}
	if err := s.rideRepo.UpdateStatus(ride.ID, constants.RideStatusCancelled, updates); err != nil {
		return nil, err
	}
	// 已接单的司机释放回在线
	if ride.DriverID != nil {
		if err := s.driverRepo.UpdateStatus(*ride.DriverID, constants.DriverStatusOnline); err != nil {
			return nil, err
		}
	}
	return s.rideRepo.GetByID(ride.ID)
}

// ListOpenRides 司机端待接单列表
func (s *RideService) ListOpenRides(driverUserID uint, limit int) ([]models.Ride, error) {
	driver, err := s.driverRepo.GetByUserID(driverUserID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrNotFound
	}
	return s.rideRepo.ListRequested(driver.VehicleType, limit)
}

// AcceptRide 司机接单
func (s *RideService) AcceptRide(driverUserID, rideID uint) (*models.Ride, error) {
	driver, err := s.driverRepo.GetByUserID(driverUserID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrNotFound
	}
	if driver.Status != constants.DriverStatusOnline {
		return nil, ErrDriverUnavailable
	}

	ride, err := s.rideRepo.GetByID(rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, ErrNotFound
	}
	if ride.Status != constants.RideStatusRequested {
		return nil, ErrRideStatusInvalid
	}
	if ride.VehicleType != driver.VehicleType {
		return nil, ErrVehicleTypeInvalid
	}

	driverID := driver.ID
	updates := map[string]interface{}{
		"driver_id":  driverID,
		"updated_at": time.Now(),
	}
	if err := s.rideRepo.UpdateStatus(ride.ID, constants.RideStatusAccepted, updates); err != nil {
		return nil, err
	}
	if err := s.driverRepo.UpdateStatus(driver.ID, constants.DriverStatusBusy); err != nil {
		return nil, err
	}
	return s.rideRepo.GetByID(ride.ID)
}

// StartRide 司机开始行程
func (s *RideService) StartRide(driverUserID, rideID uint) (*models.Ride, error) {
	ride, err := s.rideForDriver(driverUserID, rideID)
	if err != nil {
		return nil, err
	}
	if !canTransitionRide(ride.Status, constants.RideStatusInProgress) {
		return nil, ErrRideStatusInvalid
	}
	updates := map[string]interface{}{"updated_at": time.Now()}
	if err := s.rideRepo.UpdateStatus(ride.ID, constants.RideStatusInProgress, updates); err != nil {
		return nil, err
	}
	return s.rideRepo.GetByID(ride.ID)
}

// CompleteRide 司机完成行程，司机回到在线状态
func (s *RideService) CompleteRide(driverUserID, rideID uint) (*models.Ride, error) {
	ride, err := s.rideForDriver(driverUserID, rideID)
	if err != nil {
		return nil, err
	}
	if !canTransitionRide(ride.Status, constants.RideStatusCompleted) {
		return nil, ErrRideStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at":   now,
		"completed_at": now,
	}
	if err := s.rideRepo.UpdateStatus(ride.ID, constants.RideStatusCompleted, updates); err != nil {
		return nil, err
	}
	if ride.DriverID != nil {
		if err := s.driverRepo.UpdateStatus(*ride.DriverID, constants.DriverStatusOnline); err != nil {
			return nil, err
		}
	}
	return s.rideRepo.GetByID(ride.ID)
}

// RegisterDriver 注册司机档案
func (s *RideService) RegisterDriver(userID uint, vehicleType, vehicleNo string) (*models.Driver, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	vehicleType = strings.ToLower(strings.TrimSpace(vehicleType))
	if vehicleType != constants.VehicleTypeTaxi && vehicleType != constants.VehicleTypePorter {
		return nil, ErrVehicleTypeInvalid
	}
	exist, err := s.driverRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return exist, nil
	}

	now := time.Now()
	driver := &models.Driver{
		UserID:      userID,
		VehicleType: vehicleType,
		VehicleNo:   strings.TrimSpace(vehicleNo),
		Status:      constants.DriverStatusOffline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.driverRepo.Create(driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// SetDriverOnline 司机上线/下线
func (s *RideService) SetDriverOnline(driverUserID uint, online bool) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByUserID(driverUserID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrNotFound
	}
	if driver.Status == constants.DriverStatusBusy {
		return nil, ErrDriverUnavailable
	}
	status := constants.DriverStatusOffline
	if online {
		status = constants.DriverStatusOnline
	}
	if err := s.driverRepo.UpdateStatus(driver.ID, status); err != nil {
		return nil, err
	}
	return s.driverRepo.GetByID(driver.ID)
}

func (s *RideService) rideForDriver(driverUserID, rideID uint) (*models.Ride, error) {
	driver, err := s.driverRepo.GetByUserID(driverUserID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrNotFound
	}
	ride, err := s.rideRepo.GetByID(rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, ErrNotFound
	}
	if ride.DriverID == nil || *ride.DriverID != driver.ID {
		return nil, ErrNotFound
	}
	return ride, nil
}

// estimateFare 车费 = 起步价 + 里程单价 × 里程；搬运按系数上浮
func (s *RideService) estimateFare(vehicleType string, distanceKM float64) models.Money {
	base := decimal.NewFromFloat(s.cfg.Ride.BaseFare)
	perKM := decimal.NewFromFloat(s.cfg.Ride.PerKM)
	fare := base.Add(perKM.Mul(decimal.NewFromFloat(distanceKM)))
	if vehicleType == constants.VehicleTypePorter {
		fare = fare.Mul(decimal.NewFromFloat(s.cfg.Ride.PorterFactor))
	}
	return models.NewMoneyFromDecimal(fare)
}

func canTransitionRide(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if from == to {
		return false
	}
	targets, ok := allowedRideTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

func validCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

const earthRadiusKM = 6371.0

// haversineKM 球面距离（公里）
func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

func generateRideNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("RD%s%s", now, randNumeric(6))
}
