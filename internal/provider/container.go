package provider

import (
	"github.com/unimart/unimart/internal/cache"
	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/logger"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/queue"
	"github.com/unimart/unimart/internal/repository"
	"github.com/unimart/unimart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo      repository.AdminRepository
	UserRepo       repository.UserRepository
	OtpRepo        repository.OtpRepository
	ProductRepo    repository.ProductRepository
	RestaurantRepo repository.RestaurantRepository
	DishRepo       repository.DishRepository
	CartRepo       repository.CartRepository
	OrderRepo      repository.OrderRepository
	HotelRepo      repository.HotelRepository
	RoomRepo       repository.RoomRepository
	BookingRepo    repository.BookingRepository
	RideRepo       repository.RideRepository
	DriverRepo     repository.DriverRepository

	// Services
	AuthService       *service.AuthService
	UserAuthService   *service.UserAuthService
	EmailService      *service.EmailService
	UploadService     *service.UploadService
	ProductService    *service.ProductService
	RestaurantService *service.RestaurantService
	HotelService      *service.HotelService
	CartService       *service.CartService
	OrderService      *service.OrderService
	BookingService    *service.BookingService
	RideService       *service.RideService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.OtpRepo = repository.NewOtpRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.RestaurantRepo = repository.NewRestaurantRepository(db)
	c.DishRepo = repository.NewDishRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.HotelRepo = repository.NewHotelRepository(db)
	c.RoomRepo = repository.NewRoomRepository(db)
	c.BookingRepo = repository.NewBookingRepository(db)
	c.RideRepo = repository.NewRideRepository(db)
	c.DriverRepo = repository.NewDriverRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.OtpRepo, c.EmailService)
	c.UploadService = service.NewUploadService(c.Config)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.RestaurantService = service.NewRestaurantService(c.RestaurantRepo, c.DishRepo)
	c.HotelService = service.NewHotelService(c.HotelRepo, c.RoomRepo)
	c.CartService = service.NewCartService(c.Config, c.CartRepo, c.ProductRepo, c.DishRepo, c.RestaurantRepo)
	c.OrderService = service.NewOrderService(c.Config, c.OrderRepo, c.CartRepo, c.ProductRepo, c.OtpRepo, c.QueueClient)
	c.BookingService = service.NewBookingService(c.Config, c.BookingRepo, c.RoomRepo, c.QueueClient)
	c.RideService = service.NewRideService(c.Config, c.RideRepo, c.DriverRepo)
}
