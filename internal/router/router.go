package router

import (
	"fmt"
	"strings"

	"github.com/unimart/unimart/internal/cache"
	"github.com/unimart/unimart/internal/config"
	adminhandlers "github.com/unimart/unimart/internal/http/handlers/admin"
	publichandlers "github.com/unimart/unimart/internal/http/handlers/public"
	"github.com/unimart/unimart/internal/logger"
	"github.com/unimart/unimart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "um"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）- 必须放在最前面
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/restaurants", publicHandler.GetRestaurants)
			public.GET("/restaurants/:id", publicHandler.GetRestaurant)
			public.GET("/restaurants/:id/dishes", publicHandler.GetRestaurantDishes)
			public.GET("/hotels", publicHandler.GetHotels)
			public.GET("/hotels/:id", publicHandler.GetHotel)
			public.GET("/hotels/:id/rooms", publicHandler.GetHotelRooms)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("identifier")), publicHandler.UserLogin)
			auth.POST("/otp/request", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.RequestOtp)
			auth.POST("/otp/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserOtpLogin)
			auth.POST("/reset-password", publicHandler.UserResetPassword)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/orders/checkout", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			user.POST("/orders/:id/confirm-delivery", publicHandler.ConfirmDelivery)

			user.POST("/bookings", publicHandler.CreateBooking)
			user.GET("/bookings", publicHandler.ListBookings)
			user.GET("/bookings/:id", publicHandler.GetBooking)
			user.POST("/bookings/:id/cancel", publicHandler.CancelBooking)

			user.POST("/rides", publicHandler.RequestRide)
			user.GET("/rides", publicHandler.ListRides)
			user.GET("/rides/:id", publicHandler.GetRide)
			user.POST("/rides/:id/cancel", publicHandler.CancelRide)

			user.POST("/driver/register", publicHandler.RegisterDriver)
			user.PUT("/driver/status", publicHandler.UpdateDriverStatus)
			user.GET("/driver/rides/open", publicHandler.ListOpenRides)
			user.POST("/driver/rides/:id/accept", publicHandler.AcceptRide)
			user.POST("/driver/rides/:id/start", publicHandler.StartRide)
			user.POST("/driver/rides/:id/complete", publicHandler.CompleteRide)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 餐厅与菜品管理
				authorized.GET("/restaurants", adminHandler.GetAdminRestaurants)
				authorized.POST("/restaurants", adminHandler.CreateRestaurant)
				authorized.PUT("/restaurants/:id", adminHandler.UpdateRestaurant)
				authorized.DELETE("/restaurants/:id", adminHandler.DeleteRestaurant)
				authorized.GET("/restaurants/:id/dishes", adminHandler.GetAdminDishes)
				authorized.POST("/dishes", adminHandler.CreateDish)
				authorized.PUT("/dishes/:id", adminHandler.UpdateDish)
				authorized.DELETE("/dishes/:id", adminHandler.DeleteDish)

				// 酒店与房型管理
				authorized.GET("/hotels", adminHandler.GetAdminHotels)
				authorized.POST("/hotels", adminHandler.CreateHotel)
				authorized.PUT("/hotels/:id", adminHandler.UpdateHotel)
				authorized.DELETE("/hotels/:id", adminHandler.DeleteHotel)
				authorized.GET("/hotels/:id/rooms", adminHandler.GetAdminRooms)
				authorized.POST("/rooms", adminHandler.CreateRoom)
				authorized.PUT("/rooms/:id", adminHandler.UpdateRoom)
				authorized.DELETE("/rooms/:id", adminHandler.DeleteRoom)

				// 订单管理
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PATCH("/orders/:id", adminHandler.AdminUpdateOrderStatus)
				authorized.PATCH("/orders/:id/payment", adminHandler.AdminUpdatePaymentStatus)

				// 预订管理
				authorized.GET("/bookings", adminHandler.AdminListBookings)
				authorized.PATCH("/bookings/:id", adminHandler.AdminUpdateBookingStatus)

				// 用户管理
				authorized.GET("/users", adminHandler.GetAdminUsers)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
