package constants

// 购物车类型常量
const (
	CartTypeProduct = "product"
	CartTypeFood    = "food"
	CartTypeGrocery = "grocery"
)

// 购物车状态常量
const (
	CartStatusActive    = "active"
	CartStatusEmpty     = "empty"
	CartStatusAbandoned = "abandoned"
	CartStatusConverted = "converted"
)

// 商品购物车数量上限（食品/生鲜购物车不限制上限）
const (
	ProductCartMaxQuantity = 10
)

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusProcessing     = "processing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// OTP 用途常量
const (
	OtpPurposeLogin    = "login"
	OtpPurposeReset    = "reset"
	OtpPurposeDelivery = "delivery"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 酒店预订状态常量
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
)

// 行程状态常量
const (
	RideStatusRequested  = "requested"
	RideStatusAccepted   = "accepted"
	RideStatusInProgress = "in_progress"
	RideStatusCompleted  = "completed"
	RideStatusCancelled  = "cancelled"
)

// 车辆类型常量
const (
	VehicleTypeTaxi   = "taxi"
	VehicleTypePorter = "porter"
)

// 司机状态常量
const (
	DriverStatusOffline = "offline"
	DriverStatusOnline  = "online"
	DriverStatusBusy    = "busy"
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskOrderStatusEmail  = "order:status_email"
	TaskDeliveryOtpEmail  = "order:delivery_otp_email"
	TaskBookingStatusEmail = "booking:status_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "um"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleZhCN}
