package service

import "errors"

// 服务层哨兵错误，handler 按 errors.Is 映射为 i18n 文案
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidInput       = errors.New("请求参数错误")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrPhoneExists        = errors.New("手机号已被注册")
	ErrUserDisabled       = errors.New("账号已被禁用")

	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
	ErrInvalidEmail              = errors.New("邮箱格式错误")
	ErrEmailRecipientRejected    = errors.New("收件人地址被拒绝")

	ErrOtpInvalid         = errors.New("验证码错误")
	ErrOtpExpired         = errors.New("验证码已过期")
	ErrOtpUsed            = errors.New("验证码已被使用")
	ErrOtpSendTooFrequent = errors.New("验证码发送过于频繁")

	ErrCartTypeInvalid      = errors.New("购物车类型无效")
	ErrCartEmpty            = errors.New("购物车是空的")
	ErrCartItemNotFound     = errors.New("购物车项不存在")
	ErrQuantityInvalid      = errors.New("数量至少为 1")
	ErrQuantityExceedsLimit = errors.New("数量超出单项上限")
	ErrRestaurantMismatch   = errors.New("购物车已包含其他餐厅的菜品")
	ErrRestaurantClosed     = errors.New("餐厅已打烊")
	ErrDishUnavailable      = errors.New("菜品已下架")
	ErrProductNotAvailable  = errors.New("商品已下架")
	ErrOutOfStock           = errors.New("库存不足")

	ErrOrderStatusInvalid  = errors.New("订单状态流转不允许")
	ErrOrderNotDeliverable = errors.New("订单未处于配送中")

	ErrBookingDatesInvalid  = errors.New("退房日期必须晚于入住日期")
	ErrBookingGuestsInvalid = errors.New("入住人数超过房型容量")
	ErrRoomUnavailable      = errors.New("房型不可预订")
	ErrBookingStatusInvalid = errors.New("预订状态流转不允许")

	ErrVehicleTypeInvalid = errors.New("车辆类型无效")
	ErrCoordsInvalid      = errors.New("坐标无效")
	ErrRideStatusInvalid  = errors.New("行程状态流转不允许")
	ErrDriverUnavailable  = errors.New("司机不可接单")

	ErrUploadTooLarge       = errors.New("文件超出大小限制")
	ErrUploadTypeNotAllowed = errors.New("文件类型不允许")
)
