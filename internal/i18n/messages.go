package i18n

var messages = map[string]map[string]string{
	LocaleEnUS: {
		"error.invalid_request":        "invalid request",
		"error.unauthorized":           "unauthorized",
		"error.forbidden":              "forbidden",
		"error.not_found":              "not found",
		"error.internal":               "internal server error",
		"error.rate_limited":           "too many requests",
		"error.rate_limit_unavailable": "rate limiter unavailable",
		"error.jwt_secret_missing":     "jwt secret not configured",
		"error.token_invalid":          "invalid token",
		"error.auth_header_missing":    "authorization header missing",
		"error.auth_header_invalid":    "authorization header invalid",
		"error.user_disabled":          "account disabled",
		"error.login_too_many":         "too many login attempts, try again in %d seconds",

		"error.invalid_credentials": "invalid email or password",
		"error.email_invalid":       "invalid email address",
		"error.email_service_not_configured": "email service not configured",
		"error.email_recipient_rejected":     "recipient mailbox rejected",
		"error.email_exists":        "email already registered",
		"error.phone_exists":        "phone already registered",
		"error.user_not_found":      "user not found",
		"error.password_too_weak":   "password does not meet the policy",
		"error.password_min_length":     "password must be at least %d characters",
		"error.password_require_upper":  "password must contain an uppercase letter",
		"error.password_require_lower":  "password must contain a lowercase letter",
		"error.password_require_number": "password must contain a digit",

		"error.otp_invalid":           "invalid verification code",
		"error.otp_expired":           "verification code expired",
		"error.otp_used":              "verification code already used",
		"error.otp_send_too_frequent": "verification code requested too frequently",

		"error.cart_not_found":         "cart not found",
		"error.cart_empty":             "cart is empty",
		"error.cart_item_not_found":    "cart item not found",
		"error.cart_type_invalid":      "invalid cart type",
		"error.quantity_invalid":       "quantity must be at least 1",
		"error.quantity_exceeds_limit": "quantity exceeds the per-item limit of %d",
		"error.restaurant_mismatch":    "cart already contains dishes from another restaurant",
		"error.restaurant_closed":      "restaurant is closed",
		"error.restaurant_not_found":   "restaurant not found",
		"error.dish_unavailable":       "dish is unavailable",
		"error.product_not_found":      "product not found",
		"error.product_inactive":       "product is not available",
		"error.out_of_stock":           "insufficient stock",

		"error.order_not_found":         "order not found",
		"error.order_status_invalid":    "order status transition not allowed",
		"error.order_already_cancelled": "order already cancelled",
		"error.order_not_deliverable":   "order is not out for delivery",

		"error.hotel_not_found":        "hotel not found",
		"error.room_not_found":         "room not found",
		"error.room_unavailable":       "room is unavailable",
		"error.booking_not_found":      "booking not found",
		"error.booking_dates_invalid":  "check-out must be after check-in",
		"error.booking_guests_invalid": "guest count exceeds room capacity",
		"error.booking_status_invalid": "booking status transition not allowed",

		"error.ride_not_found":       "ride not found",
		"error.ride_status_invalid":  "ride status transition not allowed",
		"error.driver_not_found":     "driver not found",
		"error.driver_unavailable":   "driver is unavailable",
		"error.vehicle_type_invalid": "invalid vehicle type",
		"error.coords_invalid":       "invalid coordinates",

		"error.upload_too_large":        "file exceeds the size limit",
		"error.upload_type_not_allowed": "file type not allowed",
		"error.file_missing":            "file is required",
		"error.upload_failed":           "upload failed",

		"error.password_old_invalid": "old password is incorrect",
		"error.save_failed":          "save failed",

		"order.status.pending":          "pending",
		"order.status.confirmed":        "confirmed",
		"order.status.processing":       "processing",
		"order.status.out_for_delivery": "out for delivery",
		"order.status.delivered":        "delivered",
		"order.status.cancelled":        "cancelled",

		"booking.status.pending":     "pending",
		"booking.status.confirmed":   "confirmed",
		"booking.status.checked_in":  "checked in",
		"booking.status.checked_out": "checked out",
		"booking.status.cancelled":   "cancelled",

		"email.order_status.subject":   "Your order is %s",
		"email.order_status.body":      "Order %s is now %s.\nTotal: %s",
		"email.booking_status.subject": "Your booking is %s",
		"email.booking_status.body":    "Booking %s is now %s.\nTotal: %s",
	},
	LocaleZhCN: {
		"error.invalid_request":        "请求参数错误",
		"error.unauthorized":           "未登录或登录已过期",
		"error.forbidden":              "没有权限",
		"error.not_found":              "资源不存在",
		"error.internal":               "服务器内部错误",
		"error.rate_limited":           "请求过于频繁",
		"error.rate_limit_unavailable": "限流服务不可用",
		"error.jwt_secret_missing":     "JWT 密钥未配置",
		"error.token_invalid":          "无效的登录凭证",
		"error.auth_header_missing":    "缺少认证头",
		"error.auth_header_invalid":    "认证头格式错误",
		"error.user_disabled":          "账号已被禁用",
		"error.login_too_many":         "登录尝试过于频繁，请 %d 秒后再试",

		"error.invalid_credentials": "邮箱或密码错误",
		"error.email_invalid":       "邮箱地址无效",
		"error.email_service_not_configured": "邮件服务未配置",
		"error.email_recipient_rejected":     "收件邮箱被拒收",
		"error.email_exists":        "邮箱已被注册",
		"error.phone_exists":        "手机号已被注册",
		"error.user_not_found":      "用户不存在",
		"error.password_too_weak":   "密码不符合安全要求",
		"error.password_min_length":     "密码长度不能少于 %d 位",
		"error.password_require_upper":  "密码必须包含大写字母",
		"error.password_require_lower":  "密码必须包含小写字母",
		"error.password_require_number": "密码必须包含数字",

		"error.otp_invalid":           "验证码错误",
		"error.otp_expired":           "验证码已过期",
		"error.otp_used":              "验证码已被使用",
		"error.otp_send_too_frequent": "验证码发送过于频繁",

		"error.cart_not_found":         "购物车不存在",
		"error.cart_empty":             "购物车是空的",
		"error.cart_item_not_found":    "购物车项不存在",
		"error.cart_type_invalid":      "购物车类型无效",
		"error.quantity_invalid":       "数量至少为 1",
		"error.quantity_exceeds_limit": "数量超出单项上限 %d",
		"error.restaurant_mismatch":    "购物车已包含其他餐厅的菜品",
		"error.restaurant_closed":      "餐厅已打烊",
		"error.restaurant_not_found":   "餐厅不存在",
		"error.dish_unavailable":       "菜品已下架",
		"error.product_not_found":      "商品不存在",
		"error.product_inactive":       "商品已下架",
		"error.out_of_stock":           "库存不足",

		"error.order_not_found":         "订单不存在",
		"error.order_status_invalid":    "订单状态流转不允许",
		"error.order_already_cancelled": "订单已取消",
		"error.order_not_deliverable":   "订单未处于配送中",

		"error.hotel_not_found":        "酒店不存在",
		"error.room_not_found":         "房型不存在",
		"error.room_unavailable":       "房型不可预订",
		"error.booking_not_found":      "预订不存在",
		"error.booking_dates_invalid":  "退房日期必须晚于入住日期",
		"error.booking_guests_invalid": "入住人数超过房型容量",
		"error.booking_status_invalid": "预订状态流转不允许",

		"error.ride_not_found":       "行程不存在",
		"error.ride_status_invalid":  "行程状态流转不允许",
		"error.driver_not_found":     "司机不存在",
		"error.driver_unavailable":   "司机不可接单",
		"error.vehicle_type_invalid": "车辆类型无效",
		"error.coords_invalid":       "坐标无效",

		"error.upload_too_large":        "文件超出大小限制",
		"error.upload_type_not_allowed": "文件类型不允许",
		"error.file_missing":            "请选择要上传的文件",
		"error.upload_failed":           "上传失败",

		"error.password_old_invalid": "旧密码错误",
		"error.save_failed":          "保存失败",

		"order.status.pending":          "待确认",
		"order.status.confirmed":        "已确认",
		"order.status.processing":       "处理中",
		"order.status.out_for_delivery": "配送中",
		"order.status.delivered":        "已送达",
		"order.status.cancelled":        "已取消",

		"booking.status.pending":     "待确认",
		"booking.status.confirmed":   "已确认",
		"booking.status.checked_in":  "已入住",
		"booking.status.checked_out": "已退房",
		"booking.status.cancelled":   "已取消",

		"email.order_status.subject":   "您的订单%s",
		"email.order_status.body":      "订单 %s 当前状态：%s。\n合计：%s",
		"email.booking_status.subject": "您的预订%s",
		"email.booking_status.body":    "预订 %s 当前状态：%s。\n合计：%s",
	},
}
