package main

import (
	"fmt"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/logger"
	"github.com/unimart/unimart/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 商品（电商 + 生鲜）
	products := []models.Product{
		{
			Vertical:    constants.CartTypeProduct,
			Name:        "无线蓝牙耳机",
			Description: "高品质音质，长续航，舒适佩戴",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
			}),
			StockCount: 120,
			IsActive:   true,
			SortOrder:  300,
		},
		{
			Vertical:    constants.CartTypeProduct,
			Name:        "智能手表",
			Description: "健康监测，运动追踪，消息提醒",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(199.99)),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800",
			}),
			StockCount: 60,
			IsActive:   true,
			SortOrder:  290,
		},
		{
			Vertical:    constants.CartTypeProduct,
			Name:        "便携充电宝",
			Description: "大容量，快速充电，多设备兼容",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99)),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800",
			}),
			StockCount: 200,
			IsActive:   true,
			SortOrder:  280,
		},
		{
			Vertical:    constants.CartTypeGrocery,
			Name:        "有机牛奶 1L",
			Description: "牧场直供，冷链配送",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(3.49)),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1550583724-b2692b85b150?w=800",
			}),
			StockCount: 500,
			IsActive:   true,
			SortOrder:  200,
		},
		{
			Vertical:    constants.CartTypeGrocery,
			Name:        "新鲜鸡蛋 12 枚",
			Description: "散养土鸡蛋，当日分拣",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(4.99)),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1506976785307-8732e854ad03?w=800",
			}),
			StockCount: 300,
			IsActive:   true,
			SortOrder:  190,
		},
		{
			Vertical:    constants.CartTypeGrocery,
			Name:        "演示商品-已售罄",
			Description: "用于前台缺货展示：库存为 0。",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.90)),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1512499617640-c74ae3a79d37?w=800",
			}),
			StockCount: 0,
			IsActive:   true,
			SortOrder:  100,
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("vertical = ? AND name = ?", prod.Vertical, prod.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Name)
			}
		} else {
			existing.Description = prod.Description
			existing.PriceAmount = prod.PriceAmount
			existing.Images = prod.Images
			existing.StockCount = prod.StockCount
			existing.IsActive = prod.IsActive
			existing.SortOrder = prod.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Name)
			}
		}
	}

	// 餐厅与菜品
	restaurants := []struct {
		Restaurant models.Restaurant
		Dishes     []models.Dish
	}{
		{
			Restaurant: models.Restaurant{
				Name:        "川味小馆",
				Description: "地道川菜，现炒现做",
				Address:     "幸福路 88 号",
				Images: models.StringArray([]string{
					"https://images.unsplash.com/photo-1552566626-52f8b828add9?w=800",
				}),
				DeliveryFee: models.NewMoneyFromDecimal(decimal.NewFromFloat(3.00)),
				IsOpen:      true,
			},
			Dishes: []models.Dish{
				{
					Name:        "麻婆豆腐",
					Description: "经典川味，麻辣鲜香",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(8.50)),
					OptionsJSON: models.JSON(map[string]interface{}{
						"加辣":  0.0,
						"加米饭": 1.5,
					}),
					IsAvailable: true,
				},
				{
					Name:        "宫保鸡丁",
					Description: "花生酥脆，鸡肉嫩滑",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)),
					OptionsJSON: models.JSON(map[string]interface{}{
						"加米饭": 1.5,
					}),
					IsAvailable: true,
				},
				{
					Name:        "夫妻肺片（售罄）",
					Description: "演示下架菜品",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.00)),
					IsAvailable: false,
				},
			},
		},
		{
			Restaurant: models.Restaurant{
				Name:        "Bella Pizza",
				Description: "手工现烤意式披萨",
				Address:     "中央大街 12 号",
				Images: models.StringArray([]string{
					"https://images.unsplash.com/photo-1513104890138-7c749659a591?w=800",
				}),
				DeliveryFee: models.NewMoneyFromDecimal(decimal.NewFromFloat(2.50)),
				IsOpen:      true,
			},
			Dishes: []models.Dish{
				{
					Name:        "玛格丽特披萨",
					Description: "番茄、马苏里拉与罗勒",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.90)),
					OptionsJSON: models.JSON(map[string]interface{}{
						"加芝士": 2.0,
						"大份":  4.0,
					}),
					IsAvailable: true,
				},
				{
					Name:        "意式肉酱面",
					Description: "慢炖牛肉酱，现煮意面",
					PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(11.50)),
					IsAvailable: true,
				},
			},
		},
	}

	for _, entry := range restaurants {
		rest := entry.Restaurant
		var existing models.Restaurant
		if err := models.DB.Where("name = ?", rest.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&rest).Error; err != nil {
				stdLog.Printf("Failed to create restaurant %s: %v", rest.Name, err)
				continue
			}
			stdLog.Printf("Created restaurant: %s", rest.Name)
			existing = rest
		} else {
			stdLog.Printf("Restaurant already exists: %s", rest.Name)
		}

		for _, dish := range entry.Dishes {
			dish.RestaurantID = existing.ID
			var existingDish models.Dish
			if err := models.DB.Where("restaurant_id = ? AND name = ?", existing.ID, dish.Name).First(&existingDish).Error; err != nil {
				if err := models.DB.Create(&dish).Error; err != nil {
					stdLog.Printf("Failed to create dish %s: %v", dish.Name, err)
				} else {
					stdLog.Printf("Created dish: %s", dish.Name)
				}
			}
		}
	}

	// 酒店与房型
	hotels := []struct {
		Hotel models.Hotel
		Rooms []models.Room
	}{
		{
			Hotel: models.Hotel{
				Name:        "湖景国际酒店",
				Description: "临湖而建，步行可达市中心",
				Address:     "湖滨路 1 号",
				City:        "杭州",
				Images: models.StringArray([]string{
					"https://images.unsplash.com/photo-1566073771259-6a8506099945?w=800",
				}),
				IsActive: true,
			},
			Rooms: []models.Room{
				{
					Name:         "标准大床房",
					Description:  "30㎡，湖景视野",
					RatePerNight: models.NewMoneyFromDecimal(decimal.NewFromFloat(88.00)),
					Capacity:     2,
					RoomCount:    20,
					IsActive:     true,
				},
				{
					Name:         "家庭套房",
					Description:  "55㎡，两卧一厅",
					RatePerNight: models.NewMoneyFromDecimal(decimal.NewFromFloat(168.00)),
					Capacity:     4,
					RoomCount:    8,
					IsActive:     true,
				},
			},
		},
		{
			Hotel: models.Hotel{
				Name:        "City Inn Express",
				Description: "商务快捷，地铁直达",
				Address:     "科技园南区 9 栋",
				City:        "深圳",
				Images: models.StringArray([]string{
					"https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=800",
				}),
				IsActive: true,
			},
			Rooms: []models.Room{
				{
					Name:         "商务双床房",
					Description:  "26㎡，双床配办公桌",
					RatePerNight: models.NewMoneyFromDecimal(decimal.NewFromFloat(59.00)),
					Capacity:     2,
					RoomCount:    30,
					IsActive:     true,
				},
			},
		},
	}

	for _, entry := range hotels {
		hotel := entry.Hotel
		var existing models.Hotel
		if err := models.DB.Where("name = ?", hotel.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&hotel).Error; err != nil {
				stdLog.Printf("Failed to create hotel %s: %v", hotel.Name, err)
				continue
			}
			stdLog.Printf("Created hotel: %s", hotel.Name)
			existing = hotel
		} else {
			stdLog.Printf("Hotel already exists: %s", hotel.Name)
		}

		for _, room := range entry.Rooms {
			room.HotelID = existing.ID
			var existingRoom models.Room
			if err := models.DB.Where("hotel_id = ? AND name = ?", existing.ID, room.Name).First(&existingRoom).Error; err != nil {
				if err := models.DB.Create(&room).Error; err != nil {
					stdLog.Printf("Failed to create room %s: %v", room.Name, err)
				} else {
					stdLog.Printf("Created room: %s", room.Name)
				}
			}
		}
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 6 Products (3 product + 3 grocery，含缺货演示)")
	fmt.Println("- 2 Restaurants with dishes")
	fmt.Println("- 2 Hotels with rooms")
}
