package main

import (
	"fmt"
	"time"

	"github.com/viewspecash/viewspecash/internal/config"
	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/logger"
	"github.com/viewspecash/viewspecash/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
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

	// 添加广告主
	advertisers := []models.Advertiser{
		{Name: "Chai Point", ContactEmail: "marketing@chaipoint.example", Notes: "连锁茶饮品牌，主推短视频种草"},
		{Name: "Zorro Fitness", ContactEmail: "growth@zorrofit.example", Notes: "健身 App，偏好 YouTube Shorts"},
		{Name: "Meera Beauty", ContactEmail: "brand@meerabeauty.example", Notes: "美妆品牌，Instagram Reels 为主"},
	}
	advertiserIDs := map[string]uint{}
	for _, adv := range advertisers {
		var existing models.Advertiser
		if err := models.DB.Where("name = ?", adv.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&adv).Error; err != nil {
				stdLog.Printf("Failed to create advertiser %s: %v", adv.Name, err)
				continue
			}
			stdLog.Printf("Created advertiser: %s", adv.Name)
			advertiserIDs[adv.Name] = adv.ID
		} else {
			stdLog.Printf("Advertiser already exists: %s", existing.Name)
			advertiserIDs[existing.Name] = existing.ID
		}
	}

	// 添加推广活动
	now := time.Now()
	festiveEnd := now.AddDate(0, 1, 0)
	campaigns := []models.Campaign{
		{
			AdvertiserID:        advertiserIDs["Chai Point"],
			Title:               "Monsoon Chai 挑战赛",
			Brief:               "发布以 Monsoon Chai 为主题的短视频，带 #MonsoonChai 话题",
			Platform:            constants.PlatformBoth,
			RatePerThousand:     models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			BudgetCap:           models.NewMoneyFromDecimal(decimal.NewFromInt(100000)),
			MaxPayoutPerCreator: models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			Spent:               models.ZeroMoney(),
			Status:              constants.CampaignStatusActive,
			EndsAt:              &festiveEnd,
		},
		{
			AdvertiserID:        advertiserIDs["Zorro Fitness"],
			Title:               "30 天打卡计划",
			Brief:               "展示使用 Zorro App 的 30 天训练打卡过程",
			Platform:            constants.PlatformYoutubeShorts,
			RatePerThousand:     models.NewMoneyFromDecimal(decimal.NewFromFloat(62.50)),
			BudgetCap:           models.NewMoneyFromDecimal(decimal.NewFromInt(250000)),
			MaxPayoutPerCreator: models.NewMoneyFromDecimal(decimal.NewFromInt(10000)),
			Spent:               models.ZeroMoney(),
			Status:              constants.CampaignStatusActive,
		},
		{
			AdvertiserID:        advertiserIDs["Meera Beauty"],
			Title:               "秋季新品妆容教程",
			Brief:               "使用秋季新品系列完成一支妆容教程 Reel",
			Platform:            constants.PlatformInstagramReels,
			RatePerThousand:     models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
			BudgetCap:           models.NewMoneyFromDecimal(decimal.NewFromInt(150000)),
			MaxPayoutPerCreator: models.NewMoneyFromDecimal(decimal.NewFromInt(8000)),
			Spent:               models.ZeroMoney(),
			Status:              constants.CampaignStatusDraft,
		},
	}
	for _, campaign := range campaigns {
		if campaign.AdvertiserID == 0 {
			stdLog.Printf("Skip campaign %s: advertiser missing", campaign.Title)
			continue
		}
		var existing models.Campaign
		if err := models.DB.Where("title = ?", campaign.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&campaign).Error; err != nil {
				stdLog.Printf("Failed to create campaign %s: %v", campaign.Title, err)
			} else {
				stdLog.Printf("Created campaign: %s", campaign.Title)
			}
		} else {
			stdLog.Printf("Campaign already exists: %s", existing.Title)
		}
	}

	// 添加演示创作者（密码均为 Creator@123）
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("Creator@123"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash seed password: %v", err)
	}
	creators := []models.Creator{
		{
			Email:           "asha@example.com",
			PasswordHash:    string(passwordHash),
			DisplayName:     "Asha Verma",
			InstagramHandle: "asha.reels",
			YoutubeHandle:   "AshaShorts",
			UpiID:           "asha@upi",
			VettingStatus:   constants.VettingStatusApproved,
			Balance:         models.ZeroMoney(),
			TotalEarnings:   models.ZeroMoney(),
		},
		{
			Email:           "rohan@example.com",
			PasswordHash:    string(passwordHash),
			DisplayName:     "Rohan Iyer",
			YoutubeHandle:   "RohanFit",
			VettingStatus:   constants.VettingStatusPending,
			Balance:         models.ZeroMoney(),
			TotalEarnings:   models.ZeroMoney(),
		},
		{
			Email:         "priya@example.com",
			PasswordHash:  string(passwordHash),
			DisplayName:   "Priya Nair",
			VettingStatus: constants.VettingStatusNone,
			Balance:       models.ZeroMoney(),
			TotalEarnings: models.ZeroMoney(),
		},
	}
	for _, creator := range creators {
		var existing models.Creator
		if err := models.DB.Where("email = ?", creator.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&creator).Error; err != nil {
				stdLog.Printf("Failed to create creator %s: %v", creator.Email, err)
			} else {
				stdLog.Printf("Created creator: %s", creator.Email)
			}
		} else {
			stdLog.Printf("Creator already exists: %s", existing.Email)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Advertisers")
	fmt.Println("- 3 Campaigns (2 active + 1 draft)")
	fmt.Println("- 3 Creators (password: Creator@123)")
}
