package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viewspecash/viewspecash/internal/authz"
	"github.com/viewspecash/viewspecash/internal/cache"
	"github.com/viewspecash/viewspecash/internal/config"
	adminhandlers "github.com/viewspecash/viewspecash/internal/http/handlers/admin"
	publichandlers "github.com/viewspecash/viewspecash/internal/http/handlers/public"
	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/logger"
	"github.com/viewspecash/viewspecash/internal/provider"

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
		redisPrefix = "vpc"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	ingestRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:ingest", redisPrefix),
		WindowSeconds: cfg.Security.IngestRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.IngestRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/campaigns", publicHandler.ListActiveCampaigns)
			public.GET("/campaigns/:id", publicHandler.GetCampaign)
		}

		// 创作者认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.CreatorRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.CreatorLogin)
		}

		// 创作者接口（需鉴权）
		creator := apiV1.Group("")
		creator.Use(CreatorJWTAuthMiddleware(cfg.CreatorJWT.SecretKey, c.CreatorRepo))
		{
			creator.GET("/me", publicHandler.CreatorMe)
			creator.PUT("/me/profile", publicHandler.CreatorUpdateProfile)
			creator.PUT("/me/password", publicHandler.CreatorChangePassword)
			creator.POST("/me/vetting", publicHandler.CreatorSubmitVetting)
			creator.GET("/me/stats", publicHandler.CreatorStats)
			creator.POST("/submissions", publicHandler.CreateSubmission)
			creator.GET("/submissions", publicHandler.ListMySubmissions)
			creator.GET("/submissions/:id", publicHandler.GetMySubmission)
			creator.GET("/wallet", publicHandler.WalletOverview)
			creator.GET("/wallet/transactions", publicHandler.ListWalletTransactions)
			creator.POST("/wallet/payouts", publicHandler.CreatePayoutRequest)
			creator.GET("/wallet/payouts", publicHandler.ListMyPayouts)
		}

		// 爬虫回调接口（静态令牌鉴权）
		scraper := apiV1.Group("/scraper")
		scraper.Use(ScraperTokenMiddleware(cfg.Scraper.Token))
		{
			scraper.POST("/views", RateLimitMiddleware(redisClient, ingestRule, KeyByIP), publicHandler.IngestViewCount)
			scraper.GET("/views/:id", publicHandler.GetViewSnapshot)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 仪表盘
				authorized.GET("/dashboard", adminHandler.GetAdminDashboard)

				// 广告主管理
				authorized.GET("/advertisers", adminHandler.GetAdminAdvertisers)
				authorized.POST("/advertisers", adminHandler.CreateAdminAdvertiser)
				authorized.PUT("/advertisers/:id", adminHandler.UpdateAdminAdvertiser)

				// 活动管理
				authorized.GET("/campaigns", adminHandler.GetAdminCampaigns)
				authorized.GET("/campaigns/:id", adminHandler.GetAdminCampaign)
				authorized.POST("/campaigns", adminHandler.CreateAdminCampaign)
				authorized.PUT("/campaigns/:id", adminHandler.UpdateAdminCampaign)
				authorized.PATCH("/campaigns/:id/status", adminHandler.ChangeAdminCampaignStatus)

				// 投稿审核
				authorized.GET("/submissions", adminHandler.GetAdminSubmissions)
				authorized.GET("/submissions/:id", adminHandler.GetAdminSubmission)
				authorized.POST("/submissions/:id/approve", adminHandler.ApproveAdminSubmission)
				authorized.POST("/submissions/:id/reject", adminHandler.RejectAdminSubmission)

				// 创作者管理
				authorized.GET("/creators", adminHandler.GetAdminCreators)
				authorized.GET("/creators/:id", adminHandler.GetAdminCreator)
				authorized.POST("/creators/:id/vetting", adminHandler.ReviewAdminCreatorVetting)

				// 提现审核
				authorized.GET("/payouts", adminHandler.GetAdminPayouts)
				authorized.POST("/payouts/:id/review", adminHandler.ReviewAdminPayout)

				// 账号设置
				authorized.PUT("/password", adminHandler.AdminChangePassword)

				// 权限目录
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
