package provider

import (
	"github.com/viewspecash/viewspecash/internal/authz"
	"github.com/viewspecash/viewspecash/internal/cache"
	"github.com/viewspecash/viewspecash/internal/config"
	"github.com/viewspecash/viewspecash/internal/logger"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/queue"
	"github.com/viewspecash/viewspecash/internal/repository"
	"github.com/viewspecash/viewspecash/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo      repository.AdminRepository
	CreatorRepo    repository.CreatorRepository
	AdvertiserRepo repository.AdvertiserRepository
	CampaignRepo   repository.CampaignRepository
	SubmissionRepo repository.SubmissionRepository
	TransactionRepo repository.TransactionRepository
	PayoutRepo     repository.PayoutRequestRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	CreatorAuthService *service.CreatorAuthService
	CreatorService     *service.CreatorService
	CampaignService    *service.CampaignService
	SubmissionService  *service.SubmissionService
	WalletService      *service.WalletService
	DashboardService   *service.DashboardService
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
	c.CreatorRepo = repository.NewCreatorRepository(db)
	c.AdvertiserRepo = repository.NewAdvertiserRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.SubmissionRepo = repository.NewSubmissionRepository(db)
	c.TransactionRepo = repository.NewTransactionRepository(db)
	c.PayoutRepo = repository.NewPayoutRequestRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CreatorAuthService = service.NewCreatorAuthService(c.Config, c.CreatorRepo)
	c.CreatorService = service.NewCreatorService(c.CreatorRepo)
	c.CampaignService = service.NewCampaignService(c.CampaignRepo, c.AdvertiserRepo)
	c.SubmissionService = service.NewSubmissionService(c.SubmissionRepo, c.CampaignRepo, c.CreatorRepo, c.TransactionRepo, c.QueueClient)
	c.WalletService = service.NewWalletService(c.CreatorRepo, c.TransactionRepo, c.PayoutRepo, c.Config.Payout)
	c.DashboardService = service.NewDashboardService(c.CreatorRepo, c.CampaignRepo, c.SubmissionRepo, c.TransactionRepo)
}
