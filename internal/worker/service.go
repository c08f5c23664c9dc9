package worker

import (
	"context"
	"errors"
	"time"

	"github.com/viewspecash/viewspecash/internal/config"
	"github.com/viewspecash/viewspecash/internal/logger"
	"github.com/viewspecash/viewspecash/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	staleScrapeInterval  = time.Hour
	staleScrapeBatchSize = 200
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.SubmissionService != nil {
		go s.runStaleScrapeLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runStaleScrapeLoop 周期巡检长时间未回传播放量的投稿
func (s *Service) runStaleScrapeLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.SubmissionService == nil {
		return
	}
	staleAfterHours := 48
	if s.consumer.Config != nil && s.consumer.Config.Scraper.StaleAfterHours > 0 {
		staleAfterHours = s.consumer.Config.Scraper.StaleAfterHours
	}
	staleAfter := time.Duration(staleAfterHours) * time.Hour

	runOnce := func() {
		stale, err := s.consumer.SubmissionService.ListStale(staleAfter, staleScrapeBatchSize)
		if err != nil {
			logger.Warnw("worker_stale_scrape_list_failed", "error", err)
			return
		}
		for _, submission := range stale {
			logger.Warnw("submission_view_data_stale",
				"submission_id", submission.ID,
				"campaign_id", submission.CampaignID,
				"creator_id", submission.CreatorID,
				"status", submission.Status,
				"last_scraped_at", submission.LastScrapedAt,
			)
		}
		if len(stale) > 0 {
			logger.Infow("worker_stale_scrape_sweep_done", "count", len(stale))
		}
	}
	runOnce()

	ticker := time.NewTicker(staleScrapeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
