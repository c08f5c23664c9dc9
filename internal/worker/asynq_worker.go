package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/viewspecash/viewspecash/internal/logger"
	"github.com/viewspecash/viewspecash/internal/provider"
	"github.com/viewspecash/viewspecash/internal/queue"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskSubmissionStatusEmail, c.handleSubmissionStatusEmail)
	mux.HandleFunc(queue.TaskCampaignBudgetCheck, c.handleCampaignBudgetCheck)
}

// handleSubmissionStatusEmail 投稿状态变更通知
// 当前仅记录结构化日志，邮件通道接入后在此处发送
func (c *Consumer) handleSubmissionStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_submission_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SubmissionStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_submission_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.SubmissionID == 0 {
		logger.Debugw("worker_submission_status_email_skip_invalid_payload", "submission_id", payload.SubmissionID)
		return nil
	}
	submission, err := c.SubmissionRepo.GetByID(payload.SubmissionID)
	if err != nil {
		logger.Warnw("worker_submission_status_email_fetch_failed", "submission_id", payload.SubmissionID, "error", err)
		return err
	}
	if submission == nil {
		logger.Debugw("worker_submission_status_email_skip_not_found", "submission_id", payload.SubmissionID)
		return nil
	}
	creator, err := c.CreatorRepo.GetByID(submission.CreatorID)
	if err != nil {
		logger.Warnw("worker_submission_status_email_fetch_creator_failed",
			"submission_id", submission.ID,
			"creator_id", submission.CreatorID,
			"error", err,
		)
		return err
	}
	if creator == nil {
		logger.Debugw("worker_submission_status_email_skip_creator_not_found",
			"submission_id", submission.ID,
			"creator_id", submission.CreatorID,
		)
		return nil
	}
	logger.Infow("submission_status_notification",
		"submission_id", submission.ID,
		"creator_id", creator.ID,
		"creator_email", creator.Email,
		"campaign_id", submission.CampaignID,
		"status", payload.Status,
	)
	return nil
}

// handleCampaignBudgetCheck 活动预算核查
// 花费达到预算上限时把活动置为已完结，停止继续接受投稿
func (c *Consumer) handleCampaignBudgetCheck(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_campaign_budget_check_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CampaignBudgetCheckPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_campaign_budget_check_unmarshal_failed", "error", err)
		return err
	}
	if payload.CampaignID == 0 {
		logger.Debugw("worker_campaign_budget_check_skip_invalid_payload", "campaign_id", payload.CampaignID)
		return nil
	}
	if c.CampaignService == nil {
		logger.Warnw("worker_campaign_budget_check_skip_service_nil", "campaign_id", payload.CampaignID)
		return nil
	}
	completed, err := c.CampaignService.CompleteIfExhausted(payload.CampaignID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw("worker_campaign_budget_check_skip_not_found", "campaign_id", payload.CampaignID)
			return nil
		}
		logger.Warnw("worker_campaign_budget_check_failed", "campaign_id", payload.CampaignID, "error", err)
		return err
	}
	if completed {
		logger.Infow("campaign_budget_exhausted_completed", "campaign_id", payload.CampaignID)
	}
	return nil
}
