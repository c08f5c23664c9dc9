package queue

import (
	"encoding/json"

	"github.com/viewspecash/viewspecash/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskSubmissionStatusEmail 投稿状态通知任务
	TaskSubmissionStatusEmail = constants.TaskSubmissionStatusEmail
	// TaskCampaignBudgetCheck 活动预算核查任务
	TaskCampaignBudgetCheck = constants.TaskCampaignBudgetCheck
)

// SubmissionStatusEmailPayload 投稿状态通知任务载荷
type SubmissionStatusEmailPayload struct {
	SubmissionID uint   `json:"submission_id"`
	Status       string `json:"status"`
}

// CampaignBudgetCheckPayload 活动预算核查任务载荷
type CampaignBudgetCheckPayload struct {
	CampaignID uint `json:"campaign_id"`
}

// NewSubmissionStatusEmailTask 创建投稿状态通知任务
func NewSubmissionStatusEmailTask(payload SubmissionStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSubmissionStatusEmail, body), nil
}

// NewCampaignBudgetCheckTask 创建活动预算核查任务
func NewCampaignBudgetCheckTask(payload CampaignBudgetCheckPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCampaignBudgetCheck, body), nil
}
