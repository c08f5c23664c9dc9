package public

import (
	"errors"

	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var submissionCommonErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.submission_not_found"},
	{target: service.ErrSubmissionLinkInvalid, code: response.CodeBadRequest, key: "error.submission_link_invalid"},
	{target: service.ErrSubmissionPlatformInvalid, code: response.CodeBadRequest, key: "error.submission_platform_invalid"},
	{target: service.ErrSubmissionStatusInvalid, code: response.CodeBadRequest, key: "error.submission_status_invalid"},
	{target: service.ErrCreatorNotVetted, code: response.CodeForbidden, key: "error.creator_not_vetted"},
	{target: service.ErrCampaignNotActive, code: response.CodeBadRequest, key: "error.campaign_not_active"},
}

var viewIngestErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.submission_not_found"},
	{target: service.ErrSubmissionStatusInvalid, code: response.CodeBadRequest, key: "error.submission_status_invalid"},
	{target: service.ErrViewCountInvalid, code: response.CodeBadRequest, key: "error.view_count_invalid"},
	{target: service.ErrViewCountRegressed, code: response.CodeBadRequest, key: "error.view_count_regressed"},
	{target: service.ErrCampaignRateInvalid, code: response.CodeBadRequest, key: "error.campaign_rate_invalid"},
	{target: service.ErrCampaignBudgetInvalid, code: response.CodeBadRequest, key: "error.campaign_budget_invalid"},
	{target: service.ErrStorageUnavailable, code: response.CodeInternal, key: "error.storage_unavailable"},
}

var creatorAuthErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, key: "error.password_weak"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.password_old_invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.creator_not_found"},
}

var vettingErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.creator_not_found"},
	{target: service.ErrVettingProfileIncomplete, code: response.CodeBadRequest, key: "error.vetting_profile_incomplete"},
	{target: service.ErrVettingAlreadyReviewed, code: response.CodeBadRequest, key: "error.vetting_already_reviewed"},
}

var payoutErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.creator_not_found"},
	{target: service.ErrPayoutAmountInvalid, code: response.CodeBadRequest, key: "error.payout_amount_invalid"},
	{target: service.ErrPayoutBelowMinimum, code: response.CodeBadRequest, key: "error.payout_below_minimum"},
	{target: service.ErrPayoutUpiMissing, code: response.CodeBadRequest, key: "error.payout_upi_missing"},
	{target: service.ErrInsufficientBalance, code: response.CodeBadRequest, key: "error.payout_insufficient_balance"},
}

func respondSubmissionError(c *gin.Context, err error) {
	respondWithMappedError(c, err, submissionCommonErrorRules, response.CodeInternal, "error.submission_create_failed")
}

func respondViewIngestError(c *gin.Context, err error) {
	respondWithMappedError(c, err, viewIngestErrorRules, response.CodeInternal, "error.view_ingest_failed")
}

func respondCreatorAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, creatorAuthErrorRules, response.CodeInternal, "error.internal")
}

func respondVettingError(c *gin.Context, err error) {
	respondWithMappedError(c, err, vettingErrorRules, response.CodeInternal, "error.vetting_submit_failed")
}

func respondPayoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, payoutErrorRules, response.CodeInternal, "error.payout_create_failed")
}
