package public

import (
	"strconv"

	handlershared "github.com/viewspecash/viewspecash/internal/http/handlers/shared"
	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/repository"

	"github.com/gin-gonic/gin"
)

// WalletOverview 查询当前创作者钱包总览
func (h *Handler) WalletOverview(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	overview, err := h.WalletService.Overview(creatorID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wallet_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"wallet": overview})
}

// ListWalletTransactions 查询当前创作者账本流水
func (h *Handler) ListWalletTransactions(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	txns, total, err := h.WalletService.ListTransactions(repository.TransactionListFilter{
		Page:      page,
		PageSize:  pageSize,
		CreatorID: creatorID,
		Type:      c.Query("type"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.transaction_fetch_failed", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"transactions": txns}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// CreatePayoutRequestBody 提现申请请求
type CreatePayoutRequestBody struct {
	Amount models.Money `json:"amount" binding:"required"`
}

// CreatePayoutRequest 创作者申请提现
func (h *Handler) CreatePayoutRequest(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	var req CreatePayoutRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	request, err := h.WalletService.RequestPayout(creatorID, req.Amount)
	if err != nil {
		respondPayoutError(c, err)
		return
	}
	response.Success(c, gin.H{"payout_request": request})
}

// ListMyPayouts 查询当前创作者提现申请
func (h *Handler) ListMyPayouts(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	requests, total, err := h.WalletService.ListPayouts(repository.PayoutRequestListFilter{
		Page:      page,
		PageSize:  pageSize,
		CreatorID: creatorID,
		Status:    c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.wallet_fetch_failed", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"payout_requests": requests}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}
