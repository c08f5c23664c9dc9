package i18n

import "github.com/viewspecash/viewspecash/internal/constants"

// catalog 站点文案表，key 统一使用 error.xxx 形式
var catalog = map[string]map[string]string{
	constants.LocaleZhCN: {
		"error.bad_request":            "请求参数有误",
		"error.unauthorized":           "未登录或登录已过期",
		"error.forbidden":              "没有操作权限",
		"error.not_found":              "资源不存在",
		"error.internal":               "服务器内部错误",
		"error.save_failed":            "保存失败",
		"error.rate_limited":           "操作过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable": "限流服务暂不可用",

		"error.jwt_secret_missing":    "服务端密钥未配置",
		"error.auth_header_missing":   "缺少 Authorization 请求头",
		"error.auth_header_invalid":   "Authorization 请求头格式错误",
		"error.token_invalid":         "登录令牌无效",
		"error.token_revoked":         "登录令牌已失效，请重新登录",

		"error.login_failed":             "登录失败",
		"error.login_too_many":           "登录尝试过于频繁，请 %d 秒后再试",
		"error.admin_login_invalid":      "账号或密码错误",
		"error.invalid_credentials":      "邮箱或密码错误",
		"error.email_exists":             "邮箱已被注册",
		"error.register_failed":          "注册失败",
		"error.password_old_invalid":     "原密码错误",
		"error.password_weak":            "密码强度不足",
		"error.password_min_length":      "密码长度不能少于 %d 位",
		"error.password_require_upper":   "密码需要包含大写字母",
		"error.password_require_lower":   "密码需要包含小写字母",
		"error.password_require_number":  "密码需要包含数字",
		"error.password_require_special": "密码需要包含特殊字符",
		"error.user_not_found":           "用户不存在",
		"error.context_invalid":          "上下文身份信息无效",
		"error.context_type_invalid":     "上下文身份类型错误",
		"error.creator_id_invalid":       "创作者身份信息无效",
		"error.creator_id_type_invalid":  "创作者身份类型错误",
		"error.admin_id_invalid":         "管理员身份信息无效",
		"error.admin_id_type_invalid":    "管理员身份类型错误",
		"error.storage_unavailable":      "存储服务暂不可用",

		"error.creator_not_found":           "创作者不存在",
		"error.creator_not_vetted":          "创作者资质未通过审核",
		"error.vetting_already_reviewed":    "资质审核已处理",
		"error.vetting_profile_incomplete":  "请先完善资料后再提交审核",
		"error.vetting_submit_failed":       "提交资质审核失败",
		"error.profile_update_failed":       "资料保存失败",

		"error.campaign_not_found":      "活动不存在",
		"error.campaign_not_active":     "活动未开放投稿",
		"error.campaign_fetch_failed":   "获取活动失败",
		"error.campaign_create_failed":  "创建活动失败",
		"error.campaign_update_failed":  "更新活动失败",
		"error.campaign_status_invalid": "活动状态不允许该操作",
		"error.campaign_rate_invalid":   "千次播放单价无效",
		"error.campaign_budget_invalid": "活动预算配置无效",

		"error.submission_not_found":         "投稿不存在",
		"error.submission_fetch_failed":      "获取投稿失败",
		"error.submission_create_failed":     "创建投稿失败",
		"error.submission_link_invalid":      "作品链接格式无效",
		"error.submission_platform_invalid":  "投放平台无效",
		"error.submission_status_invalid":    "投稿当前状态不允许该操作",
		"error.view_count_invalid":           "播放量数值无效",
		"error.view_count_regressed":         "播放量不允许回退",
		"error.view_ingest_failed":           "播放量更新失败",
		"error.scraper_token_invalid":        "回调令牌无效",

		"error.wallet_fetch_failed":          "获取钱包信息失败",
		"error.transaction_fetch_failed":     "获取交易记录失败",
		"error.payout_amount_invalid":        "提现金额无效",
		"error.payout_below_minimum":         "提现金额低于最低限额",
		"error.payout_insufficient_balance":  "钱包余额不足",
		"error.payout_upi_missing":           "请先填写 UPI 收款账号",
		"error.payout_not_found":             "提现申请不存在",
		"error.payout_already_reviewed":      "提现申请已处理",
		"error.payout_create_failed":         "提交提现申请失败",
		"error.payout_review_failed":         "提现审核失败",

		"error.dashboard_fetch_failed": "获取统计数据失败",
	},
	constants.LocaleEnUS: {
		"error.bad_request":            "Invalid request parameters",
		"error.unauthorized":           "Not logged in or session expired",
		"error.forbidden":              "Permission denied",
		"error.not_found":              "Resource not found",
		"error.internal":               "Internal server error",
		"error.save_failed":            "Save failed",
		"error.rate_limited":           "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter unavailable",

		"error.jwt_secret_missing":    "Server JWT secret is not configured",
		"error.auth_header_missing":   "Missing Authorization header",
		"error.auth_header_invalid":   "Malformed Authorization header",
		"error.token_invalid":         "Invalid access token",
		"error.token_revoked":         "Access token revoked, please log in again",

		"error.login_failed":             "Login failed",
		"error.login_too_many":           "Too many login attempts, retry in %d seconds",
		"error.admin_login_invalid":      "Invalid username or password",
		"error.invalid_credentials":      "Invalid email or password",
		"error.email_exists":             "Email already registered",
		"error.register_failed":          "Registration failed",
		"error.password_old_invalid":     "Current password is incorrect",
		"error.password_weak":            "Password is too weak",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a digit",
		"error.password_require_special": "Password must contain a special character",
		"error.user_not_found":           "User not found",
		"error.context_invalid":          "Invalid identity in request context",
		"error.context_type_invalid":     "Unexpected identity type in request context",
		"error.creator_id_invalid":       "Invalid creator identity",
		"error.creator_id_type_invalid":  "Unexpected creator identity type",
		"error.admin_id_invalid":         "Invalid admin identity",
		"error.admin_id_type_invalid":    "Unexpected admin identity type",
		"error.storage_unavailable":      "Storage temporarily unavailable",

		"error.creator_not_found":          "Creator not found",
		"error.creator_not_vetted":         "Creator has not passed vetting",
		"error.vetting_already_reviewed":   "Vetting request already reviewed",
		"error.vetting_profile_incomplete": "Complete your profile before requesting vetting",
		"error.vetting_submit_failed":      "Failed to submit vetting request",
		"error.profile_update_failed":      "Failed to save profile",

		"error.campaign_not_found":      "Campaign not found",
		"error.campaign_not_active":     "Campaign is not open for submissions",
		"error.campaign_fetch_failed":   "Failed to fetch campaigns",
		"error.campaign_create_failed":  "Failed to create campaign",
		"error.campaign_update_failed":  "Failed to update campaign",
		"error.campaign_status_invalid": "Campaign status does not allow this action",
		"error.campaign_rate_invalid":   "Invalid rate per thousand views",
		"error.campaign_budget_invalid": "Invalid campaign budget configuration",

		"error.submission_not_found":        "Submission not found",
		"error.submission_fetch_failed":     "Failed to fetch submissions",
		"error.submission_create_failed":    "Failed to create submission",
		"error.submission_link_invalid":     "Invalid post link",
		"error.submission_platform_invalid": "Invalid target platform",
		"error.submission_status_invalid":   "Submission status does not allow this action",
		"error.view_count_invalid":          "Invalid view count",
		"error.view_count_regressed":        "View count must not decrease",
		"error.view_ingest_failed":          "Failed to record view count",
		"error.scraper_token_invalid":       "Invalid scraper token",

		"error.wallet_fetch_failed":         "Failed to fetch wallet",
		"error.transaction_fetch_failed":    "Failed to fetch transactions",
		"error.payout_amount_invalid":       "Invalid payout amount",
		"error.payout_below_minimum":        "Payout amount below minimum",
		"error.payout_insufficient_balance": "Insufficient wallet balance",
		"error.payout_upi_missing":          "Add a UPI ID before requesting a payout",
		"error.payout_not_found":            "Payout request not found",
		"error.payout_already_reviewed":     "Payout request already reviewed",
		"error.payout_create_failed":        "Failed to create payout request",
		"error.payout_review_failed":        "Failed to review payout request",

		"error.dashboard_fetch_failed": "Failed to fetch dashboard stats",
	},
}
