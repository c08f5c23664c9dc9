package i18n

import (
	"fmt"
	"strings"

	"github.com/viewspecash/viewspecash/internal/constants"

	"github.com/gin-gonic/gin"
)

// ResolveLocale 解析请求语言：优先 query 参数，其次 Accept-Language 头，最后回退默认语言。
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.SupportedLocales[0]
	}
	if locale := normalizeLocale(c.Query("locale")); locale != "" {
		return locale
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := normalizeLocale(lang); locale != "" {
			return locale
		}
	}
	return constants.SupportedLocales[0]
}

// T 返回指定语言的消息文案，未命中时按支持语言顺序回退，最终返回 key 本身。
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	for _, fallback := range constants.SupportedLocales {
		if fallback == locale {
			continue
		}
		if msg, ok := catalog[fallback][key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 返回带格式化参数的消息文案。
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func normalizeLocale(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	lower := strings.ToLower(value)
	for _, locale := range constants.SupportedLocales {
		if strings.ToLower(locale) == lower {
			return locale
		}
	}
	// 仅语言前缀匹配（如 zh / en）
	prefix := strings.SplitN(lower, "-", 2)[0]
	for _, locale := range constants.SupportedLocales {
		if strings.SplitN(strings.ToLower(locale), "-", 2)[0] == prefix {
			return locale
		}
	}
	return ""
}
