package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
)

var defaultLocale = LocaleEnUS

var supported = map[string]string{
	"en":    LocaleEnUS,
	"en-us": LocaleEnUS,
	"zh":    LocaleZhCN,
	"zh-cn": LocaleZhCN,
}

// ResolveLocale 从请求中解析语言：query 参数 lang 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		if locale, ok := supported[strings.ToLower(lang)]; ok {
			return locale
		}
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		if tag == "" {
			continue
		}
		if locale, ok := supported[tag]; ok {
			return locale
		}
		if idx := strings.Index(tag, "-"); idx > 0 {
			if locale, ok := supported[tag[:idx]]; ok {
				return locale
			}
		}
	}
	return defaultLocale
}

// T 按 key 查找本地化文案，找不到时回退默认语言，再不行返回 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if table, ok := messages[defaultLocale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 带参数的本地化文案
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
