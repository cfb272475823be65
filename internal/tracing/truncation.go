package tracing

import (
	"strings"
)

const (
	// DefaultMaxLength 默认最大属性长度
	DefaultMaxLength = 200

	// MaxRedisLength Redis键最大长度
	MaxRedisLength = 100

	// MaxFilenameLength 上传文件名最大长度
	MaxFilenameLength = 120
)

// piiKeywords 属性名中包含这些关键字时对值做掩码
var piiKeywords = []string{
	"email", "phone", "password", "id_card", "address", "name", "姓名", "电话", "邮箱", "secret", "token", "api_key",
}

// SafeAttributeValue 确保属性值安全，不包含敏感信息
// 敏感属性返回掩码后的值，其余超过 maxLength 的值被截断
func SafeAttributeValue(name string, value string, maxLength int) string {
	lowerName := strings.ToLower(name)
	for _, keyword := range piiKeywords {
		if strings.Contains(lowerName, keyword) {
			return MaskPII(value)
		}
	}
	return TruncateString(value, maxLength)
}

// MaskPII 对个人敏感信息进行掩码处理
// "张三" -> "张*"，"王小明" -> "王*明"，更长的值保留首尾各两个字符
func MaskPII(value string) string {
	if value == "" {
		return ""
	}

	runes := []rune(value)
	length := len(runes)

	switch {
	case length <= 1:
		return "*"
	case length == 2:
		return string(runes[0:1]) + "*"
	case length <= 4:
		return string(runes[0:1]) + strings.Repeat("*", length-2) + string(runes[length-1:])
	}
	// "jane.doe@example.com" -> "ja****************om"
	return string(runes[0:2]) + strings.Repeat("*", length-4) + string(runes[length-2:])
}

// TruncateString 截断字符串，保留前后部分，中间用...连接
func TruncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	half := (maxLength - 3) / 2
	if half < 1 {
		half = 1
	}
	return string(runes[:half]) + "..." + string(runes[len(runes)-half:])
}

// SafeRedisKey 安全处理Redis键
func SafeRedisKey(key string) string {
	return TruncateString(key, MaxRedisLength)
}

// SafeFilename 安全处理上传文件名
func SafeFilename(name string) string {
	return TruncateString(name, MaxFilenameLength)
}
