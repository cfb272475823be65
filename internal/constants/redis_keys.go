package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// RateLimitModulePrefix 限流模块
	RateLimitModulePrefix = "ratelimit"

	// EntityWindow 固定窗口计数实体
	EntityWindow = "window"

	// KeyRateLimitWindow 上传接口固定窗口计数 (STRING, INCR)
	// 格式: app:ratelimit:window:{clientKey}:{unixMinute}
	KeyRateLimitWindow = AppPrefix + ":" + RateLimitModulePrefix + ":" + EntityWindow + ":%s:%d"
)
