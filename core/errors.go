package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），调用方不做字符串匹配
//
// 传播策略：
//   - "该用户/商品没有信号"类错误（UNKNOWN_USER / NOT_FOUND）由融合引擎
//     就地吸收，表现为该来源贡献零候选，不会上抛给引擎调用方
//   - 构建期配置错误（INVALID_CONFIGURATION）是致命的，阻断启动/重建
type DomainError struct {
	Code    string // 错误代码（如 "UNKNOWN_USER"）
	Message string // 错误消息
	Module  string // 模块名称（如 "model", "engine"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	// ErrorCodeUnknownUser 用户不在交互矩阵中
	ErrorCodeUnknownUser = "UNKNOWN_USER"
	// ErrorCodeNotFound 商品/资源不存在
	ErrorCodeNotFound = "NOT_FOUND"
	// ErrorCodeNoRecommendations 目录为空，兜底也无法给出结果
	ErrorCodeNoRecommendations = "NO_RECOMMENDATIONS"
	// ErrorCodeInvalidConfiguration 构建参数非法（如 SVD 秩超界）
	ErrorCodeInvalidConfiguration = "INVALID_CONFIGURATION"
	// ErrorCodeNotSupported 操作不支持
	ErrorCodeNotSupported = "NOT_SUPPORTED"
)

// 模块名称常量
const (
	ModuleCatalog = "catalog" // 商品目录
	ModuleMatrix  = "matrix"  // 交互矩阵
	ModuleModel   = "model"   // 相似度/分解模型
	ModuleEngine  = "engine"  // 融合引擎
	ModuleStore   = "store"   // 存储
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsUnknownUser 检查错误是否为 UNKNOWN_USER。
func IsUnknownUser(err error) bool {
	return hasCode(err, ErrorCodeUnknownUser)
}

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsNoRecommendations 检查错误是否为 NO_RECOMMENDATIONS。
func IsNoRecommendations(err error) bool {
	return hasCode(err, ErrorCodeNoRecommendations)
}

// IsInvalidConfiguration 检查错误是否为 INVALID_CONFIGURATION。
func IsInvalidConfiguration(err error) bool {
	return hasCode(err, ErrorCodeInvalidConfiguration)
}
