package constants

// SessionCookieName セッショントークンを載せるクッキー名
const SessionCookieName = "token"

// ユーザーロール
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Todoの優先度
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Todoのワークフローステータス
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// エラーメッセージ
const (
	ErrTodoNotFound       = "Todo not found"
	ErrCategoryNotFound   = "Category not found"
	ErrUserNotFound       = "User not found"
	ErrInvalidCredentials = "Invalid credentials"
	ErrEmailExists        = "Email already exists"
	ErrCategoryExists     = "Category already exists"
	ErrUnexpected         = "Unexpected error"
	ErrInvalidID          = "Invalid id"
	ErrInvalidInput       = "Invalid input"
	ErrInvalidQuery       = "Invalid query parameter"
	ErrRecordNotFound     = "record not found"
)

// ValidPriority 定義済みの優先度かどうかをチェック
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidStatus 定義済みのステータスかどうかをチェック
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}
