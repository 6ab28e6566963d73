package dto

import "time"

type CreateTodoInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	CategoryID  *uint      `json:"categoryId"`
}

type UpdateTodoInput struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	IsCompleted Optional[bool]      `json:"isCompleted"`
	Priority    Optional[string]    `json:"priority"`
	Status      Optional[string]    `json:"status"`
	DueDate     Optional[time.Time] `json:"dueDate"`
	CategoryID  Optional[uint]      `json:"categoryId"`
}

// TodoFilter クエリパラメータから組み立てる検索条件。
// nilのフィールドは条件を課さない。
type TodoFilter struct {
	IsCompleted *bool
	Status      *string
	Priority    *string
	CategoryID  *uint
	SortBy      string
	SortOrder   string
}

type DeleteTodoResponse struct {
	DeletedTodoID uint `json:"deletedTodoId"`
}
