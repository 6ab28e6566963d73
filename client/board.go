package client

import (
	"context"
	"errors"
	"gin-taskboard/constants"
	"gin-taskboard/dto"
	"gin-taskboard/models"
)

var (
	ErrNotOnBoard    = errors.New("todo is not on the board")
	ErrUnknownColumn = errors.New("unknown board column")
)

// Columns ボードのカラム順（To Do / In Progress / Done）
var Columns = []string{constants.StatusTodo, constants.StatusInProgress, constants.StatusDone}

// Board ステータスごとの3カラムに分割したかんばんボード状態。
// 分割はステータスを唯一の情報源としてGroupByStatusで導出する。
type Board struct {
	api     *Client
	Columns map[string][]models.Todo
}

func NewBoard(api *Client) *Board {
	return &Board{api: api, Columns: emptyColumns()}
}

// Refresh サーバーから全件取得してボードを作り直す
func (b *Board) Refresh(ctx context.Context) error {
	todos, err := b.api.ListTodos(ctx, dto.TodoFilter{})
	if err != nil {
		return err
	}
	b.Columns = GroupByStatus(todos)
	return nil
}

// Move Todoを別カラムへ移動する。ローカル状態を先に更新してから
// サーバーに反映し、失敗したら移動前のスナップショットに巻き戻す。
func (b *Board) Move(ctx context.Context, todoID uint, toStatus string) error {
	if _, ok := b.Columns[toStatus]; !ok {
		return ErrUnknownColumn
	}

	fromStatus, index := b.locate(todoID)
	if index < 0 {
		return ErrNotOnBoard
	}
	if fromStatus == toStatus {
		return nil
	}

	snapshot := b.snapshot()

	todo := b.Columns[fromStatus][index]
	b.Columns[fromStatus] = append(b.Columns[fromStatus][:index], b.Columns[fromStatus][index+1:]...)
	todo.Status = toStatus
	b.Columns[toStatus] = append(b.Columns[toStatus], todo)

	if _, err := b.api.UpdateTodo(ctx, todoID, map[string]interface{}{"status": toStatus}); err != nil {
		b.Columns = snapshot
		return err
	}
	return nil
}

// GroupByStatus ステータスで3分割する純粋関数。
// 未知のステータスのTodoは無視される。
func GroupByStatus(todos []models.Todo) map[string][]models.Todo {
	columns := emptyColumns()
	for _, todo := range todos {
		if _, ok := columns[todo.Status]; ok {
			columns[todo.Status] = append(columns[todo.Status], todo)
		}
	}
	return columns
}

func (b *Board) locate(todoID uint) (string, int) {
	for _, status := range Columns {
		for i, todo := range b.Columns[status] {
			if todo.ID == todoID {
				return status, i
			}
		}
	}
	return "", -1
}

func (b *Board) snapshot() map[string][]models.Todo {
	copied := make(map[string][]models.Todo, len(b.Columns))
	for status, todos := range b.Columns {
		column := make([]models.Todo, len(todos))
		copy(column, todos)
		copied[status] = column
	}
	return copied
}

func emptyColumns() map[string][]models.Todo {
	columns := make(map[string][]models.Todo, len(Columns))
	for _, status := range Columns {
		columns[status] = []models.Todo{}
	}
	return columns
}
