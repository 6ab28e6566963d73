package dto

import (
	"bytes"
	"encoding/json"
)

// Optional 部分更新リクエストのフィールド。
// キー省略（Set=false）、明示的なnull（Set=true, Valid=false）、
// 値あり（Set=true, Valid=true）の3状態を区別する。
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
