package models

import (
	"bytes"
	"encoding/json"
)

// Task is the JSON shape served to clients. Completed is always a real bool;
// the 0/1 storage flag never leaves the repository.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// CreateTaskRequest is the accepted body of POST /api/tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

// Optional distinguishes a JSON field that was left out from one that was
// sent as null and from one that carries a value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked for keys present in the document,
// including explicit nulls.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// TaskPatch is the accepted body of PUT /api/tasks/:id.
type TaskPatch struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Completed   Optional[bool]   `json:"completed"`
}

// FieldValue is one column assignment of a partial update.
// A nil Value is written as SQL NULL.
type FieldValue struct {
	Column string
	Value  any
}

// Fields returns the present fields in a fixed column order.
func (p TaskPatch) Fields() []FieldValue {
	var fields []FieldValue
	if p.Title.Set {
		fields = append(fields, FieldValue{Column: "title", Value: nullable(p.Title)})
	}
	if p.Description.Set {
		fields = append(fields, FieldValue{Column: "description", Value: nullable(p.Description)})
	}
	if p.Completed.Set {
		fields = append(fields, FieldValue{Column: "completed", Value: nullable(p.Completed)})
	}
	return fields
}

// Empty reports whether no field was supplied at all.
func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Completed.Set
}

func nullable[T any](o Optional[T]) any {
	if !o.Valid {
		return nil
	}
	return o.Value
}
