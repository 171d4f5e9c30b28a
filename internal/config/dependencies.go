package config

import (
	"database/sql"
	"reflect"
	"strings"
	"task-api/internal/repository"

	"github.com/go-playground/validator/v10"
)

// Dependencies dibuat sekali setelah database terhubung,
// lalu diteruskan ke route dan handler (bukan variabel global).
type Dependencies struct {
	Tasks    *repository.TaskRepository
	Validate *validator.Validate
}

func NewDependencies(db *sql.DB, driver string) *Dependencies {
	return &Dependencies{
		Tasks:    repository.NewTaskRepository(db, driver),
		Validate: NewValidator(),
	}
}

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
