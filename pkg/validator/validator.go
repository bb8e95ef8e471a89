package validator

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *gpvalidator.Validate
)

// instance devuelve el validador singleton (los tags `validate:` de los DTOs).
func instance() *gpvalidator.Validate {
	once.Do(func() {
		v = gpvalidator.New()
	})
	return v
}

// Struct valida un struct según sus tags `validate:"..."`.
func Struct(s interface{}) error {
	return instance().Struct(s)
}
