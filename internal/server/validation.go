package server

import (
	"sync"

	"prized-pic/internal/identity"
	"prized-pic/internal/voting"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("votecategory", func(fl validator.FieldLevel) bool {
			_, ok := voting.ParseCategory(fl.Field().String())
			return ok
		})
		_ = engine.RegisterValidation("voterid", func(fl validator.FieldLevel) bool {
			_, ok := identity.Normalize(fl.Field().String())
			return ok
		})
	})
}
