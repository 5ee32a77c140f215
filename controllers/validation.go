package controllers

import (
	"bookstore/services/bookrequest"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding rules used by request models.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("isbn13", func(fl validator.FieldLevel) bool {
		return bookrequest.ValidISBN13(fl.Field().String())
	})
}
