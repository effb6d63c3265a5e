package models

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern matches E.164 numbers the call provider accepts: a plus sign,
// a non-zero country code digit, then up to 14 more digits. US numbers take
// the +1XXXXXXXXXX shape.
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

func validUSPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// RegisterValidators installs the custom validators on gin's binding engine.
// Must be called once at startup before any request binding happens.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("usphone", validUSPhone)
}
