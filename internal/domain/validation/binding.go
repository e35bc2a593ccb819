package validation

import (
	"errors"

	"brcargo_cotacoes/pkg/docnum"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var errNoValidatorEngine = errors.New("gin binding validator is not go-playground/validator")

// RegisterBindingTags adds the "cnpj" and "cep" tags to gin's request
// validator. Empty values pass; combine with "required" when needed.
func RegisterBindingTags() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errNoValidatorEngine
	}
	return RegisterTags(v)
}

func RegisterTags(v *validator.Validate) error {
	if err := v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || docnum.IsCNPJ(s)
	}); err != nil {
		return err
	}
	return v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || docnum.IsCEP(s)
	})
}
