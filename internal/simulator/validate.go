package simulator

import (
	"github.com/go-playground/validator/v10"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := utils.RegisterCustomValidations(v); err != nil {
		panic(err)
	}
	return v
}

// ValidateParameters 校验模拟参数是否在允许的范围内
func ValidateParameters(params *domain.SimulationParameters) error {
	return validate.Struct(params)
}
