package utils

import (
	"regexp"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var (
	hhmmRegexp      = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	routeCodeRegexp = regexp.MustCompile(`^RT\d{3}$`)
	orderCodeRegexp = regexp.MustCompile(`^ORD\d{3}$`)
	phoneRegexp     = regexp.MustCompile(`^\d{10}$`)
)

var customValidations = map[string]*regexp.Regexp{
	"hhmm":      hhmmRegexp,
	"routecode": routeCodeRegexp,
	"ordercode": orderCodeRegexp,
	"phone":     phoneRegexp,
}

var customTranslations = map[string]string{
	"hhmm":      "{0}必须是 HH:MM 格式的 24 小时制时间",
	"routecode": "{0}必须是 RT001 这样的格式",
	"ordercode": "{0}必须是 ORD001 这样的格式",
	"phone":     "{0}必须是 10 位数字",
}

// RegisterCustomValidations 注册项目中用到的自定义校验规则
func RegisterCustomValidations(v *validator.Validate) error {
	for tag, re := range customValidations {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}

// RegisterCustomTranslations 为自定义校验规则注册中文错误信息
func RegisterCustomTranslations(v *validator.Validate, trans ut.Translator) error {
	for tag, text := range customTranslations {
		tag, text := tag, text
		err := v.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, text, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func IsValidHHMM(s string) bool {
	return hhmmRegexp.MatchString(s)
}
