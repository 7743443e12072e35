package utils_test

import (
	"testing"

	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/utils"
)

func TestIsValidHHMM(t *testing.T) {
	for _, s := range []string{"00:00", "09:00", "23:59", "12:30"} {
		assert.True(t, utils.IsValidHHMM(s), s)
	}
	for _, s := range []string{"24:00", "9:00", "09:60", "0900", "", "09:00:00"} {
		assert.False(t, utils.IsValidHHMM(s), s)
	}
}

func TestCustomValidations(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, utils.RegisterCustomValidations(v))

	testCases := []struct {
		tag   string
		valid []string
		bad   []string
	}{
		{"routecode", []string{"RT001", "RT999"}, []string{"RT01", "rt001", "RT0001"}},
		{"ordercode", []string{"ORD001"}, []string{"ORD1", "OR001", "ORD0001"}},
		{"phone", []string{"9876500001"}, []string{"987650000", "98765000011", "98765abcde"}},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			for _, s := range tc.valid {
				assert.NoError(t, v.Var(s, tc.tag), s)
			}
			for _, s := range tc.bad {
				assert.Error(t, v.Var(s, tc.tag), s)
			}
		})
	}
}

func TestCustomTranslations(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, utils.RegisterCustomValidations(v))

	zh := zh.New()
	trans, _ := ut.New(zh, zh).GetTranslator("zh")
	require.NoError(t, utils.RegisterCustomTranslations(v, trans))

	type request struct {
		RouteStartTime string `validate:"hhmm"`
	}

	err := v.Struct(request{RouteStartTime: "25:00"})
	require.Error(t, err)

	validationErrors, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	assert.Equal(t, "RouteStartTime必须是 HH:MM 格式的 24 小时制时间", validationErrors[0].Translate(trans))
}
