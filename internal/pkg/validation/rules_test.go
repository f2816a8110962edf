package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Level  string `json:"level" validate:"required,level"`
	Day    string `json:"day" validate:"required,weekday"`
	Matric string `json:"matricNumber" validate:"required,matric"`
}

func TestRegisterCustomValidators(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidators(v))

	assert.NoError(t, v.Struct(sample{Level: "300", Day: "Monday", Matric: "CSC12345"}))

	err := v.Struct(sample{Level: "600", Day: "Saturday", Matric: "1234"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = FieldMessage(fe)
	}
	assert.Equal(t, "level must be one of: 100, 200, 300, 400, 500", fields["level"])
	assert.Equal(t, "day must be one of: Monday, Tuesday, Wednesday, Thursday, Friday", fields["day"])
	assert.Equal(t, "matricNumber must be exactly 8 letters or digits", fields["matricNumber"])
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsValidLevel("100"))
	assert.False(t, IsValidLevel("150"))
	assert.True(t, IsValidWeekday("Friday"))
	assert.False(t, IsValidWeekday("friday"))
	assert.True(t, IsValidMatricNumber("20231234"))
	assert.False(t, IsValidMatricNumber("2023-123"))
}

type padded struct {
	Name *string `json:"name" validate:"omitempty,trimmin=3,trimmax=5"`
	Code string  `json:"code" validate:"required,trimmin=6"`
}

func TestTrimmedLengthTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidators(v))

	name := "  Ada  "
	assert.NoError(t, v.Struct(padded{Name: &name, Code: " CSC101 "}))
	assert.NoError(t, v.Struct(padded{Code: "CSC101"}))

	blank := "     "
	err := v.Struct(padded{Name: &blank, Code: " ABC12 "})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = FieldMessage(fe)
	}
	assert.Equal(t, "name must be at least 3 characters", fields["name"])
	assert.Equal(t, "code must be at least 6 characters", fields["code"])

	long := " Adaeze "
	assert.Error(t, v.Struct(padded{Name: &long, Code: "CSC101"}))
}
