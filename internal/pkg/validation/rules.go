package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field constraints shared by request contracts and the database schema
const (
	NameMinLength       = 3
	NameMaxLength       = 50
	PasswordMinLength   = 8
	PasswordMaxLength   = 1024
	MatricNumberLength  = 8
	CourseNameMinLength = 5
	CourseNameMaxLength = 100
	CourseCodeMinLength = 6
	CourseCodeMaxLength = 10
)

// Levels lists accepted academic levels
var Levels = []string{"100", "200", "300", "400", "500"}

// Weekdays lists the days a course can be scheduled on
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var matricPattern = regexp.MustCompile(fmt.Sprintf(`^[A-Za-z0-9]{%d}$`, MatricNumberLength))

// IsValidLevel reports whether level is one of Levels
func IsValidLevel(level string) bool {
	return contains(Levels, level)
}

// IsValidWeekday reports whether day is one of Weekdays
func IsValidWeekday(day string) bool {
	return contains(Weekdays, day)
}

// IsValidMatricNumber reports whether m is exactly MatricNumberLength letters or digits
func IsValidMatricNumber(m string) bool {
	return matricPattern.MatchString(m)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// trimmedLength counts the characters left once surrounding whitespace is removed,
// which is what the services store.
func trimmedLength(v string) int {
	return utf8.RuneCountInString(strings.TrimSpace(v))
}

// RegisterCustomValidators adds the level, weekday, matric, trimmin and trimmax tags
// and makes field errors report JSON names.
func RegisterCustomValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	rules := map[string]func(string) bool{
		"level":   IsValidLevel,
		"weekday": IsValidWeekday,
		"matric":  IsValidMatricNumber,
	}
	for tag, check := range rules {
		check := check
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}

	bounds := map[string]func(length, limit int) bool{
		"trimmin": func(length, limit int) bool { return length >= limit },
		"trimmax": func(length, limit int) bool { return length <= limit },
	}
	for tag, within := range bounds {
		within := within
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return within(trimmedLength(fl.Field().String()), limit)
		})
		if err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

// FieldMessage renders a validator.FieldError as a sentence for API clients
func FieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min", "trimmin":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max", "trimmax":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "len":
		return e.Field() + " must be exactly " + e.Param() + " characters"
	case "email":
		return e.Field() + " must be a valid email address"
	case "level":
		return e.Field() + " must be one of: " + strings.Join(Levels, ", ")
	case "weekday":
		return e.Field() + " must be one of: " + strings.Join(Weekdays, ", ")
	case "matric":
		return fmt.Sprintf("%s must be exactly %d letters or digits", e.Field(), MatricNumberLength)
	case "eqfield":
		return e.Field() + " must match " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
