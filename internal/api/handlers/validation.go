package handlers

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	hhmmRegex  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	phoneRegex = regexp.MustCompile(`^[0-9+\-() ]{7,20}$`)

	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator общий экземпляр validator/v10 с пользовательскими правилами:
// hhmm (время HH:MM), isodate (YYYY-MM-DD), phone, money (не более 2 знаков после запятой)
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()

		// в деталях используем имена полей из json тегов
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return hhmmRegex.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phoneRegex.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			cents := fl.Field().Float() * 100
			return math.Abs(cents-math.Round(cents)) < 1e-6
		})

		validate = v
	})
	return validate
}

// ValidateStruct проверяет структуру и возвращает ошибки по полям, nil если все корректно
func ValidateStruct(s interface{}) []FieldError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return details
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Valid email is required"
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "hhmm":
		return "Valid start time is required (HH:MM)"
	case "isodate":
		return "Valid date is required (YYYY-MM-DD)"
	case "phone":
		return "Valid phone number is required"
	case "money":
		return "Price must have at most 2 decimal places"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
