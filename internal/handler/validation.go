package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"crm/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the enum tags used in request DTOs to gin's validator
// and makes validation errors report JSON field names. Safe to call repeatedly.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		if err := v.RegisterValidation("customer_type", func(fl validator.FieldLevel) bool {
			return model.CustomerType(fl.Field().String()).Valid()
		}); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("activity_type", func(fl validator.FieldLevel) bool {
			return model.ActivityType(fl.Field().String()).Valid()
		})
	})
	return registerErr
}

// bindingMessage turns a ShouldBind error into a client facing sentence.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	}
	if errors.Is(err, io.EOF) {
		return "request body is empty"
	}
	return "invalid request payload"
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "customer_type":
		return fmt.Sprintf("%s %q is not one of the supported customer types", field, fe.Value())
	case "activity_type":
		return fmt.Sprintf("%s %q is not one of the supported activity types", field, fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
