package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/utils"
)

// RegisterValidators installs the custom binding rules on gin's validator
// engine. Field names in validation errors come from the json tag, matching
// what the client actually sent.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("displayname", func(fl validator.FieldLevel) bool {
		return utils.ValidateName(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("userpassword", func(fl validator.FieldLevel) bool {
		return utils.ValidatePassword(fl.Field().String())
	})
}

// bindJSON binds the request body and writes the error response itself on
// failure. Rule violations come back as a 422 with per-field messages,
// anything else (malformed JSON, wrong types) as a 400.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		errs := make(map[string][]string, len(fieldErrors))
		for _, fe := range fieldErrors {
			errs[fe.Field()] = append(errs[fe.Field()], fieldMessage(fe))
		}
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Message: "The given data was invalid.",
			Errors:  errs,
		})
		return false
	}

	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Malformed request body."})
	return false
}

// fieldMessage renders one rule violation as a user-facing sentence
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", fe.Field())
	case "url":
		return fmt.Sprintf("The %s format is invalid.", fe.Field())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s and password must match.", fe.Field())
	case "displayname":
		return fmt.Sprintf("The %s may only contain letters and must be 2 to 17 characters long.", fe.Field())
	case "userpassword":
		return fmt.Sprintf("The %s must be at least 8 characters and contain an uppercase letter, a lowercase letter and a digit.", fe.Field())
	default:
		return fmt.Sprintf("The %s is invalid.", fe.Field())
	}
}
