package utils

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

var (
	nationalIDPattern    = regexp.MustCompile(`^\d{6,12}$`)
	bloodPressurePattern = regexp.MustCompile(`^\d{1,3}/\d{1,3}$`)
)

// RegisterCustomValidators wires the clinic-specific rules into gin's binding
// engine so request DTOs can use them as binding tags. Call once at startup.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("kephone", validateKenyanPhone)
	v.RegisterValidation("nationalid", validateNationalID)
	v.RegisterValidation("bloodpressure", validateBloodPressure)
}

func validateKenyanPhone(fl validator.FieldLevel) bool {
	parsed, err := phonenumbers.Parse(fl.Field().String(), defaultPhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}

func validateNationalID(fl validator.FieldLevel) bool {
	return nationalIDPattern.MatchString(fl.Field().String())
}

func validateBloodPressure(fl validator.FieldLevel) bool {
	return bloodPressurePattern.MatchString(fl.Field().String())
}

// FormatValidationError formats validation errors into a readable string.
func FormatValidationError(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var errorMessages []string
		for _, e := range errs {
			errorMessages = append(errorMessages, e.Field()+" failed on the '"+e.Tag()+"' rule")
		}
		return strings.Join(errorMessages, ", ")
	}
	return err.Error()
}

// BindAndValidate binds the request body to a struct and validates it.
// If binding fails, it sends a BadRequest response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			BadRequest(c, "Validation failed: "+FormatValidationError(err))
		} else {
			BadRequest(c, "Invalid request payload: "+err.Error())
		}
		return false
	}
	return true
}
