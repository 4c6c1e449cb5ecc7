package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// Course codes look like "CS101" or "MATH 2010A".
	CourseCodePattern = `^[A-Za-z]{2,6} ?\d{2,4}[A-Za-z]?$`

	// Content limits for user-written text
	PostContentMaxLength = 5000
	CommentMaxLength     = 2000
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	CourseCode *regexp.Regexp
}{
	CourseCode: regexp.MustCompile(CourseCodePattern),
}

// RegisterRules installs the enumeration and course code validators on v.
func RegisterRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"post_category": func(fl validator.FieldLevel) bool {
			return models.PostCategory(fl.Field().String()).Valid()
		},
		"user_role": func(fl validator.FieldLevel) bool {
			return models.UserRole(fl.Field().String()).Valid()
		},
		"course_code": func(fl validator.FieldLevel) bool {
			return CompiledPatterns.CourseCode.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}

var registerOnce sync.Once

// RegisterWithGin installs the rules on gin's binding validator so request
// DTOs can use them in binding tags. Safe to call more than once.
func RegisterWithGin() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		err = RegisterRules(v)
	})
	return err
}

// jsonFieldName reports fields by their JSON name so errors match the request body.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

// UUID rejects a malformed identifier before it reaches the store.
func UUID(field, value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return apperrors.NewValidationError(field, fmt.Sprintf("%s must be a valid id", field))
	}
	return nil
}

// OptionalUUID is UUID for nullable references.
func OptionalUUID(field string, value *string) error {
	if value == nil {
		return nil
	}
	return UUID(field, *value)
}

// StringValidation checks one required text field.
type StringValidation struct {
	Field   string
	Value   string
	MaxLen  int
	Pattern *regexp.Regexp
}

// NewStringValidation validates the trimmed value of a required field.
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{Field: field, Value: strings.TrimSpace(value)}
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate returns the trimmed value, or a validation error naming the field.
func (v *StringValidation) Validate() (string, error) {
	if v.Value == "" {
		return "", apperrors.NewValidationError(v.Field, v.Field+" is required")
	}
	if v.MaxLen > 0 && len([]rune(v.Value)) > v.MaxLen {
		return "", apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be at most %d characters", v.Field, v.MaxLen))
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return "", apperrors.NewValidationError(v.Field, v.Field+" has an invalid format")
	}

	return v.Value, nil
}

// Numeric validation
type NumericValidation struct {
	Field string
	Value int
	Min   int
	Max   int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(field string, value int) *NumericValidation {
	return &NumericValidation{
		Field: field,
		Value: value,
	}
}

// WithRange sets the inclusive bounds.
func (v *NumericValidation) WithRange(min, max int) *NumericValidation {
	v.Min = min
	v.Max = max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() error {
	if v.Value < v.Min || v.Value > v.Max {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be between %d and %d", v.Field, v.Min, v.Max))
	}
	return nil
}
