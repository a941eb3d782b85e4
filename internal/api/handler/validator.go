package handler

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

const dateOnly = "2006-01-02"

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON (or query) name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	_ = v.RegisterValidation("isodate", validateISODate)
	_ = v.RegisterValidation("notpast", validateNotPast)
	_ = v.RegisterValidation("hasdigit", validateHasDigit)
	_ = v.RegisterValidation("status", validateStatus)
	_ = v.RegisterValidation("posint", validatePositiveInt)
	v.RegisterStructValidation(validateProjectDates, projectRequest{})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Every violated field is
// reported, as a *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return domain.NewValidationError(msgs...)
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is a required field"
	case "email":
		return field + " must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "status":
		return fmt.Sprintf("%s must be one of the following values: %s, %s, %s",
			field, domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted)
	case "hasdigit":
		return "Password must include at least 1 number"
	case "isodate":
		return field + " must be a valid date"
	case "notpast":
		return "Due date must be >= today"
	case "enddate":
		return domain.MsgEndBeforeStart
	case "mongodb":
		return field + " must be a valid id"
	case "posint":
		return fmt.Sprintf("%s must be a positive integer up to %d", field, math.MaxInt32)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// parseOptionalDate returns nil for a nil or empty string.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := parseDate(fl.Field().String())
	return err == nil
}

// validateNotPast rejects dates before the start of the current UTC day.
// Unparseable values are left to isodate.
func validateNotPast(fl validator.FieldLevel) bool {
	t, err := parseDate(fl.Field().String())
	if err != nil {
		return true
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return !t.Before(today)
}

func validateHasDigit(fl validator.FieldLevel) bool {
	return strings.IndexFunc(fl.Field().String(), unicode.IsDigit) >= 0
}

// validatePositiveInt accepts 1..MaxInt32 so page arithmetic cannot overflow.
func validatePositiveInt(fl validator.FieldLevel) bool {
	n, err := strconv.ParseInt(fl.Field().String(), 10, 32)
	return err == nil && n > 0
}

func validateStatus(fl validator.FieldLevel) bool {
	return domain.Status(fl.Field().String()).Valid()
}

// validateProjectDates enforces endDate >= startDate on the request itself.
func validateProjectDates(sl validator.StructLevel) {
	req := sl.Current().Interface().(projectRequest)
	if req.EndDate == nil || *req.EndDate == "" {
		return
	}
	start, err1 := parseDate(req.StartDate)
	end, err2 := parseDate(*req.EndDate)
	if err1 != nil || err2 != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(req.EndDate, "endDate", "EndDate", "enddate", "")
	}
}
