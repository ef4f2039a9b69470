package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

var (
	integerPattern = regexp.MustCompile(`^\d{1,18}$`)
	// Numbers with at most two decimals, e.g. sqft "1200.5" or budget "4500000.00".
	decimalPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// Validator wraps validator/v10 with the CRM's custom rules and reports
// fields by their JSON names.
type Validator struct {
	validate *validator.Validate
}

// FieldErrors groups failed fields by the rule that failed.
type FieldErrors struct {
	Missing []string
	Invalid []string
}

func (f *FieldErrors) Error() string {
	var parts []string
	if len(f.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(f.Missing, ", "))
	}
	if len(f.Invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(f.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

// New builds a Validator. phoneRegion is the default ISO region used for
// numbers without a country prefix.
func New(phoneRegion string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		return integerPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("decimal2", func(fl validator.FieldLevel) bool {
		return decimalPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPossiblePhone(fl.Field().String(), phoneRegion)
	})

	return &Validator{validate: v}
}

// Struct validates s. A non-nil result is always *FieldErrors.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &FieldErrors{}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			out.Missing = append(out.Missing, fe.Field())
		} else {
			out.Invalid = append(out.Invalid, fe.Field())
		}
	}
	return out
}

// IsDecimal reports whether s is a non-negative number with up to two decimals.
func IsDecimal(s string) bool {
	return decimalPattern.MatchString(s)
}

// IsPossiblePhone accepts numbers whose length is plausible for their region.
func IsPossiblePhone(raw, region string) bool {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}
