package pokemon

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// PageRequest is a validated page fetch.
type PageRequest struct {
	Query  string `json:"query"`
	Offset int    `json:"offset" validate:"gte=0"`
	Limit  int    `json:"limit"  validate:"gt=0"`
}

// DetailRequest is a validated detail fetch by name or numeric ID.
type DetailRequest struct {
	Name string `json:"name" validate:"required"`
}

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use.
var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0] //nolint:mnd // name,opts
		if name == "-" {
			return ""
		}
		return name
	})
	return v
})

// Validate rejects a negative offset or a non-positive limit.
func (r PageRequest) Validate() error {
	return validateStruct(r)
}

// Validate rejects an empty (or whitespace-only) name.
func (r DetailRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validateStruct(r)
}

// ValidatePage is shorthand for PageRequest{...}.Validate().
func ValidatePage(offset, limit int) error {
	return PageRequest{Offset: offset, Limit: limit}.Validate()
}

func validateStruct(s any) error {
	err := validate().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
