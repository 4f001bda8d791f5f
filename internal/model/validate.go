package model

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	zipCodeRe = regexp.MustCompile(`^\d{5}(?:[-\s]\d{4})?$`)
	phoneRe   = regexp.MustCompile(`^(\+\s?)?(\(\+?\d+([\s\-.]?\d+)?\)|\d+)([\s\-.]?(\(\d+([\s\-.]?\d+)?\)|\d+))*(\s?(x|ext\.?)\s?\d+)?$`)
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors flattens a Validate result into field -> message.
func FieldErrors(err error) map[string]any {
	out := map[string]any{}
	merr, ok := err.(*multierror.Error)
	if !ok {
		if err != nil {
			out["_"] = err.Error()
		}
		return out
	}
	for _, e := range merr.Errors {
		if fe, ok := e.(FieldError); ok {
			out[fe.Field] = fe.Message
			continue
		}
		out["_"] = e.Error()
	}
	return out
}

func (r Restaurant) Validate() error {
	return r.validate("")
}

// ValidateAll checks every record; field names are prefixed with the index.
func ValidateAll(rs []Restaurant) error {
	var result *multierror.Error
	for i, r := range rs {
		if err := r.validate(fmt.Sprintf("[%d].", i)); err != nil {
			result = multierror.Append(result, err.(*multierror.Error).Errors...)
		}
	}
	return result.ErrorOrNil()
}

func (r Restaurant) validate(prefix string) error {
	var result *multierror.Error
	add := func(field, msg string) {
		result = multierror.Append(result, FieldError{Field: prefix + field, Message: msg})
	}

	if strings.TrimSpace(r.Name) == "" {
		add("name", "is required")
	}
	if strings.TrimSpace(r.CuisineType) == "" {
		add("cuisineType", "is required")
	}
	switch phone := strings.TrimSpace(r.Phone); {
	case phone == "":
		add("phone", "is required")
	case !phoneRe.MatchString(phone):
		add("phone", "is not a valid phone number")
	}
	if w := strings.TrimSpace(r.Website); w != "" {
		u, err := url.Parse(w)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			add("website", "must be an absolute http or https URI")
		}
	}

	a := r.Address
	if strings.TrimSpace(a.City) == "" {
		add("address.city", "is required")
	}
	switch state := strings.TrimSpace(a.State); {
	case state == "":
		add("address.state", "is required")
	case len(state) != 2:
		add("address.state", "must be exactly 2 characters")
	}
	if strings.TrimSpace(a.Country) == "" {
		add("address.country", "is required")
	}
	switch zip := strings.TrimSpace(a.ZipCode); {
	case zip == "":
		add("address.zipCode", "is required")
	case !zipCodeRe.MatchString(zip):
		add("address.zipCode", "must be in one of the following formats: xxxxx, xxxxx xxxx, xxxxx-xxxx")
	}

	return result.ErrorOrNil()
}
