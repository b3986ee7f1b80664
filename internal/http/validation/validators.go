// Package validation checks submitted forms with struct tags and reports
// Vietnamese messages keyed by form field name.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/locales/vi"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	vi_translations "github.com/go-playground/validator/v10/translations/vi"
)

// Custom tags.
const (
	notBlankTag    = "notblank"
	nonNegativeTag = "nonnegative"
)

// Validator wraps a configured validator.Validate and its Vietnamese translator.
type Validator struct {
	v     *validator.Validate
	trans ut.Translator
}

// New returns a validator that names fields by their `form` tag and translates
// messages to Vietnamese. A `vmsg` tag on a field overrides every message for it.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	locale := vi.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("vi")
	_ = vi_translations.RegisterDefaultTranslations(v, trans)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlank)
	_ = v.RegisterTranslation(notBlankTag, trans, func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " không được để trống"
		})
	_ = v.RegisterValidation(nonNegativeTag, nonNegative)
	_ = v.RegisterTranslation(nonNegativeTag, trans, func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " không được nhỏ hơn 0"
		})
	_ = v.RegisterTranslation("required", trans, func(ut.Translator) error { return nil },
		func(_ ut.Translator, _ validator.FieldError) string {
			return "Vui lòng điền đủ thông tin"
		})

	return &Validator{v: v, trans: trans}
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

// nonNegative accepts a decimal string >= 0. Blank values are left to required/omitempty.
func nonNegative(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f >= 0
}

// Struct validates s and returns field errors keyed by form field name. The
// first failing rule of each field wins. A nil map means s is valid.
func (val *Validator) Struct(s any) map[string]string {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	overrides := messageOverrides(s)
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if msg, ok := overrides[fe.StructField()]; ok {
			out[field] = msg
			continue
		}
		out[field] = fe.Translate(val.trans)
	}
	return out
}

// First returns the message of the first failing field in order. Fields missing
// from order are tried by name so the pick never depends on map iteration.
func First(errs map[string]string, order ...string) string {
	for _, k := range order {
		if msg, ok := errs[k]; ok {
			return msg
		}
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return errs[keys[0]]
}

// FieldOrder lists the form field names of struct s in declaration order.
// Embedded structs contribute their fields in place.
func FieldOrder(s any) []string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return fieldOrder(t)
}

func fieldOrder(t reflect.Type) []string {
	out := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			out = append(out, fieldOrder(f.Type)...)
			continue
		}
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		out = append(out, name)
	}
	return out
}

func messageOverrides(s any) map[string]string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	out := map[string]string{}
	for i := range t.NumField() {
		f := t.Field(i)
		if msg := f.Tag.Get("vmsg"); msg != "" {
			out[f.Name] = msg
		}
	}
	return out
}
