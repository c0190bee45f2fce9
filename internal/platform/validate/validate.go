package validate

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

const (
	notBlankTag = "notblank"
	imageURLTag = "imageurl"
)

// ImageExtensions are the suffixes an image URL may end with.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".bmp", ".ico"}

type Validator struct {
	v  *validator.Validate
	tr ut.Translator
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
)

// Default returns a process-wide validator with the custom tags registered.
func Default() *Validator {
	defaultOnce.Do(func() { defaultV = New() })
	return defaultV
}

func New() *Validator {
	v := validator.New()

	english := en.New()
	uni := ut.New(english, english)
	tr, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, tr)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlank)
	_ = v.RegisterValidation(imageURLTag, imageURL)

	noop := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, imageURLTag} {
		_ = v.RegisterTranslation(tag, tr, noop, translateCustom)
	}
	return &Validator{v: v, tr: tr}
}

// Engine exposes the underlying validator so gin binding can share tags.
func (x *Validator) Engine() *validator.Validate { return x.v }

func (x *Validator) Struct(s any) error { return x.v.Struct(s) }

func (x *Validator) Var(field any, tag string) error { return x.v.Var(field, tag) }

// FieldErrors is a validation failure keyed by json field.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error { return perrors.ErrInvalidArgument }

func (f FieldErrors) FieldMessages() map[string]string { return f }

// Check validates s and returns FieldErrors on failure.
func (x *Validator) Check(s any) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	if fields := x.Fields(err); len(fields) > 0 {
		return FieldErrors(fields)
	}
	return fmt.Errorf("validate: %v: %w", err, perrors.ErrInvalidArgument)
}

// Fields flattens validation errors into json-field -> message. Other
// errors come back as nil.
func (x *Validator) Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		out[key] = fe.Translate(x.tr)
	}
	return out
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case imageURLTag:
		return fe.Field() + " must be an image URL (" + strings.Join(ImageExtensions, ", ") + ")"
	default:
		return fe.Error()
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func imageURL(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return IsImageURL(s)
}

// IsImageURL checks the URL path, ignoring any query string, for an image
// extension.
func IsImageURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
