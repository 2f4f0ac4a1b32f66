package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/vytor/thaiflash/internal/errors"
)

const maxBodyBytes = 1 << 16

var htmlTag = regexp.MustCompile(`<[^>]*>`)

var (
	validateOnce sync.Once
	validate     *govalidator.Validate
	trans        ut.Translator
)

// validatorInstance builds the shared validator with English messages and
// field names taken from json tags.
func validatorInstance() *govalidator.Validate {
	validateOnce.Do(func() {
		v := govalidator.New(govalidator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
			panic(fmt.Sprintf("validator: register translations: %v", err))
		}

		if err := v.RegisterValidation("nohtml", func(fl govalidator.FieldLevel) bool {
			return !htmlTag.MatchString(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("validator: register nohtml: %v", err))
		}
		if err := v.RegisterTranslation("nohtml", trans,
			func(ut ut.Translator) error {
				return ut.Add("nohtml", "{0} must not contain HTML tags", true)
			},
			func(ut ut.Translator, fe govalidator.FieldError) string {
				t, _ := ut.T("nohtml", fe.Field())
				return t
			},
		); err != nil {
			panic(fmt.Sprintf("validator: register nohtml translation: %v", err))
		}
		validate = v
	})
	return validate
}

// translateErrors returns field name to human-readable message.
func translateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if stderrors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}
	fields["detail"] = err.Error()
	return fields
}

// validateStruct runs the validator and converts failures to an AppError.
func validateStruct(v any) error {
	if err := validatorInstance().Struct(v); err != nil {
		return errors.NewFieldsValidationError(translateErrors(err), err)
	}
	return nil
}

// decodeJSON reads a bounded JSON body into dst and validates it. An empty
// body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !stderrors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return errors.NewBadRequestError("request body too large")
		}
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return validateStruct(dst)
}
