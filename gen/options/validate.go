package options

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	npmName = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)
	dbName  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("npmname", func(fl validator.FieldLevel) bool {
		return npmName.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("dbname", func(fl validator.FieldLevel) bool {
		return dbName.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(validateDatabase, Options{})
	return v
}

// validateDatabase rejects dialects the selected ORM cannot drive. Unknown
// ORMs and dialects are left to the generators' placeholder handling.
func validateDatabase(sl validator.StructLevel) {
	o := sl.Current().Interface().(Options)
	if !o.Database || !o.DatabaseOrm.Known() || !o.Dialect.Known() {
		return
	}
	mongo := o.Dialect == DialectMongoDB
	switch o.DatabaseOrm {
	case ORMMongoose:
		if !mongo {
			sl.ReportError(o.Dialect, "dialect", "Dialect", "mongoose", string(o.Dialect))
		}
	case ORMSequelize:
		if mongo {
			sl.ReportError(o.Dialect, "dialect", "Dialect", "sql", string(o.Dialect))
		}
	}
}

// FieldError is one failed check.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every failed check of an Options value.
type ValidationError []FieldError

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid options: " + strings.Join(parts, "; ")
}

// Validate checks o for values no generator can work with: a missing or
// malformed project name, a malformed database name, empty library
// selections, or a dialect the ORM does not support.
func Validate(o Options) error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: jsonName(fe.StructField()), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "npmname":
		return fmt.Sprintf("%q is not a valid npm package name", fe.Value())
	case "dbname":
		return fmt.Sprintf("%q is not a valid database identifier", fe.Value())
	case "mongoose":
		return fmt.Sprintf("mongoose requires the mongodb dialect, got %q", fe.Param())
	case "sql":
		return fmt.Sprintf("%q is not a SQL dialect", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// jsonName lower-cases the first letter of a struct field name to match
// the option keys users write.
func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
