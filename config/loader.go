package config

import (
	"encoding"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Defaults maps a field key to a provider that is called only when the
// field's environment variable is absent. A provider may return the field's
// own type or a string to be parsed like an environment value.
type Defaults map[string]func() any

// Defaulter is implemented by schemas that declare default values.
type Defaulter interface {
	Defaults() Defaults
}

type Option func(*Loader)

// WithPrefix sets the variable name prefix. The prefix is matched
// case-sensitively and stripped before the remainder is matched to a field.
func WithPrefix(prefix string) Option {
	return func(l *Loader) {
		l.prefix = prefix
	}
}

// WithEnviron replaces os.Environ as the source of KEY=value pairs.
func WithEnviron(environ func() []string) Option {
	return func(l *Loader) {
		if environ != nil {
			l.environ = environ
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

type Loader struct {
	prefix  string
	environ func() []string
	log     *slog.Logger
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		prefix:  DefaultPrefix,
		environ: os.Environ,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Prefix() string {
	return l.prefix
}

// Load reads a Config.
func (l *Loader) Load() (Config, error) {
	return Decode[Config](l)
}

// Decode reads a T using l. On failure the zero T is returned.
func Decode[T any](l *Loader) (T, error) {
	var out T
	if err := l.Populate(&out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Populate fills the struct target points to. Fields are visited in
// declaration order and the first failure is returned; target is only
// written when every field resolved and validation passed.
func (l *Loader) Populate(target any) error {
	if target == nil {
		return &InvalidTargetError{}
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return &InvalidTargetError{Type: rv.Type()}
	}

	env, err := l.snapshot()
	if err != nil {
		return err
	}

	scratch := reflect.New(rv.Elem().Type())
	scratch.Elem().Set(rv.Elem())

	var defaults Defaults
	if d, ok := scratch.Interface().(Defaulter); ok {
		defaults = d.Defaults()
	}

	elem := scratch.Elem()
	typ := elem.Type()
	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		key, ok := fieldKey(sf)
		if !ok {
			continue
		}
		if !supported(sf.Type) {
			return &UnsupportedTypeError{Field: key, Type: sf.Type}
		}
		if err := l.resolve(env, key, elem.Field(i), defaults[key]); err != nil {
			return err
		}
	}

	if v, ok := scratch.Interface().(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	rv.Elem().Set(elem)
	return nil
}

// snapshot collects the prefixed variables. A variable set to the empty
// string is present.
func (l *Loader) snapshot() (*viper.Viper, error) {
	values := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, l.prefix))
		if key == "" {
			continue
		}
		values[key] = value
	}

	v := viper.New()
	if err := v.MergeConfigMap(values); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}
	return v, nil
}

// decodeHook lets TextUnmarshaler types such as Part parse themselves and
// covers the string forms viper's own Unmarshal understands.
var decodeHook = mapstructure.ComposeDecodeHookFunc(
	mapstructure.TextUnmarshallerHookFunc(),
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
)

func (l *Loader) resolve(env *viper.Viper, key string, field reflect.Value, provider func() any) error {
	envVar := l.envVar(key)

	switch {
	case env.IsSet(key):
		l.log.Debug("field set from environment",
			slog.String("field", key),
			slog.String("env", envVar))
	case provider != nil:
		value := provider()
		if value == nil {
			return nil
		}
		env.SetDefault(key, value)
		l.log.Debug("field set from default", slog.String("field", key))
	case field.Kind() == reflect.Pointer:
		return nil
	default:
		return &MissingFieldError{Field: key, EnvVar: envVar}
	}

	if err := env.UnmarshalKey(key, field.Addr().Interface(), viper.DecodeHook(decodeHook)); err != nil {
		return locate(err, key, envVar, fmt.Sprint(env.Get(key)))
	}
	return nil
}

func (l *Loader) envVar(key string) string {
	return l.prefix + strings.ToUpper(key)
}

// locate attaches the field and variable name to a conversion error while
// keeping the offending value and accepted literals it already carries.
func locate(err error, key, envVar, raw string) error {
	var ive *InvalidValueError
	if errors.As(err, &ive) {
		if ive.Field == "" {
			ive.Field = key
		}
		if ive.EnvVar == "" {
			ive.EnvVar = envVar
		}
		return ive
	}
	return &InvalidValueError{Field: key, EnvVar: envVar, Value: raw, Err: err}
}

// fieldKey returns the lookup key for sf and false when the field is
// excluded with `mapstructure:"-"`.
func fieldKey(sf reflect.StructField) (string, bool) {
	name, _, _ := strings.Cut(sf.Tag.Get("mapstructure"), ",")
	switch name {
	case "-":
		return "", false
	case "":
		return snakeCase(sf.Name), true
	default:
		return strings.ToLower(name), true
	}
}

func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

func supported(t reflect.Type) bool {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	switch t.Kind() {
	case reflect.Pointer:
		return supported(t.Elem())
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice:
		return t.Elem().Kind() == reflect.String
	default:
		return false
	}
}
