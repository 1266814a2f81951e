package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultPrefix    = "APP_"
	DefaultInputFile = "full.txt"
)

const (
	KeyPart      = "part"
	KeyInputFile = "input_file"
)

// Config is the run configuration read from APP_PART and APP_INPUT_FILE.
type Config struct {
	Part      Part   `mapstructure:"part"`
	InputFile string `mapstructure:"input_file"`
}

func (c *Config) Defaults() Defaults {
	return Defaults{
		KeyInputFile: func() any { return DefaultInputFile },
	}
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Part,
			validation.Required,
			validation.In(PartOne, PartTwo),
		),
		validation.Field(&c.InputFile,
			validation.Required,
		),
	)
}

// Load reads a Config from the process environment.
func Load() (Config, error) {
	return NewLoader().Load()
}

// LoadInto reads any schema from the environment using the APP_ prefix
// unless opts say otherwise.
func LoadInto[T any](opts ...Option) (T, error) {
	return Decode[T](NewLoader(opts...))
}

// MustLoad is like Load but panics if the environment is invalid.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
