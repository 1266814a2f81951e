// Package config loads typed run configuration from APP_-prefixed
// environment variables. Config carries the puzzle Part to solve (APP_PART,
// "one" or "two" in any case) and the input file to read (APP_INPUT_FILE,
// defaulting to "full.txt").
//
// The Loader is generic: any struct can be populated with LoadInto or
// Decode. Keys come from `mapstructure` tags or the snake_cased field name,
// types implementing encoding.TextUnmarshaler parse themselves, schemas may
// declare lazy defaults through Defaulter and are validated afterwards when
// they implement ozzo-validation's Validatable. Only the first failing field
// is reported.
package config
