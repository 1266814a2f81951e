package config

import (
	"fmt"
	"strings"
)

// Part selects which half of a puzzle a run solves.
type Part int

const (
	PartOne Part = iota + 1
	PartTwo
)

const (
	partLiteralOne = "one"
	partLiteralTwo = "two"
)

// PartLiterals lists the accepted spellings of a Part, in order.
func PartLiterals() []string {
	return []string{partLiteralOne, partLiteralTwo}
}

// Parts returns every valid Part.
func Parts() []Part {
	return []Part{PartOne, PartTwo}
}

// ParsePart converts s into a Part, ignoring case.
func ParsePart(s string) (Part, error) {
	switch strings.ToLower(s) {
	case partLiteralOne:
		return PartOne, nil
	case partLiteralTwo:
		return PartTwo, nil
	default:
		return 0, &InvalidValueError{
			Value:    s,
			Expected: PartLiterals(),
		}
	}
}

func (p Part) String() string {
	switch p {
	case PartOne:
		return "Part One"
	case PartTwo:
		return "Part Two"
	default:
		return "Part(unset)"
	}
}

func (p Part) MarshalText() ([]byte, error) {
	switch p {
	case PartOne:
		return []byte(partLiteralOne), nil
	case PartTwo:
		return []byte(partLiteralTwo), nil
	default:
		return nil, fmt.Errorf("config: cannot marshal %s", p)
	}
}

func (p *Part) UnmarshalText(text []byte) error {
	parsed, err := ParsePart(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
