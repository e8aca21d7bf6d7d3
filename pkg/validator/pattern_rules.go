package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchesRegex validates against custom patterns. Compiles regex on each call - cache externally for performance.
func MatchesRegex(field, value string, pattern string, description string) Rule {
	regex := regexp.MustCompile(pattern)
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			return regex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Rule:    "format",
			Message: fmt.Sprintf("must match %s pattern", description),
		},
	}
}

func DoesNotMatchRegex(field, value string, pattern string, description string) Rule {
	regex := regexp.MustCompile(pattern)
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return true
			}
			return !regex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Rule:    "format",
			Message: fmt.Sprintf("must not match %s pattern", description),
		},
	}
}

// MatchesCompiled validates against a pre-compiled pattern, avoiding the
// per-call compilation cost of MatchesRegex on hot paths.
func MatchesCompiled(field, value string, regex *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			return regex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Rule:    "format",
			Message: fmt.Sprintf("must match %s pattern", description),
		},
	}
}
