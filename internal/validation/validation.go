package validation

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FieldError mirrors the error entries API clients already parse.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Path + ": " + fe.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether any error was recorded for path.
func (e Errors) Has(path string) bool {
	for _, fe := range e {
		if fe.Path == path {
			return true
		}
	}
	return false
}

// Field builds a single body-field error outside of a Ruleset.
func Field(path string, value any, msg string) FieldError {
	return FieldError{Type: "field", Value: value, Msg: msg, Path: path, Location: "body"}
}

// Input is anything that can answer "was this field supplied, and with what".
type Input interface {
	Lookup(field string) (any, bool)
}

// Values holds decoded request fields. Entries are string or []string.
type Values map[string]any

func (v Values) Lookup(field string) (any, bool) {
	val, ok := v[field]
	return val, ok
}

// String returns the field as a string. Lists are joined with commas.
func (v Values) String(field string) (string, bool) {
	val, ok := v[field]
	if !ok {
		return "", false
	}
	switch t := val.(type) {
	case string:
		return t, true
	case []string:
		return strings.Join(t, ","), true
	default:
		return fmt.Sprint(t), true
	}
}

type Predicate func(value any) bool

type Rule struct {
	Field    string
	Test     Predicate
	Message  string
	Optional bool
}

func Require(field string, test Predicate, message string) Rule {
	return Rule{Field: field, Test: test, Message: message}
}

// Optional rules only run when the field is present.
func Optional(field string, test Predicate, message string) Rule {
	return Rule{Field: field, Test: test, Message: message, Optional: true}
}

type Ruleset []Rule

// Validate runs every rule and returns all failures, or nil.
func (rs Ruleset) Validate(in Input) error {
	var errs Errors
	for _, r := range rs {
		value, present := in.Lookup(r.Field)
		if !present {
			if r.Optional {
				continue
			}
			value = ""
		}
		if !r.Test(value) {
			errs = append(errs, Field(r.Field, value, r.Message))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func NotEmpty(value any) bool {
	switch t := value.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case []string:
		return len(t) > 0
	default:
		return value != nil
	}
}

var numericPattern = regexp.MustCompile(`^[+-]?([0-9]*\.)?[0-9]+$`)

func Numeric(value any) bool {
	s, ok := asString(value)
	return ok && numericPattern.MatchString(strings.TrimSpace(s))
}

// ParseNumber converts a value accepted by Numeric.
func ParseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func URL(value any) bool {
	s, ok := asString(value)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
	default:
		return false
	}

	host := u.Hostname()
	if host == "" {
		return false
	}
	if host == "localhost" || net.ParseIP(host) != nil {
		return true
	}
	tld := host[strings.LastIndex(host, ".")+1:]
	return strings.Contains(host, ".") && len(tld) >= 2
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

func Email(value any) bool {
	s, ok := asString(value)
	return ok && emailPattern.MatchString(strings.TrimSpace(s))
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts the ISO-8601 shapes clients send for postDate.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func ISO8601(value any) bool {
	s, ok := asString(value)
	if !ok {
		return false
	}
	_, err := ParseDate(s)
	return err == nil
}

func StringOrList(value any) bool {
	switch value.(type) {
	case string, []string:
		return true
	default:
		return false
	}
}

// SplitTags accepts "a, b" or a list and returns trimmed, non-empty entries.
func SplitTags(value any) []string {
	var parts []string
	switch t := value.(type) {
	case string:
		parts = strings.Split(t, ",")
	case []string:
		parts = t
	}

	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
