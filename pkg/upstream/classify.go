package upstream

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxPlainCauseLength bounds how long a non-JSON, non-HTML body may be before it is
// considered noise and replaced by the status code.
const maxPlainCauseLength = 200

var htmlTitle = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// Classification is the stable (name, message) pair derived from an upstream failure.
type Classification struct {
	Name    string
	Message string
}

// fieldExtractor pulls one candidate value out of a decoded JSON error payload.
type fieldExtractor struct {
	Field   string
	Extract func(payload map[string]any) string
}

// TypeExtractors are evaluated in order; the first non-empty result names the error type.
var TypeExtractors = []fieldExtractor{
	{Field: "error", Extract: func(p map[string]any) string {
		if s := stringField(p, "error"); s != "Error" {
			return s
		}
		return ""
	}},
	{Field: "code", Extract: func(p map[string]any) string {
		if s := stringField(p, "code"); s != "Error" && strings.HasSuffix(s, "Error") {
			return s
		}
		return ""
	}},
}

// DetailExtractors are evaluated in order; the first non-empty result is the message.
var DetailExtractors = []fieldExtractor{
	{Field: "message", Extract: func(p map[string]any) string { return stringField(p, "message") }},
	{Field: "errors[0].title", Extract: firstErrorTitle},
	{Field: "err", Extract: func(p map[string]any) string { return stringField(p, "err") }},
}

// Classify turns a non-2xx upstream response into a (name, message) pair.
// An explicit typ or detail wins over anything found in cause. It never fails.
func Classify(service string, status int, cause, typ, detail string) Classification {
	if typ == "" && detail == "" && cause != "" {
		typ, detail = parseCause(cause)
	}

	code := strconv.Itoa(status)
	name := service + code
	if t := strings.TrimSuffix(typ, "Error"); t != "" {
		name = service + t
	}
	message := detail
	if message == "" {
		message = code
	}
	return Classification{Name: name, Message: message}
}

func parseCause(cause string) (typ, detail string) {
	var decoded any
	if err := json.Unmarshal([]byte(cause), &decoded); err == nil {
		if payload, ok := decoded.(map[string]any); ok {
			return firstOf(TypeExtractors, payload), firstOf(DetailExtractors, payload)
		}
	}

	if m := htmlTitle.FindStringSubmatch(cause); m != nil {
		return "", strings.TrimSpace(m[1])
	}
	if !strings.Contains(cause, "<") && utf8.RuneCountInString(cause) <= maxPlainCauseLength {
		return "", cause
	}
	return "", ""
}

func firstOf(extractors []fieldExtractor, payload map[string]any) string {
	for _, e := range extractors {
		if v := e.Extract(payload); v != "" {
			return v
		}
	}
	return ""
}

func stringField(p map[string]any, key string) string {
	s, _ := p[key].(string)
	return s
}

func firstErrorTitle(p map[string]any) string {
	errs, ok := p["errors"].([]any)
	if !ok || len(errs) == 0 {
		return ""
	}
	first, ok := errs[0].(map[string]any)
	if !ok {
		return ""
	}
	return stringField(first, "title")
}
