package hbtool

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// ParseFeatures checks a HarfBuzz feature list (e.g. "+kern,-liga,aalt=2")
// and returns it in the canonical comma-separated form. Items may be
// separated by commas or spaces. "-" and "" denote an empty list.
func ParseFeatures(list string) (string, error) {
	list = strings.TrimSpace(list)
	if list == "-" || list == "" {
		return "", nil
	}
	parts := splitCSVSpace(list)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		f, err := parseFeatureItem(p)
		if err != nil {
			return "", err
		}
		out = append(out, f)
	}
	return strings.Join(out, ","), nil
}

func parseFeatureItem(item string) (string, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return "", errors.New("empty feature entry")
	}
	prefix := ""
	if strings.HasPrefix(item, "+") || strings.HasPrefix(item, "-") {
		prefix, item = item[:1], item[1:]
	}
	tagPart, value, hasValue := strings.Cut(item, "=")
	rng := ""
	if i := strings.IndexByte(tagPart, '['); i >= 0 {
		if !strings.HasSuffix(tagPart, "]") {
			return "", fmt.Errorf("unterminated range in feature %q", item)
		}
		tagPart, rng = tagPart[:i], tagPart[i:]
	}
	tagPart = strings.TrimSpace(tagPart)
	if len(tagPart) == 0 || len(tagPart) > 4 {
		return "", fmt.Errorf("feature tag %q is not 1 to 4 characters", tagPart)
	}
	for _, r := range tagPart {
		if r < 0x20 || r > 0x7e {
			return "", fmt.Errorf("feature tag %q contains non-printable ASCII", tagPart)
		}
	}
	f := prefix + tagPart + rng
	if hasValue {
		value = strings.TrimSpace(value)
		if value == "" {
			return "", fmt.Errorf("empty feature value in %q", item)
		}
		if _, err := strconv.Atoi(value); err != nil {
			return "", fmt.Errorf("invalid feature value in %q: %w", item, err)
		}
		f += "=" + value
	}
	return f, nil
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// ParseScript checks an ISO 15924 script code. "-" and "" denote
// "let the tool decide" and yield "".
func ParseScript(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return "", nil
	}
	scr, err := language.ParseScript(s)
	if err != nil {
		return "", fmt.Errorf("invalid script %q: %w", s, err)
	}
	return scr.String(), nil
}

// ParseLanguage checks a BCP 47 language tag. "-" and "" yield "".
func ParseLanguage(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return "", nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q: %w", s, err)
	}
	return tag.String(), nil
}

// ParseDirection maps a writing direction to the hb tools' notation
// ("ltr" or "rtl"). "-" and "" yield "".
func ParseDirection(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "-" {
		return "", nil
	}
	var dir bidi.Direction
	switch s {
	case "ltr", "left-to-right":
		dir = bidi.LeftToRight
	case "rtl", "right-to-left":
		dir = bidi.RightToLeft
	default:
		return "", fmt.Errorf("unsupported direction %q (expected ltr|rtl)", s)
	}
	if dir == bidi.RightToLeft {
		return "rtl", nil
	}
	return "ltr", nil
}
