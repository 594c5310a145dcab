package tscat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	argMarkerRegex     = regexp.MustCompile(`%(L?)(\d{1,2})`)
	numerusMarkerRegex = regexp.MustCompile(`%(L?)n`)
)

func groupDigits(input string, separator string) string {
	if len(input) <= 3 {
		return input
	}
	start := len(input) % 3
	if start == 0 {
		start = 3
	}
	var b strings.Builder
	b.WriteString(input[:start])
	for i := start; i < len(input); i += 3 {
		b.WriteString(separator)
		b.WriteString(input[i : i+3])
	}
	return b.String()
}

func numberSeparators(lang string) (decimal string, group string) {
	switch baseLangTag(lang) {
	case "es", "pt", "fr", "de", "it", "id", "nl", "tr", "da":
		return ",", "."
	}
	return ".", ","
}

func formatNumberByLang(lang string, value interface{}) (string, bool) {
	decimalSeparator, groupSeparator := numberSeparators(lang)

	formatInt := func(s string) string {
		sign := ""
		if strings.HasPrefix(s, "-") {
			sign = "-"
			s = strings.TrimPrefix(s, "-")
		}
		return sign + groupDigits(s, groupSeparator)
	}
	formatFloat := func(number float64) string {
		s := strconv.FormatFloat(number, 'f', -1, 64)
		parts := strings.SplitN(s, ".", 2)
		intPart := formatInt(parts[0])
		if len(parts) == 1 {
			return intPart
		}
		return intPart + decimalSeparator + parts[1]
	}

	switch typed := value.(type) {
	case int:
		return formatInt(strconv.Itoa(typed)), true
	case int8:
		return formatInt(strconv.FormatInt(int64(typed), 10)), true
	case int16:
		return formatInt(strconv.FormatInt(int64(typed), 10)), true
	case int32:
		return formatInt(strconv.FormatInt(int64(typed), 10)), true
	case int64:
		return formatInt(strconv.FormatInt(typed, 10)), true
	case uint:
		return formatInt(strconv.FormatUint(uint64(typed), 10)), true
	case uint8:
		return formatInt(strconv.FormatUint(uint64(typed), 10)), true
	case uint16:
		return formatInt(strconv.FormatUint(uint64(typed), 10)), true
	case uint32:
		return formatInt(strconv.FormatUint(uint64(typed), 10)), true
	case uint64:
		return formatInt(strconv.FormatUint(typed, 10)), true
	case float32:
		return formatFloat(float64(typed)), true
	case float64:
		return formatFloat(typed), true
	default:
		return "", false
	}
}

// renderArgs substitutes QString::arg style markers: %1..%99 with args[N-1],
// %L1 with the number formatted for lang. Text without args is returned as is.
func (dmc *DefaultMessageCatalog) renderArgs(lang string, key Key, template string, args []interface{}) string {
	if len(args) == 0 {
		return template
	}
	return argMarkerRegex.ReplaceAllStringFunc(template, func(token string) string {
		matches := argMarkerRegex.FindStringSubmatch(token)
		if len(matches) != 3 {
			return token
		}
		idx, err := strconv.Atoi(matches[2])
		if err != nil || idx < 1 {
			return token
		}
		if idx > len(args) {
			dmc.onTemplateIssue(lang, key, fmt.Sprintf("missing_arg_%d", idx))
			if dmc.cfg.StrictTemplates {
				return fmt.Sprintf("<missing:%d>", idx)
			}
			return token
		}
		value := args[idx-1]
		if matches[1] == "L" {
			if formatted, ok := formatNumberByLang(lang, value); ok {
				return formatted
			}
			dmc.onTemplateIssue(lang, key, fmt.Sprintf("localized_non_numeric_arg_%d", idx))
		}
		return fmt.Sprintf("%v", value)
	})
}

// renderCount replaces %n with n and %Ln with n formatted for lang.
func renderCount(lang string, template string, n int) string {
	return numerusMarkerRegex.ReplaceAllStringFunc(template, func(token string) string {
		if token == "%Ln" {
			formatted, _ := formatNumberByLang(lang, n)
			return formatted
		}
		return strconv.Itoa(n)
	})
}
