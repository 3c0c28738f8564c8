package darklang

import (
	"regexp"
	"strconv"
	"strings"
)

// HeaderAcceptLanguage is the request header rewritten by the middleware.
const HeaderAcceptLanguage = "Accept-Language"

// acceptLanguagePattern matches one "tag;q=weight" entry and its trailing separator.
var acceptLanguagePattern = regexp.MustCompile(
	`([A-Za-z]{1,8}(?:-[A-Za-z0-9]{1,8})*|\*)(?:\s*;\s*q=(0(?:\.\d{0,3})?|1(?:\.0{0,3})?))?(?:\s*,\s*|$)`,
)

// chineseLanguageCodes maps the script based Chinese codes, and the region
// codes that negotiation does not recognize, to the region codes translations ship under.
var chineseLanguageCodes = map[string]string{
	"zh-hans":    "zh-CN",
	"zh-hans-cn": "zh-CN",
	"zh-hans-sg": "zh-CN",
	"zh-hant":    "zh-TW",
	"zh-hant-hk": "zh-HK",
	"zh-hant-mo": "zh-TW",
	"zh-hant-tw": "zh-TW",
	"zh-mo":      "zh-TW",
	"zh-sg":      "zh-CN",
}

// LanguageRange is one entry of an Accept-Language header.
type LanguageRange struct {
	Tag    string
	Weight float64
}

// ParseAcceptLanguage parses header into lowercased ranges in header order.
// It returns nil when any part of the header does not follow the grammar.
// Weights are kept as sent, q=0 included.
func ParseAcceptLanguage(header string) []LanguageRange {
	header = strings.ToLower(header)
	if header == "" {
		return nil
	}

	matches := acceptLanguagePattern.FindAllStringSubmatchIndex(header, -1)
	if len(matches) == 0 {
		return nil
	}

	ranges := make([]LanguageRange, 0, len(matches))
	pos := 0
	for _, m := range matches {
		// Text between two entries means the header is malformed.
		if m[0] != pos {
			return nil
		}
		pos = m[1]

		weight := 1.0
		if m[4] >= 0 {
			q, err := strconv.ParseFloat(header[m[4]:m[5]], 64)
			if err != nil {
				return nil
			}
			weight = q
		}

		ranges = append(ranges, LanguageRange{Tag: header[m[2]:m[3]], Weight: weight})
	}

	if pos != len(header) {
		return nil
	}

	return ranges
}

// NormalizeChinese rewrites a Chinese script or legacy region code to its region code.
// Other tags are returned unchanged.
func NormalizeChinese(tag string) string {
	if mapped, ok := chineseLanguageCodes[strings.ToLower(tag)]; ok {
		return mapped
	}
	return tag
}

// FormatAcceptValue formats one header entry. Whole weights keep a
// trailing ".0" so that "q=1.0" round trips unchanged.
func FormatAcceptValue(tag string, weight float64) string {
	q := strconv.FormatFloat(weight, 'f', -1, 64)
	if !strings.Contains(q, ".") {
		q += ".0"
	}
	return tag + ";q=" + q
}

// FuzzyMatch returns code when it is released, otherwise the first released
// language sharing its primary subtag. Comparison ignores case.
func FuzzyMatch(code string, released []string) (string, bool) {
	code = strings.ToLower(code)
	for _, lang := range released {
		if strings.ToLower(lang) == code {
			return lang, true
		}
	}

	prefix := primarySubtag(code)
	for _, lang := range released {
		if primarySubtag(strings.ToLower(lang)) == prefix {
			return lang, true
		}
	}

	return "", false
}

func primarySubtag(tag string) string {
	prefix, _, _ := strings.Cut(tag, "-")
	return prefix
}

// CleanAcceptLanguage keeps only the entries of header that fuzzy match a
// released language, substituting the matched code and keeping the weight.
func CleanAcceptLanguage(header string, released []string) string {
	ranges := ParseAcceptLanguage(header)

	accepted := make([]string, 0, len(ranges))
	for _, lr := range ranges {
		code, ok := FuzzyMatch(NormalizeChinese(lr.Tag), released)
		if !ok {
			continue
		}
		accepted = append(accepted, FormatAcceptValue(code, lr.Weight))
	}

	return strings.Join(accepted, ", ")
}
