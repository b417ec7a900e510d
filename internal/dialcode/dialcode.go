// Package dialcode maps country names to international calling codes and
// normalizes phone numbers against them. The table is static, read-only,
// process-lifetime state - the only state shared across engine invocations.
package dialcode

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// regionByCountry maps lowercase country names to ISO 3166-1 alpha-2 regions.
// Calling codes are resolved through libphonenumber metadata at init so the
// table never drifts from the numbering plan.
var regionByCountry = map[string]string{
	"united states":        "US",
	"usa":                  "US",
	"united kingdom":       "GB",
	"uk":                   "GB",
	"great britain":        "GB",
	"england":              "GB",
	"scotland":             "GB",
	"wales":                "GB",
	"ireland":              "IE",
	"canada":               "CA",
	"australia":            "AU",
	"new zealand":          "NZ",
	"germany":              "DE",
	"france":               "FR",
	"spain":                "ES",
	"portugal":             "PT",
	"italy":                "IT",
	"netherlands":          "NL",
	"belgium":              "BE",
	"luxembourg":           "LU",
	"switzerland":          "CH",
	"austria":              "AT",
	"denmark":              "DK",
	"sweden":               "SE",
	"norway":               "NO",
	"finland":              "FI",
	"iceland":              "IS",
	"poland":               "PL",
	"czech republic":       "CZ",
	"czechia":              "CZ",
	"slovakia":             "SK",
	"hungary":              "HU",
	"romania":              "RO",
	"bulgaria":             "BG",
	"greece":               "GR",
	"croatia":              "HR",
	"slovenia":             "SI",
	"serbia":               "RS",
	"ukraine":              "UA",
	"estonia":              "EE",
	"latvia":               "LV",
	"lithuania":            "LT",
	"russia":               "RU",
	"turkey":               "TR",
	"israel":               "IL",
	"united arab emirates": "AE",
	"uae":                  "AE",
	"saudi arabia":         "SA",
	"qatar":                "QA",
	"kuwait":               "KW",
	"egypt":                "EG",
	"morocco":              "MA",
	"south africa":         "ZA",
	"nigeria":              "NG",
	"kenya":                "KE",
	"ghana":                "GH",
	"india":                "IN",
	"pakistan":             "PK",
	"bangladesh":           "BD",
	"sri lanka":            "LK",
	"nepal":                "NP",
	"china":                "CN",
	"hong kong":            "HK",
	"taiwan":               "TW",
	"japan":                "JP",
	"south korea":          "KR",
	"korea":                "KR",
	"singapore":            "SG",
	"malaysia":             "MY",
	"thailand":             "TH",
	"vietnam":              "VN",
	"indonesia":            "ID",
	"philippines":          "PH",
	"mexico":               "MX",
	"brazil":               "BR",
	"argentina":            "AR",
	"chile":                "CL",
	"colombia":             "CO",
	"peru":                 "PE",
	"uruguay":              "UY",
	"venezuela":            "VE",
	"costa rica":           "CR",
	"panama":               "PA",
}

// codeByCountry is the resolved country-name -> calling-code table,
// e.g. "united kingdom" -> "44".
var codeByCountry = buildTable()

func buildTable() map[string]string {
	table := make(map[string]string, len(regionByCountry))
	for name, region := range regionByCountry {
		code := phonenumbers.GetCountryCodeForRegion(region)
		if code == 0 {
			continue
		}
		table[name] = strconv.Itoa(code)
	}
	return table
}

// Lookup resolves a country name to its calling code. Matching is
// case-insensitive and tolerates surrounding whitespace.
func Lookup(country string) (string, bool) {
	code, ok := codeByCountry[strings.ToLower(strings.TrimSpace(country))]
	return code, ok
}

// minRemainingDigits is the threshold below which a matching dial-code prefix
// is kept rather than stripped: short national numbers would otherwise be
// mangled.
const minRemainingDigits = 6

// NormalizePhone prepares a sender phone value for a bare phone field. All
// characters except digits and "+" are dropped. When the number already starts
// with dialCode (with or without a leading "+") and stripping it leaves at
// least 6 digits, the prefix is removed so a separate country select does not
// double-count it. Any leading plus or space is removed from the result.
func NormalizePhone(raw, dialCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	phone := b.String()

	if dialCode != "" {
		for _, prefix := range []string{"+" + dialCode, dialCode} {
			if strings.HasPrefix(phone, prefix) {
				rest := phone[len(prefix):]
				if countDigits(rest) >= minRemainingDigits {
					phone = rest
				}
				break
			}
		}
	}

	return strings.TrimLeft(phone, "+ ")
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
