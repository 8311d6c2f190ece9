package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
)

// structuredAddressRe matches Dutch seller addresses like
// "5384Da Schaijk, NL" or "1234 AB 's-Hertogenbosch, NL".
var structuredAddressRe = regexp.MustCompile(`(?i)^([\d\w\s-]+)\s+([A-Za-zÀ-ÿ'\-\s]+),?\s*NL`)

// Address is the normalized seller address of a listing. Display is empty
// for private sellers by design; empty ZipCode/City mean the fragment did
// not match the structured pattern.
type Address struct {
	Display string
	ZipCode string
	City    string
}

// ResolveAddress combines the two raw address fragments and the seller type
// tag into a normalized address. Private sellers expose only zip and city
// (parsed from the first fragment); dealers expose the first fragment as the
// display address and parse zip/city from the second; any other seller type
// keeps the merged fragments as display only. Missing fragments degrade to
// empty fields, never an error.
func ResolveAddress(fragment1, fragment2, sellerType string) Address {
	switch sellerType {
	case domain.SellerPrivate:
		if fragment1 == "" {
			return Address{}
		}
		zip, city := parseStructured(fragment1)
		return Address{ZipCode: zip, City: city}

	case domain.SellerDealer:
		if fragment1 == "" || fragment2 == "" {
			return Address{}
		}
		zip, city := parseStructured(fragment2)
		return Address{Display: strings.TrimSpace(fragment1), ZipCode: zip, City: city}

	default:
		return Address{Display: MergeAddress(fragment1, fragment2)}
	}
}

// parseStructured splits a fragment like "1234 AB City, NL" into zip code
// and city name. No match -> both empty.
func parseStructured(fragment string) (zip, city string) {
	m := structuredAddressRe.FindStringSubmatch(strings.TrimSpace(fragment))
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// MergeAddress joins the two raw fragments into one display string,
// trimming each side. Either side may be missing.
func MergeAddress(fragment1, fragment2 string) string {
	f1 := strings.TrimSpace(fragment1)
	f2 := strings.TrimSpace(fragment2)
	switch {
	case f1 != "" && f2 != "":
		return fmt.Sprintf("%s, %s", f1, f2)
	case f1 != "":
		return f1
	default:
		return f2
	}
}
