package models

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// PropertyFilters are the optional search criteria. A string criterion is
// provided when non-empty; a pointer criterion when non-nil. Provided
// criteria are combined with AND.
type PropertyFilters struct {
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	PriceType    string   `json:"priceType,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	Location     string   `json:"location,omitempty"`
}

// IsEmpty reports whether no criterion is provided.
func (f PropertyFilters) IsEmpty() bool {
	return f.PriceType == "" && f.PropertyType == "" && f.Location == "" &&
		f.Bedrooms == nil && f.MinPrice == nil && f.MaxPrice == nil
}

// Matcher compiles the filters into a predicate. Unavailable listings never
// match, whatever the criteria. The predicate is not safe for concurrent use.
func (f PropertyFilters) Matcher() func(Property) bool {
	folder := cases.Fold()
	needle := ""
	if f.Location != "" {
		needle = folder.String(f.Location)
	}

	return func(p Property) bool {
		if !p.Available {
			return false
		}
		if f.PriceType != "" && p.PriceType != f.PriceType {
			return false
		}
		if f.PropertyType != "" && p.PropertyType != f.PropertyType {
			return false
		}
		if needle != "" && !strings.Contains(folder.String(p.Location), needle) {
			return false
		}
		if f.Bedrooms != nil && (p.Bedrooms == nil || *p.Bedrooms != *f.Bedrooms) {
			return false
		}
		if f.MinPrice != nil || f.MaxPrice != nil {
			price := ParsePrice(p.Price)
			if f.MinPrice != nil && price < *f.MinPrice {
				return false
			}
			if f.MaxPrice != nil && price > *f.MaxPrice {
				return false
			}
		}
		return true
	}
}

// FilterProperties returns the listings matching f, keeping input order.
// The result is never nil.
func FilterProperties(props []Property, f PropertyFilters) []Property {
	match := f.Matcher()
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

var leadingDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParsePrice reads the leading decimal number of a stored price, so
// "6000000 to 10000000" yields 6000000. Text with no leading number is 0.
func ParsePrice(price string) float64 {
	m := leadingDecimal.FindString(strings.TrimSpace(price))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
