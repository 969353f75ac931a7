package models

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
func stringPtr(v string) *string  { return &v }

func sampleCatalog() []Property {
	return []Property{
		{ID: 1, Title: "Premium 3BHK", Price: "8500000", PriceType: PriceTypeSale, PropertyType: "apartment", Bedrooms: intPtr(3), Location: "Sector 21, Faridabad", Available: true, Featured: true},
		{ID: 2, Title: "2BHK for Rent", Price: "15000", PriceType: PriceTypeRent, PropertyType: "apartment", Bedrooms: intPtr(2), Location: "Sector 9", Available: true},
		{ID: 3, Title: "PG Rooms", Price: "6000", PriceType: PriceTypePG, PropertyType: "pg", Location: "Sector 21D", Available: true},
		{ID: 4, Title: "Hidden villa", Price: "30000000", PriceType: PriceTypeSale, PropertyType: "villa", Bedrooms: intPtr(5), Location: "Sector 15, Faridabad", Available: false},
		{ID: 5, Title: "Range priced", Price: "6000000 to 10000000", PriceType: PriceTypeSale, PropertyType: "Apartment", Bedrooms: intPtr(3), Location: "Sector 85, Faridabad", Available: true},
		{ID: 6, Title: "Price on request", Price: "on request", PriceType: PriceTypeSale, PropertyType: "office", Location: "Sector 15, Faridabad", Available: true},
	}
}

func ids(props []Property) []int64 {
	out := make([]int64, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterProperties_EmptyFiltersReturnAvailableInOrder(t *testing.T) {
	got := FilterProperties(sampleCatalog(), PropertyFilters{})
	assert.Equal(t, []int64{1, 2, 3, 5, 6}, ids(got))
}

func TestFilterProperties_NeverReturnsUnavailable(t *testing.T) {
	filters := []PropertyFilters{
		{},
		{PriceType: PriceTypeSale},
		{PropertyType: "villa"},
		{Location: "sector 15"},
		{Bedrooms: intPtr(5)},
		{MinPrice: floatPtr(20000000)},
	}
	for _, f := range filters {
		for _, p := range FilterProperties(sampleCatalog(), f) {
			assert.True(t, p.Available, "filter %+v returned unavailable listing %d", f, p.ID)
		}
	}
}

func TestFilterProperties_Criteria(t *testing.T) {
	tests := []struct {
		name    string
		filters PropertyFilters
		want    []int64
	}{
		{name: "price type sale", filters: PropertyFilters{PriceType: PriceTypeSale}, want: []int64{1, 5, 6}},
		{name: "price type rent", filters: PropertyFilters{PriceType: PriceTypeRent}, want: []int64{2}},
		{name: "price type with no listings", filters: PropertyFilters{PriceType: "lease"}, want: []int64{}},
		{name: "property type is case sensitive", filters: PropertyFilters{PropertyType: "apartment"}, want: []int64{1, 2}},
		{name: "location case insensitive substring", filters: PropertyFilters{Location: "sector 15"}, want: []int64{6}},
		{name: "location matches prefix of longer sector", filters: PropertyFilters{Location: "SECTOR 21"}, want: []int64{1, 3}},
		{name: "bedrooms exact", filters: PropertyFilters{Bedrooms: intPtr(3)}, want: []int64{1, 5}},
		{name: "bedrooms zero never matches missing bedrooms", filters: PropertyFilters{Bedrooms: intPtr(0)}, want: []int64{}},
		{name: "min price", filters: PropertyFilters{MinPrice: floatPtr(6000000)}, want: []int64{1, 5}},
		{name: "max price", filters: PropertyFilters{MaxPrice: floatPtr(15000)}, want: []int64{2, 3, 6}},
		{name: "price range inclusive", filters: PropertyFilters{MinPrice: floatPtr(6000), MaxPrice: floatPtr(15000)}, want: []int64{2, 3}},
		{name: "unparsable price counts as zero", filters: PropertyFilters{MaxPrice: floatPtr(0)}, want: []int64{6}},
		{name: "combined criteria", filters: PropertyFilters{PriceType: PriceTypeSale, Bedrooms: intPtr(3), Location: "faridabad"}, want: []int64{1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProperties(sampleCatalog(), tt.filters)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterProperties_EveryExistingPriceTypeIsFound(t *testing.T) {
	catalog := sampleCatalog()
	for _, p := range catalog {
		if !p.Available {
			continue
		}
		got := FilterProperties(catalog, PropertyFilters{PriceType: p.PriceType})
		assert.Contains(t, ids(got), p.ID)
	}
}

func TestFilterProperties_NilInput(t *testing.T) {
	got := FilterProperties(nil, PropertyFilters{PriceType: PriceTypeSale})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPropertyFilters_IsEmpty(t *testing.T) {
	assert.True(t, PropertyFilters{}.IsEmpty())
	assert.False(t, PropertyFilters{Location: "x"}.IsEmpty())
	assert.False(t, PropertyFilters{MaxPrice: floatPtr(1)}.IsEmpty())
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "7500000", want: 7500000},
		{in: "7500000.50", want: 7500000.5},
		{in: "  15000 ", want: 15000},
		{in: "6000000 to 10000000", want: 6000000},
		{in: ".5", want: 0.5},
		{in: "1e3", want: 1000},
		{in: "", want: 0},
		{in: "on request", want: 0},
		{in: "₹37.8 L", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.in))
		})
	}
}

func TestJSONTagName(t *testing.T) {
	typ := reflect.TypeOf(InquiryInput{})

	tests := []struct {
		field string
		want  string
	}{
		{field: "Name", want: "name"},
		{field: "PropertyID", want: "propertyId"},
		{field: "Status", want: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			fld, ok := typ.FieldByName(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.want, JSONTagName(fld))
		})
	}

	ignored := reflect.StructField{Name: "Secret", Tag: `json:"-"`}
	assert.Equal(t, "", JSONTagName(ignored))

	query := reflect.StructField{Name: "MinPrice", Tag: `form:"minPrice" binding:"omitempty,numeric"`}
	assert.Equal(t, "minPrice", JSONTagName(query))

	untagged := reflect.StructField{Name: "Notes"}
	assert.Equal(t, "", JSONTagName(untagged))
}

func TestValidPrice(t *testing.T) {
	tests := []struct {
		price string
		want  bool
	}{
		{price: "25000", want: true},
		{price: "7500000.50", want: true},
		{price: " 6000000 to 10000000", want: true},
		{price: ".5", want: true},
		{price: "-5", want: false},
		{price: "+100", want: false},
		{price: "on request", want: false},
		{price: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPrice(tt.price))
			if tt.want {
				assert.Positive(t, ParsePrice(tt.price))
			}
		})
	}
}

func TestConfigureValidator(t *testing.T) {
	validate := validator.New()
	validate.SetTagName("binding")
	ConfigureValidator(validate)

	in := PropertyInput{Title: "Shop", Price: "6000000 to 10000000", PriceType: PriceTypeSale, PropertyType: "shop", Area: 300}
	require.NoError(t, validate.Struct(in))

	in.Price = "-5"
	err := validate.Struct(in)
	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	require.Len(t, validationErrors, 1)
	assert.Equal(t, "price", validationErrors[0].Field())
	assert.Equal(t, "price", validationErrors[0].Tag())
}
