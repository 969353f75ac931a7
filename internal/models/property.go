package models

import "slices"

// Price types a listing can be offered under.
const (
	PriceTypeSale = "sale"
	PriceTypeRent = "rent"
	PriceTypePG   = "pg"
)

// DefaultCity is assigned to listings created without a city.
const DefaultCity = "Faridabad"

// Property is a listing in the catalog.
// Price is kept as decimal text so it survives transport without float rounding.
type Property struct {
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	PriceType     string   `json:"priceType"`
	PropertyType  string   `json:"propertyType"`
	Location      string   `json:"location"`
	Sector        string   `json:"sector"`
	City          string   `json:"city"`
	ContactPerson string   `json:"contactPerson"`
	ContactPhone  string   `json:"contactPhone"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	ID            int64    `json:"id"`
	Area          int      `json:"area"`
	Featured      bool     `json:"featured"`
	Available     bool     `json:"available"`
}

// Clone returns a deep copy so callers never share slices or pointers with a store.
func (p Property) Clone() Property {
	out := p
	out.Bedrooms = cloneInt(p.Bedrooms)
	out.Bathrooms = cloneInt(p.Bathrooms)
	out.Amenities = cloneStrings(p.Amenities)
	out.Images = cloneStrings(p.Images)
	return out
}

// PropertyInput carries the fields accepted when creating a listing.
// Pointer fields distinguish "absent" from the zero value so defaults can apply.
type PropertyInput struct {
	Bedrooms      *int     `json:"bedrooms" yaml:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms     *int     `json:"bathrooms" yaml:"bathrooms" binding:"omitempty,gte=0"`
	Featured      *bool    `json:"featured" yaml:"featured"`
	Available     *bool    `json:"available" yaml:"available"`
	Title         string   `json:"title" yaml:"title" binding:"required"`
	Description   string   `json:"description" yaml:"description"`
	Price         string   `json:"price" yaml:"price" binding:"required,price"`
	PriceType     string   `json:"priceType" yaml:"priceType" binding:"required,oneof=sale rent pg"`
	PropertyType  string   `json:"propertyType" yaml:"propertyType" binding:"required"`
	Location      string   `json:"location" yaml:"location"`
	Sector        string   `json:"sector" yaml:"sector"`
	City          string   `json:"city" yaml:"city"`
	ContactPerson string   `json:"contactPerson" yaml:"contactPerson"`
	ContactPhone  string   `json:"contactPhone" yaml:"contactPhone"`
	Amenities     []string `json:"amenities" yaml:"amenities"`
	Images        []string `json:"images" yaml:"images"`
	Area          int      `json:"area" yaml:"area" binding:"required,gt=0"`
}

// NewProperty builds a full record from input, filling every absent optional
// field with its default. The input is copied, never aliased.
func NewProperty(id int64, in PropertyInput) Property {
	p := Property{
		ID:            id,
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		PriceType:     in.PriceType,
		PropertyType:  in.PropertyType,
		Bedrooms:      cloneInt(in.Bedrooms),
		Bathrooms:     cloneInt(in.Bathrooms),
		Area:          in.Area,
		Location:      in.Location,
		Sector:        in.Sector,
		City:          in.City,
		Amenities:     cloneStrings(in.Amenities),
		Images:        cloneStrings(in.Images),
		Featured:      false,
		Available:     true,
		ContactPerson: in.ContactPerson,
		ContactPhone:  in.ContactPhone,
	}
	if p.City == "" {
		p.City = DefaultCity
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	return p
}

// PropertyPatch is a partial update. Nil fields are left untouched.
type PropertyPatch struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Price         *string   `json:"price" binding:"omitempty,price"`
	PriceType     *string   `json:"priceType" binding:"omitempty,oneof=sale rent pg"`
	PropertyType  *string   `json:"propertyType"`
	Bedrooms      *int      `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms     *int      `json:"bathrooms" binding:"omitempty,gte=0"`
	Area          *int      `json:"area" binding:"omitempty,gt=0"`
	Location      *string   `json:"location"`
	Sector        *string   `json:"sector"`
	City          *string   `json:"city"`
	Amenities     *[]string `json:"amenities"`
	Images        *[]string `json:"images"`
	Featured      *bool     `json:"featured"`
	Available     *bool     `json:"available"`
	ContactPerson *string   `json:"contactPerson"`
	ContactPhone  *string   `json:"contactPhone"`
}

// IsEmpty reports whether the patch changes nothing.
func (pp PropertyPatch) IsEmpty() bool {
	return pp == PropertyPatch{}
}

// Apply merges the provided fields onto p, last write wins per field.
func (pp PropertyPatch) Apply(p *Property) {
	setString(&p.Title, pp.Title)
	setString(&p.Description, pp.Description)
	setString(&p.Price, pp.Price)
	setString(&p.PriceType, pp.PriceType)
	setString(&p.PropertyType, pp.PropertyType)
	setString(&p.Location, pp.Location)
	setString(&p.Sector, pp.Sector)
	setString(&p.City, pp.City)
	setString(&p.ContactPerson, pp.ContactPerson)
	setString(&p.ContactPhone, pp.ContactPhone)

	if pp.Bedrooms != nil {
		p.Bedrooms = cloneInt(pp.Bedrooms)
	}
	if pp.Bathrooms != nil {
		p.Bathrooms = cloneInt(pp.Bathrooms)
	}
	if pp.Area != nil {
		p.Area = *pp.Area
	}
	if pp.Amenities != nil {
		p.Amenities = cloneStrings(*pp.Amenities)
	}
	if pp.Images != nil {
		p.Images = cloneStrings(*pp.Images)
	}
	if pp.Featured != nil {
		p.Featured = *pp.Featured
	}
	if pp.Available != nil {
		p.Available = *pp.Available
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// cloneStrings never returns nil so lists always encode as [] rather than null.
func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}
