package models

// Inquiry statuses. New is forced on every accepted submission; the other
// transitions happen outside this service.
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

// Inquiry is a contact-form submission, optionally tied to one listing.
type Inquiry struct {
	PropertyType *string `json:"propertyType"`
	PropertyID   *int64  `json:"propertyId"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Message      string  `json:"message"`
	Status       string  `json:"status"`
	ID           int64   `json:"id"`
}

// Clone returns a copy that shares no pointers with the receiver.
func (i Inquiry) Clone() Inquiry {
	out := i
	if i.PropertyType != nil {
		v := *i.PropertyType
		out.PropertyType = &v
	}
	if i.PropertyID != nil {
		v := *i.PropertyID
		out.PropertyID = &v
	}
	return out
}

// InquiryInput is the contact-form payload. Binding tags are enforced by the
// HTTP layer; validate tags by the intake service.
type InquiryInput struct {
	PropertyType *string `json:"propertyType" yaml:"propertyType"`
	PropertyID   *int64  `json:"propertyId" yaml:"propertyId" binding:"omitempty,gt=0" validate:"omitempty,gt=0"`
	Name         string  `json:"name" yaml:"name" binding:"required" validate:"required"`
	Email        string  `json:"email" yaml:"email" binding:"required,email" validate:"required,email"`
	Phone        string  `json:"phone" yaml:"phone" binding:"required" validate:"required"`
	Message      string  `json:"message" yaml:"message" binding:"required" validate:"required"`
	Status       string  `json:"status,omitempty" yaml:"status"`
}

// NewInquiry builds a stored record from input, defaulting the status to new.
func NewInquiry(id int64, in InquiryInput) Inquiry {
	inq := Inquiry{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PropertyType: in.PropertyType,
		Message:      in.Message,
		PropertyID:   in.PropertyID,
		Status:       in.Status,
	}
	if inq.Status == "" {
		inq.Status = InquiryStatusNew
	}
	return inq.Clone()
}
