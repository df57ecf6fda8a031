package contact

import (
	"time"

	domainContact "contacts-api/internal/domain/contact"
)

const birthDateLayout = "2006-01-02"

// ContactRequest is the body of both create and update. Update applies it as
// a full overwrite: omitted optional fields reset to their defaults.
type ContactRequest struct {
	FirstName   string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName    string  `json:"last_name" validate:"omitempty,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone" validate:"omitempty,max=30"`
	BirthDate   *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type ListRequest struct {
	Skip  int `form:"skip,default=0" validate:"gte=0"`
	Limit int `form:"limit,default=100" validate:"gt=0,lte=1000"`
}

type ContactResponse struct {
	ID          uint    `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	BirthDate   *string `json:"birth_date"`
	Description *string `json:"description"`
}

func ToContactResponse(c *domainContact.Contact) *ContactResponse {
	if c == nil {
		return nil
	}

	var birthDate *string
	if c.BirthDate != nil {
		formatted := c.BirthDate.Format(birthDateLayout)
		birthDate = &formatted
	}

	return &ContactResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		BirthDate:   birthDate,
		Description: c.Description,
	}
}

func ToContactResponses(contacts []*domainContact.Contact) []*ContactResponse {
	responses := make([]*ContactResponse, len(contacts))
	for i, c := range contacts {
		responses[i] = ToContactResponse(c)
	}
	return responses
}

func parseBirthDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(birthDateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
