package contact

import (
	"context"
	"errors"
	"time"

	domainContact "contacts-api/internal/domain/contact"
	"contacts-api/internal/logger"
	appErrors "contacts-api/pkg/errors"
	"contacts-api/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultListLimit   = 100
	birthdayWindowDays = 7
)

// Service implements contact use cases. The owning user ID is an implicit
// filter on every operation; ownership is never taken from the request body.
type Service struct {
	contactRepo domainContact.Repository
}

// NewService creates a new contact service
func NewService(contactRepo domainContact.Repository) *Service {
	return &Service{contactRepo: contactRepo}
}

func (s *Service) CreateContact(ctx context.Context, userID uint, req *ContactRequest) (*ContactResponse, error) {
	contact, err := s.toEntity(userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	logger.Info("Contact created",
		zap.Uint("contact_id", contact.ID),
		zap.Uint("user_id", userID),
		zap.String("event", "contact_created"),
	)

	return ToContactResponse(contact), nil
}

func (s *Service) GetContact(ctx context.Context, userID, contactID uint) (*ContactResponse, error) {
	contact, err := s.contactRepo.GetByID(ctx, userID, contactID)
	if err != nil {
		if errors.Is(err, domainContact.ErrContactNotFound) {
			return nil, appErrors.ErrContactNotFound
		}
		return nil, err
	}

	return ToContactResponse(contact), nil
}

// ListContacts returns the user's contacts in insertion order, paginated via
// skip/limit. A missing limit falls back to the default; out-of-range values
// are rejected rather than clamped.
func (s *Service) ListContacts(ctx context.Context, userID uint, req *ListRequest) ([]*ContactResponse, error) {
	if req.Limit == 0 {
		req.Limit = defaultListLimit
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid query parameters", err)
	}

	contacts, err := s.contactRepo.List(ctx, userID, req.Skip, req.Limit)
	if err != nil {
		return nil, err
	}

	return ToContactResponses(contacts), nil
}

// SearchContacts matches the query case-insensitively against first name,
// last name and email. An empty result set is surfaced as not found.
func (s *Service) SearchContacts(ctx context.Context, userID uint, query string) ([]*ContactResponse, error) {
	contacts, err := s.contactRepo.Search(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, appErrors.ErrContactsEmpty
	}

	return ToContactResponses(contacts), nil
}

// BirthdaysNextWeek returns contacts whose birthday (month/day, year ignored)
// falls within the next seven calendar days, today inclusive.
func (s *Service) BirthdaysNextWeek(ctx context.Context, userID uint) ([]*ContactResponse, error) {
	today := time.Now()

	contacts, err := s.contactRepo.BirthdaysInWindow(ctx, userID, today, birthdayWindowDays)
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, appErrors.ErrContactsEmpty
	}

	return ToContactResponses(contacts), nil
}

// UpdateContact overwrites every field of the contact from the request body.
func (s *Service) UpdateContact(ctx context.Context, userID, contactID uint, req *ContactRequest) (*ContactResponse, error) {
	contact, err := s.toEntity(userID, req)
	if err != nil {
		return nil, err
	}
	contact.ID = contactID

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		if errors.Is(err, domainContact.ErrContactNotFound) {
			return nil, appErrors.ErrContactNotFound
		}
		return nil, err
	}

	updated, err := s.contactRepo.GetByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	return ToContactResponse(updated), nil
}

// RemoveContact deletes the contact and returns its data.
func (s *Service) RemoveContact(ctx context.Context, userID, contactID uint) (*ContactResponse, error) {
	contact, err := s.contactRepo.GetByID(ctx, userID, contactID)
	if err != nil {
		if errors.Is(err, domainContact.ErrContactNotFound) {
			return nil, appErrors.ErrContactNotFound
		}
		return nil, err
	}

	if err := s.contactRepo.Delete(ctx, userID, contactID); err != nil {
		if errors.Is(err, domainContact.ErrContactNotFound) {
			return nil, appErrors.ErrContactNotFound
		}
		return nil, err
	}

	logger.Info("Contact deleted",
		zap.Uint("contact_id", contactID),
		zap.Uint("user_id", userID),
		zap.String("event", "contact_deleted"),
	)

	return ToContactResponse(contact), nil
}

func (s *Service) toEntity(userID uint, req *ContactRequest) (*domainContact.Contact, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid birth date", err)
	}

	return &domainContact.Contact{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		BirthDate:   birthDate,
		Description: req.Description,
		UserID:      userID,
	}, nil
}
