package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainContact "contacts-api/internal/domain/contact"
	"contacts-api/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

// ContactRepository implements domain contact.Repository interface
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *DB) domainContact.Repository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *domainContact.Contact) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	dbModel := toContactModel(c)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	c.ID = dbModel.ID
	c.CreatedAt = dbModel.CreatedAt
	c.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, userID, contactID uint) (*domainContact.Contact, error) {
	var dbModel models.ContactModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", contactID, userID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainContact.ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return toContactEntity(&dbModel), nil
}

func (r *ContactRepository) List(ctx context.Context, userID uint, skip, limit int) ([]*domainContact.Contact, error) {
	var dbModels []models.ContactModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&dbModels).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return toContactEntities(dbModels), nil
}

func (r *ContactRepository) Search(ctx context.Context, userID uint, query string) ([]*domainContact.Contact, error) {
	pattern := "%" + query + "%"

	var dbModels []models.ContactModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Order("id ASC").
		Find(&dbModels).Error

	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	return toContactEntities(dbModels), nil
}

func (r *ContactRepository) BirthdaysInWindow(ctx context.Context, userID uint, from time.Time, days int) ([]*domainContact.Contact, error) {
	// Month/day matching, birth year ignored. The window is materialized as a
	// set of MM-DD strings so it wraps correctly across the year boundary.
	monthDays := make([]string, 0, days+1)
	for i := 0; i <= days; i++ {
		monthDays = append(monthDays, from.AddDate(0, 0, i).Format("01-02"))
	}

	var dbModels []models.ContactModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ? AND birth_date IS NOT NULL", userID).
		Where("to_char(birth_date, 'MM-DD') IN ?", monthDays).
		Order("id ASC").
		Find(&dbModels).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get birthdays: %w", err)
	}

	return toContactEntities(dbModels), nil
}

func (r *ContactRepository) Update(ctx context.Context, c *domainContact.Contact) error {
	c.UpdatedAt = time.Now()

	// Full overwrite: every column is written, omitted optional fields reset.
	result := r.db.DB.WithContext(ctx).
		Model(&models.ContactModel{}).
		Where("id = ? AND user_id = ?", c.ID, c.UserID).
		Updates(map[string]interface{}{
			"first_name":  c.FirstName,
			"last_name":   c.LastName,
			"email":       c.Email,
			"phone":       c.Phone,
			"birth_date":  c.BirthDate,
			"description": c.Description,
			"updated_at":  c.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainContact.ErrContactNotFound
	}

	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, userID, contactID uint) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", contactID, userID).
		Delete(&models.ContactModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainContact.ErrContactNotFound
	}

	return nil
}

// Helper functions to convert between domain entities and database models

func toContactModel(c *domainContact.Contact) *models.ContactModel {
	return &models.ContactModel{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		BirthDate:   c.BirthDate,
		Description: c.Description,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toContactEntity(m *models.ContactModel) *domainContact.Contact {
	return &domainContact.Contact{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		Phone:       m.Phone,
		BirthDate:   m.BirthDate,
		Description: m.Description,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toContactEntities(dbModels []models.ContactModel) []*domainContact.Contact {
	contacts := make([]*domainContact.Contact, len(dbModels))
	for i := range dbModels {
		contacts[i] = toContactEntity(&dbModels[i])
	}
	return contacts
}
