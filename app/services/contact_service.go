package services

import (
	"context"
	"time"

	"taskdesk/app/models"
)

// ContactService handles contact-related operations.
type ContactService struct {
	*CRUD[models.Contact, models.ContactPatch]
}

// NewContactService creates a new instance of ContactService.
func NewContactService(seed []models.Contact, opts Options) *ContactService {
	return &ContactService{CRUD: NewCRUD(contactSchema(), seed, opts)}
}

// ByCompany returns the contacts linked to companyID.
func (s *ContactService) ByCompany(ctx context.Context, companyID int64) ([]models.Contact, error) {
	return s.Where(ctx, func(c models.Contact) bool {
		return c.CompanyID != nil && *c.CompanyID == companyID
	})
}

// ByStatus returns the contacts with the given status.
func (s *ContactService) ByStatus(ctx context.Context, status string) ([]models.Contact, error) {
	return s.Where(ctx, func(c models.Contact) bool { return c.Status == status })
}

func contactSchema() Schema[models.Contact, models.ContactPatch] {
	return Schema[models.Contact, models.ContactPatch]{
		Entity:   "contact",
		NotFound: ErrContactNotFound,
		ID:       func(c models.Contact) int64 { return c.ID },
		Clone:    models.Contact.Clone,
		Build: func(id int64, p models.ContactPatch, now time.Time) models.Contact {
			return models.Contact{
				ID:              id,
				FirstName:       orDefault(p.FirstName, ""),
				LastName:        orDefault(p.LastName, ""),
				Email:           orDefault(p.Email, ""),
				Phone:           orDefault(p.Phone, ""),
				Title:           orDefault(p.Title, ""),
				CompanyID:       optionalID(p.CompanyID),
				CompanyName:     orDefault(p.CompanyName, ""),
				Status:          orDefault(p.Status, "active"),
				Source:          orDefault(p.Source, "manual"),
				LastContactDate: now,
				Notes:           orDefault(p.Notes, ""),
				Tags:            tagsOrEmpty(p.Tags),
				CreatedAt:       now,
			}
		},
		Merge: func(cur models.Contact, p models.ContactPatch, now time.Time) models.Contact {
			cur.FirstName = keep(p.FirstName, cur.FirstName)
			cur.LastName = keep(p.LastName, cur.LastName)
			cur.Email = keep(p.Email, cur.Email)
			cur.Phone = keep(p.Phone, cur.Phone)
			cur.Title = keep(p.Title, cur.Title)
			cur.CompanyID = keepID(p.CompanyID, cur.CompanyID)
			cur.CompanyName = keep(p.CompanyName, cur.CompanyName)
			cur.Status = keep(p.Status, cur.Status)
			cur.Source = keep(p.Source, cur.Source)
			cur.LastContactDate = orDefault(p.LastContactDate, now)
			cur.Notes = replace(p.Notes, cur.Notes)
			cur.Tags = keepTags(p.Tags, cur.Tags)
			return cur
		},
		Fields: func(c models.Contact) []string {
			return []string{c.FirstName, c.LastName, c.Email, c.CompanyName, c.Title}
		},
	}
}
