package services

import (
	"context"
	"time"

	"taskdesk/app/models"
)

// CompanyService handles company-related operations.
type CompanyService struct {
	*CRUD[models.Company, models.CompanyPatch]
}

// NewCompanyService creates a new instance of CompanyService.
func NewCompanyService(seed []models.Company, opts Options) *CompanyService {
	return &CompanyService{CRUD: NewCRUD(companySchema(), seed, opts)}
}

// ByTier returns the companies in the given tier.
func (s *CompanyService) ByTier(ctx context.Context, tier string) ([]models.Company, error) {
	return s.Where(ctx, func(c models.Company) bool { return c.Tier == tier })
}

// ByIndustry returns the companies in the given industry.
func (s *CompanyService) ByIndustry(ctx context.Context, industry string) ([]models.Company, error) {
	return s.Where(ctx, func(c models.Company) bool { return c.Industry == industry })
}

// Active returns the companies whose status is "active".
func (s *CompanyService) Active(ctx context.Context) ([]models.Company, error) {
	return s.Where(ctx, func(c models.Company) bool { return c.Status == "active" })
}

func companySchema() Schema[models.Company, models.CompanyPatch] {
	return Schema[models.Company, models.CompanyPatch]{
		Entity:   "company",
		NotFound: ErrCompanyNotFound,
		ID:       func(c models.Company) int64 { return c.ID },
		Clone:    models.Company.Clone,
		Build: func(id int64, p models.CompanyPatch, now time.Time) models.Company {
			return models.Company{
				ID:             id,
				Name:           orDefault(p.Name, ""),
				Industry:       orDefault(p.Industry, ""),
				Size:           orDefault(p.Size, ""),
				Website:        orDefault(p.Website, ""),
				Phone:          orDefault(p.Phone, ""),
				Address:        orDefault(p.Address, ""),
				Status:         orDefault(p.Status, "active"),
				Tier:           orDefault(p.Tier, "small"),
				Revenue:        orDefault(p.Revenue, 0),
				Employees:      orDefault(p.Employees, 0),
				PrimaryContact: orDefault(p.PrimaryContact, ""),
				Notes:          orDefault(p.Notes, ""),
				Tags:           tagsOrEmpty(p.Tags),
				CreatedAt:      now,
				LastActivity:   now,
			}
		},
		Merge: func(cur models.Company, p models.CompanyPatch, now time.Time) models.Company {
			cur.Name = keep(p.Name, cur.Name)
			cur.Industry = keep(p.Industry, cur.Industry)
			cur.Size = keep(p.Size, cur.Size)
			cur.Website = keep(p.Website, cur.Website)
			cur.Phone = keep(p.Phone, cur.Phone)
			cur.Address = keep(p.Address, cur.Address)
			cur.Status = keep(p.Status, cur.Status)
			cur.Tier = keep(p.Tier, cur.Tier)
			cur.Revenue = keep(p.Revenue, cur.Revenue)
			cur.Employees = keep(p.Employees, cur.Employees)
			cur.PrimaryContact = keep(p.PrimaryContact, cur.PrimaryContact)
			cur.Notes = replace(p.Notes, cur.Notes)
			cur.Tags = keepTags(p.Tags, cur.Tags)
			cur.LastActivity = now
			return cur
		},
		Fields: func(c models.Company) []string {
			return []string{c.Name, c.Industry, c.PrimaryContact}
		},
	}
}
