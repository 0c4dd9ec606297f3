package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"taskdesk/app/models"
)

const convertedLeadTag = "converted-lead"

// LeadStats summarises the lead funnel.
type LeadStats struct {
	Total       int   `json:"total"`
	New         int   `json:"new"`
	Contacted   int   `json:"contacted"`
	Qualified   int   `json:"qualified"`
	Nurturing   int   `json:"nurturing"`
	AvgScore    int   `json:"avg_score"`
	TotalBudget int64 `json:"total_budget"`
}

// LeadService handles lead-related operations.
type LeadService struct {
	*CRUD[models.Lead, models.LeadPatch]
}

// NewLeadService creates a new instance of LeadService.
func NewLeadService(seed []models.Lead, opts Options) *LeadService {
	return &LeadService{CRUD: NewCRUD(leadSchema(), seed, opts)}
}

// ByStatus returns the leads with the given status.
func (s *LeadService) ByStatus(ctx context.Context, status string) ([]models.Lead, error) {
	return s.Where(ctx, func(l models.Lead) bool { return l.Status == status })
}

// BySource returns the leads that came in through source.
func (s *LeadService) BySource(ctx context.Context, source string) ([]models.Lead, error) {
	return s.Where(ctx, func(l models.Lead) bool { return l.LeadSource == source })
}

// ByAssignee returns the leads assigned to assignee.
func (s *LeadService) ByAssignee(ctx context.Context, assignee string) ([]models.Lead, error) {
	return s.Where(ctx, func(l models.Lead) bool { return l.AssignedTo == assignee })
}

// UpdateScore sets a lead's score, including zero, and records activity.
func (s *LeadService) UpdateScore(ctx context.Context, id int64, score int) (models.Lead, error) {
	if err := s.latency.Wait(ctx, OpLookup); err != nil {
		return models.Lead{}, err
	}
	return s.update(id, func(cur models.Lead, _ []models.Lead) (models.Lead, error) {
		cur.Score = score
		cur.LastActivity = s.now()
		return cur, nil
	})
}

// ConvertToContact creates a contact from the lead, with overrides applied
// on top, and then removes the lead. If the contact cannot be created the
// lead is left in place.
func (s *LeadService) ConvertToContact(ctx context.Context, id int64, overrides models.ContactPatch, contacts *ContactService) (models.Contact, error) {
	lead, ok := s.store.Get(id)
	if !ok {
		s.log.Debug("record not found", "id", id)
		return models.Contact{}, ErrLeadNotFound
	}
	contact, err := contacts.Create(ctx, leadToContact(lead, overrides))
	if err != nil {
		return models.Contact{}, fmt.Errorf("convert lead %d: %w", id, err)
	}
	if _, ok := s.store.Remove(id); !ok {
		// converted or deleted concurrently; undo the contact
		if err := contacts.Delete(context.WithoutCancel(ctx), contact.ID); err != nil {
			s.log.Error("rollback of converted contact failed", "id", id, "contact_id", contact.ID, "error", err)
		}
		return models.Contact{}, ErrLeadNotFound
	}
	s.log.Debug("lead converted", "id", id, "contact_id", contact.ID)
	return contact, nil
}

// Stats counts leads per status and totals scores and budgets.
func (s *LeadService) Stats(ctx context.Context) (LeadStats, error) {
	leads, err := s.Where(ctx, func(models.Lead) bool { return true })
	if err != nil {
		return LeadStats{}, err
	}
	var st LeadStats
	var scores int
	for _, l := range leads {
		st.Total++
		scores += l.Score
		st.TotalBudget += l.Budget
		switch l.Status {
		case "new":
			st.New++
		case "contacted":
			st.Contacted++
		case "qualified":
			st.Qualified++
		case "nurturing":
			st.Nurturing++
		}
	}
	st.AvgScore = roundedAvg(float64(scores), st.Total)
	return st, nil
}

func leadToContact(l models.Lead, o models.ContactPatch) models.ContactPatch {
	status := "active"
	notes := "Converted from lead. Original notes: " + l.Notes
	tags := append(append([]string{}, l.Tags...), convertedLeadTag)
	c := models.ContactPatch{
		FirstName:   &l.FirstName,
		LastName:    &l.LastName,
		Email:       &l.Email,
		Phone:       &l.Phone,
		Title:       &l.Title,
		CompanyName: &l.Company,
		Status:      &status,
		Source:      &l.LeadSource,
		Notes:       &notes,
		Tags:        tags,
	}
	if o.FirstName != nil {
		c.FirstName = o.FirstName
	}
	if o.LastName != nil {
		c.LastName = o.LastName
	}
	if o.Email != nil {
		c.Email = o.Email
	}
	if o.Phone != nil {
		c.Phone = o.Phone
	}
	if o.Title != nil {
		c.Title = o.Title
	}
	if o.CompanyID != nil {
		c.CompanyID = o.CompanyID
	}
	if o.CompanyName != nil {
		c.CompanyName = o.CompanyName
	}
	if o.Status != nil {
		c.Status = o.Status
	}
	if o.Source != nil {
		c.Source = o.Source
	}
	if o.Notes != nil {
		c.Notes = o.Notes
	}
	if o.Tags != nil {
		c.Tags = o.Tags
	}
	return c
}

func roundedAvg(sum float64, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

func leadSchema() Schema[models.Lead, models.LeadPatch] {
	return Schema[models.Lead, models.LeadPatch]{
		Entity:   "lead",
		NotFound: ErrLeadNotFound,
		ID:       func(l models.Lead) int64 { return l.ID },
		Clone:    models.Lead.Clone,
		Build: func(id int64, p models.LeadPatch, now time.Time) models.Lead {
			return models.Lead{
				ID:           id,
				FirstName:    orDefault(p.FirstName, ""),
				LastName:     orDefault(p.LastName, ""),
				Email:        orDefault(p.Email, ""),
				Phone:        orDefault(p.Phone, ""),
				Company:      orDefault(p.Company, ""),
				Title:        orDefault(p.Title, ""),
				Industry:     orDefault(p.Industry, ""),
				LeadSource:   orDefault(p.LeadSource, "manual"),
				Status:       orDefault(p.Status, "new"),
				Score:        orDefault(p.Score, 0),
				Budget:       orDefault(p.Budget, 0),
				Timeline:     orDefault(p.Timeline, ""),
				Notes:        orDefault(p.Notes, ""),
				Tags:         tagsOrEmpty(p.Tags),
				CreatedAt:    now,
				LastActivity: now,
				AssignedTo:   orDefault(p.AssignedTo, "Sales Rep 1"),
			}
		},
		Merge: func(cur models.Lead, p models.LeadPatch, now time.Time) models.Lead {
			cur.FirstName = keep(p.FirstName, cur.FirstName)
			cur.LastName = keep(p.LastName, cur.LastName)
			cur.Email = keep(p.Email, cur.Email)
			cur.Phone = keep(p.Phone, cur.Phone)
			cur.Company = keep(p.Company, cur.Company)
			cur.Title = keep(p.Title, cur.Title)
			cur.Industry = keep(p.Industry, cur.Industry)
			cur.LeadSource = keep(p.LeadSource, cur.LeadSource)
			cur.Status = keep(p.Status, cur.Status)
			cur.Score = keep(p.Score, cur.Score)
			cur.Budget = keep(p.Budget, cur.Budget)
			cur.Timeline = keep(p.Timeline, cur.Timeline)
			cur.Notes = replace(p.Notes, cur.Notes)
			cur.Tags = keepTags(p.Tags, cur.Tags)
			cur.AssignedTo = keep(p.AssignedTo, cur.AssignedTo)
			cur.LastActivity = now
			return cur
		},
		Fields: func(l models.Lead) []string {
			return []string{l.FirstName, l.LastName, l.Email, l.Company, l.Title}
		},
	}
}
