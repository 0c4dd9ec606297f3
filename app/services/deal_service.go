package services

import (
	"context"
	"time"

	"taskdesk/app/models"
)

// PipelineStages are the deal stages in pipeline order.
var PipelineStages = []string{
	"discovery",
	"qualification",
	"demo",
	"proposal",
	"negotiation",
	"closed-won",
	"closed-lost",
}

// StageSummary aggregates the deals sitting in one pipeline stage.
type StageSummary struct {
	Stage      string        `json:"stage"`
	Deals      []models.Deal `json:"deals"`
	Count      int           `json:"count"`
	TotalValue float64       `json:"total_value"`
	AvgValue   float64       `json:"avg_value"`
}

// DealService handles deal-related operations.
type DealService struct {
	*CRUD[models.Deal, models.DealPatch]
}

// NewDealService creates a new instance of DealService.
func NewDealService(seed []models.Deal, opts Options) *DealService {
	return &DealService{CRUD: NewCRUD(dealSchema(), seed, opts)}
}

// ByStage returns the deals in the given pipeline stage.
func (s *DealService) ByStage(ctx context.Context, stage string) ([]models.Deal, error) {
	return s.Where(ctx, func(d models.Deal) bool { return d.Stage == stage })
}

// ByOwner returns the deals owned by owner.
func (s *DealService) ByOwner(ctx context.Context, owner string) ([]models.Deal, error) {
	return s.Where(ctx, func(d models.Deal) bool { return d.Owner == owner })
}

// ByCompany returns the deals linked to the given company.
func (s *DealService) ByCompany(ctx context.Context, companyID int64) ([]models.Deal, error) {
	return s.Where(ctx, func(d models.Deal) bool {
		return d.CompanyID != nil && *d.CompanyID == companyID
	})
}

// AddActivity appends an activity to a deal and bumps its update time.
func (s *DealService) AddActivity(ctx context.Context, id int64, a models.Activity) (models.Deal, error) {
	if err := s.latency.Wait(ctx, OpUpdate); err != nil {
		return models.Deal{}, err
	}
	return s.update(id, func(cur models.Deal, _ []models.Deal) (models.Deal, error) {
		now := s.now()
		if a.Type == "" {
			a.Type = "note"
		}
		if a.Outcome == "" {
			a.Outcome = "pending"
		}
		a.Date = now
		cur.Activities = append(cur.Activities, a)
		cur.UpdatedAt = now
		return cur, nil
	})
}

// Pipeline summarises deals per stage, in PipelineStages order. Deals in
// other stages are left out.
func (s *DealService) Pipeline(ctx context.Context) ([]StageSummary, error) {
	deals, err := s.Where(ctx, func(models.Deal) bool { return true })
	if err != nil {
		return nil, err
	}
	out := make([]StageSummary, 0, len(PipelineStages))
	for _, stage := range PipelineStages {
		sum := StageSummary{Stage: stage, Deals: []models.Deal{}}
		for _, d := range deals {
			if d.Stage != stage {
				continue
			}
			sum.Deals = append(sum.Deals, d)
			sum.Count++
			sum.TotalValue += d.Value
		}
		if sum.Count > 0 {
			sum.AvgValue = sum.TotalValue / float64(sum.Count)
		}
		out = append(out, sum)
	}
	return out, nil
}

func dealSchema() Schema[models.Deal, models.DealPatch] {
	return Schema[models.Deal, models.DealPatch]{
		Entity:   "deal",
		NotFound: ErrDealNotFound,
		ID:       func(d models.Deal) int64 { return d.ID },
		Clone:    models.Deal.Clone,
		Build: func(id int64, p models.DealPatch, now time.Time) models.Deal {
			d := models.Deal{
				ID:          id,
				Name:        orDefault(p.Name, ""),
				CompanyID:   optionalID(p.CompanyID),
				CompanyName: orDefault(p.CompanyName, ""),
				ContactID:   optionalID(p.ContactID),
				ContactName: orDefault(p.ContactName, ""),
				Value:       orDefault(p.Value, 0),
				Stage:       orDefault(p.Stage, "discovery"),
				Probability: orDefault(p.Probability, 0),
				Owner:       orDefault(p.Owner, "Sales Rep 1"),
				Source:      orDefault(p.Source, "manual"),
				Description: orDefault(p.Description, ""),
				Notes:       orDefault(p.Notes, ""),
				Tags:        tagsOrEmpty(p.Tags),
				Activities:  []models.Activity{},
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if p.ExpectedCloseDate != nil && !p.ExpectedCloseDate.IsZero() {
				closeDate := *p.ExpectedCloseDate
				d.ExpectedCloseDate = &closeDate
			}
			return d
		},
		Merge: func(cur models.Deal, p models.DealPatch, now time.Time) models.Deal {
			cur.Name = keep(p.Name, cur.Name)
			cur.CompanyID = keepID(p.CompanyID, cur.CompanyID)
			cur.CompanyName = keep(p.CompanyName, cur.CompanyName)
			cur.ContactID = keepID(p.ContactID, cur.ContactID)
			cur.ContactName = keep(p.ContactName, cur.ContactName)
			cur.Value = keep(p.Value, cur.Value)
			cur.Stage = keep(p.Stage, cur.Stage)
			cur.Probability = keep(p.Probability, cur.Probability)
			if p.ExpectedCloseDate != nil && !p.ExpectedCloseDate.IsZero() {
				closeDate := *p.ExpectedCloseDate
				cur.ExpectedCloseDate = &closeDate
			}
			cur.Owner = keep(p.Owner, cur.Owner)
			cur.Source = keep(p.Source, cur.Source)
			cur.Description = replace(p.Description, cur.Description)
			cur.Notes = replace(p.Notes, cur.Notes)
			cur.Tags = keepTags(p.Tags, cur.Tags)
			cur.UpdatedAt = now
			return cur
		},
		Fields: func(d models.Deal) []string {
			return []string{d.Name, d.CompanyName, d.ContactName, d.Description}
		},
	}
}
