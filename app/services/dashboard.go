package services

import (
	"context"

	"taskdesk/app/models"
)

// Summary holds the CRM dashboard totals.
type Summary struct {
	Contacts struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"contacts"`
	Companies struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"companies"`
	Deals struct {
		Total      int     `json:"total"`
		TotalValue float64 `json:"total_value"`
		AvgValue   int     `json:"avg_value"`
	} `json:"deals"`
	Leads struct {
		Total     int `json:"total"`
		Qualified int `json:"qualified"`
		AvgScore  int `json:"avg_score"`
	} `json:"leads"`
}

// Dashboard aggregates figures across the CRM services.
type Dashboard struct {
	Contacts  *ContactService
	Companies *CompanyService
	Deals     *DealService
	Leads     *LeadService
}

// Summary fetches every CRM collection and totals it.
func (d *Dashboard) Summary(ctx context.Context) (Summary, error) {
	var s Summary

	contacts, err := d.Contacts.List(ctx)
	if err != nil {
		return s, err
	}
	companies, err := d.Companies.List(ctx)
	if err != nil {
		return s, err
	}
	deals, err := d.Deals.List(ctx)
	if err != nil {
		return s, err
	}
	leads, err := d.Leads.List(ctx)
	if err != nil {
		return s, err
	}

	s.Contacts.Total = len(contacts)
	s.Contacts.Active = count(contacts, func(c models.Contact) bool { return c.Status == "active" })

	s.Companies.Total = len(companies)
	s.Companies.Active = count(companies, func(c models.Company) bool { return c.Status == "active" })

	s.Deals.Total = len(deals)
	for _, deal := range deals {
		s.Deals.TotalValue += deal.Value
	}
	s.Deals.AvgValue = roundedAvg(s.Deals.TotalValue, len(deals))

	s.Leads.Total = len(leads)
	s.Leads.Qualified = count(leads, func(l models.Lead) bool { return l.Status == "qualified" })
	var scores int
	for _, l := range leads {
		scores += l.Score
	}
	s.Leads.AvgScore = roundedAvg(float64(scores), len(leads))

	return s, nil
}

func count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}
