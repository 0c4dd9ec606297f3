package models

import "time"

// Contact is a person tracked by the CRM.
type Contact struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Title           string    `json:"title"`
	CompanyID       *int64    `json:"company_id"`
	CompanyName     string    `json:"company_name"`
	Status          string    `json:"status"`
	Source          string    `json:"source"`
	LastContactDate time.Time `json:"last_contact_date"`
	Notes           string    `json:"notes"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
}

// Clone returns a deep copy of c.
func (c Contact) Clone() Contact {
	out := c
	out.CompanyID = cloneID(c.CompanyID)
	out.Tags = cloneStrings(c.Tags)
	return out
}

// ContactPatch carries the fields of a contact create or update request.
type ContactPatch struct {
	FirstName       *string    `json:"first_name"`
	LastName        *string    `json:"last_name"`
	Email           *string    `json:"email"`
	Phone           *string    `json:"phone"`
	Title           *string    `json:"title"`
	CompanyID       *int64     `json:"company_id"`
	CompanyName     *string    `json:"company_name"`
	Status          *string    `json:"status"`
	Source          *string    `json:"source"`
	LastContactDate *time.Time `json:"last_contact_date"`
	Notes           *string    `json:"notes"`
	Tags            []string   `json:"tags"`
}

// Company is an organisation tracked by the CRM.
type Company struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Industry       string    `json:"industry"`
	Size           string    `json:"size"`
	Website        string    `json:"website"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Status         string    `json:"status"`
	Tier           string    `json:"tier"`
	Revenue        int64     `json:"revenue"`
	Employees      int       `json:"employees"`
	PrimaryContact string    `json:"primary_contact"`
	Notes          string    `json:"notes"`
	Tags           []string  `json:"tags"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivity   time.Time `json:"last_activity"`
}

// Clone returns a deep copy of c.
func (c Company) Clone() Company {
	out := c
	out.Tags = cloneStrings(c.Tags)
	return out
}

// CompanyPatch carries the fields of a company create or update request.
type CompanyPatch struct {
	Name           *string  `json:"name"`
	Industry       *string  `json:"industry"`
	Size           *string  `json:"size"`
	Website        *string  `json:"website"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	Status         *string  `json:"status"`
	Tier           *string  `json:"tier"`
	Revenue        *int64   `json:"revenue"`
	Employees      *int     `json:"employees"`
	PrimaryContact *string  `json:"primary_contact"`
	Notes          *string  `json:"notes"`
	Tags           []string `json:"tags"`
}

// Activity is a logged interaction on a deal.
type Activity struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Outcome     string    `json:"outcome"`
}

// Deal is an opportunity moving through the sales pipeline.
type Deal struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	CompanyID         *int64     `json:"company_id"`
	CompanyName       string     `json:"company_name"`
	ContactID         *int64     `json:"contact_id"`
	ContactName       string     `json:"contact_name"`
	Value             float64    `json:"value"`
	Stage             string     `json:"stage"`
	Probability       int        `json:"probability"`
	ExpectedCloseDate *Date      `json:"expected_close_date"`
	Owner             string     `json:"owner"`
	Source            string     `json:"source"`
	Description       string     `json:"description"`
	Notes             string     `json:"notes"`
	Tags              []string   `json:"tags"`
	Activities        []Activity `json:"activities"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Clone returns a deep copy of d.
func (d Deal) Clone() Deal {
	out := d
	out.CompanyID = cloneID(d.CompanyID)
	out.ContactID = cloneID(d.ContactID)
	out.ExpectedCloseDate = cloneDate(d.ExpectedCloseDate)
	out.Tags = cloneStrings(d.Tags)
	if d.Activities != nil {
		out.Activities = make([]Activity, len(d.Activities))
		copy(out.Activities, d.Activities)
	}
	return out
}

// DealPatch carries the fields of a deal create or update request.
type DealPatch struct {
	Name              *string  `json:"name"`
	CompanyID         *int64   `json:"company_id"`
	CompanyName       *string  `json:"company_name"`
	ContactID         *int64   `json:"contact_id"`
	ContactName       *string  `json:"contact_name"`
	Value             *float64 `json:"value"`
	Stage             *string  `json:"stage"`
	Probability       *int     `json:"probability"`
	ExpectedCloseDate *Date    `json:"expected_close_date"`
	Owner             *string  `json:"owner"`
	Source            *string  `json:"source"`
	Description       *string  `json:"description"`
	Notes             *string  `json:"notes"`
	Tags              []string `json:"tags"`
}

// Lead is a prospect that has not yet been converted into a contact.
type Lead struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Company      string    `json:"company"`
	Title        string    `json:"title"`
	Industry     string    `json:"industry"`
	LeadSource   string    `json:"lead_source"`
	Status       string    `json:"status"`
	Score        int       `json:"score"`
	Budget       int64     `json:"budget"`
	Timeline     string    `json:"timeline"`
	Notes        string    `json:"notes"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	AssignedTo   string    `json:"assigned_to"`
}

// Clone returns a deep copy of l.
func (l Lead) Clone() Lead {
	out := l
	out.Tags = cloneStrings(l.Tags)
	return out
}

// LeadPatch carries the fields of a lead create or update request.
type LeadPatch struct {
	FirstName  *string  `json:"first_name"`
	LastName   *string  `json:"last_name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Company    *string  `json:"company"`
	Title      *string  `json:"title"`
	Industry   *string  `json:"industry"`
	LeadSource *string  `json:"lead_source"`
	Status     *string  `json:"status"`
	Score      *int     `json:"score"`
	Budget     *int64   `json:"budget"`
	Timeline   *string  `json:"timeline"`
	Notes      *string  `json:"notes"`
	Tags       []string `json:"tags"`
	AssignedTo *string  `json:"assigned_to"`
}
