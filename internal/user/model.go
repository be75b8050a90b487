package user

import (
	"fmt"
	"strings"

	"backoffice-console/internal/role"
	"backoffice-console/internal/session"
	"backoffice-console/internal/utils"
)

// AccountStatus is the isActive code the API uses for every account kind.
type AccountStatus int

const (
	StatusPending AccountStatus = iota
	StatusActive
	StatusInactive
)

func (s AccountStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

type Account struct {
	ID        string        `json:"id"`
	FirstName string        `json:"first_Name"`
	LastName  string        `json:"last_Name"`
	Email     string        `json:"email"`
	NIC       string        `json:"nic,omitempty"`
	Address   string        `json:"address,omitempty"`
	IsActive  AccountStatus `json:"isActive"`
}

func (a Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Kind selects one of the account listings.
type Kind string

const (
	KindVendors          Kind = "vendors"
	KindCSRs             Kind = "csrs"
	KindCustomers        Kind = "customers"
	KindPendingCustomers Kind = "customers/pending"
)

func (k Kind) Valid() bool {
	switch k {
	case KindVendors, KindCSRs, KindCustomers, KindPendingCustomers:
		return true
	}
	return false
}

// Registration is a new vendor or CSR account. Role is filled from the
// listing it is registered under.
type Registration struct {
	FirstName string    `json:"First_Name"`
	LastName  string    `json:"Last_Name"`
	Email     string    `json:"Email"`
	Password  string    `json:"PasswordHash"`
	NIC       string    `json:"NIC"`
	Address   string    `json:"Address"`
	Role      role.Role `json:"Role"`
}

func (r Registration) validate() error {
	v := utils.NewValidationError()
	if strings.TrimSpace(r.FirstName) == "" {
		v.Add("First_Name", "First Name is required.")
	}
	if strings.TrimSpace(r.LastName) == "" {
		v.Add("Last_Name", "Last Name is required.")
	}
	switch {
	case strings.TrimSpace(r.Email) == "":
		v.Add("Email", "Email is required.")
	case !strings.Contains(r.Email, "@"):
		v.Add("Email", "Enter a valid Email address")
	}
	if r.Password == "" {
		v.Add("PasswordHash", "Password is required.")
	}
	if strings.TrimSpace(r.NIC) == "" {
		v.Add("NIC", "NIC is required.")
	}
	if strings.TrimSpace(r.Address) == "" {
		v.Add("Address", "Address is required.")
	}
	return v.Err()
}

// registrationRoles maps the listings that accept new accounts to the role
// the account gets.
var registrationRoles = map[Kind]role.Role{
	KindVendors: role.Vendor,
	KindCSRs:    role.CSR,
}

// ProfileUpdate is the signed-in user's own details.
type ProfileUpdate struct {
	FirstName string `json:"first_Name"`
	LastName  string `json:"last_Name"`
	Email     string `json:"email"`
	NIC       string `json:"nic"`
	Address   string `json:"address"`
}

func (p ProfileUpdate) validate() error {
	v := utils.NewValidationError()
	if strings.TrimSpace(p.FirstName) == "" {
		v.Add("first_Name", "First Name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		v.Add("last_Name", "Last Name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		v.Add("email", "Email is required")
	}
	if strings.TrimSpace(p.NIC) == "" {
		v.Add("nic", "NIC is required")
	}
	if strings.TrimSpace(p.Address) == "" {
		v.Add("address", "Address is required")
	}
	return v.Err()
}

type PasswordChange struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (p PasswordChange) validate() error {
	v := utils.NewValidationError()
	if p.CurrentPassword == "" {
		v.Add("currentPassword", "Current password is required")
	}
	if p.NewPassword == "" {
		v.Add("newPassword", "New password is required")
	}
	return v.Err()
}

type Filter struct {
	Name   string
	Status *AccountStatus
}

func (f Filter) match(a *Account) bool {
	if f.Status != nil && a.IsActive != *f.Status {
		return false
	}
	return utils.ContainsFold(a.FullName(), f.Name)
}

type LoginResult struct {
	User  session.User `json:"user"`
	Token string       `json:"token"`
}

type Counts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Pending  int `json:"pending"`
}

func CountAccounts(as []Account) Counts {
	c := Counts{Total: len(as)}
	for _, a := range as {
		switch a.IsActive {
		case StatusActive:
			c.Active++
		case StatusInactive:
			c.Inactive++
		case StatusPending:
			c.Pending++
		}
	}
	return c
}
