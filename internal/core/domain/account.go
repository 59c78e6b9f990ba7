package domain

import "time"

const (
	RoleClient       = "client"
	RoleOrganization = "organization"
	RoleAdmin        = "admin"
	RoleAuthor       = "author"
)

// UserType selects which profile fields an account recognises.
type UserType string

const (
	UserTypeIndividual   UserType = "individual"
	UserTypeOrganization UserType = "organization"
	UserTypeAdmin        UserType = "admin"
	UserTypeAuthor       UserType = "author"
)

// AuthorStatus is the approval state of an author account.
type AuthorStatus string

const (
	AuthorApproved AuthorStatus = "yes"
	AuthorRejected AuthorStatus = "no"
	AuthorPending  AuthorStatus = "pending"
)

// ParseSignupUserType accepts only the user types open to self-registration.
func ParseSignupUserType(s string) (UserType, error) {
	switch UserType(s) {
	case UserTypeIndividual, UserTypeOrganization, UserTypeAuthor:
		return UserType(s), nil
	}
	return "", ErrInvalidUserType
}

// DefaultRole is the role a freshly registered account of type t receives.
func (t UserType) DefaultRole() string {
	switch t {
	case UserTypeOrganization:
		return RoleOrganization
	case UserTypeAuthor:
		return RoleAuthor
	case UserTypeAdmin:
		return RoleAdmin
	default:
		return RoleClient
	}
}

// Address groups the location fields shared by every profile variant.
type Address struct {
	Country  string `json:"country,omitempty"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
	Sector   string `json:"sector,omitempty"`
	Cell     string `json:"cell,omitempty"`
}

// Account is a user identity record.
type Account struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Name         string       `json:"name,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Role         string       `json:"role"`
	UserType     UserType     `json:"userType,omitempty"`
	IsVerified   bool         `json:"isVerified"`
	IsAuthor     AuthorStatus `json:"isAuthor,omitempty"`
	Address
	NationalID         string    `json:"nationalID,omitempty"`
	RegistrationNumber string    `json:"registrationNumber,omitempty"`
	ContactPerson      string    `json:"contactPerson,omitempty"`
	Industry           string    `json:"industry,omitempty"`
	Category           string    `json:"category,omitempty"`
	Photo              string    `json:"photo,omitempty"`
	Documents          []string  `json:"documents,omitempty"`
	OTPHash            string    `json:"-"`
	OTPExpiresAt       time.Time `json:"-"`
	CreatedAt          time.Time `json:"date"`
	LastLogin          time.Time `json:"lastLogin"`
}

// HasPendingReset reports whether a one-time code is outstanding.
func (a *Account) HasPendingReset() bool {
	return a.OTPHash != ""
}

// ClearReset drops the one-time code fields.
func (a *Account) ClearReset() {
	a.OTPHash = ""
	a.OTPExpiresAt = time.Time{}
}
