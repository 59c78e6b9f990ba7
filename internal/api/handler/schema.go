package handler

import (
	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

// Bodies are bound from JSON or form values, hence the paired tags.

// --- Auth ---

type signupRequest struct {
	Email              string `json:"email"              form:"email"              validate:"required,email"`
	Password           string `json:"password"           form:"password"           validate:"required"`
	ConfirmPassword    string `json:"confirmPassword"    form:"confirmPassword"    validate:"required"`
	UserType           string `json:"userType"           form:"userType"           validate:"required"`
	Name               string `json:"name"               form:"name"`
	Phone              string `json:"phone"              form:"phone"`
	RegistrationNumber string `json:"registrationNumber" form:"registrationNumber"`
	ContactPerson      string `json:"contactPerson"      form:"contactPerson"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"       form:"email"       validate:"required,email"`
	OTP         string `json:"otp"         form:"otp"         validate:"required,numeric"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     form:"newPassword"     validate:"required"`
}

// AddressForm is exported so Echo's form binder descends into it when
// embedded.
type AddressForm struct {
	Country  string `json:"country"  form:"country"`
	City     string `json:"city"     form:"city"`
	District string `json:"district" form:"district"`
	Sector   string `json:"sector"   form:"sector"`
	Cell     string `json:"cell"     form:"cell"`
}

func (a AddressForm) toDomain() domain.Address {
	return domain.Address{
		Country:  a.Country,
		City:     a.City,
		District: a.District,
		Sector:   a.Sector,
		Cell:     a.Cell,
	}
}

// verifyProfileRequest carries the text part of the multipart form. Files
// arrive separately as "photo" and "documents".
type verifyProfileRequest struct {
	Name               string `json:"name"               form:"name"`
	Phone              string `json:"phone"              form:"phone"`
	NationalID         string `json:"nationalID"         form:"nationalID"`
	RegistrationNumber string `json:"registrationNumber" form:"registrationNumber"`
	ContactPerson      string `json:"contactPerson"      form:"contactPerson"`
	Category           string `json:"category"           form:"category"`
	Documents          string `json:"documents"          form:"documents"`
	AddressForm
}

func (r verifyProfileRequest) toFields() domain.ProfileFields {
	return domain.ProfileFields{
		Name:               r.Name,
		Phone:              r.Phone,
		Address:            r.AddressForm.toDomain(),
		NationalID:         r.NationalID,
		RegistrationNumber: r.RegistrationNumber,
		ContactPerson:      r.ContactPerson,
		Category:           r.Category,
		Documents:          r.Documents,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type authResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *domain.Account `json:"user"`
}

type accountResponse struct {
	Message string          `json:"message"`
	User    *domain.Account `json:"user"`
}

// --- Accounts ---

type updateAccountRequest struct {
	Name  string `json:"name"  form:"name"`
	Phone string `json:"phone" form:"phone"`
	AddressForm
}

func (r updateAccountRequest) toInput() ports.UpdateAccountInput {
	return ports.UpdateAccountInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.AddressForm.toDomain(),
	}
}

type authorApprovalRequest struct {
	IsAuthor string `json:"isAuthor" form:"isAuthor" validate:"required,oneof=yes no"`
}

type accountsResponse struct {
	Message string            `json:"message"`
	Users   []*domain.Account `json:"users"`
}

type authorStatusResponse struct {
	Message  string              `json:"message"`
	IsAuthor domain.AuthorStatus `json:"isAuthor"`
}

// --- Subscriptions ---

type createSubscriptionRequest struct {
	Name             string `json:"name"             form:"name"             validate:"required"`
	Description      string `json:"description"      form:"description"`
	Price            string `json:"price"            form:"price"            validate:"required"`
	Duration         string `json:"duration"         form:"duration"         validate:"required"`
	UserNumber       string `json:"userNumber"       form:"userNumber"       validate:"required"`
	SubscriptionType string `json:"subscriptionType" form:"subscriptionType" validate:"required"`
}

type updateSubscriptionRequest struct {
	Name                      string `json:"name"                      form:"name"`
	Email                     string `json:"email"                     form:"email"                     validate:"omitempty,email"`
	Phone                     string `json:"phone"                     form:"phone"`
	SubscriptionType          string `json:"subscriptionType"          form:"subscriptionType"          validate:"required"`
	SubscriptionDuration      string `json:"subscriptionDuration"      form:"subscriptionDuration"      validate:"required"`
	SubscriptionPaymentMethod string `json:"subscriptionPaymentMethod" form:"subscriptionPaymentMethod"`
}

type updateSubscriptionStatusRequest struct {
	SubscriptionStatus        string `json:"subscriptionStatus"        form:"subscriptionStatus"        validate:"required"`
	SubscriptionPaymentStatus string `json:"subscriptionPaymentStatus" form:"subscriptionPaymentStatus"`
}

type listSubscriptionsQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

type subscriptionResponse struct {
	Message      string               `json:"message"`
	Subscription *domain.Subscription `json:"subscription"`
}

type createSubscriptionResponse struct {
	Message      string               `json:"message"`
	Subscription *domain.Subscription `json:"subscription"`
	Payment      *domain.Payment      `json:"payment"`
}

// paymentFailedResponse reports a refused cash-in along with the record that
// was kept.
type paymentFailedResponse struct {
	Error        string               `json:"error"`
	Subscription *domain.Subscription `json:"subscription"`
}

type subscriptionPageResponse struct {
	Docs        []*domain.Subscription `json:"docs"`
	TotalDocs   int64                  `json:"totalDocs"`
	Limit       int                    `json:"limit"`
	Page        int                    `json:"page"`
	TotalPages  int                    `json:"totalPages"`
	HasPrevPage bool                   `json:"hasPrevPage"`
	HasNextPage bool                   `json:"hasNextPage"`
	PrevPage    *int                   `json:"prevPage"`
	NextPage    *int                   `json:"nextPage"`
}

func toSubscriptionPage(r *ports.ListSubscriptionsResult) subscriptionPageResponse {
	return subscriptionPageResponse{
		Docs:        r.Docs,
		TotalDocs:   r.TotalDocs,
		Limit:       r.Limit,
		Page:        r.Page,
		TotalPages:  r.TotalPages,
		HasPrevPage: r.HasPrevPage,
		HasNextPage: r.HasNextPage,
		PrevPage:    r.PrevPage,
		NextPage:    r.NextPage,
	}
}
