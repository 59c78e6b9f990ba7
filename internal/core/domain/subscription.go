package domain

import (
	"slices"
	"time"
)

// SubscriptionType is the plan tier.
type SubscriptionType string

const (
	TypeBasic   SubscriptionType = "Basic"
	TypePremium SubscriptionType = "Premium"
	TypeGold    SubscriptionType = "Gold"
	TypeDiamond SubscriptionType = "Diamond"
)

// SubscriptionStatus is the approval state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "Pending"
	SubscriptionApproved SubscriptionStatus = "Approved"
	SubscriptionRejected SubscriptionStatus = "Rejected"
)

const (
	PaymentPending       = "Pending"
	PaymentPaid          = "Paid"
	PaymentFailed        = "Failed"
	PaymentNotApplicable = "Not Applicable"
)

var paymentMethods = []string{"Cash", "Card", "Cheque"}

func (t SubscriptionType) Valid() bool {
	switch t {
	case TypeBasic, TypePremium, TypeGold, TypeDiamond:
		return true
	}
	return false
}

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionPending, SubscriptionApproved, SubscriptionRejected:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	return slices.Contains(paymentMethods, m)
}

// Subscription is a purchased plan instance.
type Subscription struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Price            string             `json:"price"`
	Duration         string             `json:"duration"`
	UserNumber       string             `json:"userNumber"`
	SubscriptionType SubscriptionType   `json:"subscriptionType"`
	Status           SubscriptionStatus `json:"subscriptionStatus"`
	Date             time.Time          `json:"subscriptionDate"`
	Email            string             `json:"email,omitempty"`
	Phone            string             `json:"phone,omitempty"`
	Amount           int64              `json:"subscriptionAmount,omitempty"`
	PaymentMethod    string             `json:"subscriptionPaymentMethod,omitempty"`
	PaymentStatus    string             `json:"subscriptionPaymentStatus,omitempty"`
	PaymentDate      *time.Time         `json:"subscriptionPaymentDate,omitempty"`
	PaymentRef       string             `json:"paymentRef,omitempty"`
}

// Payment is the gateway's confirmation of a cash-in.
type Payment struct {
	Ref       string    `json:"ref"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
