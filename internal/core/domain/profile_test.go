package domain

import (
	"errors"
	"testing"
)

func TestParseSignupUserType(t *testing.T) {
	for _, s := range []string{"individual", "organization", "author"} {
		if _, err := ParseSignupUserType(s); err != nil {
			t.Errorf("%q: unexpected error %v", s, err)
		}
	}
	for _, s := range []string{"", "admin", "Individual"} {
		if _, err := ParseSignupUserType(s); !errors.Is(err, ErrInvalidUserType) {
			t.Errorf("%q: expected ErrInvalidUserType, got %v", s, err)
		}
	}
}

func TestDefaultRole(t *testing.T) {
	cases := map[UserType]string{
		UserTypeIndividual:   RoleClient,
		UserTypeOrganization: RoleOrganization,
		UserTypeAuthor:       RoleAuthor,
	}
	for ut, want := range cases {
		if got := ut.DefaultRole(); got != want {
			t.Errorf("%s: expected role %q, got %q", ut, want, got)
		}
	}
}

func TestApplyProfile_KeepsExistingWhenAbsent(t *testing.T) {
	acct := &Account{Name: "Old", Phone: "0780000000", Address: Address{City: "Kigali"}}

	ApplyProfile(acct, ProfileFor(UserTypeIndividual, ProfileFields{
		Name:       "New",
		Address:    Address{District: "Gasabo"},
		NationalID: "1199",
	}))

	if acct.Name != "New" {
		t.Errorf("name: expected New, got %q", acct.Name)
	}
	if acct.Phone != "0780000000" {
		t.Errorf("phone must be kept, got %q", acct.Phone)
	}
	if acct.City != "Kigali" || acct.District != "Gasabo" {
		t.Errorf("address merge wrong: %+v", acct.Address)
	}
	if acct.NationalID != "1199" {
		t.Errorf("nationalID: got %q", acct.NationalID)
	}
}

func TestProfileFor_NarrowsFieldsByType(t *testing.T) {
	form := ProfileFields{
		NationalID:         "1199",
		RegistrationNumber: "RDB-1",
		ContactPerson:      "Jane",
		Category:           "drama",
		Documents:          "https://cdn/doc.pdf",
	}

	org := &Account{}
	ApplyProfile(org, ProfileFor(UserTypeOrganization, form))
	if org.NationalID != "" || org.Category != "" {
		t.Errorf("organization must ignore individual/author fields: %+v", org)
	}
	if org.RegistrationNumber != "RDB-1" || org.ContactPerson != "Jane" {
		t.Errorf("organization fields not applied: %+v", org)
	}

	author := &Account{}
	ApplyProfile(author, ProfileFor(UserTypeAuthor, form))
	if author.RegistrationNumber != "" {
		t.Errorf("author must ignore registration number")
	}
	if author.Category != "drama" || len(author.Documents) != 1 {
		t.Errorf("author fields not applied: %+v", author)
	}

	ind := &Account{}
	ApplyProfile(ind, ProfileFor(UserTypeIndividual, form))
	if ind.Category != "" || ind.ContactPerson != "" || ind.Documents != nil {
		t.Errorf("individual must ignore other subsets: %+v", ind)
	}
}
