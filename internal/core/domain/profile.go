package domain

// ProfileFields is the raw verification form. Which fields are honoured
// depends on the account's user type, see ProfileFor.
type ProfileFields struct {
	Name               string
	Phone              string
	Address            Address
	NationalID         string
	RegistrationNumber string
	ContactPerson      string
	Category           string
	Documents          string
}

// Profile is one of IndividualProfile, OrganizationProfile or AuthorProfile.
type Profile interface {
	profile()
}

type IndividualProfile struct {
	Name       string
	Phone      string
	Address    Address
	NationalID string
}

type OrganizationProfile struct {
	Name               string
	Phone              string
	Address            Address
	RegistrationNumber string
	ContactPerson      string
}

type AuthorProfile struct {
	Name       string
	Phone      string
	Address    Address
	NationalID string
	Category   string
	Documents  string
}

func (IndividualProfile) profile()   {}
func (OrganizationProfile) profile() {}
func (AuthorProfile) profile()       {}

// ProfileFor narrows the form to the subset recognised by user type t.
// Admin accounts complete the individual subset.
func ProfileFor(t UserType, f ProfileFields) Profile {
	switch t {
	case UserTypeOrganization:
		return OrganizationProfile{
			Name:               f.Name,
			Phone:              f.Phone,
			Address:            f.Address,
			RegistrationNumber: f.RegistrationNumber,
			ContactPerson:      f.ContactPerson,
		}
	case UserTypeAuthor:
		return AuthorProfile{
			Name:       f.Name,
			Phone:      f.Phone,
			Address:    f.Address,
			NationalID: f.NationalID,
			Category:   f.Category,
			Documents:  f.Documents,
		}
	default:
		return IndividualProfile{
			Name:       f.Name,
			Phone:      f.Phone,
			Address:    f.Address,
			NationalID: f.NationalID,
		}
	}
}

// ApplyProfile merges p into a. Empty fields keep the stored value.
func ApplyProfile(a *Account, p Profile) {
	switch p := p.(type) {
	case IndividualProfile:
		keep(&a.Name, p.Name)
		keep(&a.Phone, p.Phone)
		mergeAddress(&a.Address, p.Address)
		keep(&a.NationalID, p.NationalID)
	case OrganizationProfile:
		keep(&a.Name, p.Name)
		keep(&a.Phone, p.Phone)
		mergeAddress(&a.Address, p.Address)
		keep(&a.RegistrationNumber, p.RegistrationNumber)
		keep(&a.ContactPerson, p.ContactPerson)
	case AuthorProfile:
		keep(&a.Name, p.Name)
		keep(&a.Phone, p.Phone)
		mergeAddress(&a.Address, p.Address)
		keep(&a.NationalID, p.NationalID)
		keep(&a.Category, p.Category)
		if p.Documents != "" {
			a.Documents = []string{p.Documents}
		}
	}
}

func mergeAddress(dst *Address, src Address) {
	keep(&dst.Country, src.Country)
	keep(&dst.City, src.City)
	keep(&dst.District, src.District)
	keep(&dst.Sector, src.Sector)
	keep(&dst.Cell, src.Cell)
}

func keep(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
