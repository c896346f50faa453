package kvk

// SearchItem is one hit from the Handelsregister search.
type SearchItem struct {
	KvkNumber string `json:"kvkNumber"`
	Name      string `json:"name"`
	City      string `json:"city,omitempty"`
	Type      string `json:"type,omitempty"`
	Active    bool   `json:"active"`
}

// Signatory is a person authorized to sign for the company.
type Signatory struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Address is a Handelsregister address in intake shape. Postbus addresses
// map to street "Postbus" with the box number as house number.
type Address struct {
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	Addition    string `json:"addition,omitempty"`
	Postcode    string `json:"postcode"`
	City        string `json:"city"`
	Country     string `json:"country,omitempty"`
}

// Establishment is a vestiging under a registration.
type Establishment struct {
	Name             string   `json:"name"`
	VestigingsNumber string   `json:"vestigingsNumber"`
	Address          *Address `json:"address,omitempty"`
}

// CompanyActive values derived from the materiele registratie dates.
const (
	CompanyActive   = "active"
	CompanyInactive = "inactive"
	CompanyUnknown  = "unknown"
)

// Profile is the assembled company profile for the intake form.
type Profile struct {
	KvkNumber           string          `json:"kvkNumber"`
	LegalName           string          `json:"legalName"`
	TradeName           string          `json:"tradeName,omitempty"`
	TradeNames          []string        `json:"tradeNames,omitempty"`
	LegalForm           string          `json:"legalForm,omitempty"`
	CompanyActive       string          `json:"companyActive,omitempty"`
	MainVisitingAddress *Address        `json:"mainVisitingAddress,omitempty"`
	PostalAddress       *Address        `json:"postalAddress,omitempty"`
	Signatories         []Signatory     `json:"signatories"`
	Establishments      []Establishment `json:"establishments,omitempty"`
	Warnings            []string        `json:"warnings,omitempty"`
	ContactEmail        string          `json:"contactEmail,omitempty"`
	ContactPhone        string          `json:"contactPhone,omitempty"`
	Website             string          `json:"website,omitempty"`
}

// InvoiceAddress returns the address the invoice side should use, preferring
// the postal address over the visiting address.
func (p *Profile) InvoiceAddress() *Address {
	if p.PostalAddress != nil {
		return p.PostalAddress
	}
	return p.MainVisitingAddress
}
