package kvk

import "aansluitintake/internal/domain"

// ApplyProfile writes a Handelsregister profile onto a connection. Profile
// data wins over what intake extracted; empty profile fields leave the
// connection untouched. The postal address lands on the invoice side, so
// invoiceSameAsDelivery drops to false.
func ApplyProfile(c *domain.Connection, p *Profile, signatory *Signatory) {
	c.KvkNumber = p.KvkNumber
	c.InvoiceSameAsDelivery = false

	if name := firstNonEmpty(p.LegalName, p.TradeName); name != "" {
		c.Tenaamstelling = name
	}
	if p.LegalName != "" {
		c.LegalName = p.LegalName
	}
	if p.TradeName != "" {
		c.TradeName = p.TradeName
	} else if len(p.TradeNames) > 0 {
		c.TradeName = p.TradeNames[0]
	}
	if p.LegalForm != "" {
		c.LegalForm = p.LegalForm
	}
	if p.CompanyActive != "" {
		c.CompanyActive = p.CompanyActive
	}

	if p.ContactEmail != "" {
		c.ContactEmail = p.ContactEmail
	}
	if p.ContactPhone != "" {
		c.ContactPhone = p.ContactPhone
	}
	if p.Website != "" {
		c.Website = p.Website
	}

	if signatory != nil {
		if signatory.Name != "" {
			c.AuthorizedSignatory = signatory.Name
		}
		if signatory.Role != "" {
			c.AuthorizedSignatoryRole = signatory.Role
		}
	}

	if address := p.InvoiceAddress(); address != nil {
		if address.Street != "" {
			c.InvoiceStreet = address.Street
		}
		if address.HouseNumber != "" {
			c.InvoiceHouseNumber = address.HouseNumber
		}
		if address.Addition != "" {
			c.InvoiceAddition = address.Addition
		}
		if address.Postcode != "" {
			c.InvoicePostcode = address.Postcode
		}
		if address.City != "" {
			c.InvoiceCity = address.City
		}
	}
}
