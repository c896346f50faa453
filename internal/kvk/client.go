package kvk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"aansluitintake/internal/config"
	"aansluitintake/internal/domain"
)

var (
	kvkNumberRe  = regexp.MustCompile(`^\d{8}$`)
	vestigingsRe = regexp.MustCompile(`^\d{12}$`)
)

// Client talks to the KVK Handelsregister API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a Handelsregister client from KVK config.
func NewClient(cfg *config.KVKConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling KVK API: %w", err)
	}
	return resp, nil
}

// zoekenResponse models /v2/zoeken.
type zoekenResponse struct {
	Resultaten []struct {
		KvkNummer string `json:"kvkNummer"`
		Naam      string `json:"naam"`
		Type      string `json:"type"`
		Actief    *bool  `json:"actief"`
		Adres     *struct {
			BinnenlandsAdres *struct {
				Plaats string `json:"plaats"`
			} `json:"binnenlandsAdres"`
		} `json:"adres"`
	} `json:"resultaten"`
}

// Search queries the Handelsregister. An 8-digit query searches by KvK
// number, anything else by name. A 404 means no hits, not an error.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchItem, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, nil
	}
	limit = min(10, max(1, limit))

	params := url.Values{}
	if kvkNumberRe.MatchString(trimmed) {
		params.Set("kvkNummer", trimmed)
	} else {
		params.Set("naam", trimmed)
	}
	params.Set("resultatenPerPagina", strconv.Itoa(limit))
	params.Set("pagina", "1")

	resp, err := c.get(ctx, "/v2/zoeken", params)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("KVK search failed (status %d): %s", resp.StatusCode, truncate(string(body), 300))
	}

	var data zoekenResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding KVK search response: %w", err)
	}

	items := make([]SearchItem, 0, len(data.Resultaten))
	for _, r := range data.Resultaten {
		if len(items) == limit {
			break
		}
		item := SearchItem{
			KvkNumber: r.KvkNummer,
			Name:      r.Naam,
			Type:      r.Type,
			Active:    r.Actief == nil || *r.Actief,
		}
		if r.Adres != nil && r.Adres.BinnenlandsAdres != nil {
			item.City = r.Adres.BinnenlandsAdres.Plaats
		}
		items = append(items, item)
	}
	return items, nil
}

// wireAddress models an adres entry across the basisprofiel and
// vestigingsprofiel endpoints. Huisnummer and postbusnummer arrive as
// numbers.
type wireAddress struct {
	Type                 string      `json:"type"`
	Straatnaam           string      `json:"straatnaam"`
	Huisnummer           json.Number `json:"huisnummer"`
	HuisnummerToevoeging string      `json:"huisnummerToevoeging"`
	ToevoegingAdres      string      `json:"toevoegingAdres"`
	Huisletter           string      `json:"huisletter"`
	Postcode             string      `json:"postcode"`
	Plaats               string      `json:"plaats"`
	Land                 string      `json:"land"`
	Postbusnummer        json.Number `json:"postbusnummer"`
}

type wireContact struct {
	Emailadres      string   `json:"emailadres"`
	Emailadressen   []string `json:"emailadressen"`
	Telefoonnummer  string   `json:"telefoonnummer"`
	Telefoonnummers []string `json:"telefoonnummers"`
	Website         string   `json:"website"`
	Websites        []string `json:"websites"`
}

type basisprofielResponse struct {
	KvkNummer               string `json:"kvkNummer"`
	Naam                    string `json:"naam"`
	StatutaireNaam          string `json:"statutaireNaam"`
	FormeleRegistratiedatum string `json:"formeleRegistratiedatum"`
	MaterieleRegistratie    *struct {
		DatumAanvang string `json:"datumAanvang"`
		DatumEinde   string `json:"datumEinde"`
	} `json:"materieleRegistratie"`
	Handelsnamen []struct {
		Naam string `json:"naam"`
	} `json:"handelsnamen"`
	Communicatiegegevens *wireContact `json:"communicatiegegevens"`
	Embedded             *struct {
		Hoofdvestiging *struct {
			Adressen             []wireAddress `json:"adressen"`
			Communicatiegegevens *wireContact  `json:"communicatiegegevens"`
		} `json:"hoofdvestiging"`
		Eigenaar *struct {
			Rechtsvorm            string `json:"rechtsvorm"`
			UitgebreideRechtsvorm string `json:"uitgebreideRechtsvorm"`
		} `json:"eigenaar"`
	} `json:"_embedded"`
}

type vestigingsprofielResponse struct {
	Adressen             []wireAddress `json:"adressen"`
	Communicatiegegevens *wireContact  `json:"communicatiegegevens"`
}

type vestigingenResponse struct {
	Vestigingen []struct {
		Vestigingsnummer  string `json:"vestigingsnummer"`
		EersteHandelsnaam string `json:"eersteHandelsnaam"`
		Naam              string `json:"naam"`
		VolledigAdres     string `json:"volledigAdres"`
	} `json:"vestigingen"`
}

// Profile assembles a company profile from the basisprofiel, the optional
// vestigingsprofiel and the vestigingen list. Failures on the secondary
// endpoints degrade to a profile without that data.
func (c *Client) Profile(ctx context.Context, kvkNumber, vestigingsNumber string) (*Profile, error) {
	kvkNumber = strings.TrimSpace(kvkNumber)
	if !kvkNumberRe.MatchString(kvkNumber) {
		return nil, fmt.Errorf("invalid KvK number %q: %w", kvkNumber, domain.ErrNotFound)
	}

	resp, err := c.get(ctx, "/v1/basisprofielen/"+kvkNumber, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("KVK profile failed (status %d): %s", resp.StatusCode, truncate(string(body), 300))
	}

	var data basisprofielResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding KVK profile response: %w", err)
	}

	var addresses []wireAddress
	var vestigingContact *wireContact
	if data.Embedded != nil && data.Embedded.Hoofdvestiging != nil {
		addresses = data.Embedded.Hoofdvestiging.Adressen
	}

	if vestigingsRe.MatchString(vestigingsNumber) {
		if vest, err := c.vestigingsprofiel(ctx, vestigingsNumber); err == nil && vest != nil {
			if len(vest.Adressen) > 0 {
				addresses = vest.Adressen
			}
			vestigingContact = vest.Communicatiegegevens
		}
	}

	establishments := c.vestigingen(ctx, kvkNumber)

	postal, visiting := extractAddresses(addresses)
	tradeNames := make([]string, 0, len(data.Handelsnamen))
	for _, h := range data.Handelsnamen {
		if name := strings.TrimSpace(h.Naam); name != "" {
			tradeNames = append(tradeNames, name)
		}
	}

	companyActive := CompanyUnknown
	if data.MaterieleRegistratie != nil && data.MaterieleRegistratie.DatumEinde != "" {
		companyActive = CompanyInactive
	} else if (data.MaterieleRegistratie != nil && data.MaterieleRegistratie.DatumAanvang != "") ||
		data.FormeleRegistratiedatum != "" {
		companyActive = CompanyActive
	}

	var warnings []string
	if len(establishments) > 1 && !vestigingsRe.MatchString(vestigingsNumber) {
		warnings = append(warnings, "Meerdere vestigingen: hoofdvestiging gekozen.")
	}
	if companyActive == CompanyInactive {
		warnings = append(warnings, "Bedrijf niet actief.")
	}
	// the open API carries no functionaris data
	warnings = append(warnings, "Geen tekenbevoegde gegevens beschikbaar.")

	contactSource := vestigingContact
	if contactSource == nil && data.Embedded != nil && data.Embedded.Hoofdvestiging != nil {
		contactSource = data.Embedded.Hoofdvestiging.Communicatiegegevens
	}
	if contactSource == nil {
		contactSource = data.Communicatiegegevens
	}

	profile := &Profile{
		KvkNumber:           firstNonEmpty(data.KvkNummer, kvkNumber),
		LegalName:           firstNonEmpty(data.StatutaireNaam, data.Naam),
		TradeNames:          tradeNames,
		CompanyActive:       companyActive,
		MainVisitingAddress: visiting,
		PostalAddress:       postal,
		Signatories:         []Signatory{},
		Establishments:      establishments,
		Warnings:            warnings,
	}
	if len(tradeNames) > 0 {
		profile.TradeName = tradeNames[0]
	} else {
		profile.TradeName = data.Naam
	}
	if data.Embedded != nil && data.Embedded.Eigenaar != nil {
		profile.LegalForm = firstNonEmpty(data.Embedded.Eigenaar.Rechtsvorm, data.Embedded.Eigenaar.UitgebreideRechtsvorm)
	}
	if contactSource != nil {
		profile.ContactEmail = pickFirst(contactSource.Emailadres, contactSource.Emailadressen)
		profile.ContactPhone = pickFirst(contactSource.Telefoonnummer, contactSource.Telefoonnummers)
		profile.Website = pickFirst(contactSource.Website, contactSource.Websites)
	}
	return profile, nil
}

func (c *Client) vestigingsprofiel(ctx context.Context, vestigingsNumber string) (*vestigingsprofielResponse, error) {
	resp, err := c.get(ctx, "/v1/vestigingsprofielen/"+vestigingsNumber, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vestigingsprofiel status %d", resp.StatusCode)
	}
	var data vestigingsprofielResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// vestigingen lists the registration's establishments; errors yield nil.
func (c *Client) vestigingen(ctx context.Context, kvkNumber string) []Establishment {
	resp, err := c.get(ctx, "/v1/basisprofielen/"+kvkNumber+"/vestigingen", nil)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	var data vestigingenResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil
	}

	var establishments []Establishment
	for _, v := range data.Vestigingen {
		entry := Establishment{
			Name:             firstNonEmpty(v.EersteHandelsnaam, v.Naam),
			VestigingsNumber: v.Vestigingsnummer,
		}
		if v.VolledigAdres != "" {
			entry.Address = parseFullAddress(v.VolledigAdres)
		}
		if entry.Name != "" || entry.VestigingsNumber != "" {
			establishments = append(establishments, entry)
		}
	}
	return establishments
}

var fullAddressRe = regexp.MustCompile(`^(.+?)\s+(\d{1,6})\s*([A-Za-z0-9\-/]*)?\s+(\d{4}\s?[A-Z]{2})\s+(.+)$`)

// parseFullAddress splits a volledigAdres string into its parts, or nil when
// the shape does not match.
func parseFullAddress(value string) *Address {
	m := fullAddressRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return nil
	}
	return &Address{
		Street:      strings.TrimSpace(m[1]),
		HouseNumber: m[2],
		Addition:    strings.TrimSpace(m[3]),
		Postcode:    strings.ToUpper(strings.ReplaceAll(m[4], " ", "")),
		City:        strings.TrimSpace(m[5]),
		Country:     "Nederland",
	}
}

// mapAddress converts a wire address. Postbus addresses become street
// "Postbus" with the box number as house number.
func mapAddress(a *wireAddress) *Address {
	if a == nil {
		return nil
	}
	postbus := a.Postbusnummer.String()
	if postbus == "0" || postbus == "" {
		postbus = ""
	}
	street := a.Straatnaam
	if street == "" && postbus != "" {
		street = "Postbus"
	}
	houseNumber := a.Huisnummer.String()
	if houseNumber == "0" || houseNumber == "" {
		houseNumber = postbus
	}
	addition := firstNonEmpty(a.HuisnummerToevoeging, a.ToevoegingAdres, a.Huisletter)

	if street == "" && houseNumber == "" && a.Postcode == "" && a.Plaats == "" {
		return nil
	}
	return &Address{
		Street:      street,
		HouseNumber: houseNumber,
		Addition:    addition,
		Postcode:    a.Postcode,
		City:        a.Plaats,
		Country:     a.Land,
	}
}

// extractAddresses picks the postal and visiting address out of the adressen
// list. The correspondence address family counts as postal; the first entry
// is the visiting fallback.
func extractAddresses(addresses []wireAddress) (postal, visiting *Address) {
	findByType := func(wanted string) *wireAddress {
		for i := range addresses {
			if strings.EqualFold(addresses[i].Type, wanted) {
				return &addresses[i]
			}
		}
		return nil
	}

	postalWire := findByType("correspondentieadres")
	if postalWire == nil {
		postalWire = findByType("postadres")
	}
	if postalWire == nil {
		postalWire = findByType("postbusadres")
	}
	postal = mapAddress(postalWire)

	visiting = mapAddress(findByType("bezoekadres"))
	if visiting == nil && len(addresses) > 0 {
		visiting = mapAddress(&addresses[0])
	}
	return postal, visiting
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func pickFirst(single string, list []string) string {
	if strings.TrimSpace(single) != "" {
		return strings.TrimSpace(single)
	}
	for _, v := range list {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
