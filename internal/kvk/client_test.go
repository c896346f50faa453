package kvk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aansluitintake/internal/config"
	"aansluitintake/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&config.KVKConfig{
		BaseURL:     server.URL,
		APIKey:      "test-key",
		TimeoutSecs: 2,
	})
}

func TestSearch_ByKvkNumberAndByName(t *testing.T) {
	var gotQueries []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/zoeken", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		gotQueries = append(gotQueries, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultaten":[
			{"kvkNummer":"12345678","naam":"Impact Energy BV","type":"hoofdvestiging","actief":true,
			 "adres":{"binnenlandsAdres":{"plaats":"Utrecht"}}},
			{"kvkNummer":"87654321","naam":"Impact Energy Holding"}
		]}`))
	})

	items, err := client.Search(context.Background(), "12345678", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "12345678", items[0].KvkNumber)
	assert.Equal(t, "Impact Energy BV", items[0].Name)
	assert.Equal(t, "Utrecht", items[0].City)
	assert.True(t, items[0].Active)
	// actief omitted defaults to active
	assert.True(t, items[1].Active)
	assert.Contains(t, gotQueries[0], "kvkNummer=12345678")

	_, err = client.Search(context.Background(), "Impact Energy", 25)
	require.NoError(t, err)
	assert.Contains(t, gotQueries[1], "naam=Impact+Energy")
	// limit capped at 10
	assert.Contains(t, gotQueries[1], "resultatenPerPagina=10")
}

func TestSearch_NotFoundMeansNoHits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	items, err := client.Search(context.Background(), "99999999", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	items, err := client.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestProfile_MapsBasisprofiel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/basisprofielen/12345678":
			_, _ = w.Write([]byte(`{
				"kvkNummer":"12345678",
				"naam":"Impact Energy",
				"statutaireNaam":"Impact Energy B.V.",
				"formeleRegistratiedatum":"2015-04-01",
				"materieleRegistratie":{"datumAanvang":"2015-04-01"},
				"handelsnamen":[{"naam":"Impact Energy"},{"naam":"IE Zakelijk"}],
				"_embedded":{
					"hoofdvestiging":{
						"adressen":[
							{"type":"bezoekadres","straatnaam":"Hoofdkantoorweg","huisnummer":8,"postcode":"1234AB","plaats":"Utrecht","land":"Nederland"},
							{"type":"correspondentieadres","postbusnummer":145,"postcode":"3500AC","plaats":"Utrecht"}
						],
						"communicatiegegevens":{"emailadressen":["info@impact-energy.nl"],"telefoonnummer":"030-1234567"}
					},
					"eigenaar":{"rechtsvorm":"Besloten Vennootschap"}
				}
			}`))
		case "/v1/basisprofielen/12345678/vestigingen":
			_, _ = w.Write([]byte(`{"vestigingen":[
				{"vestigingsnummer":"000012345678","eersteHandelsnaam":"Impact Energy","volledigAdres":"Hoofdkantoorweg 8 1234 AB Utrecht"}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	profile, err := client.Profile(context.Background(), "12345678", "")
	require.NoError(t, err)

	assert.Equal(t, "12345678", profile.KvkNumber)
	assert.Equal(t, "Impact Energy B.V.", profile.LegalName)
	assert.Equal(t, "Impact Energy", profile.TradeName)
	assert.Equal(t, []string{"Impact Energy", "IE Zakelijk"}, profile.TradeNames)
	assert.Equal(t, "Besloten Vennootschap", profile.LegalForm)
	assert.Equal(t, CompanyActive, profile.CompanyActive)
	assert.Equal(t, "info@impact-energy.nl", profile.ContactEmail)
	assert.Equal(t, "030-1234567", profile.ContactPhone)

	require.NotNil(t, profile.MainVisitingAddress)
	assert.Equal(t, "Hoofdkantoorweg", profile.MainVisitingAddress.Street)
	assert.Equal(t, "8", profile.MainVisitingAddress.HouseNumber)

	// Postbus correspondence address becomes the postal address
	require.NotNil(t, profile.PostalAddress)
	assert.Equal(t, "Postbus", profile.PostalAddress.Street)
	assert.Equal(t, "145", profile.PostalAddress.HouseNumber)
	assert.Equal(t, "3500AC", profile.PostalAddress.Postcode)

	require.Len(t, profile.Establishments, 1)
	require.NotNil(t, profile.Establishments[0].Address)
	assert.Equal(t, "Hoofdkantoorweg", profile.Establishments[0].Address.Street)
	assert.Equal(t, "1234AB", profile.Establishments[0].Address.Postcode)

	assert.Contains(t, profile.Warnings, "Geen tekenbevoegde gegevens beschikbaar.")
	assert.Empty(t, profile.Signatories)
}

func TestProfile_InactiveCompany(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/basisprofielen/12345678":
			_, _ = w.Write([]byte(`{
				"kvkNummer":"12345678","naam":"Opgeheven BV",
				"materieleRegistratie":{"datumAanvang":"2001-01-01","datumEinde":"2020-12-31"}
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	profile, err := client.Profile(context.Background(), "12345678", "")
	require.NoError(t, err)
	assert.Equal(t, CompanyInactive, profile.CompanyActive)
	assert.Contains(t, profile.Warnings, "Bedrijf niet actief.")
}

func TestProfile_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := client.Profile(context.Background(), "12345678", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = client.Profile(context.Background(), "12", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParseFullAddress(t *testing.T) {
	address := parseFullAddress("Lange Nieuwstraat 12 B 3512 PG Utrecht")
	require.NotNil(t, address)
	assert.Equal(t, "Lange Nieuwstraat", address.Street)
	assert.Equal(t, "12", address.HouseNumber)
	assert.Equal(t, "B", address.Addition)
	assert.Equal(t, "3512PG", address.Postcode)
	assert.Equal(t, "Utrecht", address.City)

	assert.Nil(t, parseFullAddress("Postbus 145"))
}
