package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/kvk"
	"aansluitintake/internal/pdok"
	"aansluitintake/internal/port"
	valconn "aansluitintake/internal/validator/connection"
)

// KvkProfiler fetches a company profile from the business registry.
type KvkProfiler interface {
	Profile(ctx context.Context, kvkNumber, vestigingsNumber string) (*kvk.Profile, error)
}

// AddressLookup resolves postcode + house number to street + city.
type AddressLookup interface {
	Lookup(ctx context.Context, postcode, houseNumber string) (*pdok.Result, error)
}

// ApplyKVKInput is the DTO for applying a registry profile to a connection.
type ApplyKVKInput struct {
	KvkNumber        string `json:"kvk_number" binding:"required"`
	VestigingsNumber string `json:"vestigings_number"`
	SignatoryIndex   *int   `json:"signatory_index"`
}

// ConnectionService defines the connection management contract.
type ConnectionService interface {
	Save(ctx context.Context, conn *domain.Connection) (*domain.Connection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Connection, error)
	List(ctx context.Context, offset, limit int) ([]domain.Connection, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	Validate(ctx context.Context, id uuid.UUID) (*valconn.Report, error)
	ApplyKVKProfile(ctx context.Context, id uuid.UUID, input ApplyKVKInput) (*domain.Connection, error)
}

type connectionService struct {
	repo      port.ConnectionRepository
	kvkClient KvkProfiler
	addresses AddressLookup
}

// NewConnectionService creates a new ConnectionService implementation.
// kvkClient and addresses may be nil; the matching enrichments are then skipped.
func NewConnectionService(repo port.ConnectionRepository, kvkClient KvkProfiler, addresses AddressLookup) ConnectionService {
	return &connectionService{
		repo:      repo,
		kvkClient: kvkClient,
		addresses: addresses,
	}
}

// Save upserts a connection. Saving is always allowed; validation issues are
// reported separately and never block persistence. When the delivery address
// has a postcode and house number but no street or city, the address service
// fills them in best-effort.
func (s *connectionService) Save(ctx context.Context, conn *domain.Connection) (*domain.Connection, error) {
	s.enrichDeliveryAddress(ctx, conn)
	if err := s.repo.Put(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func (s *connectionService) enrichDeliveryAddress(ctx context.Context, conn *domain.Connection) {
	if s.addresses == nil {
		return
	}
	if conn.DeliveryPostcode == "" || conn.DeliveryHouseNumber == "" {
		return
	}
	if conn.DeliveryStreet != "" && conn.DeliveryCity != "" {
		return
	}

	result, err := s.addresses.Lookup(ctx, conn.DeliveryPostcode, conn.DeliveryHouseNumber)
	if err != nil {
		log.Printf("connectionService: address lookup failed for %s %s: %v",
			conn.DeliveryPostcode, conn.DeliveryHouseNumber, err)
		return
	}
	if result == nil {
		return
	}
	if conn.DeliveryStreet == "" {
		conn.DeliveryStreet = result.Street
	}
	if conn.DeliveryCity == "" {
		conn.DeliveryCity = result.City
	}
}

func (s *connectionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Connection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *connectionService) List(ctx context.Context, offset, limit int) ([]domain.Connection, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *connectionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *connectionService) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func (s *connectionService) Validate(ctx context.Context, id uuid.UUID) (*valconn.Report, error) {
	conn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	report := valconn.Validate(conn)
	return &report, nil
}

// ApplyKVKProfile fetches the registry profile and patches it onto the
// connection. Only filled profile fields overwrite; the patched record is
// saved and returned.
func (s *connectionService) ApplyKVKProfile(ctx context.Context, id uuid.UUID, input ApplyKVKInput) (*domain.Connection, error) {
	if s.kvkClient == nil {
		return nil, domain.ErrLookupUnavailable
	}

	conn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.kvkClient.Profile(ctx, input.KvkNumber, input.VestigingsNumber)
	if err != nil {
		return nil, err
	}

	var signatory *kvk.Signatory
	if input.SignatoryIndex != nil {
		if i := *input.SignatoryIndex; i >= 0 && i < len(profile.Signatories) {
			signatory = &profile.Signatories[i]
		}
	} else if len(profile.Signatories) == 1 {
		signatory = &profile.Signatories[0]
	}

	kvk.ApplyProfile(conn, profile, signatory)

	if err := s.repo.Put(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}
