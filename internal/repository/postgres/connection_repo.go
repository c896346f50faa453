package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/port"
)

type connectionRepo struct {
	db *sqlx.DB
}

// NewConnectionRepo creates a new PostgreSQL-backed ConnectionRepository.
func NewConnectionRepo(db *sqlx.DB) port.ConnectionRepository {
	return &connectionRepo{db: db}
}

// Put upserts a connection keyed on its id. The record is normalized before
// writing so legacy field spellings never reach the database.
func (r *connectionRepo) Put(ctx context.Context, conn *domain.Connection) error {
	if conn.ID == uuid.Nil {
		conn.ID = uuid.New()
	}
	if conn.CreatedAt.IsZero() {
		conn.CreatedAt = time.Now().UTC()
	}
	domain.Normalize(conn)

	query := `INSERT INTO connections (
		id, created_at, source,
		ean_code, product, tenaamstelling, legal_name, trade_name, company_active,
		kvk_number, legal_form, iban,
		authorized_signatory, authorized_signatory_role,
		vat_number, contact_email, contact_phone, website, invoice_email,
		telemetry_code, telemetry_type,
		department, meter_number, annual_usage_normal, annual_usage_low,
		grid_operator, supplier, market_segment,
		delivery_street, delivery_house_number, delivery_addition, delivery_postcode, delivery_city,
		invoice_same_as_delivery, invoice_street, invoice_house_number, invoice_addition,
		invoice_postcode, invoice_city,
		status, notes, address_warning
	) VALUES (
		:id, :created_at, :source,
		:ean_code, :product, :tenaamstelling, :legal_name, :trade_name, :company_active,
		:kvk_number, :legal_form, :iban,
		:authorized_signatory, :authorized_signatory_role,
		:vat_number, :contact_email, :contact_phone, :website, :invoice_email,
		:telemetry_code, :telemetry_type,
		:department, :meter_number, :annual_usage_normal, :annual_usage_low,
		:grid_operator, :supplier, :market_segment,
		:delivery_street, :delivery_house_number, :delivery_addition, :delivery_postcode, :delivery_city,
		:invoice_same_as_delivery, :invoice_street, :invoice_house_number, :invoice_addition,
		:invoice_postcode, :invoice_city,
		:status, :notes, :address_warning
	)
	ON CONFLICT (id) DO UPDATE SET
		source = EXCLUDED.source,
		ean_code = EXCLUDED.ean_code,
		product = EXCLUDED.product,
		tenaamstelling = EXCLUDED.tenaamstelling,
		legal_name = EXCLUDED.legal_name,
		trade_name = EXCLUDED.trade_name,
		company_active = EXCLUDED.company_active,
		kvk_number = EXCLUDED.kvk_number,
		legal_form = EXCLUDED.legal_form,
		iban = EXCLUDED.iban,
		authorized_signatory = EXCLUDED.authorized_signatory,
		authorized_signatory_role = EXCLUDED.authorized_signatory_role,
		vat_number = EXCLUDED.vat_number,
		contact_email = EXCLUDED.contact_email,
		contact_phone = EXCLUDED.contact_phone,
		website = EXCLUDED.website,
		invoice_email = EXCLUDED.invoice_email,
		telemetry_code = EXCLUDED.telemetry_code,
		telemetry_type = EXCLUDED.telemetry_type,
		department = EXCLUDED.department,
		meter_number = EXCLUDED.meter_number,
		annual_usage_normal = EXCLUDED.annual_usage_normal,
		annual_usage_low = EXCLUDED.annual_usage_low,
		grid_operator = EXCLUDED.grid_operator,
		supplier = EXCLUDED.supplier,
		market_segment = EXCLUDED.market_segment,
		delivery_street = EXCLUDED.delivery_street,
		delivery_house_number = EXCLUDED.delivery_house_number,
		delivery_addition = EXCLUDED.delivery_addition,
		delivery_postcode = EXCLUDED.delivery_postcode,
		delivery_city = EXCLUDED.delivery_city,
		invoice_same_as_delivery = EXCLUDED.invoice_same_as_delivery,
		invoice_street = EXCLUDED.invoice_street,
		invoice_house_number = EXCLUDED.invoice_house_number,
		invoice_addition = EXCLUDED.invoice_addition,
		invoice_postcode = EXCLUDED.invoice_postcode,
		invoice_city = EXCLUDED.invoice_city,
		status = EXCLUDED.status,
		notes = EXCLUDED.notes,
		address_warning = EXCLUDED.address_warning`

	if _, err := r.db.NamedExecContext(ctx, query, conn); err != nil {
		return fmt.Errorf("connectionRepo.Put: %w", err)
	}
	return nil
}

func (r *connectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Connection, error) {
	var conn domain.Connection
	err := r.db.GetContext(ctx, &conn, "SELECT * FROM connections WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("connectionRepo.GetByID: %w", err)
	}
	domain.Normalize(&conn)
	return &conn, nil
}

func (r *connectionRepo) List(ctx context.Context, offset, limit int) ([]domain.Connection, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM connections")
	if err != nil {
		return nil, 0, fmt.Errorf("connectionRepo.List count: %w", err)
	}

	var conns []domain.Connection
	err = r.db.SelectContext(ctx, &conns,
		"SELECT * FROM connections ORDER BY created_at DESC, id LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("connectionRepo.List: %w", err)
	}
	for i := range conns {
		domain.Normalize(&conns[i])
	}
	return conns, total, nil
}

func (r *connectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM connections WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("connectionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *connectionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM connections"); err != nil {
		return fmt.Errorf("connectionRepo.DeleteAll: %w", err)
	}
	return nil
}
