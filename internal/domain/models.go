package domain

import (
	"time"

	"github.com/google/uuid"
)

// Connection is one energy connection (aansluiting) record as captured during
// intake. Field names on the wire are the Dutch intake vocabulary the rest of
// the toolchain speaks.
type Connection struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	Source    ConnectionSource `db:"source" json:"source"`

	EANCode        string `db:"ean_code" json:"eanCode"`
	Product        string `db:"product" json:"product"`
	Tenaamstelling string `db:"tenaamstelling" json:"tenaamstelling"`
	LegalName      string `db:"legal_name" json:"legalName"`
	TradeName      string `db:"trade_name" json:"tradeName"`
	CompanyActive  string `db:"company_active" json:"companyActive"`
	KvkNumber      string `db:"kvk_number" json:"kvkNumber"`
	LegalForm      string `db:"legal_form" json:"legalForm"`
	IBAN           string `db:"iban" json:"iban"`

	AuthorizedSignatory     string `db:"authorized_signatory" json:"authorizedSignatory"`
	AuthorizedSignatoryRole string `db:"authorized_signatory_role" json:"authorizedSignatoryRole"`

	VatNumber    string `db:"vat_number" json:"vatNumber"`
	ContactEmail string `db:"contact_email" json:"contactEmail"`
	ContactPhone string `db:"contact_phone" json:"contactPhone"`
	Website      string `db:"website" json:"website"`
	InvoiceEmail string `db:"invoice_email" json:"invoiceEmail"`

	TelemetryCode string `db:"telemetry_code" json:"telemetryCode"`
	TelemetryType string `db:"telemetry_type" json:"telemetryType"`

	Department        string `db:"department" json:"department"`
	MeterNumber       string `db:"meter_number" json:"meterNumber"`
	AnnualUsageNormal string `db:"annual_usage_normal" json:"annualUsageNormal"`
	AnnualUsageLow    string `db:"annual_usage_low" json:"annualUsageLow"`
	GridOperator      string `db:"grid_operator" json:"gridOperator"`
	Supplier          string `db:"supplier" json:"supplier"`
	MarketSegment     string `db:"market_segment" json:"marketSegment"`

	DeliveryStreet      string `db:"delivery_street" json:"deliveryStreet"`
	DeliveryHouseNumber string `db:"delivery_house_number" json:"deliveryHouseNumber"`
	DeliveryAddition    string `db:"delivery_addition" json:"deliveryAddition"`
	DeliveryPostcode    string `db:"delivery_postcode" json:"deliveryPostcode"`
	DeliveryCity        string `db:"delivery_city" json:"deliveryCity"`

	InvoiceSameAsDelivery bool   `db:"invoice_same_as_delivery" json:"invoiceSameAsDelivery"`
	InvoiceStreet         string `db:"invoice_street" json:"invoiceStreet"`
	InvoiceHouseNumber    string `db:"invoice_house_number" json:"invoiceHouseNumber"`
	InvoiceAddition       string `db:"invoice_addition" json:"invoiceAddition"`
	InvoicePostcode       string `db:"invoice_postcode" json:"invoicePostcode"`
	InvoiceCity           string `db:"invoice_city" json:"invoiceCity"`

	Status         string `db:"status" json:"status"`
	Notes          string `db:"notes" json:"notes"`
	AddressWarning string `db:"address_warning" json:"addressWarning"`
}

// NewDraftConnection returns a connection pre-filled with the intake defaults.
func NewDraftConnection(source ConnectionSource) Connection {
	return Connection{
		ID:                    uuid.New(),
		CreatedAt:             time.Now().UTC(),
		Source:                source,
		TelemetryCode:         TelemetryCodeUnknown,
		InvoiceSameAsDelivery: true,
	}
}

// HasInvoiceAddress reports whether any invoice-side address field is filled.
func (c *Connection) HasInvoiceAddress() bool {
	return c.InvoiceStreet != "" || c.InvoiceHouseNumber != "" || c.InvoiceAddition != "" ||
		c.InvoicePostcode != "" || c.InvoiceCity != ""
}

// IntakeJob tracks one uploaded file moving through the intake queue.
type IntakeJob struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	Source        ConnectionSource `db:"source" json:"source"`
	FileName      string           `db:"file_name" json:"file_name"`
	FileType      FileType         `db:"file_type" json:"file_type"`
	ContentType   string           `db:"content_type" json:"content_type"`
	FileSize      int64            `db:"file_size" json:"file_size"`
	S3Bucket      string           `db:"s3_bucket" json:"s3_bucket"`
	S3Key         string           `db:"s3_key" json:"s3_key"`
	AllowMultiple bool             `db:"allow_multiple" json:"allow_multiple"`
	SplitMode     SplitMode        `db:"split_mode" json:"split_mode"`
	Provider      string           `db:"provider" json:"provider"`
	Status        JobStatus        `db:"status" json:"status"`
	OCRConfidence *float64         `db:"ocr_confidence" json:"ocr_confidence"`
	RecordCount   int              `db:"record_count" json:"record_count"`
	Error         string           `db:"error" json:"error"`
	CreatedBy     uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	StartedAt     *time.Time       `db:"started_at" json:"started_at"`
	FinishedAt    *time.Time       `db:"finished_at" json:"finished_at"`
}

// User represents an authenticated user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
