package domain

// FileType represents the allowed file types for intake upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeXLSX FileType = "xlsx"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FileTypeXLSX,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"xlsx": FileTypeXLSX,
}

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// ConnectionSource records how a connection record entered the system.
type ConnectionSource string

const (
	SourceOCRPhoto ConnectionSource = "OCR_PHOTO"
	SourceOCRPDF   ConnectionSource = "OCR_PDF"
	SourceExcel    ConnectionSource = "EXCEL"
	SourceManual   ConnectionSource = "MANUAL"
)

// Product is the energy product of a connection.
type Product string

const (
	ProductElektra  Product = "Elektra"
	ProductGas      Product = "Gas"
	ProductWater    Product = "Water"
	ProductWarmte   Product = "Warmte"
	ProductOnbekend Product = "Onbekend"
)

// ProductOptions lists the valid Product values in display order.
var ProductOptions = []Product{ProductElektra, ProductGas, ProductWater, ProductWarmte, ProductOnbekend}

// MarketSegment distinguishes kleinverbruik (KV) from grootverbruik (GV).
type MarketSegment string

const (
	SegmentKV       MarketSegment = "KV"
	SegmentGV       MarketSegment = "GV"
	SegmentOnbekend MarketSegment = "Onbekend"
)

// MarketSegmentOptions lists the valid MarketSegment values.
var MarketSegmentOptions = []MarketSegment{SegmentKV, SegmentGV, SegmentOnbekend}

// TelemetryCodeUnknown is the sentinel for an unknown telemetry code.
const TelemetryCodeUnknown = "ONBEKEND"

// TelemetryTypeOptions lists the recognized telemetry type values.
var TelemetryTypeOptions = []string{
	"Onbekend",
	"Slimme meter",
	"Maandbemeten",
	"Jaarbemeten",
	"Continu (kwartierwaarden)",
}

// CompanyActive is the KVK registration status of the company on a connection.
type CompanyActive string

const (
	CompanyActiveYes     CompanyActive = "active"
	CompanyActiveNo      CompanyActive = "inactive"
	CompanyActiveUnknown CompanyActive = "unknown"
)

// JobStatus represents the lifecycle of an intake job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusSkipped    JobStatus = "skipped"
)

// SplitMode controls how intake text is divided into per-connection blocks.
type SplitMode string

const (
	SplitModeAuto SplitMode = "auto"
	SplitModeNone SplitMode = "none"
)
