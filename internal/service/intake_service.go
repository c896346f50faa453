package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"aansluitintake/internal/config"
	"aansluitintake/internal/domain"
	"aansluitintake/internal/extract"
	"aansluitintake/internal/ocr"
	"aansluitintake/internal/port"
)

// TextIntakeInput is the DTO for synchronous text intake.
type TextIntakeInput struct {
	Text          string           `json:"text" binding:"required"`
	AllowMultiple bool             `json:"allow_multiple"`
	SplitMode     domain.SplitMode `json:"split_mode"`
}

// FileIntakeInput is the DTO for queued file intake.
type FileIntakeInput struct {
	File          multipart.File
	Header        *multipart.FileHeader
	AllowMultiple bool
	SplitMode     domain.SplitMode
	Provider      string
	CreatedBy     uuid.UUID
}

// IntakeService turns uploaded material into persisted connection records.
type IntakeService interface {
	IntakeText(ctx context.Context, input TextIntakeInput) ([]domain.Connection, error)
	IntakeExcel(ctx context.Context, r io.Reader) (*extract.ExcelImportResult, error)
	UploadFile(ctx context.Context, input FileIntakeInput) (*domain.IntakeJob, error)
	GetJob(ctx context.Context, id uuid.UUID) (*domain.IntakeJob, error)
	ListJobs(ctx context.Context, offset, limit int) ([]domain.IntakeJob, int, error)
	// StopQueued marks all queued jobs skipped; in-flight jobs finish.
	StopQueued(ctx context.Context) (int64, error)
	// ProcessJob runs one claimed job to completion and records the outcome
	// on the job row. Called by the queue worker.
	ProcessJob(ctx context.Context, job *domain.IntakeJob)
}

type intakeService struct {
	jobRepo    port.IntakeJobRepository
	connRepo   port.ConnectionRepository
	storage    port.ObjectStorage
	recognizer port.TextRecognizer
	extractors map[string]port.ConnectionExtractor
	s3cfg      *config.S3Config
}

// NewIntakeService creates a new IntakeService implementation. extractors maps
// a provider name to its AI extractor; jobs with an empty provider run the
// heuristic pipeline instead.
func NewIntakeService(
	jobRepo port.IntakeJobRepository,
	connRepo port.ConnectionRepository,
	storage port.ObjectStorage,
	recognizer port.TextRecognizer,
	extractors map[string]port.ConnectionExtractor,
	s3cfg *config.S3Config,
) IntakeService {
	return &intakeService{
		jobRepo:    jobRepo,
		connRepo:   connRepo,
		storage:    storage,
		recognizer: recognizer,
		extractors: extractors,
		s3cfg:      s3cfg,
	}
}

func (s *intakeService) IntakeText(ctx context.Context, input TextIntakeInput) ([]domain.Connection, error) {
	splitMode := input.SplitMode
	if splitMode == "" {
		splitMode = domain.SplitModeAuto
	}

	conns := extract.ExtractConnections(input.Text, extract.Options{
		Source:        domain.SourceManual,
		AllowMultiple: input.AllowMultiple,
		SplitMode:     splitMode,
	})

	for i := range conns {
		if err := s.connRepo.Put(ctx, &conns[i]); err != nil {
			return nil, err
		}
	}
	return conns, nil
}

func (s *intakeService) IntakeExcel(ctx context.Context, r io.Reader) (*extract.ExcelImportResult, error) {
	result, err := extract.ExtractConnectionsFromExcel(r)
	if err != nil {
		return nil, err
	}

	for i := range result.Connections {
		if err := s.connRepo.Put(ctx, &result.Connections[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *intakeService) UploadFile(ctx context.Context, input FileIntakeInput) (*domain.IntakeJob, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte check on the first 512 bytes. An xlsx is a zip container,
	// so the extension decides within the zip case.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])
	if _, valid := domain.AllowedContentTypes[detectedType]; !valid {
		if !(fileType == domain.FileTypeXLSX && detectedType == "application/zip") {
			return nil, domain.ErrUnsupportedFileType
		}
	}

	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	jobID := uuid.New()
	s3Key := fmt.Sprintf("intake/%s/%s", jobID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	job := &domain.IntakeJob{
		ID:            jobID,
		Source:        sourceForFileType(fileType),
		FileName:      input.Header.Filename,
		FileType:      fileType,
		ContentType:   contentType,
		FileSize:      input.Header.Size,
		S3Bucket:      s.s3cfg.Bucket,
		S3Key:         s3Key,
		AllowMultiple: input.AllowMultiple,
		SplitMode:     splitModeForFileType(fileType, input.SplitMode),
		Provider:      input.Provider,
		Status:        domain.JobStatusQueued,
		CreatedBy:     input.CreatedBy,
	}

	log.Printf("intakeService: uploading %s (%s, %d bytes) as job %s",
		input.Header.Filename, contentType, input.Header.Size, jobID)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("intakeService: S3 upload failed for job %s: %v", jobID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating intake job: %w", err)
	}
	return job, nil
}

func sourceForFileType(ft domain.FileType) domain.ConnectionSource {
	switch ft {
	case domain.FileTypePDF:
		return domain.SourceOCRPDF
	case domain.FileTypeXLSX:
		return domain.SourceExcel
	default:
		return domain.SourceOCRPhoto
	}
}

// splitModeForFileType keeps the one-PDF-one-record convention: a PDF is a
// single contract unless the caller explicitly asks for splitting.
func splitModeForFileType(ft domain.FileType, requested domain.SplitMode) domain.SplitMode {
	if requested != "" {
		return requested
	}
	if ft == domain.FileTypePDF {
		return domain.SplitModeNone
	}
	return domain.SplitModeAuto
}

func (s *intakeService) GetJob(ctx context.Context, id uuid.UUID) (*domain.IntakeJob, error) {
	return s.jobRepo.GetByID(ctx, id)
}

func (s *intakeService) ListJobs(ctx context.Context, offset, limit int) ([]domain.IntakeJob, int, error) {
	return s.jobRepo.List(ctx, offset, limit)
}

func (s *intakeService) StopQueued(ctx context.Context) (int64, error) {
	skipped, err := s.jobRepo.SkipQueued(ctx)
	if err != nil {
		return 0, err
	}
	if skipped > 0 {
		log.Printf("intakeService: marked %d queued jobs as skipped", skipped)
	}
	return skipped, nil
}

func (s *intakeService) ProcessJob(ctx context.Context, job *domain.IntakeJob) {
	data, err := s.storage.Download(ctx, job.S3Bucket, job.S3Key)
	if err != nil {
		s.failJob(ctx, job, fmt.Errorf("downloading %s: %w", job.S3Key, err))
		return
	}

	var (
		conns         []domain.Connection
		ocrConfidence *float64
	)

	switch job.FileType {
	case domain.FileTypeXLSX:
		result, xerr := extract.ExtractConnectionsFromExcel(bytes.NewReader(data))
		if xerr != nil {
			err = xerr
			break
		}
		conns = result.Connections
	case domain.FileTypeJPG, domain.FileTypePNG:
		conns, ocrConfidence, err = s.processImage(ctx, job, data)
	case domain.FileTypePDF:
		conns, err = s.processPDF(ctx, job, data)
	default:
		err = domain.ErrUnsupportedFileType
	}
	if err != nil {
		s.failJob(ctx, job, err)
		return
	}

	for i := range conns {
		if perr := s.connRepo.Put(ctx, &conns[i]); perr != nil {
			s.failJob(ctx, job, fmt.Errorf("persisting record %d: %w", i, perr))
			return
		}
	}

	if err := s.jobRepo.MarkCompleted(ctx, job.ID, len(conns), ocrConfidence); err != nil {
		log.Printf("intakeService: MarkCompleted failed for job %s: %v", job.ID, err)
		return
	}
	log.Printf("intakeService: job %s completed with %d records", job.ID, len(conns))
}

func (s *intakeService) processImage(ctx context.Context, job *domain.IntakeJob, data []byte) ([]domain.Connection, *float64, error) {
	if extractor := s.extractorFor(job.Provider); extractor != nil {
		conns, err := s.extractWithAI(ctx, job, extractor, port.ExtractInput{
			FileBytes:   data,
			ContentType: job.ContentType,
		})
		return conns, nil, err
	}

	if s.recognizer == nil {
		return nil, nil, fmt.Errorf("no text recognizer configured")
	}
	recognized, err := s.recognizer.RecognizeImage(ctx, data)
	if err != nil {
		return nil, nil, fmt.Errorf("recognizing image: %w", err)
	}

	conns := extract.ExtractConnections(recognized.Text, extract.Options{
		Source:        job.Source,
		AllowMultiple: job.AllowMultiple,
		SplitMode:     job.SplitMode,
	})
	return conns, &recognized.Confidence, nil
}

func (s *intakeService) processPDF(ctx context.Context, job *domain.IntakeJob, data []byte) ([]domain.Connection, error) {
	text, err := ocr.ExtractPDFText(data)
	if err != nil {
		log.Printf("intakeService: PDF text extraction failed for job %s: %v", job.ID, err)
		text = ""
	}

	if extractor := s.extractorFor(job.Provider); extractor != nil {
		input := port.ExtractInput{Text: text}
		if text == "" {
			input = port.ExtractInput{FileBytes: data, ContentType: job.ContentType}
		}
		return s.extractWithAI(ctx, job, extractor, input)
	}

	if text == "" {
		// Scanned PDF without a text layer; the heuristic path has nothing
		// to work with.
		return nil, fmt.Errorf("%w: PDF has no text layer", domain.ErrExtractionFailed)
	}
	return extract.ExtractConnections(text, extract.Options{
		Source:        job.Source,
		AllowMultiple: job.AllowMultiple,
		SplitMode:     job.SplitMode,
	}), nil
}

func (s *intakeService) extractWithAI(ctx context.Context, job *domain.IntakeJob, extractor port.ConnectionExtractor, input port.ExtractInput) ([]domain.Connection, error) {
	input.Options = port.ExtractOptions{
		Source:        job.Source,
		AllowMultiple: job.AllowMultiple,
		SplitMode:     job.SplitMode,
	}
	output, err := extractor.Extract(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if output.Warning != "" {
		log.Printf("intakeService: job %s extraction warning: %s", job.ID, output.Warning)
	}
	return output.Connections, nil
}

// extractorFor resolves the job's provider name. Empty means heuristic; "ai"
// means whatever default chain is registered.
func (s *intakeService) extractorFor(provider string) port.ConnectionExtractor {
	if provider == "" || len(s.extractors) == 0 {
		return nil
	}
	return s.extractors[provider]
}

func (s *intakeService) failJob(ctx context.Context, job *domain.IntakeJob, err error) {
	log.Printf("intakeService: job %s failed: %v", job.ID, err)
	if merr := s.jobRepo.MarkFailed(ctx, job.ID, err.Error()); merr != nil {
		log.Printf("intakeService: MarkFailed failed for job %s: %v", job.ID, merr)
	}
}
