package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"aansluitintake/internal/config"
	"aansluitintake/internal/domain"
	"aansluitintake/internal/export"
	"aansluitintake/internal/port"
)

const exportPageSize = 500

// ExportFile is a rendered export ready to serve or store.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// EmailExportInput is the DTO for mailing an export.
type EmailExportInput struct {
	Format  string `json:"format" binding:"required,oneof=csv xlsx pdf"`
	ToEmail string `json:"to_email" binding:"required,email"`
	ToName  string `json:"to_name"`
}

// ExportService renders connection exports and delivers them.
type ExportService interface {
	Render(ctx context.Context, format string) (*ExportFile, error)
	// EmailExport stores the rendered file in S3 and mails a presigned
	// download link. Returns the stored file name.
	EmailExport(ctx context.Context, input EmailExportInput) (string, error)
}

type exportService struct {
	connRepo port.ConnectionRepository
	storage  port.ObjectStorage
	email    port.EmailSender
	s3cfg    *config.S3Config
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	connRepo port.ConnectionRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	s3cfg *config.S3Config,
) ExportService {
	return &exportService{
		connRepo: connRepo,
		storage:  storage,
		email:    email,
		s3cfg:    s3cfg,
	}
}

func (s *exportService) Render(ctx context.Context, format string) (*ExportFile, error) {
	conns, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	var (
		buf         bytes.Buffer
		data        []byte
		contentType string
	)

	switch format {
	case "csv":
		if err := export.WriteCSV(&buf, conns); err != nil {
			return nil, fmt.Errorf("rendering CSV: %w", err)
		}
		data = buf.Bytes()
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		if err := export.WriteXLSX(&buf, conns); err != nil {
			return nil, fmt.Errorf("rendering XLSX: %w", err)
		}
		data = buf.Bytes()
		contentType = domain.AllowedFileTypes[domain.FileTypeXLSX]
	case "pdf":
		data, err = export.WritePDF(conns)
		if err != nil {
			return nil, fmt.Errorf("rendering PDF: %w", err)
		}
		contentType = "application/pdf"
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}

	return &ExportFile{
		Name:        export.BuildFilename("intake_aansluitingen", format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (s *exportService) EmailExport(ctx context.Context, input EmailExportInput) (string, error) {
	file, err := s.Render(ctx, input.Format)
	if err != nil {
		return "", err
	}

	s3Key := "exports/" + file.Name
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         s3Key,
		Body:        bytes.NewReader(file.Data),
		ContentType: file.ContentType,
		Size:        int64(len(file.Data)),
	})
	if err != nil {
		return "", domain.ErrUploadFailed
	}

	downloadURL, err := s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, s3Key, s.s3cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning export: %w", err)
	}

	toName := input.ToName
	if toName == "" {
		toName = input.ToEmail
	}
	if err := s.email.SendExportEmail(ctx, input.ToEmail, toName, file.Name, downloadURL); err != nil {
		return "", fmt.Errorf("sending export email: %w", err)
	}

	log.Printf("exportService: mailed %s to %s", file.Name, input.ToEmail)
	return file.Name, nil
}

func (s *exportService) listAll(ctx context.Context) ([]domain.Connection, error) {
	var all []domain.Connection
	offset := 0
	for {
		page, total, err := s.connRepo.List(ctx, offset, exportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		offset += len(page)
		if len(page) == 0 || offset >= total {
			return all, nil
		}
	}
}
