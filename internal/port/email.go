package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	// SendExportEmail delivers a download link for a finished export.
	SendExportEmail(ctx context.Context, toEmail, toName, fileName, downloadURL string) error
}
