package noop

import (
	"context"
	"log"

	"aansluitintake/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs download URLs to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendExportEmail(_ context.Context, toEmail, toName, fileName, downloadURL string) error {
	log.Printf("[NOOP EMAIL] Export %s for %s (%s): %s", fileName, toName, toEmail, downloadURL)
	return nil
}
