package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"aansluitintake/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendExportEmail(ctx context.Context, toEmail, toName, fileName, downloadURL string) error {
	subject := fmt.Sprintf("Intake export: %s", fileName)
	htmlBody := buildExportHTML(toName, fileName, downloadURL)
	textBody := fmt.Sprintf("Beste %s,\n\nDe export %s staat klaar. Download hem via:\n%s\n\nDe downloadlink verloopt na een uur.\n\nImpact Energy Intake", toName, fileName, downloadURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildExportHTML(name, fileName, downloadURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Uw export staat klaar</h2>
  <p>Beste %s,</p>
  <p>De export <strong>%s</strong> is aangemaakt en kan via de knop hieronder worden gedownload:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0F172A; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download export</a>
  </p>
  <p>Of kopieer deze link naar uw browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <p style="color: #999; font-size: 12px;">De downloadlink verloopt na een uur.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Impact Energy - Intake aansluitingen</p>
</body>
</html>`, name, fileName, downloadURL, downloadURL)
}
