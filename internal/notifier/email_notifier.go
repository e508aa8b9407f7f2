package notifier

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/shopspring/decimal"

	config "github.com/Paphonsan-l/POS-CRUD/configs"
)

// SendReceiptEmail emails the customer their receipt after a sale has
// committed. Like the SMS path, failures never unwind the sale.
func SendReceiptEmail(recipientEmail string, customerName string, reference string, total decimal.Decimal) error {
	cfg := config.LoadEmailConfig()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {

		log.Printf("Failed to load AWS SDK config for email to %s (receipt %s): %v", recipientEmail, reference, err)
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	if cfg.SenderEmail == "" {
		return fmt.Errorf("sender email address is not configured in environment variables")
	}
	if recipientEmail == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	subject := fmt.Sprintf("Receipt %s - Thank You for Your Purchase!", reference)

	totalStr := total.StringFixed(2)

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Thank you for shopping with us. Your purchase is complete.</p>
            <p><strong>Receipt Details:</strong></p>
            <ul>
                <li>Receipt: %s</li>
                <li>Total Amount: KES %s</li>
            </ul>
            <p>Best regards,</p>
            <p>Your POS Team</p>
        </body>
        </html>`, customerName, reference, totalStr)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nThank you for shopping with us. Your purchase is complete.\n\n"+
			"Receipt Details:\nReceipt: %s\nTotal Amount: KES %s\n\n"+
			"Best regards,\nYour POS Team",
		customerName, reference, totalStr)

	input := &ses.SendEmailInput{
		Source: aws.String(cfg.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{recipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	_, err = client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("Failed to send receipt email %s to %s: %v", reference, recipientEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Receipt email %s sent successfully to %s", reference, recipientEmail)
	return nil
}
