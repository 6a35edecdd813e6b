package utils

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sirupsen/logrus"
)

// Mailer sends the transactional emails the app needs. Tests swap in a
// fake; production uses SES.
type Mailer interface {
	SendFamilyInvite(to, familyName, token string) error
	SendResetCode(to, code string) error
	SendVerificationEmail(to, token string) error
}

type SESMailer struct {
	client  *ses.Client
	from    string
	baseURL string
}

func NewSESMailer() (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &SESMailer{
		client:  ses.NewFromConfig(cfg),
		from:    os.Getenv("SES_EMAIL"),
		baseURL: os.Getenv("APP_BASE_URL"),
	}, nil
}

func (m *SESMailer) send(to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.from),
	}

	if _, err := m.client.SendEmail(context.TODO(), input); err != nil {
		logrus.WithFields(logrus.Fields{"to": to, "error": err.Error()}).
			Warn("SES send failed")
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

func (m *SESMailer) SendFamilyInvite(to, familyName, token string) error {
	subject := fmt.Sprintf("You're invited to join %s", familyName)
	body := fmt.Sprintf(
		"You've been invited to join the family group %q.\n\nAccept here: %s/families/accept-invite/%s\n\nThe invitation expires in 7 days.",
		familyName, m.baseURL, token)
	return m.send(to, subject, body)
}

func (m *SESMailer) SendResetCode(to, code string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf("Your password reset code is: %s\n\nIt expires in 15 minutes.", code)
	return m.send(to, subject, body)
}

func (m *SESMailer) SendVerificationEmail(to, token string) error {
	subject := "Verify your email"
	body := fmt.Sprintf("Welcome! Verify your email address here: %s/verify-email?token=%s", m.baseURL, token)
	return m.send(to, subject, body)
}
