package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendService struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendService(apiKey, fromEmail, fromName string) *MailerSendService {
	return &MailerSendService{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (es *MailerSendService) SendPasswordResetEmail(ctx context.Context, data ResetEmailData) error {
	subject := "Reset your Virtual Study Group password"

	text := fmt.Sprintf(`Hello %s,

We received a request to reset your Virtual Study Group password.

Reset token: %s

This token expires in %d minutes. If you did not request a reset, ignore this email.

--
Virtual Study Group
`, data.Name, data.Token, data.ExpiresIn)

	recipients := []mailersend.Recipient{
		{
			Name:  data.Name,
			Email: data.Email,
		},
	}

	message := es.client.Email.NewMessage()
	message.SetFrom(es.from)
	message.SetRecipients(recipients)
	message.SetSubject(subject)
	message.SetText(text)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := es.client.Email.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
