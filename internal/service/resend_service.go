package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

type ResendService struct {
	client *resend.Client
	from   string
}

func NewResendService(apiKey, fromEmail string) *ResendService {
	return &ResendService{
		client: resend.NewClient(apiKey),
		from:   fromEmail,
	}
}

func (rs *ResendService) SendPasswordResetEmail(ctx context.Context, data ResetEmailData) error {
	subject := "Reset your Virtual Study Group password"

	html := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Password Reset</title>
		<style>
			body {
				font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
				line-height: 1.6;
				color: #333;
				max-width: 600px;
				margin: 0 auto;
				padding: 20px;
				background-color: #f8f9fa;
			}
			.container {
				background-color: white;
				border-radius: 10px;
				padding: 30px;
				box-shadow: 0 2px 10px rgba(0,0,0,0.1);
			}
			.token {
				background-color: #f3f4f6;
				border: 2px dashed #d1d5db;
				border-radius: 8px;
				padding: 20px;
				text-align: center;
				margin: 20px 0;
				font-size: 24px;
				font-weight: bold;
				color: #3b82f6;
				font-family: 'Courier New', monospace;
			}
			.footer {
				text-align: center;
				margin-top: 30px;
				color: #6b7280;
				font-size: 14px;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h2>Hello %s,</h2>
			<p>We received a request to reset your Virtual Study Group password.
			Use the token below to set a new password:</p>
			<div class="token">%s</div>
			<p>This token expires in %d minutes. If you did not request a reset,
			you can safely ignore this email.</p>
			<div class="footer">Virtual Study Group</div>
		</div>
	</body>
	</html>`, data.Name, data.Token, data.ExpiresIn)

	text := fmt.Sprintf(`Hello %s,

We received a request to reset your Virtual Study Group password.

Reset token: %s

This token expires in %d minutes. If you did not request a reset, ignore this email.

--
Virtual Study Group
`, data.Name, data.Token, data.ExpiresIn)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", "Virtual Study Group", rs.from),
		To:      []string{data.Email},
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	_, err := rs.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
