package usecase

import "fmt"

func verificationEmailHTML(name, verificationURL string) string {
	return fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Thank you for registering with Taskboard. To complete your registration,
		please verify your email address by clicking the link below:</p>

		<p><a href="%s">Verify Email Address</a></p>

		<p>Or copy and paste this link into your browser:</p>
		<p>%s</p>

		<p>If you didn't create an account, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>Taskboard Team</p>
	`, name, verificationURL, verificationURL)
}

func passwordResetEmailHTML(name, resetURL string) string {
	return fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>We received a request to reset your password. Click the link below to
		create a new password:</p>

		<p><a href="%s">Reset Password</a></p>

		<p>Or copy and paste this link into your browser:</p>
		<p>%s</p>

		<p>This link will expire in 1 hour. If you didn't request a password reset,
		please ignore this email and your password will remain unchanged.</p>

		<p>Thank you,</p>
		<p>Taskboard Team</p>
	`, name, resetURL, resetURL)
}
