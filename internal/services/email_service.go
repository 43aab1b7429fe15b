package services

import (
	"fmt"
	"log"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	// SendOtpEmail delivers the code synchronously; the caller sees the error.
	SendOtpEmail(email, code string, purpose OtpPurpose) error
	// DispatchOtpEmail delivers in the background. Failures are logged, not
	// surfaced: the verification-resend flow acknowledges before delivery.
	DispatchOtpEmail(email, code string, purpose OtpPurpose)
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOtpEmail(email, code string, purpose OtpPurpose) error {
	var (
		subject = "Verification OTP 🔐"
		title   = "Verify Your Account"
		text    = fmt.Sprintf("Your verification OTP is %s. It is valid for %d minutes. Please do not share it with anyone.", code, int(purpose.TTL().Minutes()))
		color   = "#27ae60"
	)
	if purpose == OtpPasswordReset {
		subject = "Password Reset OTP 🔐"
		title = "Reset Your Password"
		text = fmt.Sprintf("Your OTP for password reset is %s. It is valid for %d minutes.", code, int(purpose.TTL().Minutes()))
		color = "#2980b9"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 10px;">
			<h2 style="color: #2c3e50; text-align: center;">%s</h2>
			<p style="font-size: 16px; color: #34495e;">Hello,</p>
			<p style="font-size: 16px; color: #34495e;">Your verification OTP is:</p>
			<div style="background-color: #f8f9fa; padding: 15px; text-align: center; border-radius: 5px; margin: 20px 0;">
				<span style="font-size: 32px; font-weight: bold; letter-spacing: 5px; color: %s;">%s</span>
			</div>
			<p style="font-size: 14px; color: #7f8c8d;">%s</p>
			<hr style="border: 0; border-top: 1px solid #e0e0e0; margin: 20px 0;">
			<p style="font-size: 12px; color: #bdc3c7; text-align: center;">&copy; %d TravelAgency Team</p>
		</div>
	`, title, color, code, text, time.Now().Year())

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

func (s *emailService) DispatchOtpEmail(email, code string, purpose OtpPurpose) {
	go func() {
		if err := s.SendOtpEmail(email, code, purpose); err != nil {
			log.Printf("[mail][otp] delivery failed to=%s: %v", email, err)
		}
	}()
}
