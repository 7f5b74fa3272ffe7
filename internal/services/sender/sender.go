// Package services содержит логику отправки почтовых уведомлений из очереди.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/altynpony/mediaschoolsandbox/internal/lib/sl"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/smtp"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
)

// SenderService потребляет сообщения брокера и рассылает письма через SMTP.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendRegistrationConfirmation отправляет письмо с подтверждением регистрации
// на событие. body — JSON models.RegistrationInfo из очереди.
func (s *SenderService) SendRegistrationConfirmation(body []byte) error {
	const op = "sender.SendRegistrationConfirmation"

	var info models.RegistrationInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subject := "Registration confirmed: " + info.EventTitle
	text := fmt.Sprintf(
		"Hello, %s!\r\n\r\n"+
			"You are registered for %q.\r\n"+
			"Date: %s\r\nLocation: %s\r\n\r\n"+
			"See you there!\r\n",
		info.Name, info.EventTitle,
		info.StartDate.Format("02.01.2006 15:04"), info.Location)

	if err := s.sendEmail(info.Email, subject, text); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("confirmation email sent", slog.String("email", info.Email))
	return nil
}

// sendEmail отправляет одно письмо через SMTP транспорт.
func (s *SenderService) sendEmail(to, subject, text string) error {
	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Quit(); err != nil {
			s.log.Warn("failed to quit smtp session", sl.Err(err))
		}
	}()

	from := s.transport.GetSMTPUser()
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n"+
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		from, to, subject, text)
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
