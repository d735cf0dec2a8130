// Package outreach sends templated emails to a CSV lead list.
package outreach

import (
	"encoding/csv"
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"text/template"

	"autoshorts/internal/config"
)

// Lead is one outreach target parsed from the scraper results CSV.
type Lead struct {
	Name  string
	Email string
}

// ReadLeads parses a CSV file with a header row. The "name" and "email"
// columns are matched case-insensitively; rows without an email address are
// skipped.
func ReadLeads(path string) ([]Lead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open leads file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse leads file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("leads file %s is empty", path)
	}

	nameCol, emailCol := -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameCol = i
		case "email":
			emailCol = i
		}
	}
	if emailCol == -1 {
		return nil, fmt.Errorf("leads file %s has no email column", path)
	}

	var leads []Lead
	for _, row := range records[1:] {
		if emailCol >= len(row) {
			continue
		}
		email := strings.TrimSpace(row[emailCol])
		if email == "" {
			continue
		}
		lead := Lead{Email: email}
		if nameCol != -1 && nameCol < len(row) {
			lead.Name = strings.TrimSpace(row[nameCol])
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// sendFunc matches smtp.SendMail, replaceable in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Sender emails each lead the configured subject and templated body.
type Sender struct {
	creds   config.EmailCredentials
	subject string
	body    *template.Template
	send    sendFunc
}

// NewSender builds a Sender from SMTP credentials and a body template file.
// The template receives one Lead per message.
func NewSender(creds config.EmailCredentials, subject, bodyFile string) (*Sender, error) {
	data, err := os.ReadFile(bodyFile)
	if err != nil {
		return nil, fmt.Errorf("read outreach body: %w", err)
	}
	tmpl, err := template.New("body").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse outreach body %s: %w", bodyFile, err)
	}
	return &Sender{creds: creds, subject: subject, body: tmpl, send: smtp.SendMail}, nil
}

// Send emails every lead sequentially and returns how many messages went out.
// A per-lead failure is counted and reported by the caller, not fatal.
func (s *Sender) Send(leads []Lead) (sent int, failed []Lead) {
	addr := fmt.Sprintf("%s:%d", s.creds.Host, s.creds.Port)
	auth := smtp.PlainAuth("", s.creds.Username, s.creds.Password, s.creds.Host)

	for _, lead := range leads {
		msg, err := s.message(lead)
		if err != nil {
			failed = append(failed, lead)
			continue
		}
		if err := s.send(addr, auth, s.creds.Username, []string{lead.Email}, msg); err != nil {
			failed = append(failed, lead)
			continue
		}
		sent++
	}
	return sent, failed
}

func (s *Sender) message(lead Lead) ([]byte, error) {
	var body strings.Builder
	if err := s.body.Execute(&body, lead); err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.creds.Username, lead.Email, s.subject, body.String())
	return []byte(msg), nil
}
