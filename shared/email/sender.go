package email

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"surfcast/internal/models"
	"surfcast/internal/surf"
	"surfcast/shared/config"
)

//go:embed digest.html
var digestTemplate string

var digestTmpl = template.Must(template.New("digest").Funcs(template.FuncMap{
	"gradeClass": func(g surf.Grade) string { return "grade-" + strings.ToLower(string(g)) },
	"meters":     func(v float64) string { return fmt.Sprintf("%.1fm", v) },
	"ms":         func(v float64) string { return fmt.Sprintf("%.1f m/s", v) },
	"atLeast":    func(g, min surf.Grade) bool { return g.AtLeast(min) },
}).Parse(digestTemplate))

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Sender struct {
	config *config.EmailConfig
	send   sendFunc
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
		send:   smtp.SendMail,
	}
}

// SendReport e-mails the good-surf digest. A report without points sends nothing.
func (s *Sender) SendReport(report *models.SurfReport) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	if len(report.Points) == 0 {
		return nil
	}

	body, err := GenerateBody(report)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return s.SendHTML(Subject(report), body)
}

// Subject names the best point so the digest is readable from the inbox.
func Subject(report *models.SurfReport) string {
	best := report.Points[0]
	for _, p := range report.Points[1:] {
		if p.PeakGrade().Rank() > best.PeakGrade().Rank() {
			best = p
		}
	}

	if len(report.Points) == 1 {
		return fmt.Sprintf("Surf's up at %s (%s) - %s", best.Beach, best.PeakGrade(), report.Date.Format("Jan 2"))
	}
	return fmt.Sprintf("Surf's up at %d points, best %s (%s) - %s",
		len(report.Points), best.Beach, best.PeakGrade(), report.Date.Format("Jan 2"))
}

// SendHTML sends an email with custom HTML content
func (s *Sender) SendHTML(subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, htmlBody))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	if err := s.send(addr, auth, s.config.FromEmail, to, msg); err != nil {
		return fmt.Errorf("failed to send email via %s: %w", addr, err)
	}
	return nil
}

func GenerateBody(report *models.SurfReport) (string, error) {
	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}
