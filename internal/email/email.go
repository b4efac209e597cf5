// Package email renders and delivers the notification mail sent after a
// successful workflow run.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"blogsmith/internal/config"
	"blogsmith/internal/core"
)

// Sender delivers article notification emails over SMTP. A zero-configured
// sender reports itself as disabled and sends nothing.
type Sender struct {
	cfg  config.Email
	tmpl *template.Template
}

type mailData struct {
	Title       string
	Date        string
	ReadTime    int
	WordCount   int
	Tags        []string
	PageURL     string
	SourceTitle string
	SourceURL   string
	GeneratedBy string
}

// NewSender creates a sender from email configuration.
func NewSender(cfg config.Email) (*Sender, error) {
	tmpl, err := template.New("mail").Parse(mailTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing mail template: %w", err)
	}
	return &Sender{cfg: cfg, tmpl: tmpl}, nil
}

// Enabled reports whether the sender has enough configuration to deliver.
func (s *Sender) Enabled() bool {
	return s.cfg.Enabled && s.cfg.Host != "" && s.cfg.Recipient != ""
}

// SendArticleNotification renders the notification body and delivers it.
func (s *Sender) SendArticleNotification(article core.Article, page core.PageData) error {
	if !s.Enabled() {
		return fmt.Errorf("email sender is not configured")
	}

	body, err := s.renderBody(article, page)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("New article published: %s", article.Title)
	msg := buildMessage(s.from(), s.cfg.Recipient, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.from(), []string{s.cfg.Recipient}, msg); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}
	return nil
}

func (s *Sender) from() string {
	if s.cfg.From != "" {
		return s.cfg.From
	}
	return s.cfg.Username
}

func (s *Sender) renderBody(article core.Article, page core.PageData) (string, error) {
	data := mailData{
		Title:       article.Title,
		Date:        article.GeneratedAt.Format("January 2, 2006"),
		ReadTime:    article.ReadTimeMinutes,
		WordCount:   article.WordCount,
		Tags:        article.Tags,
		PageURL:     page.URL,
		SourceTitle: article.SourceTopic.Title,
		SourceURL:   article.SourceTopic.URL,
		GeneratedBy: article.GeneratedBy,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering mail body: %w", err)
	}
	return buf.String(), nil
}

// buildMessage assembles a minimal HTML email with headers.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(htmlBody)
	return buf.Bytes()
}

const mailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: system-ui, sans-serif; color: #1e293b; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #2563eb;">{{.Title}}</h1>
  <p style="color: #64748b;">{{.Date}} &middot; {{.ReadTime}} min read &middot; {{.WordCount}} words &middot; generated by {{.GeneratedBy}}</p>
  {{if .PageURL}}<p><a href="{{.PageURL}}" style="color: #2563eb;">Read the full article</a></p>{{end}}
  {{if .Tags}}<p>
    {{range .Tags}}<span style="background: #eff6ff; color: #2563eb; border-radius: 999px; padding: 2px 10px; margin-right: 6px; font-size: 13px;">{{.}}</span>{{end}}
  </p>{{end}}
  {{if .SourceURL}}<p style="color: #64748b; font-size: 13px;">Source topic: <a href="{{.SourceURL}}">{{.SourceTitle}}</a></p>{{end}}
</body>
</html>
`
