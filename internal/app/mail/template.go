package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmlTemplate "html/template"
	"strings"
	"text/template"

	"github.com/coral-developers/coral-web/internal/config"
	"github.com/coral-developers/coral-web/internal/domain"
)

//go:embed tpl_files/*
var TemplateFiles embed.FS

// TemplateHandler renders the html and text bodies of the contact form emails.
// User supplied values are escaped in the html bodies, the text bodies contain them verbatim.
type TemplateHandler struct {
	company       config.CompanyConfig
	htmlTemplates *htmlTemplate.Template
	textTemplates *template.Template
}

func newTemplateHandler(company config.CompanyConfig) (*TemplateHandler, error) {
	htmlTemplateCache, err := htmlTemplate.New("Html").ParseFS(TemplateFiles, "tpl_files/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html template files: %w", err)
	}

	txtTemplateCache, err := template.New("Txt").ParseFS(TemplateFiles, "tpl_files/*.gotpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template files: %w", err)
	}

	handler := &TemplateHandler{
		company:       company,
		htmlTemplates: htmlTemplateCache,
		textTemplates: txtTemplateCache,
	}

	return handler, nil
}

// NotificationSubject returns the subject line of the company notification.
func (c TemplateHandler) NotificationSubject(sub domain.ContactSubmission) string {
	return "New Contact Form: " + sub.Subject
}

// AutoReplySubject returns the fixed subject line of the auto-reply.
func (c TemplateHandler) AutoReplySubject() string {
	return "Thank you for contacting " + c.company.Name
}

// CompanyNotificationHtml returns the html body of the company notification.
func (c TemplateHandler) CompanyNotificationHtml(sub domain.ContactSubmission) (string, error) {
	return c.executeHtml("company_notification.gohtml", sub)
}

// CompanyNotificationText returns the plain text body of the company notification.
func (c TemplateHandler) CompanyNotificationText(sub domain.ContactSubmission) (string, error) {
	return c.executeText("company_notification.gotpl", sub)
}

// AutoReplyHtml returns the html body of the auto-reply.
func (c TemplateHandler) AutoReplyHtml(sub domain.ContactSubmission) (string, error) {
	return c.executeHtml("auto_reply.gohtml", sub)
}

// AutoReplyText returns the plain text body of the auto-reply.
func (c TemplateHandler) AutoReplyText(sub domain.ContactSubmission) (string, error) {
	return c.executeText("auto_reply.gotpl", sub)
}

func (c TemplateHandler) templateData(sub domain.ContactSubmission) map[string]any {
	return map[string]any{
		"Submission":       sub,
		"Company":          c.company,
		"UpperCompanyName": strings.ToUpper(c.company.Name),
	}
}

func (c TemplateHandler) executeHtml(name string, sub domain.ContactSubmission) (string, error) {
	var htmlTplBuff bytes.Buffer

	err := c.htmlTemplates.ExecuteTemplate(&htmlTplBuff, name, c.templateData(sub))
	if err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return strings.TrimSpace(htmlTplBuff.String()), nil
}

func (c TemplateHandler) executeText(name string, sub domain.ContactSubmission) (string, error) {
	var tplBuff bytes.Buffer

	err := c.textTemplates.ExecuteTemplate(&tplBuff, name, c.templateData(sub))
	if err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return strings.TrimSpace(tplBuff.String()), nil
}
