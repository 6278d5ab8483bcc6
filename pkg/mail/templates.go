package mail

import (
	"bytes"
	_ "embed"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"
)

// Placeholder is rendered in place of optional fields that were left empty.
const Placeholder = "Not provided"

// ReceivedAtLayout formats the time a submission was received.
const ReceivedAtLayout = "January 02, 2006, 03:04:05 PM"

type Branding struct {
	Name    string
	Tagline string
}

type NotificationParams struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Message string
	// ReceivedAt is pre-formatted so that rendering stays deterministic.
	ReceivedAt string
	Branding   Branding
}

type AcknowledgmentParams struct {
	Name     string
	Message  string
	Branding Branding
}

type contactField struct {
	Icon     string
	Gradient htmltemplate.CSS
	Label    string
	Value    string
}

var (
	htmlFuncs = htmltemplate.FuncMap{
		"orPlaceholder": orPlaceholder,
		"nl2br":         nl2br,
		"telHref":       telHref,
		// gradient values only ever come from the template source
		"field": func(icon, gradient, label, value string) contactField {
			return contactField{Icon: icon, Gradient: htmltemplate.CSS(gradient), Label: label, Value: value}
		},
	}
	textFuncs = texttemplate.FuncMap{
		"orPlaceholder": orPlaceholder,
	}

	notificationHTMLTemplate   = htmltemplate.New("notification.html").Funcs(htmlFuncs)
	acknowledgmentHTMLTemplate = htmltemplate.New("acknowledgment.html").Funcs(htmlFuncs)
	notificationTextTemplate   = texttemplate.New("notification.txt").Funcs(textFuncs)
	acknowledgmentTextTemplate = texttemplate.New("acknowledgment.txt").Funcs(textFuncs)

	//go:embed templates/notification.html
	notificationHTMLRaw string
	//go:embed templates/acknowledgment.html
	acknowledgmentHTMLRaw string
	//go:embed templates/notification.txt
	notificationTextRaw string
	//go:embed templates/acknowledgment.txt
	acknowledgmentTextRaw string
)

func init() {
	if _, err := notificationHTMLTemplate.Parse(notificationHTMLRaw); err != nil {
		panic(err)
	}
	if _, err := acknowledgmentHTMLTemplate.Parse(acknowledgmentHTMLRaw); err != nil {
		panic(err)
	}
	if _, err := notificationTextTemplate.Parse(notificationTextRaw); err != nil {
		panic(err)
	}
	if _, err := acknowledgmentTextTemplate.Parse(acknowledgmentTextRaw); err != nil {
		panic(err)
	}
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func render(t executor, p any) (string, error) {
	b := bytes.Buffer{}
	err := t.Execute(&b, p)
	return b.String(), err
}

// RenderNotification renders the message sent to the configured recipient.
func RenderNotification(p NotificationParams) (Message, error) {
	html, err := render(notificationHTMLTemplate, p)
	if err != nil {
		return Message{}, err
	}
	text, err := render(notificationTextTemplate, p)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Kind:     KindNotification,
		Subject:  "🔔 New Contact Form Submission from " + p.Name,
		HTMLBody: html,
		TextBody: strings.TrimSpace(text),
		ReplyTo:  p.Email,
	}, nil
}

// RenderAcknowledgment renders the thank-you message sent back to the submitter.
func RenderAcknowledgment(p AcknowledgmentParams) (Message, error) {
	html, err := render(acknowledgmentHTMLTemplate, p)
	if err != nil {
		return Message{}, err
	}
	text, err := render(acknowledgmentTextTemplate, p)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Kind:     KindAcknowledgment,
		Subject:  "✅ We received your enquiry - " + p.Branding.Name,
		HTMLBody: html,
		TextBody: strings.TrimSpace(text),
	}, nil
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// nl2br escapes s and turns every newline into a <br> tag.
// telHref drops whitespace so the number forms a valid tel: URI.
func telHref(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

func nl2br(s string) htmltemplate.HTML {
	escaped := htmltemplate.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return htmltemplate.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
