package services

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

// emailContent is a rendered email body
type emailContent struct {
	Subject string
	HTML    string
	Text    string
}

// linkEmailData is the data for emails that carry a single action link
type linkEmailData struct {
	Name string
	Link string
}

type emailTemplate struct {
	subject string
	html    *template.Template
	text    *texttemplate.Template
}

var emailTemplates = map[string]emailTemplate{
	"verification": {
		subject: "E-Commerce Craze Email Confirmation",
		html: template.Must(template.New("verification").Parse(
			`<h4>Hello, {{.Name}}</h4> <p>Please confirm your email by clicking on the following link: <a href="{{.Link}}">Verify Email</a></p>`)),
		text: texttemplate.Must(texttemplate.New("verification").Parse(
			"Hello, {{.Name}}\n\nPlease confirm your email by opening the following link:\n{{.Link}}\n")),
	},
	"password_reset": {
		subject: "E-Commerce Craze Reset Password",
		html: template.Must(template.New("password_reset").Parse(
			`<h4>Hello, {{.Name}}</h4> <p>Please reset password by clicking on the following link: <a href="{{.Link}}">Reset Password</a></p><p>The link expires in 10 minutes.</p>`)),
		text: texttemplate.Must(texttemplate.New("password_reset").Parse(
			"Hello, {{.Name}}\n\nPlease reset your password by opening the following link:\n{{.Link}}\n\nThe link expires in 10 minutes.\n")),
	},
}

func renderEmail(name string, data linkEmailData) (*emailContent, error) {
	tmpl, ok := emailTemplates[name]
	if !ok {
		return nil, fmt.Errorf("unknown email template %q", name)
	}

	var html, text bytes.Buffer
	if err := tmpl.html.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render %s html: %w", name, err)
	}
	if err := tmpl.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render %s text: %w", name, err)
	}

	return &emailContent{Subject: tmpl.subject, HTML: html.String(), Text: text.String()}, nil
}
