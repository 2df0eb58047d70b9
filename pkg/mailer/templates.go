package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
)

const TemplateWelcome = "welcome"

type rendered struct {
	subject string
	text    *texttpl.Template
	html    *htmpl.Template
}

var templates = map[string]rendered{
	TemplateWelcome: {
		subject: "Welcome to {{.AppName}}",
		text: texttpl.Must(texttpl.New("welcome.txt").Parse(
			`Hello {{if .FullName}}{{.FullName}}{{else}}there{{end}},

Your {{.AppName}} account for {{.Email}} is ready.
Sign in to start running sales and maintenance predictions.
`)),
		html: htmpl.Must(htmpl.New("welcome.html").Parse(
			`<p>Hello {{if .FullName}}{{.FullName}}{{else}}there{{end}},</p>
<p>Your {{.AppName}} account for <strong>{{.Email}}</strong> is ready.</p>
<p>Sign in to start running sales and maintenance predictions.</p>
`)),
	},
}

// Render resolves a templated job into subject, text and html bodies.
// Jobs without a template are returned as they are.
func Render(job EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	tpl, ok := templates[strings.ToLower(job.Template)]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
	data := job.Data
	if data == nil {
		data = map[string]string{}
	}
	if data["Email"] == "" {
		data["Email"] = job.To
	}

	subj, err := texttpl.New("subject").Parse(tpl.subject)
	if err != nil {
		return "", "", "", err
	}
	var sb, tb, hb bytes.Buffer
	if err := subj.Execute(&sb, data); err != nil {
		return "", "", "", err
	}
	if err := tpl.text.Execute(&tb, data); err != nil {
		return "", "", "", err
	}
	if err := tpl.html.Execute(&hb, data); err != nil {
		return "", "", "", err
	}
	return sb.String(), tb.String(), hb.String(), nil
}

// WelcomeJob builds the job sent after a successful registration.
func WelcomeJob(appName, email, fullName string) EmailJob {
	return EmailJob{
		To:       email,
		Template: TemplateWelcome,
		Data: map[string]string{
			"AppName":  appName,
			"Email":    email,
			"FullName": fullName,
		},
	}
}
