package notification

import (
	"html/template"
	"strings"
)

var funcs = template.FuncMap{
	// 改行を<br>に変換するため行ごとに分割する
	"lines": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
	"orDefault": func(s, fallback string) string {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	},
}

const layoutStart = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`

const classBox = `<div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h2 style="color: #e63946; margin-top: 0;">{{.Class.Name}}</h2>
<p><strong>Date:</strong> {{.Class.Date}}</p>
<p><strong>Time:</strong> {{.Class.Time}}</p>
</div>`

var confirmationTemplate = template.Must(template.New("confirmation").Funcs(funcs).Parse(layoutStart + `
<h1 style="color: #0a0a0a;">You're Registered!</h1>
<p>Hi {{.Registration.FirstName}},</p>
<p>Your RSVP has been confirmed for:</p>
` + classBox + `
<p>We look forward to seeing you!</p>
<p>- The FIT365 Team</p>
</div>`))

var adminNoticeTemplate = template.Must(template.New("admin_notice").Funcs(funcs).Parse(layoutStart + `
<h1 style="color: #0a0a0a;">New Class Registration</h1>
` + classBox + `
<h3>Registrant Details:</h3>
<ul>
<li><strong>Name:</strong> {{.Registration.FirstName}} {{.Registration.LastName}}</li>
<li><strong>Email:</strong> {{.Registration.Email}}</li>
<li><strong>Registered:</strong> {{.RegisteredAt}}</li>
</ul>
<p><strong>Spots Remaining:</strong> {{.Class.SpotsRemaining}} / {{.Class.Capacity}}</p>
</div>`))

var contactTemplate = template.Must(template.New("contact").Funcs(funcs).Parse(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{orDefault .Phone "Not provided"}}</p>
<p><strong>Subject:</strong> {{.SubjectText}}</p>
<h3>Message:</h3>
<p>{{range $i, $line := lines .Message}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
<hr>
<p style="color: #666; font-size: 12px;">This message was sent from the FIT365 website contact form.</p>`))

var eventInquiryTemplate = template.Must(template.New("event_inquiry").Funcs(funcs).Parse(`<h2>New Event Inquiry</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{orDefault .Phone "Not provided"}}</p>
<p><strong>Event Type:</strong> {{.EventType}}</p>
<p><strong>Preferred Date:</strong> {{.Date}}</p>
<p><strong>Guests:</strong> {{.Guests}}</p>
<h3>Details:</h3>
<p>{{with .Message}}{{range $i, $line := lines .}}{{if $i}}<br>{{end}}{{$line}}{{end}}{{else}}Not provided{{end}}</p>
<hr>
<p style="color: #666; font-size: 12px;">This message was sent from the FIT365 website event inquiry form.</p>`))
