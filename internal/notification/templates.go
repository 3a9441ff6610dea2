package notification

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

var funcs = map[string]any{"orDefault": orDefault}

const contactHTML = `<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{orDefault .Phone "Not provided"}}</p>
<p><strong>Subject:</strong> {{orDefault .Subject "No subject"}}</p>
<p><strong>Message:</strong></p>
<p>{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
<hr>
<p><small>Sent from Tiger Marine Contact Form</small></p>
`

const contactText = `New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}
Phone: {{orDefault .Phone "Not provided"}}
Subject: {{orDefault .Subject "No subject"}}

Message:
{{.Message}}

---
Sent from Tiger Marine Contact Form
`

const customizerHTML = `<h2>New Customizer Inquiry</h2>
<h3>Customer Information</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{orDefault .Phone "Not provided"}}</p>
<p><strong>Model:</strong> {{orDefault .ModelName "Not specified"}}</p>
<h3>Customization Details</h3>
<p><strong>Selected Colors:</strong></p>
<p>{{if .Colors}}{{range $i, $c := .Colors}}{{if $i}}<br>{{end}}&bull; {{$c.Part}}: {{$c.Color}}{{end}}{{else}}None selected{{end}}</p>
<p><strong>Optional Features:</strong></p>
<p>{{if .Features}}{{range $i, $f := .Features}}{{if $i}}<br>{{end}}&bull; {{$f}}{{end}}{{else}}None selected{{end}}</p>
{{if .Message}}<h3>Additional Message</h3>
<p>{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
{{end}}<hr>
<p><small>Sent from Tiger Marine Customizer</small></p>
`

const customizerText = `New Customizer Inquiry

Customer Information:
Name: {{.Name}}
Email: {{.Email}}
Phone: {{orDefault .Phone "Not provided"}}
Model: {{orDefault .ModelName "Not specified"}}

Customization Details:
Selected Colors:
{{if .Colors}}{{range .Colors}}  - {{.Part}}: {{.Color}}
{{end}}{{else}}None selected
{{end}}
Optional Features:
{{if .Features}}{{range .Features}}  - {{.}}
{{end}}{{else}}None selected
{{end}}{{if .Message}}
Additional Message:
{{.Message}}
{{end}}
---
Sent from Tiger Marine Customizer
`

var (
	contactHTMLTmpl    = htmltemplate.Must(htmltemplate.New("contact.html").Funcs(funcs).Parse(contactHTML))
	contactTextTmpl    = texttemplate.Must(texttemplate.New("contact.txt").Funcs(funcs).Parse(contactText))
	customizerHTMLTmpl = htmltemplate.Must(htmltemplate.New("customizer.html").Funcs(funcs).Parse(customizerHTML))
	customizerTextTmpl = texttemplate.Must(texttemplate.New("customizer.txt").Funcs(funcs).Parse(customizerText))
)
