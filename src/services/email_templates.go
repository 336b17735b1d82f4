package services

import (
	"bytes"
	"html/template"
)

var (
	welcomeTemplate = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>Welcome to UnLinked, {{.Name}}!</h1>
  <p>We're thrilled to have you join our professional community.</p>
  <p>Here's how to get started:</p>
  <ul>
    <li>Complete your profile</li>
    <li>Connect with colleagues and friends</li>
    <li>Share your first post</li>
  </ul>
  <p><a href="{{.ProfileURL}}">Complete your profile</a></p>
</div>`))

	connectionAcceptedTemplate = template.Must(template.New("connectionAccepted").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>Connection accepted</h1>
  <p>Hello {{.SenderName}},</p>
  <p><strong>{{.RecipientName}}</strong> accepted your connection request on UnLinked.</p>
  <p><a href="{{.ProfileURL}}">View {{.RecipientName}}'s profile</a></p>
</div>`))

	commentTemplate = template.Must(template.New("comment").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>New comment on your post</h1>
  <p>Hello {{.RecipientName}},</p>
  <p><strong>{{.CommenterName}}</strong> commented on your post:</p>
  <blockquote>{{.Comment}}</blockquote>
  <p><a href="{{.PostURL}}">View the post</a></p>
</div>`))
)

func renderTemplate(t *template.Template, data interface{}) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}
