package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// TemplateWelcome is sent after successful registration.
const TemplateWelcome = "welcome"

var welcomeTpl = template.Must(template.New(TemplateWelcome).Parse(`
<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #1f2933;">
    <h2>Welcome{{if .Username}}, {{.Username}}{{end}}!</h2>
    <p>Your account on {{.AppName}} is ready. Sign in with {{.Email}} and start writing.</p>
  </body>
</html>
`))

// Render returns subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err = welcomeTpl.Execute(&buf, map[string]any{
			"Username": data["Username"],
			"Email":    data["Email"],
			"AppName":  data["AppName"],
		}); err != nil {
			return "", "", "", err
		}
		subject = "Welcome aboard"
		text = fmt.Sprintf("Your account on %v is ready.", data["AppName"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
}
