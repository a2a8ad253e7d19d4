package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"winespace/internal/model"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var defaultSubjects = map[model.NotificationKind]string{
	model.NotifyOrderCreated:     "New order received",
	model.NotifyOrderStatus:      "Your order status changed",
	model.NotifyBookingRequested: "New booking request",
	model.NotifyBookingStatus:    "Your booking was updated",
	model.NotifyQuoteSubmitted:   "New quote for your request",
	model.NotifyQuoteAccepted:    "Your quote was accepted",
	model.NotifyUserStatus:       "Your account status changed",
}

var printer = message.NewPrinter(language.English)

// FormatZAR formats an amount in South African Rand, e.g. R 1,250.50.
func FormatZAR(v interface{}) string {
	var amount float64
	switch n := v.(type) {
	case float64:
		amount = n
	case float32:
		amount = float64(n)
	case int:
		amount = float64(n)
	case int64:
		amount = float64(n)
	}
	return printer.Sprint(currency.NarrowSymbol(currency.ZAR.Amount(amount)))
}

// Renderer turns notifications into email messages.
type Renderer struct {
	templates map[model.NotificationKind]*template.Template
	baseURL   string
}

func NewRenderer(baseURL string) (*Renderer, error) {
	funcs := template.FuncMap{"zar": FormatZAR}

	templates := map[model.NotificationKind]*template.Template{}
	for kind := range defaultSubjects {
		t, err := template.New(string(kind)).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", fmt.Sprintf("templates/%s.html", kind))
		if err != nil {
			return nil, fmt.Errorf("parse template: %w, kind: %s", err, kind)
		}
		templates[kind] = t
	}
	return &Renderer{templates: templates, baseURL: baseURL}, nil
}

func (r *Renderer) Render(n model.Notification) (Message, error) {
	t, ok := r.templates[n.Kind]
	if !ok {
		return Message{}, fmt.Errorf("no template for notification kind %s", n.Kind)
	}

	subject := n.Subject
	if subject == "" {
		subject = defaultSubjects[n.Kind]
	}

	var link string
	if path, ok := n.Data["path"].(string); ok && path != "" {
		link = r.baseURL + path
	}

	data := n.Data
	if data == nil {
		data = map[string]interface{}{}
	}

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "layout", map[string]interface{}{
		"Subject": subject,
		"Link":    link,
		"Data":    data,
	})
	if err != nil {
		return Message{}, fmt.Errorf("render template: %w, kind: %s", err, n.Kind)
	}

	return Message{To: n.To, Subject: subject, HTML: buf.String()}, nil
}
