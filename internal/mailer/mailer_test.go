package mailer

import (
	"context"
	"strings"
	"testing"

	"winespace/internal/config"
	"winespace/internal/model"
)

func TestFormatZAR(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{1250.5, "R 1,250.50"},
		{int64(3), "R 3.00"},
		{float32(0.5), "R 0.50"},
		{1234567, "R 1,234,567.00"},
		{"oops", "R 0.00"},
	}
	for _, tt := range tests {
		if got := FormatZAR(tt.in); got != tt.want {
			t.Errorf("FormatZAR(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderEveryKind(t *testing.T) {
	r, err := NewRenderer("https://winespace.example")
	if err != nil {
		t.Fatal(err)
	}

	for kind := range defaultSubjects {
		msg, err := r.Render(model.Notification{Kind: kind, To: "a@b.co"})
		if err != nil {
			t.Fatalf("render %s: %v", kind, err)
		}
		if msg.Subject != defaultSubjects[kind] || msg.To != "a@b.co" {
			t.Errorf("unexpected message for %s: %+v", kind, msg)
		}
	}
}

func TestRenderOrderCreated(t *testing.T) {
	r, err := NewRenderer("https://winespace.example")
	if err != nil {
		t.Fatal(err)
	}

	msg, err := r.Render(model.Notification{
		Kind:    model.NotifyOrderCreated,
		To:      "sales@glass.example",
		Subject: "New order WS-1",
		Data: map[string]interface{}{
			"reference": "WS-1",
			"buyerName": "Rust & Vrede <Cellar>",
			"total":     1250.5,
			"path":      "/orders/abc",
			"items": []interface{}{
				map[string]interface{}{"name": "Bottle", "quantity": int64(100), "lineTotal": 1250.5},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"WS-1", "R 1,250.50", "Rust &amp; Vrede &lt;Cellar&gt;", "https://winespace.example/orders/abc"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("expected %q in body", want)
		}
	}
	if msg.Subject != "New order WS-1" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
}

func TestNewDrivers(t *testing.T) {
	if _, err := New(context.Background(), config.Mail{Driver: "log"}); err != nil {
		t.Fatal(err)
	}
	if _, err := New(context.Background(), config.Mail{Driver: "smtp"}); err == nil {
		t.Error("expected smtp without a host to fail")
	}
	if _, err := New(context.Background(), config.Mail{Driver: "pigeon"}); err == nil {
		t.Error("expected an unknown driver to fail")
	}
}
