package mailing

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewMessageCarriesAttachment(t *testing.T) {
	cfg := MailConfig{SMTPEmail: "noreply@foodgram.example", SMTPSender: "Foodgram"}
	msg := NewMessage(cfg, "chef@example.com", "Shopping list", "see attachment",
		Attachment{Name: "shopping_list.txt", Content: []byte("- Egg (pcs) — 2")})

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"chef@example.com", "Shopping list", `filename="shopping_list.txt"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("message missing %q:\n%s", want, out)
		}
	}
}

func TestSendMailRequiresHost(t *testing.T) {
	m := NewMailer(MailConfig{})
	if err := m.SendMail("chef@example.com", "x", "y"); err == nil {
		t.Fatal("expected error when SMTP host is missing")
	}
}
