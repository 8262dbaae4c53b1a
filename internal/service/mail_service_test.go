package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
)

type fakeMailgunClient struct {
	sendErr error

	lastFrom    string
	lastSubject string
	lastTo      []string
	sendCount   int
}

func (f *fakeMailgunClient) NewMessage(from, subject, text string, to ...string) *mailgun.Message {
	f.lastFrom = from
	f.lastSubject = subject
	f.lastTo = to
	// Messages can only be built through a client instance.
	return mailgun.NewMailgun("mg.example.com", "key").NewMessage(from, subject, text, to...)
}

func (f *fakeMailgunClient) Send(ctx context.Context, m *mailgun.Message) (string, string, error) {
	f.sendCount++
	return "", "", f.sendErr
}

func newTestMailService(client *fakeMailgunClient) *MailService {
	return &MailService{
		mg:       client,
		from:     "tk-eats <mailgun@mg.example.com>",
		template: "tk-eats",
		logger:   zap.NewNop(),
	}
}

func TestSendEmail_Success(t *testing.T) {
	t.Parallel()

	client := &fakeMailgunClient{}
	svc := newTestMailService(client)

	ok := svc.SendEmail(context.Background(), "Hello", "tpl", map[string]string{"k": "v"}, "a@x.com")
	if !ok {
		t.Fatalf("expected true on provider success")
	}
	if client.sendCount != 1 {
		t.Fatalf("expected one send, got %d", client.sendCount)
	}
	if client.lastSubject != "Hello" || len(client.lastTo) != 1 || client.lastTo[0] != "a@x.com" {
		t.Fatalf("message built wrong: subject=%q to=%v", client.lastSubject, client.lastTo)
	}
	if client.lastFrom != "tk-eats <mailgun@mg.example.com>" {
		t.Fatalf("from address: got %q", client.lastFrom)
	}
}

func TestSendEmail_ProviderErrorYieldsFalse(t *testing.T) {
	t.Parallel()

	client := &fakeMailgunClient{sendErr: errors.New("mailgun down")}
	svc := newTestMailService(client)

	if svc.SendEmail(context.Background(), "Hello", "tpl", nil, "a@x.com") {
		t.Fatalf("expected false on provider error")
	}
}

func TestSendVerificationEmail_SingleRecipient(t *testing.T) {
	t.Parallel()

	client := &fakeMailgunClient{}
	svc := newTestMailService(client)

	if !svc.SendVerificationEmail(context.Background(), "a@x.com", "code-1") {
		t.Fatalf("expected true on provider success")
	}
	if client.lastSubject != "Verify Your Email" {
		t.Fatalf("subject: got %q", client.lastSubject)
	}
	if len(client.lastTo) != 1 || client.lastTo[0] != "a@x.com" {
		t.Fatalf("recipients: got %v", client.lastTo)
	}
}
