package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/menna-17/backend-craftora/internal/eventengine/event"
	"github.com/google/uuid"
)

type fakeMailer struct {
	sentTo      string
	sentSubject string
	sentBody    string
	sendCalls   int
}

func (f *fakeMailer) Send(ctx context.Context, fromName, replyTo, to, subject, body string) error {
	f.sendCalls++
	f.sentTo = to
	f.sentSubject = subject
	f.sentBody = body
	return nil
}

func Test_orderPlacedEventHandler(t *testing.T) {
	mailer := &fakeMailer{}
	h := &handlerEvents{
		HandlerEventsConfig: &HandlerEventsConfig{
			Mailer: mailer,
		},
	}

	orderID := uuid.New()
	h.orderPlacedEventHandler(&event.OrderPlacedEvent{
		OrderID:       orderID,
		ShippingEmail: "menna@example.com",
		FirstName:     "Menna",
		TotalPrice:    129.00,
		ItemCount:     3,
	})

	if mailer.sendCalls != 1 {
		t.Fatalf("got %d mails, want 1", mailer.sendCalls)
	}
	if mailer.sentTo != "menna@example.com" {
		t.Errorf("got recipient %q, want %q", mailer.sentTo, "menna@example.com")
	}
	if !strings.Contains(mailer.sentBody, "Hello Menna") {
		t.Errorf("expected a personal greeting, got %q", mailer.sentBody)
	}
	if !strings.Contains(mailer.sentBody, orderID.String()) {
		t.Error("expected the order id in the mail body")
	}
}

func Test_orderPlacedEventHandler_noEmail(t *testing.T) {
	mailer := &fakeMailer{}
	h := &handlerEvents{
		HandlerEventsConfig: &HandlerEventsConfig{
			Mailer: mailer,
		},
	}

	// guest checkout without a shipping email gets no confirmation mail
	h.orderPlacedEventHandler(&event.OrderPlacedEvent{
		OrderID:    uuid.New(),
		TotalPrice: 10.00,
		ItemCount:  1,
	})

	if mailer.sendCalls != 0 {
		t.Errorf("got %d mails, want 0", mailer.sendCalls)
	}
}
