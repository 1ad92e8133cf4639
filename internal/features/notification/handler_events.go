package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/menna-17/backend-craftora/internal/eventengine"
	"github.com/menna-17/backend-craftora/internal/eventengine/event"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.notification"

type mailSender interface {
	Send(ctx context.Context, fromName, replyTo, to, subject, body string) error
}

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Mailer        mailSender
	AddressChSize uint16
}

type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(
	cfg *HandlerEventsConfig,
) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Mailer == nil {
		log.Fatalf(
			"either 'DoneCh', 'EventEngine', 'InternalSrvWG' or 'Mailer' is nil in '%s'",
			subscriberName,
		)
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	// subscribe to events
	h.addSubscriptions()

	log.Printf("%s is listening...\n", subscriberName)

	// a for select statement is not used here because the event engine will
	// close the addressCh
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.OrderPlacedEvent:
			h.orderPlacedEventHandler(ne)

		default:
			log.Printf(
				"received unknown event type: %T\n",
				ne,
			)
		}
	}

	log.Printf("shutting down %s\n", subscriberName)
}

// orderPlacedEventHandler mails an order confirmation. A send failure is
// logged and dropped; it must never surface into the placement request,
// which has already succeeded.
func (h *handlerEvents) orderPlacedEventHandler(placedEvent *event.OrderPlacedEvent) {
	if placedEvent.ShippingEmail == "" {
		return
	}

	ctx, cancel := context.WithTimeout(
		context.Background(),
		(30 * time.Second),
	)
	defer cancel()

	greeting := "Hello"
	if placedEvent.FirstName != "" {
		greeting = fmt.Sprintf("Hello %s", placedEvent.FirstName)
	}

	body := fmt.Sprintf(
		"%s,\n\nYour order %s has been received and is now processing.\nItems: %d\nTotal: %.2f\n\nThank you for shopping with us.",
		greeting,
		placedEvent.OrderID,
		placedEvent.ItemCount,
		placedEvent.TotalPrice,
	)

	err := h.Mailer.Send(
		ctx,
		"Craftora",
		"",
		placedEvent.ShippingEmail,
		"Your order confirmation",
		body,
	)
	if err != nil {
		log.Printf(
			"failed to send order confirmation for order %s: %v\n",
			placedEvent.OrderID,
			err,
		)
	}
}

// addSubscriptions iterates over subscribeToEventNames and subscribes to
// each event with addressCh.
func (h *handlerEvents) addSubscriptions() {
	subscribeToEventNames := [1]event.EventName{
		event.OrderPlacedEventName,
	}

	var err error
	for _, v := range subscribeToEventNames {
		err = h.EventEngine.Subscribe(
			v,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			log.Fatalf(
				"error in Subscriber: '%s' \nerror subscribing to events: %v\n",
				subscriberName,
				err,
			)
		}
	}
}
