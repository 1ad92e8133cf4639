package eventengine

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/menna-17/backend-craftora/internal/eventengine/event"
)

func Test_eventEngine(t *testing.T) {
	var err error
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := eventEngine{
		EventEngineConfig: &EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
		events:        make(map[event.EventName]*subscribers, 20),
		eventEngineCh: make(chan *event.Event, 1),
	}

	internalSrvWG.Add(1)
	go engine.listen()

	testEvent := event.Event{
		Name: "test.event.engine.event.name",
	}
	engine.RegisterEvents(testEvent.Name)

	var received1, received2 atomic.Int64

	// register subscriber 1 for the event.
	subscriberAddressCh1 := make(chan any, 2)
	err = engine.Subscribe(
		testEvent.Name,
		&event.Subscriber{
			Name:      "test_subscriber_name.1",
			AddressCh: subscriberAddressCh1,
		},
	)
	if err != nil {
		close(subscriberAddressCh1)
		t.Fatal(err)
	}

	internalSrvWG.Add(1)
	go func() {
		defer internalSrvWG.Done()
		for range subscriberAddressCh1 {
			received1.Add(1)
		}
	}()

	// register subscriber 2 for the same event.
	subscriberAddressCh2 := make(chan any, 2)
	err = engine.Subscribe(
		testEvent.Name,
		&event.Subscriber{
			Name:      "test_subscriber_name.2",
			AddressCh: subscriberAddressCh2,
		},
	)
	if err != nil {
		close(subscriberAddressCh2)
		t.Fatal(err)
	}

	internalSrvWG.Add(1)
	go func() {
		defer internalSrvWG.Done()
		for range subscriberAddressCh2 {
			received2.Add(1)
		}
	}()

	// main routine publishes
	const published = 5
	for i := 0; i < published; i++ {
		err = engine.Publish(
			&event.Event{
				Name:    testEvent.Name,
				Payload: i + 1,
			},
		)
		if err != nil {
			t.Fatal(err)
		}
	}

	close(doneCh)
	internalSrvWG.Wait()

	if received1.Load() != published {
		t.Errorf(
			"subscriber 1 received %d events, want %d",
			received1.Load(),
			published,
		)
	}

	if received2.Load() != published {
		t.Errorf(
			"subscriber 2 received %d events, want %d",
			received2.Load(),
			published,
		)
	}
}

func Test_eventEngine_subscribeUnknownEvent(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := eventEngine{
		EventEngineConfig: &EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
		events:        make(map[event.EventName]*subscribers),
		eventEngineCh: make(chan *event.Event, 1),
	}

	addressCh := make(chan any, 1)
	err := engine.Subscribe(
		"never.registered",
		&event.Subscriber{
			Name:      "test_subscriber",
			AddressCh: addressCh,
		},
	)
	if err == nil {
		t.Error("expected an error subscribing to an unregistered event")
	}

	if err := engine.Publish(&event.Event{Name: "never.registered"}); err == nil {
		t.Error("expected an error publishing an unregistered event")
	}
}
