package server

import (
	"encoding/json"
	"testing"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe(teamTopic("t1"))
	defer b.Unsubscribe(teamTopic("t1"), ch)

	b.Publish(teamTopic("t1"), Event{Type: eventCheckpointFound, CheckpointID: 2})

	select {
	case data := <-ch:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Type != eventCheckpointFound || ev.CheckpointID != 2 {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("no event delivered")
	}
}

func TestBrokerTopicIsolation(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe(teamTopic("t1"))
	defer b.Unsubscribe(teamTopic("t1"), ch)

	b.Publish(teamTopic("t2"), Event{Type: eventTeamReset})

	select {
	case <-ch:
		t.Fatal("event leaked across topics")
	default:
	}
}

func TestBrokerPublishTeamFansOut(t *testing.T) {
	b := NewBroker()

	teamCh := b.Subscribe(teamTopic("t1"))
	sessCh := b.Subscribe(sessionTopic("s1"))
	defer b.Unsubscribe(teamTopic("t1"), teamCh)
	defer b.Unsubscribe(sessionTopic("s1"), sessCh)

	b.PublishTeam("t1", "s1", Event{Type: eventCheckpointUnlocked, CheckpointID: 3})

	for name, ch := range map[string]chan []byte{"team": teamCh, "session": sessCh} {
		select {
		case data := <-ch:
			var ev Event
			if err := json.Unmarshal(data, &ev); err != nil {
				t.Fatalf("%s: unmarshal: %v", name, err)
			}
			if ev.TeamID != "t1" {
				t.Errorf("%s: teamId = %q, want t1", name, ev.TeamID)
			}
		default:
			t.Errorf("%s subscriber got nothing", name)
		}
	}
}

func TestBrokerUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe(teamTopic("t1"))
	b.Unsubscribe(teamTopic("t1"), ch)

	b.Publish(teamTopic("t1"), Event{Type: eventTeamReset})

	select {
	case <-ch:
		t.Fatal("event delivered after unsubscribe")
	default:
	}
}

func TestBrokerDropsWhenSubscriberIsSlow(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe(teamTopic("t1"))
	defer b.Unsubscribe(teamTopic("t1"), ch)

	// Overflow the buffer; Publish must not block.
	for i := 0; i < 100; i++ {
		b.Publish(teamTopic("t1"), Event{Type: eventPositionUpdated})
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered = %d, want %d", got, cap(ch))
	}
}
