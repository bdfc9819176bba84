package server

import (
	"encoding/json"
	"sync"
)

// Event is the payload published to live subscribers. Subscribers treat any
// event as "something changed" and re-read a full snapshot from the store,
// so a dropped event only delays a refresh, never loses state.
type Event struct {
	Type         string `json:"type"`
	TeamID       string `json:"teamId,omitempty"`
	CheckpointID int    `json:"checkpointId,omitempty"`
	ValidationID string `json:"validationId,omitempty"`
}

const (
	eventTeamCreated        = "team_created"
	eventTeamDeleted        = "team_deleted"
	eventTeamReset          = "team_reset"
	eventStatusChanged      = "status_changed"
	eventCheckpointFound    = "checkpoint_found"
	eventCheckpointUnlocked = "checkpoint_unlocked"
	eventPositionUpdated    = "position_updated"
	eventValidationCreated  = "validation_created"
	eventValidationResolved = "validation_resolved"
)

// Broker is an in-process pub/sub for live updates, keyed by topic. The
// player stream subscribes to its team topic, the admin stream to a session
// topic; every mutation publishes to both.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

func teamTopic(teamID string) string       { return "team:" + teamID }
func sessionTopic(sessionID string) string { return "session:" + sessionID }

// Subscribe returns a channel receiving JSON-encoded events for the topic.
func (b *Broker) Subscribe(topic string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[chan []byte]struct{})
	}
	b.subs[topic][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel; no events are delivered to it afterwards.
func (b *Broker) Unsubscribe(topic string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[topic], ch)
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the topic.
func (b *Broker) Publish(topic string, event Event) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[topic] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// PublishTeam fans an event out to the team's own subscribers and to the
// session's admin subscribers.
func (b *Broker) PublishTeam(teamID, sessionID string, event Event) {
	event.TeamID = teamID
	b.Publish(teamTopic(teamID), event)
	b.Publish(sessionTopic(sessionID), event)
}
