package maze

import "strings"

// Event is something that happened as a result of a single move.
type Event uint8

const (
	EventPickedUpKey Event = iota
	EventPickedUpKeySensor
	EventPickedUpGun
	EventPickup // raised alongside any specific pickup event
	EventMonsterCaught
	eventCount
)

func (e Event) String() string {
	switch e {
	case EventPickedUpKey:
		return "picked_up_key"
	case EventPickedUpKeySensor:
		return "picked_up_key_sensor"
	case EventPickedUpGun:
		return "picked_up_gun"
	case EventPickup:
		return "pickup"
	case EventMonsterCaught:
		return "monster_caught"
	default:
		return "unknown"
	}
}

// EventSet is a closed set of events. The zero value is empty.
type EventSet uint8

// Add returns the set with e included.
func (s EventSet) Add(e Event) EventSet {
	if e >= eventCount {
		return s
	}
	return s | 1<<e
}

// Has reports whether e is in the set.
func (s EventSet) Has(e Event) bool {
	return e < eventCount && s&(1<<e) != 0
}

// Merge returns the union of two sets.
func (s EventSet) Merge(o EventSet) EventSet {
	return s | o
}

// Empty reports whether no event was raised.
func (s EventSet) Empty() bool {
	return s == 0
}

// Len returns the number of events in the set.
func (s EventSet) Len() int {
	n := 0
	for e := Event(0); e < eventCount; e++ {
		if s.Has(e) {
			n++
		}
	}
	return n
}

// List returns the events in declaration order.
func (s EventSet) List() []Event {
	out := make([]Event, 0, s.Len())
	for e := Event(0); e < eventCount; e++ {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s EventSet) String() string {
	names := make([]string, 0, s.Len())
	for _, e := range s.List() {
		names = append(names, e.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
