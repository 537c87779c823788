package navigation

import "strings"

// Trigger is the input event that activated a navigation target.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerClick
	TriggerEnter
	TriggerSpace
)

// ParseTrigger maps a trigger value sent by the page (a pointer event name
// or a KeyboardEvent.key) to a Trigger. An empty value is a plain link
// follow and counts as a click.
func ParseTrigger(s string) Trigger {
	switch s {
	case "", "click", "pointer":
		return TriggerClick
	case "Enter":
		return TriggerEnter
	case " ", "Space", "Spacebar":
		return TriggerSpace
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "click", "pointer":
		return TriggerClick
	case "enter":
		return TriggerEnter
	case "space", "spacebar":
		return TriggerSpace
	}
	return TriggerNone
}

// Activates reports whether t should follow the target's link. Pointer
// click, Enter and Space all do, so every target is usable by keyboard.
func (t Trigger) Activates() bool {
	return t == TriggerClick || t == TriggerEnter || t == TriggerSpace
}
