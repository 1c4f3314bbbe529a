package discord

import "log"

// EventDefinition binds a named gateway event handler. Handler must be a
// function discordgo.Session.AddHandler accepts; Once attaches it for a
// single delivery.
type EventDefinition struct {
	Name    string
	Once    bool
	Handler interface{}
}

// EventRegistry collects gateway event bindings before the session opens.
type EventRegistry struct {
	events []EventDefinition
}

func NewEventRegistry() *EventRegistry {
	return &EventRegistry{}
}

func (r *EventRegistry) Add(def EventDefinition) {
	r.events = append(r.events, def)
}

// All returns the registered definitions in registration order.
func (r *EventRegistry) All() []EventDefinition {
	return r.events
}

// Attach wires every registered handler into the session. Definitions with
// no handler are logged and skipped rather than aborting startup.
func (r *EventRegistry) Attach(b *Bot) {
	for _, def := range r.events {
		if def.Handler == nil {
			log.Printf("[WARN] Skipping event '%s': no handler", def.Name)
			continue
		}

		if def.Once {
			b.session.AddHandlerOnce(def.Handler)
		} else {
			b.session.AddHandler(def.Handler)
		}
		log.Printf("[INFO] Attached event handler '%s' (once=%v)", def.Name, def.Once)
	}
}
