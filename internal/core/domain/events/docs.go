// Package events defines the domain events raised by fleet aggregates and the
// Registry that maps their versioned type tags to JSON codecs.
//
// A tag ("driver.suspended.v1") is the only identity an event has outside the
// process: it is written to outbox_messages.type and to event_streams, carried
// as the Kafka "event-type" header, and used by consumers to subscribe. Adding
// a field to a payload is backwards compatible; renaming or retyping one needs
// a new tag version.
package events
