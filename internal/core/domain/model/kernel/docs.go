// Package kernel holds the shared building blocks of the fleet domain model.
//
// Value objects (UUID, GeoLocation, PersonName, License, Email, Phone, Plate)
// are immutable and validated once by their constructor; the zero value of
// each fails Validate. AggregateRoot gives every aggregate an identity and a
// buffer of pending DomainEvents that the unit of work drains into the outbox
// on commit.
package kernel
