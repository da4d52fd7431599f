// Package guard provides the constructor guard used by value objects, entities
// and commands to tell a constructed instance apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// Embed it in a struct and set it with NewConstructorGuard; the zero value
// fails validation.
//
// Example:
//
//	var ErrPlateIsNotConstructed = errors.New("Plate must be created via NewPlate")
//
//	type Plate struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func (p Plate) Validate() error {
//	    return p.guard.Validate(ErrPlateIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
