// Package errs holds the error vocabulary shared by the domain, the
// application handlers and the adapters.
//
// Every kind comes as a sentinel plus a struct that unwraps to it:
//
//	ErrValueIsRequired     ValueIsRequiredError      missing input
//	ErrValueIsInvalid      ValueIsInvalidError       malformed input
//	ErrValueIsOutOfRange   ValueIsOutOfRangeError    input outside its bounds
//	ErrObjectNotFound      ObjectNotFoundError       unknown id
//	ErrDomainRuleViolated  DomainRuleViolationError  refused state transition
//	ErrVersionIsInvalid    VersionIsInvalidError     stale row or stream version
//
// Each struct has a New...Error constructor and a New...ErrorWithCause
// variant; the cause shows up in Error() but Unwrap always yields the
// sentinel. Callers classify with errors.Is. The HTTP adapter turns the
// first three into 400, not-found into 404 and the last two into 409.
package errs
