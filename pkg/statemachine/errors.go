package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrNilAccessor           = errors.New("statemachine: state accessor functions cannot be nil")
	ErrNilOptionsFactory     = errors.New("statemachine: options factory cannot be nil")
	ErrInvalidRequest        = errors.New("statemachine: invalid fire request")
	ErrAutofireDepthExceeded = errors.New("statemachine: autofire chain exceeded the maximum depth")
	ErrTransitionFailed      = errors.New("statemachine: transition action failed")

	// ErrSkipTransition is returned by a middleware that deliberately does not
	// run the rest of the chain. Fire treats it as a successful no-op.
	ErrSkipTransition = errors.New("statemachine: transition skipped by middleware")

	// ErrPipelineNotInvoked is returned when a middleware returns nil without
	// calling next, which would otherwise drop the transition silently.
	ErrPipelineNotInvoked = errors.New("statemachine: middleware returned without invoking the transition pipeline")
)

// ErrStateNotConfigured is returned when a state is neither configured as a
// source nor marked as finite.
type ErrStateNotConfigured struct {
	State any
}

// NewErrStateNotConfigured creates a new ErrStateNotConfigured error.
func NewErrStateNotConfigured(state any) *ErrStateNotConfigured {
	return &ErrStateNotConfigured{State: state}
}

func (e *ErrStateNotConfigured) Error() string {
	return fmt.Sprintf("statemachine: the %v state has not been configured or marked as finite", e.State)
}

// ErrAmbiguousStateConfiguration is returned when a state is registered twice.
type ErrAmbiguousStateConfiguration struct {
	State any
}

// NewErrAmbiguousStateConfiguration creates a new ErrAmbiguousStateConfiguration error.
func NewErrAmbiguousStateConfiguration(state any) *ErrAmbiguousStateConfiguration {
	return &ErrAmbiguousStateConfiguration{State: state}
}

func (e *ErrAmbiguousStateConfiguration) Error() string {
	return fmt.Sprintf("statemachine: multiple configurations detected for %v state", e.State)
}

// ErrTriggerResolverNotFound is returned when the current state has no
// transition for the requested trigger or destination.
type ErrTriggerResolverNotFound struct {
	Kind    RequestKind
	Trigger any
	State   any
}

// NewErrTriggerResolverNotFound creates a new ErrTriggerResolverNotFound error.
// trigger is reported for trigger requests, state for state requests.
func NewErrTriggerResolverNotFound(kind RequestKind, trigger, state any) *ErrTriggerResolverNotFound {
	return &ErrTriggerResolverNotFound{Kind: kind, Trigger: trigger, State: state}
}

func (e *ErrTriggerResolverNotFound) Error() string {
	if e.Kind == KindTrigger {
		return fmt.Sprintf("statemachine: no suitable trigger resolver configured for the transition using %v trigger", e.Trigger)
	}
	return fmt.Sprintf("statemachine: no suitable trigger resolver configured for the transition to %v state", e.State)
}

// ErrAmbiguousTriggerResolver is returned when more than one transition
// passes its guard for a single request.
type ErrAmbiguousTriggerResolver struct {
	Destination any
}

// NewErrAmbiguousTriggerResolver creates a new ErrAmbiguousTriggerResolver error.
func NewErrAmbiguousTriggerResolver(destination any) *ErrAmbiguousTriggerResolver {
	return &ErrAmbiguousTriggerResolver{Destination: destination}
}

func (e *ErrAmbiguousTriggerResolver) Error() string {
	return fmt.Sprintf("statemachine: multiple trigger resolvers detected for the transition to %v state", e.Destination)
}

// ErrOptionsTypeMismatch is returned when a transition asks for options of
// one type while the machine default is of another.
type ErrOptionsTypeMismatch struct {
	Custom  string
	Default string
}

// NewErrOptionsTypeMismatch creates a new ErrOptionsTypeMismatch error.
func NewErrOptionsTypeMismatch(custom, def string) *ErrOptionsTypeMismatch {
	return &ErrOptionsTypeMismatch{Custom: custom, Default: def}
}

func (e *ErrOptionsTypeMismatch) Error() string {
	return fmt.Sprintf("statemachine: options of type %s cannot be used, the default options are of type %s", e.Custom, e.Default)
}

// ErrActionFailed wraps a failure of the transition's own action.
// It matches ErrTransitionFailed with errors.Is.
type ErrActionFailed[S, T comparable, E any] struct {
	Transition *Transition[S, T, E]
	Err        error
}

// NewErrActionFailed creates a new ErrActionFailed error.
func NewErrActionFailed[S, T comparable, E any](t *Transition[S, T, E], err error) *ErrActionFailed[S, T, E] {
	return &ErrActionFailed[S, T, E]{Transition: t, Err: err}
}

func (e *ErrActionFailed[S, T, E]) Error() string {
	return fmt.Sprintf("statemachine: an error occurred while transitioning from %v to %v: %v",
		e.Transition.Source, e.Transition.Destination, e.Err)
}

func (e *ErrActionFailed[S, T, E]) Unwrap() error { return e.Err }

func (e *ErrActionFailed[S, T, E]) Is(target error) bool {
	return target == ErrTransitionFailed
}

// IsStateNotConfiguredError checks if the error is an ErrStateNotConfigured.
func IsStateNotConfiguredError(err error) bool {
	var target *ErrStateNotConfigured
	return errors.As(err, &target)
}

// IsAmbiguousStateConfigurationError checks if the error is an ErrAmbiguousStateConfiguration.
func IsAmbiguousStateConfigurationError(err error) bool {
	var target *ErrAmbiguousStateConfiguration
	return errors.As(err, &target)
}

// IsTriggerResolverNotFoundError checks if the error is an ErrTriggerResolverNotFound.
func IsTriggerResolverNotFoundError(err error) bool {
	var target *ErrTriggerResolverNotFound
	return errors.As(err, &target)
}

// IsAmbiguousTriggerResolverError checks if the error is an ErrAmbiguousTriggerResolver.
func IsAmbiguousTriggerResolverError(err error) bool {
	var target *ErrAmbiguousTriggerResolver
	return errors.As(err, &target)
}

// IsOptionsTypeMismatchError checks if the error is an ErrOptionsTypeMismatch.
func IsOptionsTypeMismatchError(err error) bool {
	var target *ErrOptionsTypeMismatch
	return errors.As(err, &target)
}

// IsTransitionError reports whether the error came from a failing transition
// action, whatever the machine's type parameters are.
func IsTransitionError(err error) bool {
	return errors.Is(err, ErrTransitionFailed)
}
