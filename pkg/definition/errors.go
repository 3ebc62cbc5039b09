package definition

import "errors"

var (
	ErrParsingCancelled  = errors.New("definition: parsing cancelled")
	ErrFailedToParseYAML = errors.New("definition: failed to parse yaml")
	ErrFailedToReadFile  = errors.New("definition: failed to read definition file")
	ErrInvalidDefinition = errors.New("definition: invalid definition")
	ErrDuplicateState    = errors.New("definition: duplicate state")
	ErrUnknownState      = errors.New("definition: unknown state")
	ErrUnknownGuard      = errors.New("definition: unknown guard")
	ErrUnknownAction     = errors.New("definition: unknown action")
	ErrNilMachine        = errors.New("definition: machine cannot be nil")
	ErrFailedToApply     = errors.New("definition: failed to apply definition")
)
