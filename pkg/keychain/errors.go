package keychain

import "fmt"

// Kind is one of the five failure classes a Keychain reports. Kind values
// are errors themselves so they can be matched with errors.Is.
type Kind int

const (
	EncodingError Kind = iota + 1
	SaveError
	RetrieveError
	DeleteError
	UpdateError
)

func (k Kind) Error() string {
	switch k {
	case EncodingError:
		return "failed to convert value to data"
	case SaveError:
		return "failed to save value"
	case RetrieveError:
		return "failed to retrieve value"
	case DeleteError:
		return "failed to delete value"
	case UpdateError:
		return "failed to update value"
	}
	return fmt.Sprintf("keychain error %d", int(k))
}

func (k Kind) String() string {
	return k.Error()
}

// Error is returned by every failing Keychain operation. Err holds the
// underlying service error, if any.
type Error struct {
	Kind Kind
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s for key %q", e.Kind, e.Key)
	}
	return fmt.Sprintf("%s for key %q: %v", e.Kind, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func newError(kind Kind, key string, err error) *Error {
	return &Error{Kind: kind, Key: key, Err: err}
}
