package globe

import "errors"

// ErrDuplicateCity is returned when a marker name is registered twice. It is a
// configuration error and aborts startup.
var ErrDuplicateCity = errors.New("duplicate city")
