package phone

import "errors"

// ErrInvalidNumber is returned when a number cannot be parsed or is not valid for its region.
var ErrInvalidNumber = errors.New("invalid phone number")
