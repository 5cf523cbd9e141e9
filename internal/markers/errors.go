package markers

import "errors"

// ErrTooFewGroups is returned when fewer marker clusters than expected are found.
var ErrTooFewGroups = errors.New("too few marker groups")
