package tracking

import "errors"

// ErrNoAuthor is returned when tracking is enabled or re-attributed without
// an author name.
var ErrNoAuthor = errors.New("tracking: author must not be empty")
