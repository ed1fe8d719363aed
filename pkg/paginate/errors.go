package paginate

import "errors"

var errFetchPanicked = errors.New("fetch panicked")

// errorMessage mirrors what the list views display: the error's message, or
// "Error" when it has none
func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Error"
}
