package errs

import (
	"errors"
	"fmt"
)

// ErrNoPageInfo aborts a whole enumeration run: without the first page there
// is no way to know the page range.
var ErrNoPageInfo = errors.New("registry did not return page info")

// NetworkError covers transport failures and non-2xx responses from the
// registry, for both metadata queries and archive downloads.
type NetworkError struct {
	URL    string
	Status int   // 0 when the request never got a response
	Err    error // nil when Status carries the failure
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s returned status %d", e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BadArchiveError means the downloaded bytes are not a readable zip archive.
type BadArchiveError struct {
	Err error
}

func (e *BadArchiveError) Error() string {
	return fmt.Sprintf("corrupt or unreadable zip archive: %v", e.Err)
}

func (e *BadArchiveError) Unwrap() error { return e.Err }

// CacheError means the plugin cache file is missing or cannot be decoded.
// Callers decide whether that means "no cache" or a hard failure.
type CacheError struct {
	Path string
	Err  error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("plugin cache %s unusable: %v", e.Path, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }
