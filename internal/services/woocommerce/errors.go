package woocommerce

import "fmt"

// FetchError is a failed page request: a transport failure, a timeout, or a non-2xx status.
// Status is zero when no response was received.
type FetchError struct {
	Page    int
	Status  int
	Message string
	Timeout bool
	Err     error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch page %d: status %d: %s", e.Page, e.Status, e.Message)
	}
	return fmt.Sprintf("fetch page %d: %s", e.Page, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NormalizationError describes one record that could not become a product.
type NormalizationError struct {
	Index int
	Err   error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize record %d: %v", e.Index, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}
