package frappe

import "errors"

var (
	// ErrConnectivity covers transport and authentication failures against
	// the Frappe API.
	ErrConnectivity = errors.New("frappe unreachable")

	// ErrNotFound means the requested DocType does not exist.
	ErrNotFound = errors.New("doctype not found")

	// ErrQuery means the data service rejected a query; the wrapped detail
	// carries the upstream message.
	ErrQuery = errors.New("frappe query failed")
)
