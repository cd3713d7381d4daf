// Package validator validates settings structs and reports failures keyed by
// their configuration key, so "image.max_retries" points at the offending
// config entry.
package validator
