// Package imageload fetches images ahead of use and reports their header data.
//
// A Loader routes each URL by scheme to a Source (HTTP, or object storage for
// s3:// URLs), reads the whole body so downstream caches are warm, and decodes
// the image header to report format and dimensions. Transient failures are
// retried with exponential backoff.
package imageload
