package blobstore

import "errors"

// Sentinel errors for failures detected before any network call. Remote
// failures are not reclassified: they keep the Azure SDK's own error chain
// (azcore.ResponseError / bloberror codes) so callers can inspect them with
// errors.As and bloberror.HasCode. A missing local file keeps the standard
// fs.ErrNotExist chain.
var (
	// ErrInvalidConfiguration is returned by NewService when a required
	// option is missing or blank.
	ErrInvalidConfiguration = errors.New("blobstore: invalid configuration")

	// ErrInvalidArgument is returned by an operation when a required
	// parameter is missing or blank.
	ErrInvalidArgument = errors.New("blobstore: invalid argument")
)
