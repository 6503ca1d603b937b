// Package attachments stores the files behind file-type custom fields.
// The field's data row keeps only the storage key; the bytes live in an
// S3-compatible object store (or in memory for tests).
package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contentkit/customfields/pkg/field"
)

var (
	// ErrInvalidConfig is returned when required S3 settings are missing.
	ErrInvalidConfig = errors.New("attachments: invalid configuration")

	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("attachments: file not found")

	// ErrAccessDenied is returned when the object store rejects the
	// operation.
	ErrAccessDenied = errors.New("attachments: access denied")

	// ErrUploadFailed is returned when an upload cannot complete.
	ErrUploadFailed = errors.New("attachments: upload failed")

	// ErrDeleteFailed is returned when a delete cannot complete.
	ErrDeleteFailed = errors.New("attachments: delete failed")

	// ErrPresignFailed is returned when a download URL cannot be signed.
	ErrPresignFailed = errors.New("attachments: presign failed")
)

// DefaultURLExpiry bounds signed download URLs.
const DefaultURLExpiry = 15 * time.Minute

// Info describes one stored attachment.
type Info struct {
	Key         string
	ContentType string
	Size        int64
}

// Store persists attachment bytes by key.
type Store interface {
	// Put uploads an attachment under the given key.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Info, error)

	// Get retrieves an attachment. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an attachment. Deleting a missing key is not an
	// error; delete runs when data rows are removed and must be
	// idempotent.
	Delete(ctx context.Context, key string) error

	// URL returns a time-limited download URL for the attachment.
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Key builds the storage key for a field's attachment on one record:
// {component}/{area}/{itemid}/{shortname}/{recordID}/{uuid}_{filename}.
// The random element lets a re-upload coexist with a stale row briefly
// instead of overwriting it.
func Key(scope field.Scope, shortName string, recordID int64, filename string) string {
	return strings.Join([]string{
		scope.Component,
		scope.Area,
		fmt.Sprint(scope.ItemID),
		shortName,
		fmt.Sprint(recordID),
		uuid.NewString() + "_" + sanitizeFilename(filename),
	}, "/")
}

// RecordPrefix returns the key prefix covering every attachment of one
// field on one record, for cleanup listings.
func RecordPrefix(scope field.Scope, shortName string, recordID int64) string {
	return strings.Join([]string{
		scope.Component,
		scope.Area,
		fmt.Sprint(scope.ItemID),
		shortName,
		fmt.Sprint(recordID),
	}, "/") + "/"
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename strips path separators and unsafe characters so user
// supplied names cannot traverse the key space.
func sanitizeFilename(name string) string {
	name = strings.Trim(name, " /\\")
	name = strings.ReplaceAll(name, "..", "")
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" {
		name = "file"
	}
	return url.PathEscape(name)
}
