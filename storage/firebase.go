package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// objectWriter is the part of a bucket the uploader writes through.
type objectWriter interface {
	NewWriter(ctx context.Context, object string, contentType string, metadata map[string]string) io.WriteCloser
}

type gcsBucket struct {
	handle *gcs.BucketHandle
}

func (b gcsBucket) NewWriter(ctx context.Context, object, contentType string, metadata map[string]string) io.WriteCloser {
	w := b.handle.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = metadata
	return w
}

// Firebase uploads to a Firebase Storage bucket through the Cloud Storage API.
type Firebase struct {
	bucket string
	writer objectWriter
	closer io.Closer
	now    func() time.Time
	token  func() string
}

// NewFirebase connects to bucket. credentialsFile may be empty to use
// application default credentials.
func NewFirebase(ctx context.Context, bucket, credentialsFile string) (*Firebase, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	f := newFirebase(bucket, gcsBucket{handle: client.Bucket(bucket)})
	f.closer = client
	return f, nil
}

func newFirebase(bucket string, w objectWriter) *Firebase {
	return &Firebase{
		bucket: bucket,
		writer: w,
		now:    time.Now,
		token:  func() string { return uuid.NewString() },
	}
}

// Upload stores r as <unix-millis>-<name> and returns its download URL.
func (f *Firebase) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	object := ObjectName(f.now(), name)
	token := f.token()

	buf, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	w := f.writer.NewWriter(ctx, object, mimetype.Detect(buf).String(), map[string]string{
		// Firebase serves objects carrying this token publicly
		"firebaseStorageDownloadTokens": token,
	})
	if _, err := w.Write(buf); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	return DownloadURL(f.bucket, object, token), nil
}

// Close releases the underlying client.
func (f *Firebase) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}
