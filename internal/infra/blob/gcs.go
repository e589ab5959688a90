// Package blob wraps the storage backend used for raw uploads.
package blob

import (
	"context"
	"net/http"
	"sync"
	"time"

	"cloud.google.com/go/storage"
)

var (
	clientOnce sync.Once
	client     *storage.Client
	clientErr  error
)

func gcsClient() (*storage.Client, error) {
	clientOnce.Do(func() {
		client, clientErr = storage.NewClient(context.Background())
	})
	return client, clientErr
}

// SignedUploadURL returns a V4-signed PUT URL for the object, valid
// for one hour and bound to the given content type.
func SignedUploadURL(bucket, object, contentType string) (string, error) {
	c, err := gcsClient()
	if err != nil {
		return "", err
	}
	return c.Bucket(bucket).SignedURL(object, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		Expires:     time.Now().Add(time.Hour),
		ContentType: contentType,
	})
}
