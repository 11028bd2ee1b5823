package storage

import (
	"context"
	"fmt"
	"jafa-app/config"
)

// FromConfig picks the backend named by STORAGE_DRIVER.
func FromConfig(ctx context.Context) (FileStore, error) {
	switch config.StorageDriver {
	case "", "local":
		return NewLocalStore(config.UploadDir, config.Now), nil
	case "gcs":
		return NewGCSStore(ctx, config.GCSBucket, config.Now)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER: %s", config.StorageDriver)
	}
}
