// Package storage provides the object storage client used to publish and fetch
// pack manifests.
//
// It wraps the MinIO Go client behind the Client interface so the manifest store
// can be tested with the mock in core/storage/mocks. Both AWS S3 and self-hosted
// MinIO are supported.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
