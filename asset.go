package arenadl

import "context"

// AssetFetcher retrieves the raw bytes of an asset.
type AssetFetcher interface {
	// Fetch returns the full response body for url.
	// An empty body is reported as an error.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// AssetStore persists downloaded assets under their task filename.
type AssetStore interface {
	// Exists reports whether a file with the given name is already stored.
	Exists(name string) (bool, error)

	// Write stores data under name. A partially written file is never
	// visible under name.
	Write(ctx context.Context, name string, data []byte) error
}

// HostLimiter rate limits requests per host.
type HostLimiter interface {
	// Wait blocks until a request to host is allowed or ctx is done.
	Wait(ctx context.Context, host string) error
}
