// Package content implements content-reference resolution, metrics
// normalization, and MDX rendering for the public site and the admin CMS.
package content

import (
	"net/url"
	"strings"
)

// Resolver normalizes a stored body path into a canonical content key.
//
// A body path may be a bare key ("articles/foo.mdx"), a storage-relative
// path ("content/articles/foo.mdx"), or a full public storage URL. All three
// forms resolve to the same key so documents can be looked up regardless of
// how the reference was written.
type Resolver struct {
	// marker is the storage-public path fragment that precedes object keys,
	// e.g. "storage/v1/object/public/content/". Always ends with "/".
	marker string
	// bucketPrefix is the bare bucket literal ("content/"), stripped from
	// relative references that include it.
	bucketPrefix string
}

// NewResolver builds a resolver for the given public base URL and content
// bucket. publicBaseURL may be empty, in which case only the bucket literal
// is recognized.
func NewResolver(publicBaseURL, contentBucket string) *Resolver {
	bucketPrefix := strings.Trim(contentBucketOrDefault(contentBucket), "/") + "/"

	marker := bucketPrefix
	if publicBaseURL != "" {
		if u, err := url.Parse(publicBaseURL); err == nil {
			basePath := strings.Trim(u.Path, "/")
			if basePath != "" {
				marker = basePath + "/" + bucketPrefix
			}
		}
	}

	return &Resolver{
		marker:       marker,
		bucketPrefix: bucketPrefix,
	}
}

func contentBucketOrDefault(bucket string) string {
	if bucket == "" {
		return "content"
	}
	return bucket
}

// ResolveKey produces the canonical lookup key for a raw body path.
// Empty input yields an empty key. Malformed percent-encoding degrades to
// the undecoded remainder so a bad reference reads as "not found" instead
// of failing the page.
func (r *Resolver) ResolveKey(raw string) string {
	if raw == "" {
		return ""
	}

	if u, err := url.Parse(raw); err == nil && u.IsAbs() {
		path := strings.TrimLeft(u.Path, "/")
		if idx := strings.Index(path, r.marker); idx >= 0 {
			return decodeOrRaw(path[idx+len(r.marker):])
		}
		return decodeOrRaw(path)
	}

	path := strings.TrimLeft(raw, "/")
	path = strings.TrimPrefix(path, r.marker)
	path = strings.TrimPrefix(path, r.bucketPrefix)
	return decodeOrRaw(path)
}

// decodeOrRaw percent-decodes a path, falling back to the raw input when
// the encoding is malformed.
func decodeOrRaw(path string) string {
	decoded, err := url.PathUnescape(path)
	if err != nil {
		return path
	}
	return decoded
}
