package uri

import (
	"fmt"
	"net/url"
	"regexp"
)

// S3Locator identifies an object in S3. Region is empty unless the URL names one.
type S3Locator struct {
	Bucket string
	Key    string
	Region string
}

// IsZero reports whether the locator failed to resolve a bucket and key
func (l S3Locator) IsZero() bool {
	return l.Bucket == "" || l.Key == ""
}

type s3Shape struct {
	re                          *regexp.Regexp
	bucketIdx, keyIdx, regionIdx int
}

// Shapes are tried in order and a later match replaces an earlier one
var s3Shapes = []s3Shape{
	// https://s3.amazonaws.com/bucket/key
	{re: regexp.MustCompile(`^https?://s3\.amazonaws\.com/([^/]+)/?(.*?)$`), bucketIdx: 1, keyIdx: 2},
	// https://s3-region.amazonaws.com/bucket/key
	{re: regexp.MustCompile(`^https?://s3-([^.]+)\.amazonaws\.com/([^/]+)/?(.*?)$`), bucketIdx: 2, keyIdx: 3, regionIdx: 1},
	// https://bucket.s3.amazonaws.com/key
	{re: regexp.MustCompile(`^https?://([^.]+)\.s3\.amazonaws\.com/?(.*?)$`), bucketIdx: 1, keyIdx: 2},
	// https://bucket.s3-region.amazonaws.com/key or https://bucket.s3.region.amazonaws.com/key
	{re: regexp.MustCompile(`^https?://([^.]+)\.(?:s3-|s3\.)([^.]+)\.amazonaws\.com/?(.*?)$`), bucketIdx: 1, keyIdx: 3, regionIdx: 2},
}

// ParseS3URL extracts bucket, key and region from an S3 object URL. The URL is
// percent-decoded first and a malformed escape is an error. URLs matching no
// known shape yield a zero locator.
func ParseS3URL(raw string) (S3Locator, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return S3Locator{}, fmt.Errorf("failed to decode url %q: %w", raw, err)
	}

	var loc S3Locator
	for _, shape := range s3Shapes {
		m := shape.re.FindStringSubmatch(decoded)
		if m == nil {
			continue
		}
		loc = S3Locator{
			Bucket: m[shape.bucketIdx],
			Key:    m[shape.keyIdx],
		}
		if shape.regionIdx > 0 {
			loc.Region = m[shape.regionIdx]
		}
	}
	return loc, nil
}
