package bitly

import (
	"net/url"
	"slices"
	"strings"
)

const (
	keyShortURL = "shortUrl"
	keyHash     = "hash"

	// schemeDelimiter separates a URL scheme from its host.
	schemeDelimiter = "://"
)

// IsHash reports whether item is a bitlink hash rather than a short URL.
// Anything without a scheme delimiter ("://") is a hash: "abc123" is a hash,
// "http://bit.ly/abc123" is not.
func IsHash(item string) bool {
	return !strings.Contains(item, schemeDelimiter)
}

// NormalizeItems splits items into short URLs and hashes, then sorts and
// de-duplicates each group. A group with one distinct item goes under the
// singular key ("shortUrl" or "hash"), a larger group under the plural key
// ("shortUrl[]" or "hash[]"). Empty groups are omitted.
//
// The count is taken per group after de-duplication: ("abc", "abc") sends
// hash=abc, and ("abc", "http://bit.ly/x") sends a singular hash and a
// singular shortUrl.
func NormalizeItems(items ...string) url.Values {
	var shortURLs, hashes []string
	for _, item := range items {
		if IsHash(item) {
			hashes = append(hashes, item)
		} else {
			shortURLs = append(shortURLs, item)
		}
	}

	params := make(url.Values)
	addItems(params, keyShortURL, shortURLs)
	addItems(params, keyHash, hashes)
	return params
}

func addItems(params url.Values, key string, items []string) {
	slices.Sort(items)
	items = slices.Compact(items)

	switch len(items) {
	case 0:
	case 1:
		params[key] = items
	default:
		params[key+"[]"] = items
	}
}
