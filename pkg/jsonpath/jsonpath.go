// Package jsonpath extracts single values from JSON documents using a small
// JSONPath subset ($.a.b, $.a[0].b, $['a']) translated to gjson paths.
package jsonpath

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract returns the value at path in data. Strings are returned unquoted,
// everything else as raw JSON; null becomes "null".
func Extract(data []byte, path string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty JSON document")
	}
	if path == "" {
		return "", errors.New("empty JSONPath expression")
	}
	if !gjson.ValidBytes(data) {
		return "", errors.New("invalid JSON document")
	}

	result := gjson.GetBytes(data, ToGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}

	switch result.Type {
	case gjson.Null:
		return "null", nil
	case gjson.String:
		return result.String(), nil
	default:
		return result.Raw, nil
	}
}

// ExtractMultiple extracts every named path. Values found are returned even
// when others fail; the error lists the failures in name order.
func ExtractMultiple(data []byte, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, errors.New("no JSONPath expressions provided")
	}

	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(paths))
	var failures []string
	for _, name := range names {
		value, err := Extract(data, paths[name])
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	if len(failures) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failures, "; "))
	}
	return results, nil
}

// ToGjsonPath converts a JSONPath expression to gjson syntax:
// "$.expand[0].long_url" becomes "expand.0.long_url", "$" becomes "@this".
// Paths without a leading "$" are assumed to be gjson already.
func ToGjsonPath(path string) string {
	if !strings.HasPrefix(path, "$") {
		return path
	}

	path = strings.TrimPrefix(strings.TrimPrefix(path, "$"), ".")
	if path == "" {
		return "@this"
	}

	replacer := strings.NewReplacer("['", ".", "']", "", `["`, ".", `"]`, "", "[", ".", "]", "")
	return strings.TrimPrefix(replacer.Replace(path), ".")
}
