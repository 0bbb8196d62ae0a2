package helpers

import (
	"net/url"
	"strings"
)

// SetRawQuery returns rawQuery with key set to value.
func SetRawQuery(rawQuery, key, value string) string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	values.Set(key, value)
	return values.Encode()
}

// DelRawQuery returns rawQuery without key.
func DelRawQuery(rawQuery, key string) string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ""
	}
	values.Del(key)
	return values.Encode()
}

// BuildURL replaces any query on path with rawQuery. An empty rawQuery yields the bare path.
func BuildURL(path, rawQuery string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// Route joins the admin base path with suffix.
func Route(basePath, suffix string) string {
	base := normalizeRoute(basePath)
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	if base == "/" {
		return suffix
	}
	return base + suffix
}
