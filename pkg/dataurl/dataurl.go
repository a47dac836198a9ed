// Package dataurl encodes and decodes RFC 2397 data URLs.
//
// The CLI uses it to turn image bytes piped on stdin into a self-contained
// image reference; the image size prober uses it to read such references back.
package dataurl

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/matzehuels/footlights/pkg/errors"
)

const scheme = "data:"

// IsDataURL reports whether s uses the data: scheme.
func IsDataURL(s string) bool {
	return len(s) >= len(scheme) && strings.EqualFold(s[:len(scheme)], scheme)
}

// Abbrev shortens a data URL for logs and error messages. Other strings are
// returned unchanged.
func Abbrev(s string) string {
	if !IsDataURL(s) {
		return s
	}
	header, payload, ok := strings.Cut(s, ",")
	if !ok {
		return s
	}
	return fmt.Sprintf("%s,...(%d bytes)", header, len(payload))
}

// Encode returns a base64 data URL for data. The media type is sniffed from
// the content.
func Encode(data []byte) string {
	return EncodeType(http.DetectContentType(data), data)
}

// EncodeType returns a base64 data URL with an explicit media type.
func EncodeType(mediaType string, data []byte) string {
	return scheme + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode returns the payload and media type of a data URL. Both base64 and
// percent-encoded payloads are accepted; unpadded base64 is tolerated.
func Decode(s string) (data []byte, mediaType string, err error) {
	if !IsDataURL(s) {
		return nil, "", errors.New(errors.ErrCodeInvalidFormat, "not a data URL")
	}
	header, payload, ok := strings.Cut(s[len(scheme):], ",")
	if !ok {
		return nil, "", errors.New(errors.ErrCodeInvalidFormat, "data URL has no payload separator")
	}

	mediaType = header
	isBase64 := false
	if mt, found := strings.CutSuffix(header, ";base64"); found {
		mediaType, isBase64 = mt, true
	}
	if mediaType == "" {
		mediaType = "text/plain;charset=US-ASCII"
	}

	if !isBase64 {
		text, err := url.PathUnescape(payload)
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode data URL payload")
		}
		return []byte(text), mediaType, nil
	}

	payload = strings.TrimRight(payload, "=")
	data, err = base64.RawStdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode data URL payload")
	}
	return data, mediaType, nil
}
