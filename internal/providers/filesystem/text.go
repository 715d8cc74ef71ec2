package filesystem

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

// ErrNotText is returned when file content is not valid UTF-8
var ErrNotText = errors.New("content is not valid UTF-8 text")

// decodeText returns data as a string when it is valid UTF-8
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	return "", fmt.Errorf("%w (%s)", ErrNotText, describeEncoding(data))
}

// describeEncoding names what the undecodable content most likely is
func describeEncoding(data []byte) string {
	mtype := mimetype.Detect(data)
	if !isTextMIME(mtype.String()) {
		return "binary " + mtype.String()
	}

	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil || result.Charset == "" {
		return mtype.String()
	}
	return "detected charset " + result.Charset
}

func isTextMIME(mime string) bool {
	return strings.HasPrefix(mime, "text/") ||
		strings.HasPrefix(mime, "application/json") ||
		strings.HasPrefix(mime, "application/xml") ||
		strings.HasPrefix(mime, "application/javascript")
}
