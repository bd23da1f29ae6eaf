package fcm

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)
	topicPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_.~%]+$`)

	reservedDataKeys     = []string{"from", "notification", "message_type"}
	reservedDataPrefixes = []string{"google.", "gcm."}
)

// ValidationError is returned by Finalize and Message.Validate before any
// request is made.
type ValidationError struct {
	// dotted path of the rejected field, e.g. "android.notification.color"
	Field  string
	Reason string
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid message: " + e.Reason
	}
	return "invalid message: " + e.Field + ": " + e.Reason
}

func (e *ValidationError) under(parent string) *ValidationError {
	if e.Field == "" {
		return &ValidationError{Field: parent, Reason: e.Reason}
	}
	return &ValidationError{Field: parent + "." + e.Field, Reason: e.Reason}
}

// prefixErr roots a nested validation error at the parent field.
func prefixErr(parent string, err error) error {
	if err == nil {
		return nil
	}
	if verr, ok := err.(*ValidationError); ok {
		return verr.under(parent)
	}
	return err
}

func validateColor(field, color string) error {
	if !colorPattern.MatchString(color) {
		return newValidationError(field, "color must be in the form #RRGGBB or #RRGGBBAA")
	}
	return nil
}

// validateURL accepts an empty value or an absolute http(s) URL
func validateURL(field, src string) error {
	if src == "" {
		return nil
	}
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return newValidationError(field, "must be an absolute http(s) URL")
	}
	return nil
}

// validateHTTPSURL is validateURL restricted to https
func validateHTTPSURL(field, src string) error {
	if src == "" {
		return nil
	}
	if u, err := url.Parse(src); err != nil || u.Scheme != "https" || u.Host == "" {
		return newValidationError(field, "must be an absolute https URL")
	}
	return nil
}

func validateDuration(field string, d time.Duration) error {
	if d < 0 {
		return newValidationError(field, "duration must not be negative")
	}
	return nil
}

// stringValues converts a loosely typed data map into the string-only map
// the gateway requires. Values of any other type are rejected, never coerced.
func stringValues(field string, src map[string]interface{}) (map[string]string, error) {

	if src == nil {
		return nil, nil
	}

	retval := make(map[string]string, len(src))
	for _, key := range sortedKeys(src) {
		str, ok := src[key].(string)
		if !ok {
			return nil, newValidationError(field+"."+key, "data values must be strings, got "+typeName(src[key]))
		}
		retval[key] = str
	}

	return retval, nil
}

func validateDataKeys(field string, data map[string]string) error {

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == "" {
			return newValidationError(field, "data keys must not be empty")
		}

		for _, reserved := range reservedDataKeys {
			if key == reserved {
				return newValidationError(field+"."+key, "reserved data key")
			}
		}

		for _, prefix := range reservedDataPrefixes {
			if strings.HasPrefix(key, prefix) {
				return newValidationError(field+"."+key, "data keys must not start with "+strconv.Quote(prefix))
			}
		}
	}

	return nil
}

// formatDuration renders d in the protobuf JSON duration form: seconds with
// an optional fractional part and an "s" suffix ("3s", "3.5s").
func formatDuration(d time.Duration) string {

	seconds := int64(d / time.Second)
	nanos := int64(d % time.Second)

	if nanos == 0 {
		return strconv.FormatInt(seconds, 10) + "s"
	}

	frac := strconv.FormatInt(nanos, 10)
	frac = strings.Repeat("0", 9-len(frac)) + frac
	frac = strings.TrimRight(frac, "0")

	return strconv.FormatInt(seconds, 10) + "." + frac + "s"
}

// parseDuration is the reverse of formatDuration
func parseDuration(src string) (time.Duration, error) {

	if !strings.HasSuffix(src, "s") {
		return 0, newValidationError("", "duration must end with \"s\": "+strconv.Quote(src))
	}

	val := strings.TrimSuffix(src, "s")

	negative := strings.HasPrefix(val, "-")
	if negative {
		val = val[1:]
	}

	secPart, fracPart := val, ""
	if pos := strings.IndexByte(val, '.'); pos >= 0 {
		secPart, fracPart = val[:pos], val[pos+1:]
	}

	seconds, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil || seconds < 0 || len(fracPart) > 9 {
		return 0, newValidationError("", "invalid duration: "+strconv.Quote(src))
	}

	var nanos int64
	if fracPart != "" {
		nanos, err = strconv.ParseInt(fracPart+strings.Repeat("0", 9-len(fracPart)), 10, 64)
		if err != nil {
			return 0, newValidationError("", "invalid duration: "+strconv.Quote(src))
		}
	}

	retval := time.Duration(seconds)*time.Second + time.Duration(nanos)
	if negative {
		retval = -retval
	}

	return retval, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
