package fcm

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Duration is serialized as seconds with a fractional suffix: "3.5s"
type Duration time.Duration

func (d Duration) String() string {
	return formatDuration(time.Duration(d))
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(formatDuration(time.Duration(d)))
}

func (d *Duration) UnmarshalJSON(data []byte) error {

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.Wrap(err, "duration")
	}

	val, err := parseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(val)
	return nil
}

func durationPtr(d time.Duration) *Duration {
	val := Duration(d)
	return &val
}

// Timestamp is serialized as RFC3339 with nanoseconds in UTC
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {

	var val time.Time
	if err := json.Unmarshal(data, &val); err != nil {
		return errors.Wrap(err, "timestamp")
	}

	*t = Timestamp(val)
	return nil
}

// LightColor is a "#RRGGBB" or "#RRGGBBAA" string. On the wire the gateway
// expects a Color message:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#Color
type LightColor string

type wireColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

func (c LightColor) MarshalJSON() ([]byte, error) {

	if !colorPattern.MatchString(string(c)) {
		return nil, newValidationError("color", "color must be in the form #RRGGBB or #RRGGBBAA")
	}

	hex := string(c)[1:]
	if len(hex) == 6 {
		hex += "ff"
	}

	var channels [4]float64
	for i := range channels {
		val, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, errors.Wrap(err, "light color")
		}
		channels[i] = float64(val) / 255
	}

	return json.Marshal(&wireColor{
		Red:   channels[0],
		Green: channels[1],
		Blue:  channels[2],
		Alpha: channels[3],
	})
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	retval := make([]string, len(src))
	copy(retval, src)
	return retval
}

func copyStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	retval := make(map[string]string, len(src))
	for k, v := range src {
		retval[k] = v
	}
	return retval
}

func toValues(src map[string]string) map[string]interface{} {
	if src == nil {
		return nil
	}
	retval := make(map[string]interface{}, len(src))
	for k, v := range src {
		retval[k] = v
	}
	return retval
}

// copyDocument deep-copies a JSON-like document
func copyDocument(src map[string]interface{}) map[string]interface{} {
	if src == nil {
		return nil
	}
	retval := make(map[string]interface{}, len(src))
	for k, v := range src {
		retval[k] = copyValue(v)
	}
	return retval
}

func copyValue(src interface{}) interface{} {
	switch val := src.(type) {
	case map[string]interface{}:
		return copyDocument(val)
	case []interface{}:
		retval := make([]interface{}, len(val))
		for i := range val {
			retval[i] = copyValue(val[i])
		}
		return retval
	case []string:
		return copyStrings(val)
	case map[string]string:
		return copyStringMap(val)
	default:
		return val
	}
}
