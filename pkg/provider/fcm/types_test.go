package fcm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDurationFormat(t *testing.T) {

	for _, testInfo := range []struct {
		Src time.Duration
		Out string
	}{
		{Src: 0, Out: "0s"},
		{Src: 3 * time.Second, Out: "3s"},
		{Src: 3500 * time.Millisecond, Out: "3.5s"},
		{Src: 1500 * time.Millisecond, Out: "1.5s"},
		{Src: 10 * time.Millisecond, Out: "0.01s"},
		{Src: time.Nanosecond, Out: "0.000000001s"},
		{Src: 28 * 24 * time.Hour, Out: "2419200s"},
		{Src: time.Second + 123456789, Out: "1.123456789s"},
	} {
		require.Equal(t, testInfo.Out, formatDuration(testInfo.Src))

		out, err := json.Marshal(Duration(testInfo.Src))
		require.NoError(t, err)
		require.Equal(t, `"`+testInfo.Out+`"`, string(out))

		var back Duration
		require.NoError(t, json.Unmarshal(out, &back))
		require.Equal(t, testInfo.Src, time.Duration(back))
	}
}

func TestDurationParseNegative(t *testing.T) {

	for _, testInfo := range []struct {
		Src string
		Out time.Duration
	}{
		{Src: "-1.5s", Out: -1500 * time.Millisecond},
		{Src: "-0.5s", Out: -500 * time.Millisecond},
		{Src: "-3s", Out: -3 * time.Second},
		{Src: "-0.000000001s", Out: -time.Nanosecond},
	} {
		var val Duration
		require.NoError(t, json.Unmarshal([]byte(`"`+testInfo.Src+`"`), &val), testInfo.Src)
		require.Equal(t, testInfo.Out, time.Duration(val), testInfo.Src)
	}
}

func TestDurationParseInvalid(t *testing.T) {

	for _, src := range []string{"", "3", "s", "-s", "--1s", "1.s5", "1.1234567891s", "abcs"} {
		_, err := parseDuration(src)
		require.Error(t, err, src)
	}
}

func TestTimestamp(t *testing.T) {

	src := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("UTC-2", -7200))

	out, err := json.Marshal(Timestamp(src))
	require.NoError(t, err)
	require.Equal(t, `"2024-01-02T05:04:05Z"`, string(out))

	var back Timestamp
	require.NoError(t, json.Unmarshal(out, &back))
	require.True(t, src.Equal(time.Time(back)))
}

func TestLightColorInvalid(t *testing.T) {
	_, err := json.Marshal(LightColor("#abc"))
	require.Error(t, err)
}

func TestCopyDocument(t *testing.T) {

	src := map[string]interface{}{
		"list":   []interface{}{"a", map[string]interface{}{"b": "c"}},
		"nested": map[string]interface{}{"d": "e"},
	}

	dst := copyDocument(src)
	require.Equal(t, src, dst)

	src["nested"].(map[string]interface{})["d"] = "changed"
	src["list"].([]interface{})[1].(map[string]interface{})["b"] = "changed"

	require.Equal(t, "e", dst["nested"].(map[string]interface{})["d"])
	require.Equal(t, "c", dst["list"].([]interface{})[1].(map[string]interface{})["b"])
}
