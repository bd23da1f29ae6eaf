package api2fcm

import (
	"encoding/json"
	"testing"

	"github.com/dialogs/dialog-push-fcm/pkg/api"
	"github.com/dialogs/dialog-push-fcm/pkg/converter"
	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const fullBody = `{
	"data": {"seq": "1"},
	"notification": {"title": "t", "body": "b"},
	"android": {
		"collapse_key": "ck",
		"ttl": "1m30s",
		"notification": {
			"channel_id": "c",
			"notification_priority": "PRIORITY_HIGH",
			"visibility": "PRIVATE",
			"vibrate_timings": ["100ms", "1s"],
			"event_time": "2024-01-02T03:04:05+01:00",
			"light_settings": {"color": "#00ff00", "light_on_duration": "1s", "light_off_duration": "2s"}
		}
	},
	"apns": {
		"headers": {"apns-priority": "10"},
		"payload": {"aps": {"alert": {"title": "t"}}}
	},
	"webpush": {
		"headers": {"Urgency": "high"},
		"link": "https://example.com"
	},
	"analytics_label": "l"
}`

func TestConvert(t *testing.T) {

	r := newConverter(t, true, "HIGH")

	msg, err := r.Convert(decodeBody(t, fullBody), fcm.Token("tok"))
	require.NoError(t, err)

	out, err := json.Marshal(msg)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"token": "tok",
		"data": {"seq": "1"},
		"notification": {"title": "t", "body": "b"},
		"android": {
			"collapse_key": "ck",
			"priority": "HIGH",
			"ttl": "90s",
			"notification": {
				"channel_id": "c",
				"event_time": "2024-01-02T02:04:05Z",
				"notification_priority": "PRIORITY_HIGH",
				"vibrate_timings": ["0.1s", "1s"],
				"visibility": "PRIVATE",
				"light_settings": {
					"color": {"red": 0, "green": 1, "blue": 0, "alpha": 1},
					"light_on_duration": "1s",
					"light_off_duration": "2s"
				}
			}
		},
		"webpush": {
			"headers": {"Urgency": "high"},
			"fcm_options": {"link": "https://example.com"}
		},
		"apns": {
			"headers": {"apns-priority": "10"},
			"payload": {"aps": {"alert": {"title": "t"}}}
		},
		"fcm_options": {"analytics_label": "l"}
	}`, string(out))
}

func TestConvertDefaultPriority(t *testing.T) {

	r := newConverter(t, false, "HIGH")

	msg, err := r.Convert(decodeBody(t, `{"data":{"k":"v"}}`), fcm.Topic("news"))
	require.NoError(t, err)

	out, err := json.Marshal(msg)
	require.NoError(t, err)
	require.Equal(t, `{"topic":"news","data":{"k":"v"},"android":{"priority":"HIGH"}}`, string(out))

	msg, err = r.Convert(decodeBody(t, `{"data":{"k":"v"},"android":{"priority":"NORMAL"}}`), fcm.Topic("news"))
	require.NoError(t, err)
	require.Equal(t, fcm.AndroidMessagePriorityNormal, msg.Android.Priority)

	r = newConverter(t, false, "")

	msg, err = r.Convert(decodeBody(t, `{"data":{"k":"v"}}`), fcm.Topic("news"))
	require.NoError(t, err)
	require.Nil(t, msg.Android)
}

func TestConvertAlertsNotAllowed(t *testing.T) {

	r := newConverter(t, false, "")

	for _, body := range []string{
		`{"notification":{"title":"t"}}`,
		`{"android":{"notification":{"title":"t"}}}`,
		`{"webpush":{"notification":{"title":"t"}}}`,
		`{"apns":{"payload":{"aps":{"alert":"t"}}}}`,
	} {
		_, err := r.Convert(decodeBody(t, body), fcm.Token("tok"))
		require.Equal(t, converter.ErrNotSupportedAlertPush, err, body)
	}

	_, err := r.Convert(decodeBody(t, `{"apns":{"payload":{"aps":{"content-available":1}}}}`), fcm.Token("tok"))
	require.NoError(t, err)
}

func TestConvertInvalid(t *testing.T) {

	r := newConverter(t, true, "")

	for _, testInfo := range []struct {
		Body  string
		Field string
	}{
		{Body: `{"data":{"count":1}}`, Field: "data.count"},
		{Body: `{"data":{"k":"v"},"android":{"priority":"URGENT"}}`, Field: "android.priority"},
		{Body: `{"data":{"k":"v"},"android":{"ttl":"forever"}}`, Field: "android.ttl"},
		{Body: `{"data":{"k":"v"},"android":{"ttl":"-1s"}}`, Field: "android.ttl"},
		{Body: `{"android":{"notification":{"visibility":"HIDDEN"}}}`, Field: "android.notification.visibility"},
		{Body: `{"android":{"notification":{"event_time":"yesterday"}}}`, Field: "android.notification.event_time"},
		{Body: `{"android":{"notification":{"vibrate_timings":["1s","x"]}}}`, Field: "android.notification.vibrate_timings"},
		{
			Body:  `{"android":{"notification":{"light_settings":{"color":"#ffffff","light_on_duration":"1s"}}}}`,
			Field: "android.notification.light_settings.light_off_duration",
		},
		{Body: `{"notification":{"image":"image.png"}}`, Field: "notification.image"},
		{Body: `{"webpush":{"data":{"k":"v"},"link":"http://example.com"}}`, Field: "webpush.fcm_options.link"},
		{Body: `{"apns":{"headers":{"apns-priority":"3"},"payload":{"aps":{}}}}`, Field: "apns.headers.apns-priority"},
	} {
		_, err := r.Convert(decodeBody(t, testInfo.Body), fcm.Token("tok"))
		require.Error(t, err, testInfo.Body)

		verr, ok := err.(*fcm.ValidationError)
		require.True(t, ok, "%s: %v", testInfo.Body, err)
		require.Equal(t, testInfo.Field, verr.Field, testInfo.Body)
	}

	_, err := r.Convert(nil, fcm.Token("tok"))
	require.Equal(t, converter.ErrEmptyBody, err)

	_, err = r.Convert(decodeBody(t, `{}`), fcm.Token("tok"))
	require.Equal(t, fcm.ErrEmptyMessage, err)
}

func TestNewRequestConverter(t *testing.T) {

	src := viper.New()
	src.Set("allow-alerts", true)
	src.Set("android-priority", "NORMAL")

	cfg, err := NewConfig(src)
	require.NoError(t, err)
	require.Equal(t, &Config{AllowAlerts: true, AndroidPriority: "NORMAL"}, cfg)

	_, err = NewRequestConverter(&Config{AndroidPriority: "LOUD"})
	require.Error(t, err)
}

func newConverter(t *testing.T, allowAlerts bool, androidPriority string) *Request {
	t.Helper()

	r, err := NewRequestConverter(&Config{
		AllowAlerts:     allowAlerts,
		AndroidPriority: androidPriority,
	})
	require.NoError(t, err)

	return r
}

func decodeBody(t *testing.T, src string) *api.PushBody {
	t.Helper()

	body := &api.PushBody{}
	require.NoError(t, json.Unmarshal([]byte(src), body))

	return body
}
