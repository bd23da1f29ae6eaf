package fcm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageTarget(t *testing.T) {

	for _, testInfo := range []struct {
		Target Target
		Key    string
		Value  string
	}{
		{Target: Token("abc"), Key: "token", Value: "abc"},
		{Target: Topic("news"), Key: "topic", Value: "news"},
		{Target: Topic("/topics/news"), Key: "topic", Value: "news"},
		{Target: Condition("'a' in topics && 'b' in topics"), Key: "condition", Value: "'a' in topics && 'b' in topics"},
	} {
		msg, err := NewMessageBuilder(testInfo.Target).
			Data(map[string]string{"k": "v"}).
			Finalize()
		require.NoError(t, err)

		out, err := json.Marshal(msg)
		require.NoError(t, err)

		doc := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(out, &doc))

		found := 0
		for _, key := range []string{"token", "topic", "condition"} {
			if _, ok := doc[key]; ok {
				found++
			}
		}

		require.Equal(t, 1, found, string(out))
		require.Equal(t, testInfo.Value, doc[testInfo.Key], string(out))
	}
}

func TestMessageInvalidTarget(t *testing.T) {

	for _, testInfo := range []struct {
		Target Target
		Field  string
	}{
		{Target: nil, Field: "target"},
		{Target: Token(""), Field: "token"},
		{Target: Topic(""), Field: "topic"},
		{Target: Topic("/topics/"), Field: "topic"},
		{Target: Topic("bad topic"), Field: "topic"},
		{Target: Condition("  "), Field: "condition"},
	} {
		_, err := NewMessageBuilder(testInfo.Target).
			Data(map[string]string{"k": "v"}).
			Finalize()

		verr, ok := err.(*ValidationError)
		require.True(t, ok, "%#v", testInfo.Target)
		require.Equal(t, testInfo.Field, verr.Field)
	}

	_, err := json.Marshal(&Message{Data: map[string]string{"k": "v"}})
	require.Error(t, err)
}

func TestMessageNotificationOnly(t *testing.T) {

	notification, err := NewNotificationBuilder().
		Title("Hey!").
		Body("Do you want to catch up later?").
		Finalize()
	require.NoError(t, err)

	msg, err := NewMessageBuilder(Token("abc")).
		Notification(notification).
		Finalize()
	require.NoError(t, err)

	out, err := json.Marshal(msg)
	require.NoError(t, err)
	require.Equal(t,
		`{"token":"abc","notification":{"title":"Hey!","body":"Do you want to catch up later?"}}`,
		string(out))

	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(out, &doc))
	for _, key := range []string{"android", "apns", "webpush", "data", "fcm_options"} {
		require.NotContains(t, doc, key)
	}
}

func TestMessageDataValues(t *testing.T) {

	msg, err := NewMessageBuilder(Topic("news")).
		DataValues(map[string]interface{}{"a": "1", "b": ""}).
		Finalize()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "1", "b": ""}, msg.Data)

	for _, value := range []interface{}{
		1,
		int64(2),
		3.5,
		true,
		nil,
		json.Number("4"),
		[]interface{}{"x"},
		map[string]interface{}{"x": "y"},
	} {
		_, err := NewMessageBuilder(Token("abc")).
			DataValues(map[string]interface{}{"ok": "yes", "key": value}).
			Finalize()
		require.Error(t, err, "%#v", value)

		verr, ok := err.(*ValidationError)
		require.True(t, ok, "%#v", value)
		require.Equal(t, "data.key", verr.Field)
		require.Equal(t, ErrorKindValidation, KindOf(err))
	}
}

func TestMessageReservedDataKeys(t *testing.T) {

	for _, key := range []string{"from", "notification", "message_type", "google.x", "gcm.notification.x", ""} {
		_, err := NewMessageBuilder(Token("abc")).
			Data(map[string]string{key: "v"}).
			Finalize()
		require.Error(t, err, key)
		require.Equal(t, ErrorKindValidation, KindOf(err))
	}

	_, err := NewMessageBuilder(Token("abc")).
		Data(map[string]string{"from_user": "v", "googler": "v"}).
		Finalize()
	require.NoError(t, err)
}

func TestMessageEmpty(t *testing.T) {

	_, err := NewMessageBuilder(Token("abc")).Finalize()
	require.Equal(t, ErrEmptyMessage, err)

	// an empty notification is still empty
	notification, err := NewNotificationBuilder().Finalize()
	require.NoError(t, err)

	_, err = NewMessageBuilder(Token("abc")).Notification(notification).AnalyticsLabel("x").Finalize()
	require.Equal(t, ErrEmptyMessage, err)

	// overlay content is enough
	android, err := NewAndroidConfigBuilder().Data(map[string]string{"k": "v"}).Finalize()
	require.NoError(t, err)

	_, err = NewMessageBuilder(Token("abc")).Android(android).Finalize()
	require.NoError(t, err)

	webpush, err := NewWebpushConfigBuilder().Notification(map[string]interface{}{"title": "t"}).Finalize()
	require.NoError(t, err)

	_, err = NewMessageBuilder(Token("abc")).Webpush(webpush).Finalize()
	require.NoError(t, err)
}

func TestMessageIdempotentFinalize(t *testing.T) {

	notification, err := NewNotificationBuilder().Title("t").Image("https://example.com/a.png").Finalize()
	require.NoError(t, err)

	android, err := NewAndroidConfigBuilder().
		Priority(AndroidMessagePriorityHigh).
		Data(map[string]string{"b": "2", "a": "1", "c": "3"}).
		Finalize()
	require.NoError(t, err)

	newBuilder := func() *MessageBuilder {
		return NewMessageBuilder(Token("abc")).
			Data(map[string]string{"z": "1", "y": "2", "x": "3"}).
			Notification(notification).
			Android(android).
			AnalyticsLabel("campaign_1")
	}

	builder := newBuilder()

	first, err := builder.Finalize()
	require.NoError(t, err)

	second, err := builder.Finalize()
	require.NoError(t, err)

	third, err := newBuilder().Finalize()
	require.NoError(t, err)

	firstOut, err := json.Marshal(first)
	require.NoError(t, err)

	for _, msg := range []*Message{second, third} {
		out, err := json.Marshal(msg)
		require.NoError(t, err)
		require.Equal(t, string(firstOut), string(out))
	}

	// later setters do not leak into finalized messages
	builder.Data(map[string]string{"other": "1"}).AnalyticsLabel("changed")
	require.Equal(t, map[string]string{"z": "1", "y": "2", "x": "3"}, first.Data)
	require.Equal(t, "campaign_1", first.FcmOptions.AnalyticsLabel)
}

func TestMessageInvalidOverlayPath(t *testing.T) {

	msg := &Message{
		Target: Token("abc"),
		Android: &AndroidConfig{
			Notification: &AndroidNotification{Color: "red"},
		},
		Data: map[string]string{"k": "v"},
	}

	err := msg.Validate()
	require.Error(t, err)
	require.Equal(t, "android.notification.color", err.(*ValidationError).Field)
	require.Equal(t,
		"invalid message: android.notification.color: color must be in the form #RRGGBB or #RRGGBBAA",
		err.Error())

	msg = &Message{
		Target: Token("abc"),
		Notification: &Notification{
			Title: "t",
			Image: "not a url",
		},
	}
	err = msg.Validate()
	require.Error(t, err)
	require.Equal(t, "notification.image", err.(*ValidationError).Field)

	msg = &Message{
		Target:     Token("abc"),
		Data:       map[string]string{"k": "v"},
		FcmOptions: &FcmOptions{AnalyticsLabel: "with space"},
	}
	err = msg.Validate()
	require.Error(t, err)
	require.Equal(t, "fcm_options.analytics_label", err.(*ValidationError).Field)

	var nilMessage *Message
	require.Error(t, nilMessage.Validate())
}

func TestRequestEnvelope(t *testing.T) {

	msg, err := NewMessageBuilder(Condition("'a' in topics")).
		Data(map[string]string{"k": "v"}).
		Finalize()
	require.NoError(t, err)

	out, err := json.Marshal(&Request{Message: msg})
	require.NoError(t, err)
	require.Equal(t, `{"message":{"condition":"'a' in topics","data":{"k":"v"}}}`, string(out))

	out, err = json.Marshal(&Request{ValidateOnly: true, Message: msg})
	require.NoError(t, err)
	require.Equal(t, `{"validate_only":true,"message":{"condition":"'a' in topics","data":{"k":"v"}}}`, string(out))
}
