package fcm

import (
	"encoding/json"
)

// ErrEmptyMessage is returned for a message without any content
var ErrEmptyMessage = newValidationError("", "message has neither data nor notification")

// Message format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#Message
//
// Build messages with MessageBuilder. A finalized message is not modified by
// this package and may be sent from several goroutines.
type Message struct {
	// serialized as exactly one of "token", "topic" or "condition"
	Target       Target            `json:"-"`
	Data         map[string]string `json:"data,omitempty"`
	Notification *Notification     `json:"notification,omitempty"`
	Android      *AndroidConfig    `json:"android,omitempty"`
	Webpush      *WebpushConfig    `json:"webpush,omitempty"`
	Apns         *ApnsConfig       `json:"apns,omitempty"`
	FcmOptions   *FcmOptions       `json:"fcm_options,omitempty"`
}

// FcmOptions format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#fcmoptions
type FcmOptions struct {
	AnalyticsLabel string `json:"analytics_label,omitempty"`
}

// Request format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages/send#request-body
type Request struct {
	ValidateOnly bool     `json:"validate_only,omitempty"`
	Message      *Message `json:"message"`
}

func (m Message) MarshalJSON() ([]byte, error) {

	// no methods, so no recursion
	type fields Message

	out := struct {
		Token     string `json:"token,omitempty"`
		Topic     string `json:"topic,omitempty"`
		Condition string `json:"condition,omitempty"`
		fields
	}{
		fields: fields(m),
	}

	switch target := m.Target.(type) {
	case Token:
		out.Token = target.Value()
	case Topic:
		out.Topic = target.Value()
	case Condition:
		out.Condition = target.Value()
	default:
		return nil, newValidationError("target", "one of token, topic or condition is required")
	}

	return json.Marshal(&out)
}

// Validate checks the whole message tree. Client.Send calls it before any
// request is made.
//
// A message without root data or notification is still accepted when one
// of the platform overlays carries content; a message with no content at all
// is rejected.
func (m *Message) Validate() error {

	if m == nil {
		return newValidationError("", "nil message")
	}

	if m.Target == nil {
		return newValidationError("target", "one of token, topic or condition is required")
	}

	if err := m.Target.validate(); err != nil {
		return err
	}

	if err := validateDataKeys("data", m.Data); err != nil {
		return err
	}

	if m.Notification != nil {
		if err := prefixErr("notification", m.Notification.validate()); err != nil {
			return err
		}
	}

	if m.Android != nil {
		if err := prefixErr("android", m.Android.validate()); err != nil {
			return err
		}
	}

	if m.Apns != nil {
		if err := prefixErr("apns", m.Apns.validate()); err != nil {
			return err
		}
	}

	if m.Webpush != nil {
		if err := prefixErr("webpush", m.Webpush.validate()); err != nil {
			return err
		}
	}

	if m.FcmOptions != nil {
		if err := validateAnalyticsLabel("fcm_options.analytics_label", m.FcmOptions.AnalyticsLabel); err != nil {
			return err
		}
	}

	if len(m.Data) == 0 && m.Notification.empty() &&
		!m.Android.hasContent() && !m.Apns.hasContent() && !m.Webpush.hasContent() {
		return ErrEmptyMessage
	}

	return nil
}

type MessageBuilder struct {
	target       Target
	data         map[string]interface{}
	notification *Notification
	android      *AndroidConfig
	apns         *ApnsConfig
	webpush      *WebpushConfig
	fcmOptions   *FcmOptions
}

func NewMessageBuilder(target Target) *MessageBuilder {
	return &MessageBuilder{
		target: target,
	}
}

func (b *MessageBuilder) Data(data map[string]string) *MessageBuilder {
	b.data = toValues(data)
	return b
}

// DataValues sets data from a loosely typed source, e.g. decoded JSON.
// Finalize fails if any value is not a string; values are never coerced.
func (b *MessageBuilder) DataValues(data map[string]interface{}) *MessageBuilder {
	b.data = copyDocument(data)
	return b
}

func (b *MessageBuilder) Notification(notification *Notification) *MessageBuilder {
	b.notification = notification
	return b
}

func (b *MessageBuilder) Android(config *AndroidConfig) *MessageBuilder {
	b.android = config
	return b
}

func (b *MessageBuilder) Apns(config *ApnsConfig) *MessageBuilder {
	b.apns = config
	return b
}

func (b *MessageBuilder) Webpush(config *WebpushConfig) *MessageBuilder {
	b.webpush = config
	return b
}

func (b *MessageBuilder) AnalyticsLabel(label string) *MessageBuilder {
	b.fcmOptions = &FcmOptions{AnalyticsLabel: label}
	return b
}

// Finalize returns a validated message. The builder may be reused; later
// setter calls do not affect messages already returned.
func (b *MessageBuilder) Finalize() (*Message, error) {

	data, err := stringValues("data", b.data)
	if err != nil {
		return nil, err
	}

	retval := &Message{
		Target:       b.target,
		Data:         data,
		Notification: b.notification,
		Android:      b.android,
		Apns:         b.apns,
		Webpush:      b.webpush,
	}

	if b.fcmOptions != nil {
		opts := *b.fcmOptions
		retval.FcmOptions = &opts
	}

	if err := retval.Validate(); err != nil {
		return nil, err
	}

	return retval, nil
}
