package fcm

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sideshow/apns2"
)

// Headers set by the APNs builder. Table 8-2 APNs request headers:
// https://developer.apple.com/documentation/usernotifications/sending-notification-requests-to-apns
const (
	ApnsHeaderPriority   = "apns-priority"
	ApnsHeaderPushType   = "apns-push-type"
	ApnsHeaderExpiration = "apns-expiration"
	ApnsHeaderCollapseID = "apns-collapse-id"
	ApnsHeaderTopic      = "apns-topic"

	maxApnsCollapseIDSize = 64
)

// ApnsConfig format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#apnsconfig
type ApnsConfig struct {
	Headers map[string]string `json:"headers,omitempty"`

	// Payload is the whole APNs document: the "aps" dictionary plus custom
	// keys of any JSON type.
	Payload    map[string]interface{} `json:"payload,omitempty"`
	FcmOptions *ApnsFcmOptions        `json:"fcm_options,omitempty"`
}

// ApnsFcmOptions format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#apnsfcmoptions
type ApnsFcmOptions struct {
	AnalyticsLabel string `json:"analytics_label,omitempty"`
	Image          string `json:"image,omitempty"`
}

func (c *ApnsConfig) validate() error {

	if val, ok := c.Headers[ApnsHeaderPriority]; ok {
		switch val {
		case "1", strconv.Itoa(apns2.PriorityLow), strconv.Itoa(apns2.PriorityHigh):
		default:
			return newValidationError("headers."+ApnsHeaderPriority, "must be 1, 5 or 10")
		}
	}

	if val, ok := c.Headers[ApnsHeaderExpiration]; ok {
		if _, err := strconv.ParseInt(val, 10, 64); err != nil {
			return newValidationError("headers."+ApnsHeaderExpiration, "must be a UNIX epoch in seconds")
		}
	}

	if val, ok := c.Headers[ApnsHeaderCollapseID]; ok && len(val) > maxApnsCollapseIDSize {
		return newValidationError("headers."+ApnsHeaderCollapseID, "must not exceed 64 bytes")
	}

	if aps, ok := c.Payload["aps"]; ok {
		switch aps.(type) {
		case map[string]interface{}, map[string]string:
		default:
			return newValidationError("payload.aps", "must be an object")
		}
	}

	if c.FcmOptions != nil {
		if err := validateAnalyticsLabel("fcm_options.analytics_label", c.FcmOptions.AnalyticsLabel); err != nil {
			return err
		}
		if err := validateURL("fcm_options.image", c.FcmOptions.Image); err != nil {
			return err
		}
	}

	return nil
}

func (c *ApnsConfig) hasContent() bool {
	return c != nil && len(c.Payload) > 0
}

type ApnsConfigBuilder struct {
	headers       map[string]string
	payload       map[string]interface{}
	payloadSource json.Marshaler
	fcmOptions    *ApnsFcmOptions
}

func NewApnsConfigBuilder() *ApnsConfigBuilder {
	return &ApnsConfigBuilder{}
}

func (b *ApnsConfigBuilder) Header(key, value string) *ApnsConfigBuilder {
	if b.headers == nil {
		b.headers = make(map[string]string)
	}
	b.headers[key] = value
	return b
}

// Headers replaces all headers set before
func (b *ApnsConfigBuilder) Headers(headers map[string]string) *ApnsConfigBuilder {
	b.headers = copyStringMap(headers)
	return b
}

// Priority is apns2.PriorityHigh or apns2.PriorityLow
func (b *ApnsConfigBuilder) Priority(priority int) *ApnsConfigBuilder {
	return b.Header(ApnsHeaderPriority, strconv.Itoa(priority))
}

func (b *ApnsConfigBuilder) PushType(pushType apns2.EPushType) *ApnsConfigBuilder {
	return b.Header(ApnsHeaderPushType, string(pushType))
}

func (b *ApnsConfigBuilder) Expiration(t time.Time) *ApnsConfigBuilder {
	return b.Header(ApnsHeaderExpiration, strconv.FormatInt(t.Unix(), 10))
}

func (b *ApnsConfigBuilder) CollapseID(id string) *ApnsConfigBuilder {
	return b.Header(ApnsHeaderCollapseID, id)
}

// Payload sets the raw APNs document
func (b *ApnsConfigBuilder) Payload(payload map[string]interface{}) *ApnsConfigBuilder {
	b.payload = copyDocument(payload)
	b.payloadSource = nil
	return b
}

// PayloadFrom takes the document from any JSON marshaler, typically a
// *payload.Payload from github.com/sideshow/apns2/payload. It is encoded at
// Finalize.
func (b *ApnsConfigBuilder) PayloadFrom(src json.Marshaler) *ApnsConfigBuilder {
	b.payloadSource = src
	b.payload = nil
	return b
}

func (b *ApnsConfigBuilder) AnalyticsLabel(label string) *ApnsConfigBuilder {
	if b.fcmOptions == nil {
		b.fcmOptions = &ApnsFcmOptions{}
	}
	b.fcmOptions.AnalyticsLabel = label
	return b
}

// Image overrides the notification image on Apple devices
func (b *ApnsConfigBuilder) Image(url string) *ApnsConfigBuilder {
	if b.fcmOptions == nil {
		b.fcmOptions = &ApnsFcmOptions{}
	}
	b.fcmOptions.Image = url
	return b
}

func (b *ApnsConfigBuilder) Finalize() (*ApnsConfig, error) {

	retval := &ApnsConfig{
		Headers: copyStringMap(b.headers),
		Payload: copyDocument(b.payload),
	}

	if b.payloadSource != nil {
		doc, err := documentFrom(b.payloadSource)
		if err != nil {
			return nil, prefixErr("payload", err)
		}
		retval.Payload = doc
	}

	if b.fcmOptions != nil {
		opts := *b.fcmOptions
		retval.FcmOptions = &opts
	}

	if err := retval.validate(); err != nil {
		return nil, err
	}

	return retval, nil
}

func documentFrom(src json.Marshaler) (map[string]interface{}, error) {

	data, err := src.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var retval map[string]interface{}
	if err := dec.Decode(&retval); err != nil {
		return nil, newValidationError("", "must be a JSON object")
	}

	return retval, nil
}
