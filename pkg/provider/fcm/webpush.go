package fcm

import (
	"strconv"
	"time"

	"github.com/SherClockHolmes/webpush-go"
)

// Webpush protocol headers:
// https://tools.ietf.org/html/rfc8030#section-5
const (
	WebpushHeaderTTL     = "TTL"
	WebpushHeaderUrgency = "Urgency"
	WebpushHeaderTopic   = "Topic"
)

// WebpushConfig format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#webpushconfig
type WebpushConfig struct {
	Headers map[string]string `json:"headers,omitempty"`
	Data    map[string]string `json:"data,omitempty"`

	// Notification follows the Web Notification API options and is passed
	// through as is.
	Notification map[string]interface{} `json:"notification,omitempty"`
	FcmOptions   *WebpushFcmOptions     `json:"fcm_options,omitempty"`
}

// WebpushFcmOptions format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#webpushfcmoptions
type WebpushFcmOptions struct {
	Link           string `json:"link,omitempty"`
	AnalyticsLabel string `json:"analytics_label,omitempty"`
}

func (c *WebpushConfig) validate() error {

	if val, ok := c.Headers[WebpushHeaderTTL]; ok {
		if ttl, err := strconv.ParseInt(val, 10, 64); err != nil || ttl < 0 {
			return newValidationError("headers."+WebpushHeaderTTL, "must be a non-negative number of seconds")
		}
	}

	if val, ok := c.Headers[WebpushHeaderUrgency]; ok {
		switch webpush.Urgency(val) {
		case webpush.UrgencyVeryLow, webpush.UrgencyLow, webpush.UrgencyNormal, webpush.UrgencyHigh:
		default:
			return newValidationError("headers."+WebpushHeaderUrgency, "unknown urgency "+strconv.Quote(val))
		}
	}

	if c.FcmOptions != nil {
		if err := validateHTTPSURL("fcm_options.link", c.FcmOptions.Link); err != nil {
			return err
		}
		if err := validateAnalyticsLabel("fcm_options.analytics_label", c.FcmOptions.AnalyticsLabel); err != nil {
			return err
		}
	}

	return nil
}

func (c *WebpushConfig) hasContent() bool {
	return c != nil && (len(c.Data) > 0 || len(c.Notification) > 0)
}

type WebpushConfigBuilder struct {
	headers      map[string]string
	data         map[string]interface{}
	notification map[string]interface{}
	fcmOptions   *WebpushFcmOptions
}

func NewWebpushConfigBuilder() *WebpushConfigBuilder {
	return &WebpushConfigBuilder{}
}

func (b *WebpushConfigBuilder) Header(key, value string) *WebpushConfigBuilder {
	if b.headers == nil {
		b.headers = make(map[string]string)
	}
	b.headers[key] = value
	return b
}

// Headers replaces all headers set before
func (b *WebpushConfigBuilder) Headers(headers map[string]string) *WebpushConfigBuilder {
	b.headers = copyStringMap(headers)
	return b
}

// TTL is truncated to whole seconds
func (b *WebpushConfigBuilder) TTL(ttl time.Duration) *WebpushConfigBuilder {
	return b.Header(WebpushHeaderTTL, strconv.FormatInt(int64(ttl/time.Second), 10))
}

func (b *WebpushConfigBuilder) Urgency(urgency webpush.Urgency) *WebpushConfigBuilder {
	return b.Header(WebpushHeaderUrgency, string(urgency))
}

func (b *WebpushConfigBuilder) Data(data map[string]string) *WebpushConfigBuilder {
	b.data = toValues(data)
	return b
}

// DataValues sets data from a loosely typed source. Finalize fails if any
// value is not a string.
func (b *WebpushConfigBuilder) DataValues(data map[string]interface{}) *WebpushConfigBuilder {
	b.data = copyDocument(data)
	return b
}

func (b *WebpushConfigBuilder) Notification(notification map[string]interface{}) *WebpushConfigBuilder {
	b.notification = copyDocument(notification)
	return b
}

// Link opens on notification click, https only
func (b *WebpushConfigBuilder) Link(link string) *WebpushConfigBuilder {
	if b.fcmOptions == nil {
		b.fcmOptions = &WebpushFcmOptions{}
	}
	b.fcmOptions.Link = link
	return b
}

func (b *WebpushConfigBuilder) AnalyticsLabel(label string) *WebpushConfigBuilder {
	if b.fcmOptions == nil {
		b.fcmOptions = &WebpushFcmOptions{}
	}
	b.fcmOptions.AnalyticsLabel = label
	return b
}

func (b *WebpushConfigBuilder) Finalize() (*WebpushConfig, error) {

	data, err := stringValues("data", b.data)
	if err != nil {
		return nil, err
	}

	retval := &WebpushConfig{
		Headers:      copyStringMap(b.headers),
		Data:         data,
		Notification: copyDocument(b.notification),
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
