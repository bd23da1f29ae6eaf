package api2fcm

import (
	"strconv"
	"strings"
	"time"

	"github.com/dialogs/dialog-push-fcm/pkg/api"
	"github.com/dialogs/dialog-push-fcm/pkg/converter"
	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/pkg/errors"
)

var _ converter.IRequestConverter = (*Request)(nil)

// Request converts api.PushBody into fcm.Message with the fcm builders
type Request struct {
	allowAlerts     bool
	androidPriority fcm.AndroidMessagePriority
}

func NewRequestConverter(cfg *Config) (*Request, error) {

	r := &Request{
		allowAlerts: cfg.AllowAlerts,
	}

	if cfg.AndroidPriority != "" {
		priority, ok := fcm.AndroidMessagePriorityByString(cfg.AndroidPriority)
		if !ok {
			return nil, errors.Errorf("invalid android-priority %q, expected one of %v",
				cfg.AndroidPriority, fcm.AndroidMessagePriorityStringKeys())
		}
		r.androidPriority = priority
	}

	return r, nil
}

func (r *Request) Convert(body *api.PushBody, target fcm.Target) (*fcm.Message, error) {

	if body == nil {
		return nil, converter.ErrEmptyBody
	}

	if !r.allowAlerts && hasAlert(body) {
		return nil, converter.ErrNotSupportedAlertPush
	}

	builder := fcm.NewMessageBuilder(target).
		DataValues(body.Data)

	if body.AnalyticsLabel != "" {
		builder.AnalyticsLabel(body.AnalyticsLabel)
	}

	if src := body.Notification; src != nil {
		notification, err := fcm.NewNotificationBuilder().
			Title(src.Title).
			Body(src.Body).
			Image(src.Image).
			Finalize()
		if err != nil {
			return nil, under("notification", err)
		}
		builder.Notification(notification)
	}

	if body.Android != nil || r.androidPriority != fcm.AndroidMessagePriorityUnspecified {
		android, err := r.android(body.Android)
		if err != nil {
			return nil, under("android", err)
		}
		builder.Android(android)
	}

	if body.Apns != nil {
		apns, err := apnsConfig(body.Apns)
		if err != nil {
			return nil, under("apns", err)
		}
		builder.Apns(apns)
	}

	if body.Webpush != nil {
		webpush, err := webpushConfig(body.Webpush)
		if err != nil {
			return nil, under("webpush", err)
		}
		builder.Webpush(webpush)
	}

	return builder.Finalize()
}

func (r *Request) android(src *api.Android) (*fcm.AndroidConfig, error) {

	if src == nil {
		src = &api.Android{}
	}

	builder := fcm.NewAndroidConfigBuilder().
		CollapseKey(src.CollapseKey).
		RestrictedPackageName(src.RestrictedPackageName).
		DirectBootOK(src.DirectBootOK)

	if len(src.Data) > 0 {
		builder.DataValues(src.Data)
	}

	switch {
	case src.Priority != "":
		priority, ok := fcm.AndroidMessagePriorityByString(src.Priority)
		if !ok {
			return nil, invalidToken("priority", src.Priority, fcm.AndroidMessagePriorityStringKeys())
		}
		builder.Priority(priority)

	case r.androidPriority != fcm.AndroidMessagePriorityUnspecified:
		builder.Priority(r.androidPriority)
	}

	if src.TTL != "" {
		ttl, err := parseDuration("ttl", src.TTL)
		if err != nil {
			return nil, err
		}
		builder.TTL(ttl)
	}

	if src.AnalyticsLabel != "" {
		builder.AnalyticsLabel(src.AnalyticsLabel)
	}

	if src.Notification != nil {
		notification, err := androidNotification(src.Notification)
		if err != nil {
			return nil, under("notification", err)
		}
		builder.Notification(notification)
	}

	return builder.Finalize()
}

func androidNotification(src *api.AndroidNotification) (*fcm.AndroidNotification, error) {

	builder := fcm.NewAndroidNotificationBuilder().
		Title(src.Title).
		Body(src.Body).
		Icon(src.Icon).
		Color(src.Color).
		Sound(src.Sound).
		Tag(src.Tag).
		ClickAction(src.ClickAction).
		BodyLocKey(src.BodyLocKey).
		TitleLocKey(src.TitleLocKey).
		ChannelID(src.ChannelID).
		Ticker(src.Ticker).
		Sticky(src.Sticky).
		LocalOnly(src.LocalOnly).
		DefaultSound(src.DefaultSound).
		DefaultVibrateTimings(src.DefaultVibrateTimings).
		DefaultLightSettings(src.DefaultLightSettings).
		Image(src.Image)

	if len(src.BodyLocArgs) > 0 {
		builder.BodyLocArgs(src.BodyLocArgs...)
	}

	if len(src.TitleLocArgs) > 0 {
		builder.TitleLocArgs(src.TitleLocArgs...)
	}

	if src.EventTime != "" {
		eventTime, err := time.Parse(time.RFC3339Nano, src.EventTime)
		if err != nil {
			return nil, &fcm.ValidationError{Field: "event_time", Reason: "must be RFC3339: " + strconv.Quote(src.EventTime)}
		}
		builder.EventTimestamp(eventTime)
	}

	if src.NotificationPriority != "" {
		priority, ok := fcm.NotificationPriorityByString(src.NotificationPriority)
		if !ok {
			return nil, invalidToken("notification_priority", src.NotificationPriority, fcm.NotificationPriorityStringKeys())
		}
		builder.NotificationPriority(priority)
	}

	if src.Visibility != "" {
		visibility, ok := fcm.VisibilityByString(src.Visibility)
		if !ok {
			return nil, invalidToken("visibility", src.Visibility, fcm.VisibilityStringKeys())
		}
		builder.Visibility(visibility)
	}

	if len(src.VibrateTimings) > 0 {
		timings := make([]time.Duration, len(src.VibrateTimings))
		for i := range src.VibrateTimings {
			d, err := parseDuration("vibrate_timings", src.VibrateTimings[i])
			if err != nil {
				return nil, err
			}
			timings[i] = d
		}
		builder.VibrateTimings(timings...)
	}

	if src.NotificationCount != nil {
		builder.NotificationCount(*src.NotificationCount)
	}

	if src.LightSettings != nil {
		settings, err := lightSettings(src.LightSettings)
		if err != nil {
			return nil, under("light_settings", err)
		}
		builder.LightSettings(settings)
	}

	return builder.Finalize()
}

func lightSettings(src *api.LightSettings) (*fcm.LightSettings, error) {

	builder := fcm.NewLightSettingsBuilder().Color(src.Color)

	if src.LightOnDuration != "" {
		d, err := parseDuration("light_on_duration", src.LightOnDuration)
		if err != nil {
			return nil, err
		}
		builder.LightOnDuration(d)
	}

	if src.LightOffDuration != "" {
		d, err := parseDuration("light_off_duration", src.LightOffDuration)
		if err != nil {
			return nil, err
		}
		builder.LightOffDuration(d)
	}

	return builder.Finalize()
}

func apnsConfig(src *api.Apns) (*fcm.ApnsConfig, error) {

	builder := fcm.NewApnsConfigBuilder().
		Headers(src.Headers).
		Payload(src.Payload)

	if src.AnalyticsLabel != "" {
		builder.AnalyticsLabel(src.AnalyticsLabel)
	}

	if src.Image != "" {
		builder.Image(src.Image)
	}

	return builder.Finalize()
}

func webpushConfig(src *api.Webpush) (*fcm.WebpushConfig, error) {

	builder := fcm.NewWebpushConfigBuilder().
		Headers(src.Headers).
		Notification(src.Notification)

	if len(src.Data) > 0 {
		builder.DataValues(src.Data)
	}

	if src.Link != "" {
		builder.Link(src.Link)
	}

	if src.AnalyticsLabel != "" {
		builder.AnalyticsLabel(src.AnalyticsLabel)
	}

	return builder.Finalize()
}

func hasAlert(body *api.PushBody) bool {

	if body.Notification != nil {
		return true
	}

	if body.Android != nil && body.Android.Notification != nil {
		return true
	}

	if body.Webpush != nil && len(body.Webpush.Notification) > 0 {
		return true
	}

	if body.Apns != nil {
		if aps, ok := body.Apns.Payload["aps"].(map[string]interface{}); ok {
			if _, ok := aps["alert"]; ok {
				return true
			}
		}
	}

	return false
}

func parseDuration(field, src string) (time.Duration, error) {
	d, err := time.ParseDuration(src)
	if err != nil {
		return 0, &fcm.ValidationError{Field: field, Reason: "invalid duration " + strconv.Quote(src)}
	}
	return d, nil
}

func invalidToken(field, val string, keys []string) error {
	return &fcm.ValidationError{
		Field:  field,
		Reason: "unknown value " + strconv.Quote(val) + ", expected one of " + strings.Join(keys, ", "),
	}
}

// under roots a nested validation error at the parent field
func under(parent string, err error) error {

	var verr *fcm.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	field := parent
	if verr.Field != "" {
		field += "." + verr.Field
	}

	return &fcm.ValidationError{Field: field, Reason: verr.Reason}
}
