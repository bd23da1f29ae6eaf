package fcm

import (
	"regexp"
	"time"
)

var analyticsLabelPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_.~%]{1,50}$`)

// AndroidConfig format
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#androidconfig
type AndroidConfig struct {
	CollapseKey           string                 `json:"collapse_key,omitempty"`
	Priority              AndroidMessagePriority `json:"priority,omitempty"`
	TTL                   *Duration              `json:"ttl,omitempty"`
	RestrictedPackageName string                 `json:"restricted_package_name,omitempty"`
	Data                  map[string]string      `json:"data,omitempty"`
	Notification          *AndroidNotification   `json:"notification,omitempty"`
	FcmOptions            *AndroidFcmOptions     `json:"fcm_options,omitempty"`
	DirectBootOK          bool                   `json:"direct_boot_ok,omitempty"`
}

// AndroidNotification format
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#androidnotification
type AndroidNotification struct {
	Title                 string               `json:"title,omitempty"`
	Body                  string               `json:"body,omitempty"`
	Icon                  string               `json:"icon,omitempty"`
	Color                 string               `json:"color,omitempty"`
	Sound                 string               `json:"sound,omitempty"`
	Tag                   string               `json:"tag,omitempty"`
	ClickAction           string               `json:"click_action,omitempty"`
	BodyLocKey            string               `json:"body_loc_key,omitempty"`
	BodyLocArgs           []string             `json:"body_loc_args,omitempty"`
	TitleLocKey           string               `json:"title_loc_key,omitempty"`
	TitleLocArgs          []string             `json:"title_loc_args,omitempty"`
	ChannelID             string               `json:"channel_id,omitempty"`
	Ticker                string               `json:"ticker,omitempty"`
	Sticky                bool                 `json:"sticky,omitempty"`
	EventTimestamp        *Timestamp           `json:"event_time,omitempty"`
	LocalOnly             bool                 `json:"local_only,omitempty"`
	NotificationPriority  NotificationPriority `json:"notification_priority,omitempty"`
	DefaultSound          bool                 `json:"default_sound,omitempty"`
	DefaultVibrateTimings bool                 `json:"default_vibrate_timings,omitempty"`
	DefaultLightSettings  bool                 `json:"default_light_settings,omitempty"`
	VibrateTimings        []Duration           `json:"vibrate_timings,omitempty"`
	Visibility            Visibility           `json:"visibility,omitempty"`
	NotificationCount     *int                 `json:"notification_count,omitempty"`
	LightSettings         *LightSettings       `json:"light_settings,omitempty"`
	Image                 string               `json:"image,omitempty"`
}

// LightSettings format. All three fields are required by the gateway.
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#lightsettings
type LightSettings struct {
	Color            LightColor `json:"color"`
	LightOnDuration  Duration   `json:"light_on_duration"`
	LightOffDuration Duration   `json:"light_off_duration"`
}

// AndroidFcmOptions format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#androidfcmoptions
type AndroidFcmOptions struct {
	AnalyticsLabel string `json:"analytics_label,omitempty"`
}

func (c *AndroidConfig) validate() error {

	if c.Priority != AndroidMessagePriorityUnspecified && !c.Priority.valid() {
		return newValidationError("priority", c.Priority.String())
	}

	if c.TTL != nil {
		if err := validateDuration("ttl", time.Duration(*c.TTL)); err != nil {
			return err
		}
	}

	if err := validateDataKeys("data", c.Data); err != nil {
		return err
	}

	if c.Notification != nil {
		if err := prefixErr("notification", c.Notification.validate()); err != nil {
			return err
		}
	}

	if c.FcmOptions != nil {
		if err := validateAnalyticsLabel("fcm_options.analytics_label", c.FcmOptions.AnalyticsLabel); err != nil {
			return err
		}
	}

	return nil
}

func (c *AndroidConfig) hasContent() bool {
	return c != nil && (len(c.Data) > 0 || c.Notification != nil)
}

func (n *AndroidNotification) validate() error {

	if n.Color != "" {
		if err := validateColor("color", n.Color); err != nil {
			return err
		}
	}

	if len(n.BodyLocArgs) > 0 && n.BodyLocKey == "" {
		return newValidationError("body_loc_key", "required when body_loc_args is set")
	}

	if len(n.TitleLocArgs) > 0 && n.TitleLocKey == "" {
		return newValidationError("title_loc_key", "required when title_loc_args is set")
	}

	if n.NotificationPriority != NotificationPriorityUnspecified && !n.NotificationPriority.valid() {
		return newValidationError("notification_priority", n.NotificationPriority.String())
	}

	if n.Visibility != VisibilityUnspecified && !n.Visibility.valid() {
		return newValidationError("visibility", n.Visibility.String())
	}

	for i := range n.VibrateTimings {
		if err := validateDuration("vibrate_timings", time.Duration(n.VibrateTimings[i])); err != nil {
			return err
		}
	}

	if n.NotificationCount != nil && *n.NotificationCount < 0 {
		return newValidationError("notification_count", "must not be negative")
	}

	if n.LightSettings != nil {
		if err := prefixErr("light_settings", n.LightSettings.validate()); err != nil {
			return err
		}
	}

	return validateURL("image", n.Image)
}

// validate treats a zero duration as unset
func (l *LightSettings) validate() error {

	if l.Color == "" {
		return newValidationError("color", "required")
	}

	if err := validateColor("color", string(l.Color)); err != nil {
		return err
	}

	if l.LightOnDuration <= 0 {
		return newValidationError("light_on_duration", "required")
	}

	if l.LightOffDuration <= 0 {
		return newValidationError("light_off_duration", "required")
	}

	return nil
}

func validateAnalyticsLabel(field, label string) error {
	if label != "" && !analyticsLabelPattern.MatchString(label) {
		return newValidationError(field, "must match "+analyticsLabelPattern.String())
	}
	return nil
}

type AndroidConfigBuilder struct {
	value AndroidConfig
	data  map[string]interface{}
}

func NewAndroidConfigBuilder() *AndroidConfigBuilder {
	return &AndroidConfigBuilder{}
}

// CollapseKey identifies a group of messages that can be collapsed
func (b *AndroidConfigBuilder) CollapseKey(key string) *AndroidConfigBuilder {
	b.value.CollapseKey = key
	return b
}

func (b *AndroidConfigBuilder) Priority(priority AndroidMessagePriority) *AndroidConfigBuilder {
	b.value.Priority = priority
	return b
}

// TTL is how long the message is kept in storage if the device is offline.
// Zero means "now or never".
func (b *AndroidConfigBuilder) TTL(ttl time.Duration) *AndroidConfigBuilder {
	b.value.TTL = durationPtr(ttl)
	return b
}

func (b *AndroidConfigBuilder) RestrictedPackageName(name string) *AndroidConfigBuilder {
	b.value.RestrictedPackageName = name
	return b
}

// Data overrides the message data for Android devices
func (b *AndroidConfigBuilder) Data(data map[string]string) *AndroidConfigBuilder {
	b.data = toValues(data)
	return b
}

// DataValues sets data from a loosely typed source. Finalize fails if any
// value is not a string.
func (b *AndroidConfigBuilder) DataValues(data map[string]interface{}) *AndroidConfigBuilder {
	b.data = copyDocument(data)
	return b
}

func (b *AndroidConfigBuilder) Notification(notification *AndroidNotification) *AndroidConfigBuilder {
	b.value.Notification = notification
	return b
}

func (b *AndroidConfigBuilder) AnalyticsLabel(label string) *AndroidConfigBuilder {
	b.value.FcmOptions = &AndroidFcmOptions{AnalyticsLabel: label}
	return b
}

// DirectBootOK allows delivery while the device is in direct boot mode
func (b *AndroidConfigBuilder) DirectBootOK(ok bool) *AndroidConfigBuilder {
	b.value.DirectBootOK = ok
	return b
}

func (b *AndroidConfigBuilder) Finalize() (*AndroidConfig, error) {

	retval := b.value

	data, err := stringValues("data", b.data)
	if err != nil {
		return nil, err
	}
	retval.Data = data

	if b.value.TTL != nil {
		retval.TTL = durationPtr(time.Duration(*b.value.TTL))
	}

	if b.value.FcmOptions != nil {
		opts := *b.value.FcmOptions
		retval.FcmOptions = &opts
	}

	if err := retval.validate(); err != nil {
		return nil, err
	}

	return &retval, nil
}

type AndroidNotificationBuilder struct {
	value AndroidNotification
}

func NewAndroidNotificationBuilder() *AndroidNotificationBuilder {
	return &AndroidNotificationBuilder{}
}

func (b *AndroidNotificationBuilder) Title(title string) *AndroidNotificationBuilder {
	b.value.Title = title
	return b
}

func (b *AndroidNotificationBuilder) Body(body string) *AndroidNotificationBuilder {
	b.value.Body = body
	return b
}

func (b *AndroidNotificationBuilder) Icon(icon string) *AndroidNotificationBuilder {
	b.value.Icon = icon
	return b
}

// Color in #RRGGBB or #RRGGBBAA form
func (b *AndroidNotificationBuilder) Color(color string) *AndroidNotificationBuilder {
	b.value.Color = color
	return b
}

// Sound is a resource name in res/raw or SoundDefault
func (b *AndroidNotificationBuilder) Sound(sound string) *AndroidNotificationBuilder {
	b.value.Sound = sound
	return b
}

func (b *AndroidNotificationBuilder) Tag(tag string) *AndroidNotificationBuilder {
	b.value.Tag = tag
	return b
}

func (b *AndroidNotificationBuilder) ClickAction(action string) *AndroidNotificationBuilder {
	b.value.ClickAction = action
	return b
}

func (b *AndroidNotificationBuilder) BodyLocKey(key string) *AndroidNotificationBuilder {
	b.value.BodyLocKey = key
	return b
}

func (b *AndroidNotificationBuilder) BodyLocArgs(args ...string) *AndroidNotificationBuilder {
	b.value.BodyLocArgs = copyStrings(args)
	return b
}

func (b *AndroidNotificationBuilder) TitleLocKey(key string) *AndroidNotificationBuilder {
	b.value.TitleLocKey = key
	return b
}

func (b *AndroidNotificationBuilder) TitleLocArgs(args ...string) *AndroidNotificationBuilder {
	b.value.TitleLocArgs = copyStrings(args)
	return b
}

func (b *AndroidNotificationBuilder) ChannelID(id string) *AndroidNotificationBuilder {
	b.value.ChannelID = id
	return b
}

func (b *AndroidNotificationBuilder) Ticker(ticker string) *AndroidNotificationBuilder {
	b.value.Ticker = ticker
	return b
}

func (b *AndroidNotificationBuilder) Sticky(sticky bool) *AndroidNotificationBuilder {
	b.value.Sticky = sticky
	return b
}

func (b *AndroidNotificationBuilder) EventTimestamp(t time.Time) *AndroidNotificationBuilder {
	ts := Timestamp(t)
	b.value.EventTimestamp = &ts
	return b
}

func (b *AndroidNotificationBuilder) LocalOnly(localOnly bool) *AndroidNotificationBuilder {
	b.value.LocalOnly = localOnly
	return b
}

func (b *AndroidNotificationBuilder) NotificationPriority(priority NotificationPriority) *AndroidNotificationBuilder {
	b.value.NotificationPriority = priority
	return b
}

func (b *AndroidNotificationBuilder) DefaultSound(use bool) *AndroidNotificationBuilder {
	b.value.DefaultSound = use
	return b
}

func (b *AndroidNotificationBuilder) DefaultVibrateTimings(use bool) *AndroidNotificationBuilder {
	b.value.DefaultVibrateTimings = use
	return b
}

func (b *AndroidNotificationBuilder) DefaultLightSettings(use bool) *AndroidNotificationBuilder {
	b.value.DefaultLightSettings = use
	return b
}

// VibrateTimings alternates off and on intervals, starting with off
func (b *AndroidNotificationBuilder) VibrateTimings(timings ...time.Duration) *AndroidNotificationBuilder {
	b.value.VibrateTimings = make([]Duration, len(timings))
	for i := range timings {
		b.value.VibrateTimings[i] = Duration(timings[i])
	}
	return b
}

func (b *AndroidNotificationBuilder) Visibility(visibility Visibility) *AndroidNotificationBuilder {
	b.value.Visibility = visibility
	return b
}

func (b *AndroidNotificationBuilder) NotificationCount(count int) *AndroidNotificationBuilder {
	b.value.NotificationCount = &count
	return b
}

func (b *AndroidNotificationBuilder) LightSettings(settings *LightSettings) *AndroidNotificationBuilder {
	b.value.LightSettings = settings
	return b
}

func (b *AndroidNotificationBuilder) Image(url string) *AndroidNotificationBuilder {
	b.value.Image = url
	return b
}

func (b *AndroidNotificationBuilder) Finalize() (*AndroidNotification, error) {

	retval := b.value
	retval.BodyLocArgs = copyStrings(b.value.BodyLocArgs)
	retval.TitleLocArgs = copyStrings(b.value.TitleLocArgs)

	if b.value.VibrateTimings != nil {
		retval.VibrateTimings = make([]Duration, len(b.value.VibrateTimings))
		copy(retval.VibrateTimings, b.value.VibrateTimings)
	}

	if b.value.EventTimestamp != nil {
		ts := *b.value.EventTimestamp
		retval.EventTimestamp = &ts
	}

	if b.value.NotificationCount != nil {
		count := *b.value.NotificationCount
		retval.NotificationCount = &count
	}

	if err := retval.validate(); err != nil {
		return nil, err
	}

	return &retval, nil
}

type LightSettingsBuilder struct {
	value LightSettings
}

func NewLightSettingsBuilder() *LightSettingsBuilder {
	return &LightSettingsBuilder{}
}

// Color in #RRGGBB or #RRGGBBAA form
func (b *LightSettingsBuilder) Color(color string) *LightSettingsBuilder {
	b.value.Color = LightColor(color)
	return b
}

func (b *LightSettingsBuilder) LightOnDuration(d time.Duration) *LightSettingsBuilder {
	b.value.LightOnDuration = Duration(d)
	return b
}

func (b *LightSettingsBuilder) LightOffDuration(d time.Duration) *LightSettingsBuilder {
	b.value.LightOffDuration = Duration(d)
	return b
}

func (b *LightSettingsBuilder) Finalize() (*LightSettings, error) {

	retval := b.value
	if err := retval.validate(); err != nil {
		return nil, err
	}

	return &retval, nil
}
