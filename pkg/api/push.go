// Package api describes the JSON body of POST /v1/push and its answer.
//
// Enum fields carry gateway tokens ("HIGH", "PRIORITY_MAX", "PUBLIC"),
// durations use Go syntax ("3.5s", "500ms") and times are RFC3339.
package api

// Push is one push task. Devices are grouped by FCM project; a task
// may address a topic or a condition instead of devices.
type Push struct {
	CorrelationID string              `json:"correlation_id,omitempty"`
	Destinations  map[string][]string `json:"destinations,omitempty"`
	Topics        map[string]string   `json:"topics,omitempty"`
	Conditions    map[string]string   `json:"conditions,omitempty"`
	Body          *PushBody           `json:"body"`
}

type PushBody struct {
	// values must be strings, anything else is rejected
	Data           map[string]interface{} `json:"data,omitempty"`
	Notification   *Notification          `json:"notification,omitempty"`
	Android        *Android               `json:"android,omitempty"`
	Apns           *Apns                  `json:"apns,omitempty"`
	Webpush        *Webpush               `json:"webpush,omitempty"`
	AnalyticsLabel string                 `json:"analytics_label,omitempty"`
}

type Notification struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	Image string `json:"image,omitempty"`
}

type Android struct {
	CollapseKey           string                 `json:"collapse_key,omitempty"`
	Priority              string                 `json:"priority,omitempty"`
	TTL                   string                 `json:"ttl,omitempty"`
	RestrictedPackageName string                 `json:"restricted_package_name,omitempty"`
	Data                  map[string]interface{} `json:"data,omitempty"`
	Notification          *AndroidNotification   `json:"notification,omitempty"`
	AnalyticsLabel        string                 `json:"analytics_label,omitempty"`
	DirectBootOK          bool                   `json:"direct_boot_ok,omitempty"`
}

type AndroidNotification struct {
	Title                 string         `json:"title,omitempty"`
	Body                  string         `json:"body,omitempty"`
	Icon                  string         `json:"icon,omitempty"`
	Color                 string         `json:"color,omitempty"`
	Sound                 string         `json:"sound,omitempty"`
	Tag                   string         `json:"tag,omitempty"`
	ClickAction           string         `json:"click_action,omitempty"`
	BodyLocKey            string         `json:"body_loc_key,omitempty"`
	BodyLocArgs           []string       `json:"body_loc_args,omitempty"`
	TitleLocKey           string         `json:"title_loc_key,omitempty"`
	TitleLocArgs          []string       `json:"title_loc_args,omitempty"`
	ChannelID             string         `json:"channel_id,omitempty"`
	Ticker                string         `json:"ticker,omitempty"`
	Sticky                bool           `json:"sticky,omitempty"`
	EventTime             string         `json:"event_time,omitempty"`
	LocalOnly             bool           `json:"local_only,omitempty"`
	NotificationPriority  string         `json:"notification_priority,omitempty"`
	DefaultSound          bool           `json:"default_sound,omitempty"`
	DefaultVibrateTimings bool           `json:"default_vibrate_timings,omitempty"`
	DefaultLightSettings  bool           `json:"default_light_settings,omitempty"`
	VibrateTimings        []string       `json:"vibrate_timings,omitempty"`
	Visibility            string         `json:"visibility,omitempty"`
	NotificationCount     *int           `json:"notification_count,omitempty"`
	LightSettings         *LightSettings `json:"light_settings,omitempty"`
	Image                 string         `json:"image,omitempty"`
}

type LightSettings struct {
	Color            string `json:"color"`
	LightOnDuration  string `json:"light_on_duration"`
	LightOffDuration string `json:"light_off_duration"`
}

type Apns struct {
	Headers        map[string]string      `json:"headers,omitempty"`
	Payload        map[string]interface{} `json:"payload,omitempty"`
	AnalyticsLabel string                 `json:"analytics_label,omitempty"`
	Image          string                 `json:"image,omitempty"`
}

type Webpush struct {
	Headers        map[string]string      `json:"headers,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
	Notification   map[string]interface{} `json:"notification,omitempty"`
	Link           string                 `json:"link,omitempty"`
	AnalyticsLabel string                 `json:"analytics_label,omitempty"`
}

// Response lists device tokens the caller should forget, by project
type Response struct {
	CorrelationID        string              `json:"correlation_id,omitempty"`
	ProjectInvalidations map[string][]string `json:"project_invalidations"`
	Results              []*Result           `json:"results"`
}

// Result of one send. Target is the topic or condition as given; device
// tokens are reported as their hash.
type Result struct {
	ProjectID string `json:"project_id"`
	Target    string `json:"target"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// ErrorResponse is the body of a rejected request
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
