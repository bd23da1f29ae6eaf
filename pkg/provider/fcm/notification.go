package fcm

// Notification format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#notification
type Notification struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	Image string `json:"image,omitempty"`
}

type NotificationBuilder struct {
	value Notification
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{}
}

func (b *NotificationBuilder) Title(title string) *NotificationBuilder {
	b.value.Title = title
	return b
}

func (b *NotificationBuilder) Body(body string) *NotificationBuilder {
	b.value.Body = body
	return b
}

// Image sets the URL of an image shown in the notification
func (b *NotificationBuilder) Image(url string) *NotificationBuilder {
	b.value.Image = url
	return b
}

func (b *NotificationBuilder) Finalize() (*Notification, error) {
	retval := b.value
	if err := retval.validate(); err != nil {
		return nil, err
	}
	return &retval, nil
}

func (n *Notification) validate() error {
	return validateURL("image", n.Image)
}

func (n *Notification) empty() bool {
	return n == nil || (n.Title == "" && n.Body == "" && n.Image == "")
}
