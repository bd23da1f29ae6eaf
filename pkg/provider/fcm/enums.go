package fcm

import (
	"encoding/json"
	"fmt"

	"github.com/dialogs/dialog-push-fcm/pkg/enum"
	"github.com/pkg/errors"
)

const (
	AndroidMessagePriorityUnspecified AndroidMessagePriority = 0
	AndroidMessagePriorityNormal      AndroidMessagePriority = 1
	AndroidMessagePriorityHigh        AndroidMessagePriority = 2
)

// AndroidMessagePriority values:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#androidmessagepriority
type AndroidMessagePriority int

var _AndroidMessagePriorityEnum = enum.New("android message priority").
	Add(AndroidMessagePriorityNormal, "NORMAL").
	Add(AndroidMessagePriorityHigh, "HIGH")

func AndroidMessagePriorityByString(src string) (AndroidMessagePriority, bool) {
	val, ok := _AndroidMessagePriorityEnum.GetByString(src)
	if !ok {
		return AndroidMessagePriorityUnspecified, false
	}
	return val.(AndroidMessagePriority), true
}

func AndroidMessagePriorityStringKeys() []string {
	return _AndroidMessagePriorityEnum.StringKeys()
}

func (p AndroidMessagePriority) String() string {
	val, ok := _AndroidMessagePriorityEnum.GetByIndex(p)
	if !ok {
		return fmt.Sprintf("invalid android message priority: %d", p)
	}
	return val
}

func (p AndroidMessagePriority) valid() bool {
	_, ok := _AndroidMessagePriorityEnum.GetByIndex(p)
	return ok
}

func (p AndroidMessagePriority) MarshalJSON() ([]byte, error) {
	return marshalToken(_AndroidMessagePriorityEnum, p)
}

func (p *AndroidMessagePriority) UnmarshalJSON(data []byte) error {
	val, err := unmarshalToken(_AndroidMessagePriorityEnum, data)
	if err != nil {
		return err
	}
	*p = val.(AndroidMessagePriority)
	return nil
}

const (
	NotificationPriorityUnspecified NotificationPriority = 0
	NotificationPriorityMin         NotificationPriority = 1
	NotificationPriorityLow         NotificationPriority = 2
	NotificationPriorityDefault     NotificationPriority = 3
	NotificationPriorityHigh        NotificationPriority = 4
	NotificationPriorityMax         NotificationPriority = 5
)

// NotificationPriority values:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#notificationpriority
type NotificationPriority int

var _NotificationPriorityEnum = enum.New("notification priority").
	Add(NotificationPriorityMin, "PRIORITY_MIN").
	Add(NotificationPriorityLow, "PRIORITY_LOW").
	Add(NotificationPriorityDefault, "PRIORITY_DEFAULT").
	Add(NotificationPriorityHigh, "PRIORITY_HIGH").
	Add(NotificationPriorityMax, "PRIORITY_MAX")

func NotificationPriorityByString(src string) (NotificationPriority, bool) {
	val, ok := _NotificationPriorityEnum.GetByString(src)
	if !ok {
		return NotificationPriorityUnspecified, false
	}
	return val.(NotificationPriority), true
}

func NotificationPriorityStringKeys() []string {
	return _NotificationPriorityEnum.StringKeys()
}

func (p NotificationPriority) String() string {
	val, ok := _NotificationPriorityEnum.GetByIndex(p)
	if !ok {
		return fmt.Sprintf("invalid notification priority: %d", p)
	}
	return val
}

func (p NotificationPriority) valid() bool {
	_, ok := _NotificationPriorityEnum.GetByIndex(p)
	return ok
}

func (p NotificationPriority) MarshalJSON() ([]byte, error) {
	return marshalToken(_NotificationPriorityEnum, p)
}

func (p *NotificationPriority) UnmarshalJSON(data []byte) error {
	val, err := unmarshalToken(_NotificationPriorityEnum, data)
	if err != nil {
		return err
	}
	*p = val.(NotificationPriority)
	return nil
}

const (
	VisibilityUnspecified Visibility = 0
	VisibilityPrivate     Visibility = 1
	VisibilityPublic      Visibility = 2
	VisibilitySecret      Visibility = 3
)

// Visibility values:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages#visibility
type Visibility int

var _VisibilityEnum = enum.New("visibility").
	Add(VisibilityPrivate, "PRIVATE").
	Add(VisibilityPublic, "PUBLIC").
	Add(VisibilitySecret, "SECRET")

func VisibilityByString(src string) (Visibility, bool) {
	val, ok := _VisibilityEnum.GetByString(src)
	if !ok {
		return VisibilityUnspecified, false
	}
	return val.(Visibility), true
}

func VisibilityStringKeys() []string {
	return _VisibilityEnum.StringKeys()
}

func (v Visibility) String() string {
	val, ok := _VisibilityEnum.GetByIndex(v)
	if !ok {
		return fmt.Sprintf("invalid visibility: %d", v)
	}
	return val
}

func (v Visibility) valid() bool {
	_, ok := _VisibilityEnum.GetByIndex(v)
	return ok
}

func (v Visibility) MarshalJSON() ([]byte, error) {
	return marshalToken(_VisibilityEnum, v)
}

func (v *Visibility) UnmarshalJSON(data []byte) error {
	val, err := unmarshalToken(_VisibilityEnum, data)
	if err != nil {
		return err
	}
	*v = val.(Visibility)
	return nil
}

// SoundDefault plays the default device sound
const SoundDefault = "default"

func marshalToken(e *enum.Enum, index interface{}) ([]byte, error) {

	val, ok := e.GetByIndex(index)
	if !ok {
		return nil, errors.Errorf("%s: no wire token for %v", e.Name(), index)
	}

	return json.Marshal(val)
}

func unmarshalToken(e *enum.Enum, data []byte) (interface{}, error) {

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return nil, errors.Wrap(err, e.Name())
	}

	val, ok := e.GetByString(str)
	if !ok {
		return nil, errors.Errorf("%s: unknown token %q", e.Name(), str)
	}

	return val, nil
}
