package fcm

import (
	"strings"
)

// Target selects the message destination. It is implemented by Token,
// Topic and Condition only.
type Target interface {
	// wire field name: "token", "topic" or "condition"
	Kind() string
	Value() string
	validate() error
}

// Token is a device registration token
type Token string

// Topic name, with or without the "/topics/" prefix
type Topic string

// Condition is a boolean expression over topics, e.g.
// "'stock' in topics && 'tech' in topics"
type Condition string

const topicPrefix = "/topics/"

func (t Token) Kind() string  { return "token" }
func (t Token) Value() string { return string(t) }

func (t Token) validate() error {
	if len(t) == 0 {
		return newValidationError("token", "must not be empty")
	}
	return nil
}

func (t Topic) Kind() string { return "topic" }

// Value returns the topic name without the "/topics/" prefix
func (t Topic) Value() string {
	return strings.TrimPrefix(string(t), topicPrefix)
}

func (t Topic) validate() error {
	name := t.Value()
	if len(name) == 0 {
		return newValidationError("topic", "must not be empty")
	}
	if !topicPattern.MatchString(name) {
		return newValidationError("topic", "malformed topic name")
	}
	return nil
}

func (c Condition) Kind() string  { return "condition" }
func (c Condition) Value() string { return string(c) }

func (c Condition) validate() error {
	if len(strings.TrimSpace(string(c))) == 0 {
		return newValidationError("condition", "must not be empty")
	}
	return nil
}
