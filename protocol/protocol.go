/*
Package protocol defines the messages exchanged between the design-mode
overlay and its hosting application.

Every message is a plain structured object with a "type" discriminator.
The set is a closed tagged union: Decode rejects unknown discriminators
with ErrUnknownType, and callers are expected to ignore such messages
rather than fail.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message discriminators.
const (
	TypeEnable          = "enable"
	TypeDisable         = "disable"
	TypeToggle          = "toggle"
	TypeUpdateElement   = "update-element"
	TypeReady           = "ready"
	TypeEnabled         = "enabled"
	TypeDisabled        = "disabled"
	TypeElementSelected = "element-selected"
	TypeConsoleError    = "console-error"
	TypeInitError       = "init-error"
	TypeURLChanged      = "url-changed"
)

// ErrUnknownType is returned by Decode for unknown discriminators.
var ErrUnknownType = errors.New("unknown message type")

// Message is one member of the protocol's tagged union.
type Message interface {
	MessageType() string
}

// --- Host → overlay ------------------------------------------------------

// Enable switches the overlay into its active state.
type Enable struct{}

func (Enable) MessageType() string { return TypeEnable }

// Disable switches the overlay into its inactive state.
type Disable struct{}

func (Disable) MessageType() string { return TypeDisable }

// Toggle flips the overlay's state.
type Toggle struct{}

func (Toggle) MessageType() string { return TypeToggle }

// UpdateElement applies a text and/or style edit to a live element,
// resolved by component id plus instance index (first match when the
// index is absent). Nil TextContent means "leave text alone"; an empty
// style value means "remove the inline property".
type UpdateElement struct {
	ComponentID   string            `json:"componentId"`
	InstanceIndex *int              `json:"instanceIndex,omitempty"`
	TextContent   *string           `json:"textContent,omitempty"`
	Styles        map[string]string `json:"styles,omitempty"`
}

func (UpdateElement) MessageType() string { return TypeUpdateElement }

// --- Overlay → host ------------------------------------------------------

// Ready is sent once when the overlay has attached to its document.
type Ready struct{}

func (Ready) MessageType() string { return TypeReady }

// Enabled acknowledges a transition into the active state.
type Enabled struct{}

func (Enabled) MessageType() string { return TypeEnabled }

// Disabled acknowledges a transition into the inactive state.
type Disabled struct{}

func (Disabled) MessageType() string { return TypeDisabled }

// ElementDescription is the structured description of a selected
// element. It is a pure value: produced fresh on each selection, never
// mutated afterwards.
type ElementDescription struct {
	ComponentID      string            `json:"componentId"`
	ComponentName    string            `json:"componentName"`
	File             string            `json:"file,omitempty"`
	Line             int               `json:"line,omitempty"`
	Column           int               `json:"column,omitempty"`
	ContentType      string            `json:"contentType"`
	InstanceIndex    int               `json:"instanceIndex"`
	Tag              string            `json:"tag"`
	Classes          []string          `json:"classes"`
	TextContent      string            `json:"textContent"`
	HasChildElements bool              `json:"hasChildElements"`
	Styles           map[string]string `json:"styles"`
}

// Content classifications for ElementDescription.ContentType.
const (
	ContentStaticText  = "static-text"
	ContentDynamic     = "dynamic"
	ContentEmpty       = "empty"
	ContentHasChildren = "has-children"
)

// ElementSelected reports a selection to the host.
type ElementSelected struct {
	ElementDescription
}

func (ElementSelected) MessageType() string { return TypeElementSelected }

// ConsoleError forwards an uncaught or logged error to the host.
type ConsoleError struct {
	Message   string `json:"message"`
	Filename  string `json:"filename,omitempty"`
	Lineno    int    `json:"lineno,omitempty"`
	Colno     int    `json:"colno,omitempty"`
	Stack     string `json:"stack,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (ConsoleError) MessageType() string { return TypeConsoleError }

// InitError reports that the overlay's own initialization failed.
type InitError struct {
	Message   string `json:"message"`
	Stack     string `json:"stack"`
	Timestamp int64  `json:"timestamp"`
}

func (InitError) MessageType() string { return TypeInitError }

// URLChanged reports a navigation, with cache-buster query parameters
// already stripped.
type URLChanged struct {
	URL string `json:"url"`
}

func (URLChanged) MessageType() string { return TypeURLChanged }

// --- Encoding -------------------------------------------------------------

// Encode renders a message with its type discriminator spliced in.
func Encode(m Message) ([]byte, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding %s message: %w", m.MessageType(), err)
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("encoding %s message: %w", m.MessageType(), err)
	}
	fields["type"] = m.MessageType()
	return json.Marshal(fields)
}

// Decode parses a message by its type discriminator. Unknown
// discriminators yield ErrUnknownType.
func Decode(data []byte) (Message, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("undecodable message: %w", err)
	}
	var m Message
	switch head.Type {
	case TypeEnable:
		m = Enable{}
	case TypeDisable:
		m = Disable{}
	case TypeToggle:
		m = Toggle{}
	case TypeReady:
		m = Ready{}
	case TypeEnabled:
		m = Enabled{}
	case TypeDisabled:
		m = Disabled{}
	case TypeUpdateElement:
		var v UpdateElement
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		m = v
	case TypeElementSelected:
		var v ElementSelected
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		m = v
	case TypeConsoleError:
		var v ConsoleError
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		m = v
	case TypeInitError:
		var v InitError
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		m = v
	case TypeURLChanged:
		var v URLChanged
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		m = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, head.Type)
	}
	return m, nil
}
