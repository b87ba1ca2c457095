package realtime

import (
	"strconv"
	"strings"
)

type FrameType string

const (
	FrameWelcome      FrameType = "welcome"
	FrameError        FrameType = "error"
	FrameNotification FrameType = "notification"
	FrameAck          FrameType = "ack"
)

// Frame is one JSON text message written to a websocket client.
type Frame struct {
	Type           FrameType `json:"type"`
	Message        string    `json:"message,omitempty"`
	UserID         int64     `json:"user_id,omitempty"`
	NotificationID int64     `json:"notification_id,omitempty"`
	Received       *string   `json:"received,omitempty"`
}

// Message is a Frame addressed to every client subscribed to Channel.
type Message struct {
	Channel string `json:"channel"`
	Frame   Frame  `json:"frame"`
}

func UserChannel(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

func WelcomeFrame(userID int64) Frame {
	return Frame{Type: FrameWelcome, UserID: userID}
}

func ErrorFrame(message string) Frame {
	return Frame{Type: FrameError, Message: message}
}

func NotificationFrame(message string, notificationID int64) Frame {
	return Frame{Type: FrameNotification, Message: message, NotificationID: notificationID}
}

func AckFrame(received string) Frame {
	return Frame{Type: FrameAck, Received: &received}
}

// ReplyTo answers one inbound text message: "ping" gets a pong, anything else is acknowledged verbatim.
func ReplyTo(text string) Frame {
	if strings.EqualFold(strings.TrimSpace(text), "ping") {
		return Frame{Type: FrameNotification, Message: "pong"}
	}
	return AckFrame(text)
}
