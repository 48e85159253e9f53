package model

// ChatMessage is one message exchanged in a direct conversation.
type ChatMessage struct {
	Message string `json:"message"`
	Sender  int64  `json:"sender"`
}

// OutgoingChatMessage is the frame written to the chat socket.
type OutgoingChatMessage struct {
	Message string `json:"message"`
}

// ConnState describes the lifecycle of a chat socket.
type ConnState string

const (
	ConnIdle       ConnState = "idle"
	ConnConnecting ConnState = "connecting"
	ConnOpen       ConnState = "open"
	ConnClosed     ConnState = "closed"
	ConnFailed     ConnState = "failed"
)
