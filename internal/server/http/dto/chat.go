package dto

import "github.com/polkiloo/iowasensors/internal/domain/model"

// ChatInputRequest replaces the chat input buffer.
type ChatInputRequest struct {
	Text string `json:"text"`
}

// ChatResponse is a snapshot of the chat view.
type ChatResponse struct {
	FriendID *int64              `json:"friend_id"`
	State    model.ConnState     `json:"state"`
	Messages []model.ChatMessage `json:"messages"`
	Input    string              `json:"input"`
}
