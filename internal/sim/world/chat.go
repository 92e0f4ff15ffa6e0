package world

import (
	"fmt"
	"time"

	"piratekingdoms.io/internal/protocol"
)

func (w *World) handleChatMessage(p *Player, text string) {
	msg := protocol.ChatMessage{
		ID:        fmt.Sprintf("C%d", w.nextChatNum.Add(1)),
		From:      p.Name,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
	w.chat = append(w.chat, msg)
	if len(w.chat) > w.cfg.ChatHistoryMax {
		w.chat = w.chat[len(w.chat)-w.cfg.ChatHistoryMax:]
	}
	w.broadcast(protocol.EventNewChatMessage, msg)
}
