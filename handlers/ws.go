package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/Coderanger08/FinGenie/middleware"
	"github.com/Coderanger08/FinGenie/utils"
)

// WSHandler pushes change notifications to a user's open clients so every
// device refreshes when a transaction, budget, or chat turn lands.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive tuned for cloud hosts that kill idle connections
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		if id, ok := userID.(string); ok {
			utils.LogWebSocket("connect", id)
		}
	})

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		if id, ok := userID.(string); ok {
			utils.LogWebSocket("disconnect", id)
		}
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeWarn("[WS] connection error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request. The route sits behind AuthMiddleware, so
// the session is tagged with the authenticated user. The tag travels as a
// per-request session key; handlers are registered once in NewWSHandler, so
// concurrent upgrades cannot cross-tag each other's sessions.
func (h *WSHandler) HandleWS(c *gin.Context) {
	userID := middleware.GetUserID(c)

	keys := map[string]interface{}{"user_id": userID}
	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		utils.SafeWarn("[WS] failed to upgrade connection: %v", err)
	}
}

// BroadcastUpdate signals all of one user's sessions that something changed.
func (h *WSHandler) BroadcastUpdate(userID string, updateType string) {
	msg := []byte(`{"type": "` + updateType + `"}`)

	err := h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, exists := s.Get("user_id")
		return exists && id == userID
	})
	if err != nil {
		utils.SafeWarn("[WS] broadcast to user %s failed: %v", utils.MaskID(userID), err)
	}
}
