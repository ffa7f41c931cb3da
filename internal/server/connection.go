package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/handrank/poker"
)

// Maximum message size allowed from peer
const maxMessageSize = 1024

var errBadRequest = errors.New("malformed request")

// Connection serves scoring requests on one websocket until the peer leaves
// or a deadline passes.
type Connection struct {
	conn   *websocket.Conn
	server *Server
	logger *log.Logger
	served int
}

func newConnection(conn *websocket.Conn, s *Server) *Connection {
	return &Connection{
		conn:   conn,
		server: s,
		logger: s.logger.WithPrefix("conn"),
	}
}

// serve handles requests in order, one response per request.
func (c *Connection) serve() {
	defer func() { _ = c.conn.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	for {
		_ = c.conn.SetReadDeadline(c.server.deadline(c.server.readTimeout))
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("Read failed", "error", err)
			}
			break
		}
		if kind != websocket.TextMessage {
			continue
		}

		resp := c.handle(data)
		_ = c.conn.SetWriteDeadline(c.server.deadline(c.server.writeTimeout))
		if err := c.conn.WriteJSON(resp); err != nil {
			c.logger.Error("Failed to write response", "error", err)
			break
		}
		c.served++
	}
	c.logger.Debug("Connection closed", "served", c.served)
}

func (c *Connection) handle(data []byte) *ScoreResponse {
	var req ScoreRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return newErrorResponse("", fmt.Errorf("%w: %v", errBadRequest, err))
	}

	h, err := poker.ParseHand(req.Cards)
	if err != nil {
		return newErrorResponse(req.ID, err)
	}
	s, err := poker.Classify(h)
	if err != nil {
		return newErrorResponse(req.ID, err)
	}
	score, err := c.server.scorer.Score(h)
	if err != nil {
		c.logger.Warn("Scoring failed", "hand", h, "error", err)
		return newErrorResponse(req.ID, err)
	}

	c.logger.Debug("Scored hand", "id", req.ID, "hand", h, "strength", s, "score", score)
	return newScoreResponse(req.ID, s, score)
}
