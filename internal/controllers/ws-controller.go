package controllers

import (
	"net/http"

	"atolye-takip/pkg/utils"
	ws "atolye-takip/pkg/websocket"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the SPA's origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsController struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewWsController(hub *ws.Hub, logger *zap.Logger) *WsController {
	return &WsController{hub: hub, logger: logger}
}

// BoardStream upgrades the connection and attaches it to the board hub.
func (c *WsController) BoardStream(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Warn("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := ws.NewClient(c.hub, conn, userID)
	c.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
	return nil
}
