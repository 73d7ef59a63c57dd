package handler

import (
	"bedmatch/backend/internal/gateway"
	"bedmatch/backend/internal/storage"
)

// Handler wires the HTTP surface to the gateway hub and storage.
type Handler struct {
	Hub       *gateway.Hub
	Router    *gateway.Router
	Store     storage.Storage
	JWTSecret []byte
}

func NewHandler(hub *gateway.Hub, router *gateway.Router, store storage.Storage, jwtSecret []byte) *Handler {
	return &Handler{Hub: hub, Router: router, Store: store, JWTSecret: jwtSecret}
}
