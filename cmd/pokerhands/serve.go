package main

import (
	"time"

	"github.com/lox/pokerhands/internal/server"
)

// ServeCmd runs the WebSocket evaluation service
type ServeCmd struct {
	Addr        string        `env:"POKERHANDS_ADDR" help:"Listen address, e.g. ':8080' (default from config)"`
	ReadTimeout time.Duration `help:"Close connections idle for this long (default from config)"`
}

func (c *ServeCmd) Run(env *Env) error {
	addr := c.Addr
	if addr == "" {
		addr = env.Config.Server.Addr()
	}
	timeout := env.Config.Server.ReadTimeout()
	if c.ReadTimeout > 0 {
		timeout = c.ReadTimeout
	}

	s := server.NewServer(addr, env.Logger,
		server.WithClock(env.Clock),
		server.WithReadTimeout(timeout))
	return s.Start(env.Ctx)
}
