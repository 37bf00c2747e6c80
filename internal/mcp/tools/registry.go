package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobzone/pkg/logging"
)

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	log    *logging.Logger
}

// Register applies the provided tool options
func Register(server *sdkmcp.Server, log *logging.Logger, opts ...Option) {
	if log == nil {
		log = logging.NewNop()
	}
	reg := &registry{server: server, log: log.Named("tools")}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
}
