package app

import (
	"github.com/screenwire/screenwire/internal/registry"
	"github.com/screenwire/screenwire/services/env_vars"
	"github.com/screenwire/screenwire/services/http_client"
	"github.com/screenwire/screenwire/services/socketio_client"
)

// coreModules is the definitive list of all service modules that are
// compiled into the screenwire binary.
var coreModules = []registry.Module{
	&env_vars.Module{},
	&http_client.Module{},
	&socketio_client.Module{},
}
