package bootstrap

import (
	"github.com/kbukum/registry-api/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig satisfies it via promoted
// methods; embedding structs usually override ApplyDefaults and Validate
// and call the embedded versions first.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
