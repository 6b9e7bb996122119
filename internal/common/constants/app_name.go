package constants

const (
	AppTgCart       = "tgcart"
	AppCartServer   = "tgcart-server"
	AppCartWebApp   = "tgcart-webapp"
	EnvDevelopment  = "development"
	EnvProduction   = "production"
	DefaultLogPath  = "/var/log/tgcart.log"
	DefaultEnvPath  = "./env"
	DefaultEnvType  = "yaml"
	DefaultCartPath = "carts"
)
