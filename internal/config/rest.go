package config

// Generic REST-service keys shared by every service built on this
// scaffold. The proxy schema extends this base; none of the proxy's own
// keys override a base entry.
const (
	ListenerConfig        = "listeners"
	ShutdownGraceMsConfig = "shutdown.graceful.ms"
	RequestLoggingConfig  = "request.logging.enable"
)

// BaseRestSchema returns the schema every REST service starts from.
func BaseRestSchema() *Schema {
	return NewSchema().
		Define(KeyDef{
			Name:       ListenerConfig,
			Type:       TypeString,
			Default:    ":8082",
			Importance: ImportanceHigh,
			Doc:        "Address the HTTP server listens on, in host:port form.",
		}).
		Define(KeyDef{
			Name:       ShutdownGraceMsConfig,
			Type:       TypeInt,
			Default:    1000,
			Importance: ImportanceLow,
			Doc: "Time to wait for in-flight requests to complete during shutdown " +
				"before the server is closed forcefully.",
		}).
		Define(KeyDef{
			Name:       RequestLoggingConfig,
			Type:       TypeBool,
			Default:    true,
			Importance: ImportanceLow,
			Doc:        "Whether to log one line per handled HTTP request.",
		})
}
