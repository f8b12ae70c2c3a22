package config

// New returns the default configuration.
func New() *Config {
	return &Config{
		Debug:       false,
		DisableANSI: false,
		ConfigPath:  ".",
		Trace: Trace{
			SysIO: false,
		},
	}
}
