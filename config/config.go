// Package config provides configuration structures for the wireline
// tooling.
package config

// Config carries the settings shared by every command. Values come from
// flags and, when present, a wireline.yml in the config path, merged
// through viper.
type Config struct {
	Debug       bool   `json:"debug" yaml:"debug" mapstructure:"debug"`
	DisableANSI bool   `json:"disableANSI" yaml:"disableANSI" mapstructure:"disableANSI"`
	ConfigPath  string `json:"configPath" yaml:"configPath" mapstructure:"configPath"`
	Trace       Trace  `json:"trace" yaml:"trace" mapstructure:"trace"`
}

// Trace controls the sysio trace stream of the platform layer.
type Trace struct {
	SysIO bool `json:"sysio" yaml:"sysio" mapstructure:"sysio"`
}
