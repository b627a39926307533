package config

import (
	"os"
	"path"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StoreConfig struct {
	// Path of the bbolt database file. Relative paths resolve under the workdir.
	Path string `yaml:"path"`
	// NodeID seeds the snowflake generator for record ids.
	NodeID int64 `yaml:"node_id"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type LinkCheckConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`
	Timeout int    `yaml:"timeout"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system" json:"system"`
	Web       WebConfig       `yaml:"web" json:"web"`
	Store     StoreConfig     `yaml:"store" json:"store"`
	Logger    LogConfig       `yaml:"logger" json:"logger"`
	LinkCheck LinkCheckConfig `yaml:"linkcheck" json:"linkcheck"`
}

// StorePath returns the absolute location of the bbolt file.
func (c *AppConfig) StorePath() string {
	if path.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return path.Join(c.System.Workdir, c.Store.Path)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "ShriyashKart",
		Location: "Asia/Kolkata",
		Workdir:  "/var/shriyashkart",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1816,
	},
	Store: StoreConfig{
		Path:   "data/catalog.db",
		NodeID: 1,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/shriyashkart/shriyashkart.log",
	},
	LinkCheck: LinkCheckConfig{
		Enabled: false,
		Cron:    "@every 6h",
		Timeout: 10,
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		f(v)
	}
}

// LoadConfig reads the yaml configuration file and applies environment
// overrides. A missing file falls back to defaults so the server can start
// from a bare environment.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("SHRIYASH_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("SHRIYASH_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("SHRIYASH_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("SHRIYASH_WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("SHRIYASH_STORE_PATH", func(v string) { cfg.Store.Path = v })
	setEnvValue("SHRIYASH_STORE_NODE_ID", func(v string) { cfg.Store.NodeID = cast.ToInt64(v) })
	setEnvValue("SHRIYASH_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvValue("SHRIYASH_LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })
	setEnvValue("SHRIYASH_LINKCHECK_ENABLED", func(v string) { cfg.LinkCheck.Enabled = cast.ToBool(v) })
	setEnvValue("SHRIYASH_LINKCHECK_CRON", func(v string) { cfg.LinkCheck.Cron = v })

	return cfg
}
