package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/Comcast/trindi/sio"

	"github.com/jsccast/yaml"
)

// Config is everything main needs.  It can come from a YAML file
// (-c), and flags override what the file says.
type Config struct {
	ConfigFile string `json:"-" yaml:"-"`

	// Domain is a domain YAML file.  Empty means the built-in
	// travel domain.
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`

	// Lexicon is a lexicon YAML file.  When Domain is given
	// without a Lexicon, the grammar is just compact moves.
	Lexicon string `json:"lexicon,omitempty" yaml:"lexicon,omitempty"`

	// Compact forces the compact-move grammar.
	Compact bool `json:"compact,omitempty" yaml:"compact,omitempty"`

	// Facts is a YAML list of fact tables.
	Facts string `json:"facts,omitempty" yaml:"facts,omitempty"`

	// Bolt is a bbolt file with fact tables, and Table names the
	// one to use.
	Bolt  string `json:"bolt,omitempty" yaml:"bolt,omitempty"`
	Table string `json:"table,omitempty" yaml:"table,omitempty"`

	// Script is an ECMAScript file that defines consult().
	Script string `json:"script,omitempty" yaml:"script,omitempty"`

	// IO is "stdio", "ws", or "mqtt".
	IO string `json:"io" yaml:"io"`

	// HTTP is the WebSocket service address.
	HTTP string `json:"http,omitempty" yaml:"http,omitempty"`

	MQTT     sio.MQTTOptions `json:"mqtt" yaml:"mqtt"`
	InTopic  string          `json:"inTopic,omitempty" yaml:"inTopic,omitempty"`
	OutTopic string          `json:"outTopic,omitempty" yaml:"outTopic,omitempty"`

	Verbose    bool          `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Trace      bool          `json:"trace,omitempty" yaml:"trace,omitempty"`
	PrintState bool          `json:"printState,omitempty" yaml:"printState,omitempty"`
	Timestamps bool          `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
	Echo       bool          `json:"echo,omitempty" yaml:"echo,omitempty"`
	Limit      int           `json:"limit,omitempty" yaml:"limit,omitempty"`
	Timeout    time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultConfig is a console dialogue in the travel domain.
func DefaultConfig() Config {
	return Config{
		IO:       "stdio",
		HTTP:     ":8080",
		MQTT:     sio.DefaultMQTTOptions,
		InTopic:  "trindi/in",
		OutTopic: "trindi/out",
		Limit:    1000,
	}
}

// flags binds flags to the Config using its current values as
// defaults.
func (c *Config) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&c.ConfigFile, "c", c.ConfigFile, "optional YAML configuration file")
	fs.StringVar(&c.Domain, "d", c.Domain, "domain YAML file (default: travel)")
	fs.StringVar(&c.Lexicon, "l", c.Lexicon, "lexicon YAML file")
	fs.BoolVar(&c.Compact, "compact", c.Compact, "use the compact-move grammar")
	fs.StringVar(&c.Facts, "f", c.Facts, "fact tables YAML file")
	fs.StringVar(&c.Bolt, "b", c.Bolt, "bbolt file with fact tables")
	fs.StringVar(&c.Table, "t", c.Table, "table name in the bbolt file")
	fs.StringVar(&c.Script, "s", c.Script, "ECMAScript database file")
	fs.StringVar(&c.IO, "io", c.IO, "stdio, ws, or mqtt")
	fs.StringVar(&c.HTTP, "h", c.HTTP, "WebSocket service address")

	// Follow mosquitto_sub command line args where we can.
	fs.StringVar(&c.MQTT.Broker, "broker", c.MQTT.Broker, "MQTT broker hostname")
	fs.IntVar(&c.MQTT.Port, "p", c.MQTT.Port, "MQTT broker port")
	fs.StringVar(&c.MQTT.ClientID, "i", c.MQTT.ClientID, "MQTT client id")
	fs.StringVar(&c.MQTT.Username, "u", c.MQTT.Username, "MQTT username")
	fs.StringVar(&c.MQTT.Password, "P", c.MQTT.Password, "MQTT password")
	fs.StringVar(&c.InTopic, "in", c.InTopic, "MQTT topic[:qos] for user input")
	fs.StringVar(&c.OutTopic, "out", c.OutTopic, "MQTT topic[:qos] for system output")

	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
	fs.BoolVar(&c.Trace, "trace", c.Trace, "log rule traces")
	fs.BoolVar(&c.PrintState, "state", c.PrintState, "print the information state after each update")
	fs.BoolVar(&c.Timestamps, "ts", c.Timestamps, "timestamp console output")
	fs.BoolVar(&c.Echo, "echo", c.Echo, "echo console input")
	fs.IntVar(&c.Limit, "limit", c.Limit, "maximum rule applications per update")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "optional dialogue timeout")

	return fs
}

// ParseConfig parses the command line.  If it names a configuration
// file, that file provides the defaults and the command line is
// parsed again on top of it.
func ParseConfig(args []string) (*Config, error) {
	c := DefaultConfig()
	if err := c.flags("trindi").Parse(args); err != nil {
		return nil, err
	}
	if c.ConfigFile == "" {
		return &c, nil
	}

	filename := c.ConfigFile
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	f := DefaultConfig()
	if err = yaml.Unmarshal(src, &f); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	f.ConfigFile = filename
	if err = f.flags("trindi").Parse(args); err != nil {
		return nil, err
	}
	return &f, nil
}
