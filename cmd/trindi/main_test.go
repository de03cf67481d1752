package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Comcast/trindi/sio"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]string{"-io", "ws", "-v"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IO != "ws" || !cfg.Verbose || cfg.Limit != 1000 || cfg.MQTT.Port != 1883 {
		t.Fatalf("%#v", cfg)
	}
}

func TestParseConfigFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "trindi.yaml")
	src := `
io: mqtt
limit: 50
inTopic: agent/in:1
mqtt:
  broker: tcp://broker
  port: 8883
`
	if err := os.WriteFile(filename, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseConfig([]string{"-c", filename, "-limit", "60"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IO != "mqtt" || cfg.InTopic != "agent/in:1" || cfg.OutTopic != "trindi/out" {
		t.Fatalf("%#v", cfg)
	}
	if cfg.MQTT.Broker != "tcp://broker" || cfg.MQTT.Port != 8883 || cfg.MQTT.KeepAlive != 10 {
		t.Fatalf("%#v", cfg.MQTT)
	}
	// The flag wins.
	if cfg.Limit != 60 {
		t.Fatal(cfg.Limit)
	}
}

func TestSystemDefaults(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	s, err := NewSystem(ctx, &cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)

	port := sio.NewScript("visa", "paris")
	d, err := s.NewDME(port)
	if err != nil {
		t.Fatal(err)
	}
	if err = d.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(port.Outputs, "|"); !strings.Contains(got, "No, you don't need a visa.") {
		t.Fatal(got)
	}
}

func TestSystemNeedsDatabase(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "d.yaml")
	if err := os.WriteFile(filename, []byte("preds0: [raining]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Domain = filename
	if _, err := NewSystem(context.Background(), &cfg); err == nil {
		t.Fatal("should have complained")
	}

	script := filepath.Join(dir, "db.js")
	if err := os.WriteFile(script, []byte("function consult(q, cxt) { return 'raining()'; }"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Script = script
	s, err := NewSystem(context.Background(), &cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.Grammar == nil || s.Database == nil {
		t.Fatal(s)
	}
}
