package decode

import (
	"testing"

	"github.com/alex05447/miniconfig/dynconfig"
	"github.com/alex05447/miniconfig/value"
)

type serverConfig struct {
	Host    string
	Port    int64
	Enabled bool
	Tags    []string
}

func TestIntoStruct(t *testing.T) {
	root := dynconfig.NewTable()
	root.Set("host", value.NewStr("localhost"))
	root.Set("port", value.NewI64(8080))
	root.Set("enabled", value.NewBool(true))

	tags := dynconfig.NewArray()
	tags.Push(value.NewStr("a"))
	tags.Push(value.NewStr("b"))
	root.Set("tags", value.NewArray(tags))

	var cfg serverConfig
	if err := Into(root, &cfg); err != nil {
		t.Fatalf("Into: %v", err)
	}
	if cfg.Host != "localhost" || cfg.Port != 8080 || !cfg.Enabled {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.Tags) != 2 || cfg.Tags[0] != "a" || cfg.Tags[1] != "b" {
		t.Fatalf("cfg.Tags = %v", cfg.Tags)
	}
}

func TestIntoNestedStruct(t *testing.T) {
	type app struct {
		Server serverConfig
	}
	root := dynconfig.NewTable()
	server := dynconfig.NewTable()
	server.Set("host", value.NewStr("db"))
	server.Set("port", value.NewI64(5432))
	root.Set("server", value.NewTable(server))

	var cfg app
	if err := Into(root, &cfg); err != nil {
		t.Fatalf("Into: %v", err)
	}
	if cfg.Server.Host != "db" || cfg.Server.Port != 5432 {
		t.Fatalf("cfg.Server = %+v", cfg.Server)
	}
}

func TestIntoMap(t *testing.T) {
	root := dynconfig.NewTable()
	root.Set("x", value.NewI64(1))

	var m map[string]any
	if err := Into(root, &m); err != nil {
		t.Fatalf("Into: %v", err)
	}
	if m["x"] != int64(1) {
		t.Fatalf("m[x] = %v, want int64(1)", m["x"])
	}
}
