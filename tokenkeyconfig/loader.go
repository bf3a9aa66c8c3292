package tokenkeyconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/keksclan/goTokenKey/tokenkey"
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"
)

// Loader loads a tokenkey.Config from a source.
type Loader interface {
	Load(ctx context.Context) (*tokenkey.Config, error)
}

// goLoader returns a static config.
type goLoader struct {
	cfg tokenkey.Config
}

// FromGo creates a Loader that returns the provided config directly.
func FromGo(cfg tokenkey.Config) Loader {
	return &goLoader{cfg: cfg}
}

func (l *goLoader) Load(_ context.Context) (*tokenkey.Config, error) {
	cfg := l.cfg
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// fileConfig is the on-disk shape shared by the JSON and YAML loaders.
type fileConfig struct {
	Transport           string `json:"transport" yaml:"transport"`
	TimeoutMs           int    `json:"timeout_ms" yaml:"timeout_ms"`
	MaxResponseBytes    int64  `json:"max_response_bytes" yaml:"max_response_bytes"`
	MaxIdleConnsPerHost int    `json:"max_idle_conns_per_host" yaml:"max_idle_conns_per_host"`
}

func (fc fileConfig) toConfig() tokenkey.Config {
	return tokenkey.Config{
		Transport:           tokenkey.TransportKind(fc.Transport),
		Timeout:             time.Duration(fc.TimeoutMs) * time.Millisecond,
		MaxResponseSize:     fc.MaxResponseBytes,
		MaxIdleConnsPerHost: fc.MaxIdleConnsPerHost,
	}
}

// jsonLoader loads config from a JSON file.
type jsonLoader struct {
	path string
}

// FromJSONFile creates a Loader that reads config from a JSON file.
func FromJSONFile(path string) Loader {
	return &jsonLoader{path: path}
}

func (l *jsonLoader) Load(_ context.Context) (*tokenkey.Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read json config: %w", err)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse json config: %w", err)
	}
	return validated(fc.toConfig())
}

// yamlLoader loads config from a YAML file.
type yamlLoader struct {
	path string
}

// FromYAMLFile creates a Loader that reads config from a YAML file.
func FromYAMLFile(path string) Loader {
	return &yamlLoader{path: path}
}

func (l *yamlLoader) Load(_ context.Context) (*tokenkey.Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read yaml config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}
	return validated(fc.toConfig())
}

// luaLoader loads config from a Lua file.
type luaLoader struct {
	path string
}

// FromLuaFile creates a Loader that reads config from a Lua file.
// The script must return a table with the same keys as the JSON format.
func FromLuaFile(path string) Loader {
	return &luaLoader{path: path}
}

func (l *luaLoader) Load(_ context.Context) (*tokenkey.Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read lua config file: %w", err)
	}
	return LoadLuaString(string(data))
}

// LoadLuaString parses a Lua config string and returns a tokenkey.Config.
// Exported for testing convenience.
func LoadLuaString(script string) (*tokenkey.Config, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Only open safe libs for config parsing
	for _, pair := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(pair.fn))
		L.Push(lua.LString(pair.name))
		L.Call(1, 0)
	}
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)

	if err := L.DoString(script); err != nil {
		return nil, fmt.Errorf("lua config execution: %w", err)
	}

	ret := L.Get(-1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("lua config must return a table, got %s", ret.Type().String())
	}

	fc := fileConfig{
		Transport:           getStringField(tbl, "transport"),
		TimeoutMs:           int(getNumberField(tbl, "timeout_ms")),
		MaxResponseBytes:    int64(getNumberField(tbl, "max_response_bytes")),
		MaxIdleConnsPerHost: int(getNumberField(tbl, "max_idle_conns_per_host")),
	}
	return validated(fc.toConfig())
}

func validated(cfg tokenkey.Config) (*tokenkey.Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

func getStringField(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

func getNumberField(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}
