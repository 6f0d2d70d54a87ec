package cahn

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is a flat, dotted-path settings map shared by the driver and
// any future embedder. Values are typed at the point they're set; a
// mismatched Get/Set pair is a programming error and panics rather
// than silently coercing.
type Config map[string]*cfgVal

// NewConfig returns a Config primed with every default the driver
// relies on being present.
func NewConfig() *Config {
	m := make(Config)
	m.SetBool("driver.dump_source", false)
	m.SetBool("driver.dump_tokens", false)
	m.SetBool("driver.dump_ast", false)
	m.SetBool("driver.dump_bytecode", false)
	m.SetBool("driver.gc_stats", false)
	m.SetBool("vm.collect_on_every_alloc", true)
	return &m
}

type cfgValType int

const (
	cfgValTypeUndefined cfgValType = iota
	cfgValTypeBool
	cfgValTypeInt
	cfgValTypeString
)

func (vt cfgValType) String() string {
	return map[cfgValType]string{
		cfgValTypeUndefined: "undefined",
		cfgValTypeBool:      "bool",
		cfgValTypeInt:       "int",
		cfgValTypeString:    "string",
	}[vt]
}

type cfgVal struct {
	typ      cfgValType
	asBool   bool
	asInt    int
	asString string
}

func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValTypeUndefined {
		panic(fmt.Sprintf("cahn: can't assign `%s` to type `%s`", vt, v.typ))
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		panic(fmt.Sprintf("cahn: can't retrieve `%s` from `%s` variable", vt, v.typ))
	}
}

func (c *Config) SetBool(path string, v bool) {
	if _, ok := (*c)[path]; !ok {
		(*c)[path] = &cfgVal{}
	}
	(*c)[path].assignType(cfgValTypeBool)
	(*c)[path].asBool = v
}

func (c *Config) SetInt(path string, v int) {
	if _, ok := (*c)[path]; !ok {
		(*c)[path] = &cfgVal{}
	}
	(*c)[path].assignType(cfgValTypeInt)
	(*c)[path].asInt = v
}

func (c *Config) SetString(path string, v string) {
	if _, ok := (*c)[path]; !ok {
		(*c)[path] = &cfgVal{}
	}
	(*c)[path].assignType(cfgValTypeString)
	(*c)[path].asString = v
}

func (c *Config) GetBool(path string) bool {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValTypeBool)
		return val.asBool
	}
	panic(fmt.Sprintf("cahn: bool setting `%s` does not exist", path))
}

func (c *Config) GetInt(path string) int {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValTypeInt)
		return val.asInt
	}
	panic(fmt.Sprintf("cahn: int setting `%s` does not exist", path))
}

func (c *Config) GetString(path string) string {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValTypeString)
		return val.asString
	}
	panic(fmt.Sprintf("cahn: string setting `%s` does not exist", path))
}

// fileConfig is the shape of an on-disk TOML config file: a nested
// table mirroring the dotted paths of Config. Only fields present in
// the file override NewConfig's defaults.
type fileConfig struct {
	Driver struct {
		DumpSource    *bool `toml:"dump_source"`
		DumpTokens    *bool `toml:"dump_tokens"`
		DumpAst       *bool `toml:"dump_ast"`
		DumpBytecode  *bool `toml:"dump_bytecode"`
		GCStats       *bool `toml:"gc_stats"`
	} `toml:"driver"`
	VM struct {
		CollectOnEveryAlloc *bool `toml:"collect_on_every_alloc"`
	} `toml:"vm"`
}

// LoadConfigFile reads a TOML file at path and layers it on top of
// NewConfig's defaults.
func LoadConfigFile(path string) (*Config, error) {
	cfg := NewConfig()

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("cahn: reading config %s: %w", path, err)
	}

	setBoolIfPresent(cfg, "driver.dump_source", fc.Driver.DumpSource)
	setBoolIfPresent(cfg, "driver.dump_tokens", fc.Driver.DumpTokens)
	setBoolIfPresent(cfg, "driver.dump_ast", fc.Driver.DumpAst)
	setBoolIfPresent(cfg, "driver.dump_bytecode", fc.Driver.DumpBytecode)
	setBoolIfPresent(cfg, "driver.gc_stats", fc.Driver.GCStats)
	setBoolIfPresent(cfg, "vm.collect_on_every_alloc", fc.VM.CollectOnEveryAlloc)

	return cfg, nil
}

func setBoolIfPresent(cfg *Config, path string, v *bool) {
	if v != nil {
		cfg.SetBool(path, *v)
	}
}
