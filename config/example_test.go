package config_test

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-config/config"
	yamlparser "github.com/0xalexb/hjarta-config/config/parser/yaml"
)

// AppConfig represents application configuration.
type AppConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SetDefaults sets default values for the configuration.
func (c *AppConfig) SetDefaults() bool {
	changed := false

	if c.Host == "" {
		c.Host = "localhost"
		changed = true
	}

	if c.Port == 0 {
		c.Port = 8080
		changed = true
	}

	return changed
}

// Validate validates the configuration.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}

// StaticDataFetcher implements config.DataFetcher with static data.
type StaticDataFetcher struct {
	Data []byte
}

// Fetch returns the static data.
func (f *StaticDataFetcher) Fetch() ([]byte, error) {
	return f.Data, nil
}

func mustParse(data string) *config.Config {
	cfg, err := config.Parse(yamlparser.NewParser(), &StaticDataFetcher{Data: []byte(data)},
		config.ParseOptions{OriginDescription: "example"})
	if err != nil {
		panic(err)
	}

	return cfg
}

func ExampleConfig_GetInt() {
	cfg := mustParse("a:\n  b:\n    c: 1\n")

	c, err := cfg.GetInt("a.b.c")
	fmt.Println(c, err)

	_, err = cfg.GetInt("a.b.missing")
	fmt.Println(errors.Is(err, config.ErrMissing))

	// Output:
	// 1 <nil>
	// true
}

func ExampleConfig_HasPathOrNull() {
	cfg := mustParse("x: null\n")

	has, _ := cfg.HasPath("x")
	hasOrNull, _ := cfg.HasPathOrNull("x")

	fmt.Println(has, hasOrNull)

	// Output:
	// false true
}

func ExampleConfig_WithFallback() {
	overrides := mustParse("a: 1\nb:\n  x: 1\n")
	defaults := mustParse("a: 2\nb:\n  y: 2\nc: 3\n")

	merged, err := overrides.WithFallback(defaults)
	if err != nil {
		fmt.Println(err)

		return
	}

	for _, entry := range merged.EntrySet() {
		fmt.Println(entry.Path, entry.Value.Render())
	}

	// Output:
	// a 1
	// b.x 1
	// b.y 2
	// c 3
}

func ExampleConfig_Resolve() {
	cfg := mustParse("host: example.com\nurl: https://${host}/api\n")

	_, err := cfg.GetString("url")
	fmt.Println(errors.Is(err, config.ErrNotResolved))

	resolved, err := cfg.Resolve()
	if err != nil {
		fmt.Println(err)

		return
	}

	url, _ := resolved.GetString("url")
	fmt.Println(url)

	// Output:
	// true
	// https://example.com/api
}

func ExampleEnvVariablesAsConfig() {
	cfg := config.EnvVariablesAsConfig(config.MapEnv{"FOO": "bar"})

	foo, _ := cfg.GetString("FOO")
	v, _ := cfg.GetValue("FOO")

	fmt.Println(foo, v.Origin().Description())

	// Output:
	// bar env var FOO
}

func ExampleProvider() {
	cfg := mustParse("server:\n  port: 9090\n")

	appCfg, err := config.Provider(&AppConfig{}, "server")(cfg)
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(appCfg.Host, appCfg.Port)

	// Output:
	// localhost 9090
}
