package loader

import (
	"fmt"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/joho/godotenv"
)

// DotenvSource reads .env files into an environment source. When a key
// appears in several files the last file wins.
func DotenvSource(paths ...string) (config.MapEnv, error) {
	vars, err := godotenv.Read(paths...)
	if err != nil {
		return nil, fmt.Errorf("reading dotenv files: %w", err)
	}

	return config.MapEnv(vars), nil
}

// OverlayEnv combines sources; earlier sources win over later ones.
type OverlayEnv []config.EnvSource

// Vars implements config.EnvSource.
func (o OverlayEnv) Vars() map[string]string {
	out := map[string]string{}

	for i := len(o) - 1; i >= 0; i-- {
		for k, v := range o[i].Vars() {
			out[k] = v
		}
	}

	return out
}
