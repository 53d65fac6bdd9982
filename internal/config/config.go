// Package config loads the resource limits and display options wisp's
// compiler, VM, and REPL run with.
//
// Values come from the environment, optionally seeded from a ".wisp.env"
// file in the working directory via github.com/joho/godotenv. Environment
// variables already set when the process starts always take precedence
// over anything in the file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envFile = ".wisp.env"

// Config holds the tunables read from the environment.
type Config struct {
	// StackSize is the number of operand-stack slots the VM allocates.
	StackSize int

	// GlobalsSize is the number of global-binding slots the VM allocates.
	GlobalsSize int

	// MaxFrames is the number of call frames the VM allocates.
	MaxFrames int

	// NoColor disables REPL styling, for dumb terminals and piped output.
	NoColor bool
}

// Load reads Config from the environment, loading .wisp.env first if present.
// A missing .wisp.env is not an error; only a malformed one is.
func Load() (Config, error) {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		StackSize:   envInt("WISP_STACK_SIZE", 2048),
		GlobalsSize: envInt("WISP_GLOBALS_SIZE", 65536),
		MaxFrames:   envInt("WISP_MAX_FRAMES", 1024),
		NoColor:     envBool("WISP_NO_COLOR", false),
	}

	return cfg, nil
}

func envInt(name string, fallback int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(name string, fallback bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
