package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"noetica/internal/cortex"
	"noetica/internal/eco"
	"noetica/internal/mind"
	"noetica/pkg/noetica"
)

// runConfig mirrors the flags of the run command so repeatable runs can be
// described in one YAML file. Flags set on the command line win over file
// values.
type runConfig struct {
	Ticks        int   `yaml:"ticks"`
	Seed         int64 `yaml:"seed"`
	CaptureEvery int   `yaml:"capture_every"`

	Mind struct {
		PhasePeriod int `yaml:"phase_period"`
	} `yaml:"mind"`

	Eco struct {
		Width     float64 `yaml:"width"`
		Height    float64 `yaml:"height"`
		Producers int     `yaml:"producers"`
		Consumers int     `yaml:"consumers"`
		Predators int     `yaml:"predators"`
		Symbionts int     `yaml:"symbionts"`
	} `yaml:"eco"`

	Cortex struct {
		Threads       int `yaml:"threads"`
		AttentionPool int `yaml:"attention_pool"`
		ReflectionMax int `yaml:"reflection_max"`
	} `yaml:"cortex"`
}

func loadRunConfig(path string) (runConfig, error) {
	var cfg runConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return runConfig{}, fmt.Errorf("read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return runConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c runConfig) request() noetica.RunRequest {
	var m mind.Config
	m.PhasePeriod = c.Mind.PhasePeriod

	var e eco.Config
	e.Width = c.Eco.Width
	e.Height = c.Eco.Height
	e.Producers = c.Eco.Producers
	e.Consumers = c.Eco.Consumers
	e.Predators = c.Eco.Predators
	e.Symbionts = c.Eco.Symbionts

	var x cortex.Config
	x.Threads = c.Cortex.Threads
	x.AttentionPool = c.Cortex.AttentionPool
	x.ReflectionMax = c.Cortex.ReflectionMax

	return noetica.RunRequest{
		Ticks:        c.Ticks,
		Seed:         c.Seed,
		CaptureEvery: c.CaptureEvery,
		Mind:         m,
		Eco:          e,
		Cortex:       x,
	}
}
