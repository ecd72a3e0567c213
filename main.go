package main

import (
	"os"

	"github.com/emberengine/ember/engine"
	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/testbed"
)

func main() {
	config, err := engine.LoadApplicationConfig("ember.toml")
	if err != nil {
		core.LogError("failed to load configuration: %v", err)
		os.Exit(1)
	}

	game := testbed.NewGame(config)

	e, err := engine.New(game, nil)
	if err != nil {
		core.LogError("failed to create the engine: %v", err)
		os.Exit(1)
	}

	if err := e.Initialize(); err != nil {
		core.LogError("failed to initialize the engine: %v", err)
		os.Exit(1)
	}

	if err := e.Run(); err != nil {
		core.LogError("engine run failed: %v", err)
		os.Exit(1)
	}
}
