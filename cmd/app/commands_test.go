package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range getCommands("test") {
		assert.False(t, names[cmd.Name], "duplicate command %s", cmd.Name)
		names[cmd.Name] = true
		assert.NotNil(t, cmd.Action, cmd.Name)
	}

	for _, want := range []string{
		"server", "migrate", "clean-audit-logs", "create-master-key",
		"create-ou", "create-division", "seed", "set-role",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
