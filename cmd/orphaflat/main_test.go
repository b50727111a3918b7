package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandWiring(t *testing.T) {
	cmd := rootCmd()

	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"hpo", "nomenclature", "genes", "associations",
		"phenotypes", "annotations", "run",
	} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}

	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("lang"))
}

func TestConvertCommandRequiresPaths(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"hpo"})
	err := cmd.Execute()
	assert.Error(t, err)
}
