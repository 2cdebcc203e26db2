/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSinkConfigJSON = `{"sink":{"name":"recorder","level":"warn"}}`

type testAppConfig struct {
	Server struct {
		Address string
	}
}

func (c *testAppConfig) SetProviderDefaults(dp DataProvider) {
	dp.SetDefault("server.addr", ":80")
}

func (c *testAppConfig) Set(dp DataProvider) error {
	var err error
	c.Server.Address, err = dp.GetString("server.addr")
	return err
}

type testSinkConfig struct {
	Name  string
	Level string
}

func (c *testSinkConfig) KeyPrefix() string {
	return "sink"
}

func (c *testSinkConfig) SetProviderDefaults(dp DataProvider) {
	dp.SetDefault("level", "info")
}

func (c *testSinkConfig) Set(dp DataProvider) error {
	var err error
	if c.Name, err = dp.GetString("name"); err != nil {
		return err
	}
	c.Level, err = dp.GetStringFromSet("level", []string{"debug", "info", "warn", "error"}, true)
	return err
}

func TestLoader_LoadFromReader(t *testing.T) {
	t.Run("load config, use defaults", func(t *testing.T) {
		appCfg := &testAppConfig{}
		err := NewLoader(NewViperAdapter()).LoadFromReader(bytes.NewBufferString(`{}`), DataTypeJSON, appCfg)
		require.NoError(t, err)
		require.Equal(t, ":80", appCfg.Server.Address)
	})

	t.Run("load config", func(t *testing.T) {
		appCfg := &testAppConfig{}
		err := NewLoader(NewViperAdapter()).LoadFromReader(
			bytes.NewBufferString(`{"server":{"addr":":777"}}`), DataTypeJSON, appCfg)
		require.NoError(t, err)
		require.Equal(t, ":777", appCfg.Server.Address)
	})

	t.Run("load several configs, use key prefix", func(t *testing.T) {
		appCfg := &testAppConfig{}
		sinkCfg := &testSinkConfig{}
		err := NewLoader(NewViperAdapter()).LoadFromReader(
			bytes.NewBufferString(testSinkConfigJSON), DataTypeJSON, sinkCfg, appCfg)
		require.NoError(t, err)
		require.Equal(t, "recorder", sinkCfg.Name)
		require.Equal(t, "warn", sinkCfg.Level)
		require.Equal(t, ":80", appCfg.Server.Address)
	})

	t.Run("invalid value in set", func(t *testing.T) {
		sinkCfg := &testSinkConfig{}
		err := NewLoader(NewViperAdapter()).LoadFromReader(
			bytes.NewBufferString(`sink: {level: verbose}`), DataTypeYAML, sinkCfg)
		require.EqualError(t, err, `sink.level: unknown value "verbose", should be one of [debug info warn error]`)
	})
}

func TestLoader_Load_EnvVars(t *testing.T) {
	t.Setenv("MOCKLOG_SINK_NAME", "writer")
	t.Setenv("MOCKLOG_SINK_LEVEL", "ERROR")

	sinkCfg := &testSinkConfig{}
	require.NoError(t, NewDefaultLoader("mocklog").Load(sinkCfg))
	require.Equal(t, "writer", sinkCfg.Name)
	require.Equal(t, "ERROR", sinkCfg.Level)
}
