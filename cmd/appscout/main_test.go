package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/appscout/appscout/core"
)

func TestParseIdList(t *testing.T) {
	t.Run("parses comma separated ids", func(t *testing.T) {
		ids, err := parseIdList("1,2,3")
		require.NoError(t, err)
		assert.Equal(t, []core.ID{1, 2, 3}, ids)
	})

	t.Run("tolerates spaces", func(t *testing.T) {
		ids, err := parseIdList(" 10 , 20 ")
		require.NoError(t, err)
		assert.Equal(t, []core.ID{10, 20}, ids)
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		ids, err := parseIdList("  ")
		require.NoError(t, err)
		assert.Nil(t, ids)
	})

	t.Run("rejects non-numeric ids", func(t *testing.T) {
		_, err := parseIdList("1,abc")
		assert.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(nil, set, nil)
	}

	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
			assert.NoError(t, setupLogger(newContext(level)), level)
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "verbose")
	})
}
