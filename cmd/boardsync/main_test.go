package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "boardsync dev")
	require.Contains(t, buf.String(), "commit: none")
}

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"export", "import", "group", "catalog", "count", "version"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, sub.Name())
	}
}

func TestImportCmdRejectsMalformedMapFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"import", "--board", "b1", "--group", "g", "--file", "x.csv",
		"--map", "no-equals-sign",
	})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "field=Title")
}
