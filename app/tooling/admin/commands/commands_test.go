package commands_test

import (
	"testing"

	"github.com/sanikak2004/builder-quantum-den-sub002/app/tooling/admin/commands"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/genesis"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/state"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/storage/memory"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	strg := memory.New()

	st, err := state.New(state.Config{
		Genesis: genesis.Default(),
		Storage: strg,
	})
	require.NoError(t, err)

	require.NoError(t, commands.Blocks("", st))
	require.NoError(t, commands.Blocks("0", st))
	require.Error(t, commands.Blocks("7", st))
	require.Error(t, commands.Blocks("x", st))
	require.NoError(t, commands.Validate(st))

	require.NoError(t, commands.Reset(strg))
	_, err = strg.GetBlock(0)
	require.ErrorIs(t, err, memory.ErrNotExist)
}
