package database

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnect_RequiresURI(t *testing.T) {
	_, err := Connect("")
	require.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := ConnectRedis(mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestConnectRedis_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = ConnectRedis(addr, "", 0)
	require.Error(t, err)
}
