package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sam4587/Workspace-sub000/internal/config"
)

func TestNewRegistryHasEveryBuiltinType(t *testing.T) {
	reg := NewRegistry(Options{})

	for _, typ := range []string{config.TypeCommand, config.TypeTemplate, config.TypeValue, config.TypeSleep} {
		require.True(t, reg.Has(typ), typ)
	}
	require.Len(t, reg.List(), 4)
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := NewRegistry(Options{})
	require.Error(t, Register(reg, Options{}))
}
