package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgyhuang/BoardBot/internal/kinematics"
)

func TestPlotProfileSkipsImmediate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "profile.png")

	p, err := kinematics.ConstantAcceleration{VMax: 1, AAcc: 2}.Profile(0)
	require.NoError(t, err)
	require.Equal(t, kinematics.ShapeImmediate, p.Shape())
	assert.NoError(t, plotProfile(p, file))
	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err))

	p, err = kinematics.ConstantAcceleration{VMax: 1, AAcc: 2}.Profile(1)
	require.NoError(t, err)
	require.NoError(t, plotProfile(p, file))
	_, err = os.Stat(file)
	assert.NoError(t, err)
}
