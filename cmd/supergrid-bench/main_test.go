package main

import (
	"testing"

	"github.com/UE2020/supergrid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	ok := benchConfig{Width: 100, Height: 100, Count: 10, MinSize: 1, MaxSize: 4, CellShift: 4}
	require.NoError(t, ok.validate())

	bad := ok
	bad.Width = 0
	require.Error(t, bad.validate())

	bad = ok
	bad.Count = 0
	require.Error(t, bad.validate())

	bad = ok
	bad.MinSize = 5
	require.Error(t, bad.validate())

	bad = ok
	bad.CellShift = 32
	require.Error(t, bad.validate())
}

func TestRandomEntities(t *testing.T) {
	config := benchConfig{Width: 50, Height: 60, Count: 200, MinSize: 2, MaxSize: 6, Seed: 1}
	entities := randomEntities(config)
	require.Len(t, entities, 200)
	for i, e := range entities {
		require.Equal(t, uint32(i), e.ID)
		require.Less(t, e.X, uint32(50))
		require.Less(t, e.Y, uint32(60))
		require.GreaterOrEqual(t, e.Width, uint32(2))
		require.Less(t, e.Width, uint32(6))
		require.GreaterOrEqual(t, e.Height, uint32(2))
		require.Less(t, e.Height, uint32(6))
	}
	require.Equal(t, entities, randomEntities(config))

	config.MinSize = 3
	config.MaxSize = 3
	for _, e := range randomEntities(config) {
		require.Equal(t, uint32(3), e.Width)
		require.Equal(t, uint32(3), e.Height)
	}
}

func TestRunBench(t *testing.T) {
	config := benchConfig{Width: 256, Height: 256, Count: 100, MinSize: 1, MaxSize: 8, CellShift: 4, SizeHint: 4, Seed: 3}
	grid := supergrid.NewGridOptions(config.SizeHint, uint32(config.CellShift), supergrid.Options{})
	runBench(grid, config)
	require.Empty(t, grid.Query(&supergrid.Query{X: 0, Y: 0, Width: 300, Height: 300}))
}

func TestRunBenchDebug(t *testing.T) {
	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(level)

	config := benchConfig{Width: 128, Height: 128, Count: 20, MinSize: 1, MaxSize: 4, CellShift: 4, SizeHint: 1, Seed: 5}
	grid := supergrid.NewGrid(config.SizeHint, uint32(config.CellShift))
	runBench(grid, config)
	require.Empty(t, grid.Query(&supergrid.Query{X: 0, Y: 0, Width: 200, Height: 200}))
}

func TestDefaultSizeHintMemory(t *testing.T) {
	require.Less(t, supergrid.EstimateBytes(defaultSizeHint, supergrid.DefaultBucketCapacity), 512<<20)
}
