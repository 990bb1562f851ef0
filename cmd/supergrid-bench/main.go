package main

import (
	"errors"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/UE2020/supergrid"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultSizeHint keeps the up-front allocation near 350 MB.
const defaultSizeHint = 512

type benchConfig struct {
	Width          uint
	Height         uint
	Count          int
	MinSize        uint
	MaxSize        uint
	CellShift      uint
	SizeHint       int
	BucketCapacity int
	Seed           int64
}

func main() {
	var (
		config  benchConfig
		verbose bool
	)

	flag.UintVar(&config.Width, "width", 0, "width of arena")
	flag.UintVar(&config.Height, "height", 0, "height of arena")
	flag.IntVar(&config.Count, "count", 0, "number of entities")
	flag.UintVar(&config.MinSize, "min-size", 1, "minimum entity side")
	flag.UintVar(&config.MaxSize, "max-size", 1, "maximum entity side")
	flag.UintVar(&config.CellShift, "cell-size", 4, "cell side as a power of two")
	flag.IntVar(&config.SizeHint, "size-hint", defaultSizeHint, "table size hint; each unit is roughly 1000 slots")
	flag.IntVar(&config.BucketCapacity, "bucket-capacity", supergrid.DefaultBucketCapacity, "entries per bucket")
	flag.Int64Var(&config.Seed, "seed", time.Now().UnixNano(), "random seed")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := config.validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	grid := supergrid.NewGridOptions(config.SizeHint, uint32(config.CellShift), supergrid.Options{
		BucketCapacity: config.BucketCapacity,
	})
	// Clearing must leave the grid usable.
	grid.Clear()

	printSetup(grid, config)
	runBench(grid, config)
}

func (c benchConfig) validate() error {
	switch {
	case c.Width == 0 || c.Height == 0:
		return errors.New("arena width and height must be positive")
	case c.Count <= 0:
		return errors.New("count must be positive")
	case c.MinSize > c.MaxSize:
		return errors.New("min-size must not exceed max-size")
	case c.CellShift > 31:
		return errors.New("cell-size must be at most 31")
	case c.Width > 1<<32-1 || c.Height > 1<<32-1 || c.MaxSize > 1<<32-1:
		return errors.New("dimensions must fit in 32 bits")
	}
	return nil
}

func printSetup(grid *supergrid.Grid, config benchConfig) {
	log.Info().
		Str("arena", humanize.Comma(int64(config.Width))+"x"+humanize.Comma(int64(config.Height))).
		Str("slots", humanize.Comma(int64(grid.Count()))).
		Str("memory", humanize.IBytes(uint64(grid.MemoryBytes()))).
		Int("cell_size", 1<<config.CellShift).
		Int("bucket_capacity", grid.BucketCapacity()).
		Str("entities", humanize.Comma(int64(config.Count))).
		Uint("min_size", config.MinSize).
		Uint("max_size", config.MaxSize).
		Int64("seed", config.Seed).
		Msg("Setup")
}

func randomEntities(config benchConfig) []supergrid.Entity {
	rng := rand.New(rand.NewSource(config.Seed))
	side := func() uint32 {
		if config.MinSize == config.MaxSize {
			return uint32(config.MaxSize)
		}
		return uint32(config.MinSize) + uint32(rng.Int63n(int64(config.MaxSize-config.MinSize)))
	}
	entities := make([]supergrid.Entity, config.Count)
	for i := range entities {
		entities[i] = supergrid.Entity{
			ID:     uint32(i),
			X:      uint32(rng.Int63n(int64(config.Width))),
			Y:      uint32(rng.Int63n(int64(config.Height))),
			Width:  side(),
			Height: side(),
		}
	}
	return entities
}

func runBench(grid *supergrid.Grid, config benchConfig) {
	entities := randomEntities(config)
	n := time.Duration(len(entities))

	start := time.Now()
	for i := range entities {
		if err := grid.Insert(&entities[i]); err != nil {
			var capErr *supergrid.CapacityExceededError
			if errors.As(err, &capErr) {
				log.Fatal().Err(err).Msg("too many entities in cell; use a larger -cell-size or -bucket-capacity")
			}
			log.Fatal().Err(err).Msg("insert failed")
		}
	}
	elapsed := time.Since(start)
	log.Info().
		Dur("took", elapsed).
		Dur("average", elapsed/n).
		Msgf("Inserted %s entities", humanize.Comma(int64(len(entities))))

	hits := 0
	results := []uint32{}
	start = time.Now()
	for i := range entities {
		q := entities[i].Query()
		results = grid.QueryFast(&q, results)
		hits += len(results)
	}
	elapsed = time.Since(start)
	log.Info().
		Dur("took", elapsed).
		Dur("average", elapsed/n).
		Msgf("Probed %s entities", humanize.Comma(int64(len(entities))))
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		logCandidates(grid, entities)
	}
	log.Info().
		Str("collisions", humanize.Comma(int64(hits))).
		Float64("average", float64(hits)/float64(len(entities))).
		Msg("Collisions")

	start = time.Now()
	for i := range entities {
		if err := grid.Delete(entities[i].ID); err != nil {
			log.Fatal().Err(err).Msg("delete failed")
		}
	}
	elapsed = time.Since(start)
	log.Info().
		Dur("took", elapsed).
		Dur("average", elapsed/n).
		Msgf("Deleted %s entities", humanize.Comma(int64(len(entities))))
}

// logCandidates reports per-entity query results. It runs outside the timed
// loops.
func logCandidates(grid *supergrid.Grid, entities []supergrid.Entity) {
	results := []uint32{}
	for i := range entities {
		q := entities[i].Query()
		results = grid.QueryFast(&q, results)
		log.Debug().Uint32("id", entities[i].ID).Int("candidates", len(results)).Msg("query")
	}
}
