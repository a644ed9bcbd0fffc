package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrianov/snake-sub000/internal/game"
	"github.com/adrianov/snake-sub000/internal/store"
	"github.com/adrianov/snake-sub000/internal/stream"
)

func main() {
	var (
		tiles  = flag.Int("tiles", game.DefaultTileCount, "board size in tiles per side")
		seed   = flag.Uint64("seed", 0, "simulation seed (0 seeds from the clock)")
		data   = flag.String("data", defaultDataDir(), "directory for the run database and tuning file")
		listen = flag.String("listen", "", "spectator server address, e.g. :8080 (disabled when empty)")
		mute   = flag.Bool("mute", false, "start with audio muted")
	)
	flag.Parse()

	if *tiles < game.MinTileCount || *tiles > game.MaxTileCount {
		fmt.Fprintf(os.Stderr, "tiles must be in [%d, %d]\n",
			game.MinTileCount, game.MaxTileCount)
		os.Exit(2)
	}

	if err := os.MkdirAll(*data, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	tuningPath := filepath.Join(*data, "tuning.json")
	tn, err := game.LoadTuning(tuningPath)
	if err != nil {
		log.Printf("tuning: %v (using defaults)", err)
		tn = game.DefaultTuning()
	}
	holder := game.NewTuningHolder(tn)
	go func() {
		if err := game.WatchTuning(tuningPath, holder); err != nil {
			log.Printf("tuning watch disabled: %v", err)
		}
	}()

	var scoreStore game.ScoreStore
	var runs *store.Store
	runs, err = store.Open(filepath.Join(*data, "runs.db"))
	if err != nil {
		log.Printf("run store disabled: %v", err)
	} else {
		defer runs.Close()
		scoreStore = runs
	}

	var publish func(game.Snapshot)
	if *listen != "" {
		feed := stream.NewFeed()
		publish = feed.Publish
		var scores stream.ScoreSource
		if runs != nil {
			scores = runs
		}
		srv := stream.NewServer(feed, scores)
		go func() {
			log.Printf("spectator server on %s", *listen)
			if err := srv.ListenAndServe(*listen); err != nil {
				log.Printf("spectator server: %v", err)
			}
		}()
	}

	if err := game.Run(game.Options{
		TileCount: *tiles,
		Seed:      *seed,
		Tuning:    holder,
		Store:     scoreStore,
		Publish:   publish,
		Mute:      *mute,
	}); err != nil {
		log.Fatal(err)
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "lucky-snake")
	}
	return "."
}
