package main

import (
	"context"
	"fmt"

	"github.com/hailam/goprior/internal/model"
	"github.com/hailam/goprior/internal/storage"
)

// openStorage opens dir, or the database in the default data directory.
func openStorage(dir string) (*storage.Storage, error) {
	if dir == "" {
		return storage.NewStorage()
	}
	return storage.Open(dir)
}

func runStore(ctx context.Context, args []string) error {
	fs := newFlagSet("store")
	dbDir := fs.String("db", "", "database directory, default data directory")
	name := fs.String("name", "default", "model name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one weight file is expected")
	}

	m, err := model.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	db, err := openStorage(*dbDir)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.SaveModel(*name, m); err != nil {
		return err
	}
	fmt.Printf("stored %s as %q (k=%d, %d features)\n", fs.Arg(0), *name, m.K(), m.Size())
	return nil
}

func runModels(ctx context.Context, args []string) error {
	fs := newFlagSet("models")
	dbDir := fs.String("db", "", "database directory, default data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	db, err := openStorage(*dbDir)
	if err != nil {
		return err
	}
	defer db.Close()

	names, err := db.ListModels()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runStats(ctx context.Context, args []string) error {
	fs := newFlagSet("stats")
	dbDir := fs.String("db", "", "database directory, default data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	db, err := openStorage(*dbDir)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.LoadStats()
	if err != nil {
		return err
	}
	n, err := db.CountExports()
	if err != nil {
		return err
	}
	fmt.Printf("games:     %d (%d failed)\n", stats.Games, stats.Failed)
	fmt.Printf("positions: %d (%d stored)\n", stats.Positions, n)
	fmt.Printf("lines:     %d (%.1f per position)\n", stats.Lines, stats.AverageLines())
	if !stats.LastExport.IsZero() {
		fmt.Printf("last:      %s\n", stats.LastExport.Format("2006-01-02 15:04:05"))
	}
	return nil
}
