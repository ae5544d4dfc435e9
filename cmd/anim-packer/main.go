package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/alacrity-engine/dfanim/loader"
	"github.com/alacrity-engine/dfanim/packer"
)

var (
	manifestPath     string
	resourceFilePath string
	watch            bool
)

func parseFlags() {
	flag.StringVar(&manifestPath, "manifest", "./animations-meta.yml",
		"Path to the file listing the animation files to pack.")
	flag.StringVar(&resourceFilePath, "out", "./stage.res",
		"Resource file to store animations in.")
	flag.BoolVar(&watch, "watch", false,
		"Repack every time an animation or sprite sheet file changes.")

	flag.Parse()
}

func main() {
	parseFlags()

	// Open the resource file.
	resourceFile, err := bolt.Open(resourceFilePath, 0666, nil)
	handleError(err)
	defer resourceFile.Close()

	baseDir := filepath.Dir(manifestPath)
	sources, err := pack(resourceFile, baseDir)
	handleError(err)

	if !watch {
		return
	}

	// Sprite sheets may live outside the manifest directory.
	dirs := packer.WatchDirs(baseDir, sources)
	watcher, err := loader.NewWatcher(dirs...)
	handleError(err)
	defer watcher.Close()

	log.Printf("watching %q for changes", dirs)

	for {
		select {
		case name, ok := <-watcher.Events:
			if !ok {
				return
			}

			log.Printf("'%s' changed, repacking", name)

			// A broken file shouldn't stop watching.
			sources, err := pack(resourceFile, baseDir)

			if err != nil {
				log.Println("repacking failed:", err)
				continue
			}

			if err := watcher.Add(packer.WatchDirs(baseDir, sources)...); err != nil {
				log.Println("watch error:", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			log.Println("watch error:", err)
		}
	}
}

func pack(resourceFile *bolt.DB, baseDir string) ([]packer.Source, error) {
	// Read the manifest.
	contents, err := os.ReadFile(manifestPath)

	if err != nil {
		return nil, err
	}

	manifest, err := packer.ReadManifest(contents)

	if err != nil {
		return nil, err
	}

	sources, err := packer.LoadSources(baseDir, manifest)

	if err != nil {
		return nil, err
	}

	// Save everything.
	if err := packer.Pack(resourceFile, sources); err != nil {
		return nil, err
	}

	log.Printf("packed %d file(s) into '%s'", len(sources), resourceFilePath)

	return sources, nil
}

func handleError(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
