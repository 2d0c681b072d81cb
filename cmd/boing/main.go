// Boing shows a desktop character that squashes when pressed and springs
// back with an elastic bounce when released.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/phanxgames/boing"
)

func main() {
	configPath := flag.String("config", "config.yml", "application config file, created if missing")
	debug := flag.Bool("debug", false, "log frame cache stats and draw the state overlay")
	script := flag.String("script", "", "JSON input script to replay")
	shots := flag.String("screenshots", "screenshots", "directory for script screenshots")
	dump := flag.String("dump", "", "write every animation frame as PNG into this directory and exit")
	watch := flag.Bool("watch", true, "reload the character when its files change")
	flag.Parse()

	if *dump != "" {
		dumpFrames(*configPath, *dump)
		return
	}

	rc := boing.RunConfig{
		ConfigPath:    *configPath,
		Debug:         *debug,
		ScreenshotDir: *shots,
		Watch:         *watch,
	}
	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		runner, err := boing.LoadTestScript(data)
		if err != nil {
			log.Fatalf("load script: %v", err)
		}
		rc.Script = runner
	}

	host, err := boing.NewHost(rc)
	if err != nil {
		log.Fatal(err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		host.Quit()
	}()

	if err := host.Run(); err != nil {
		log.Fatal(err)
	}
}

func dumpFrames(configPath, dir string) {
	cfg, cc, asset := boing.LoadCharacter(configPath)
	frames := boing.NewFrameCache(asset, cfg.Timing(cc))
	n, err := boing.DumpFrames(dir, boing.NewCanvas(asset.Resting), frames)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d frames to %s", n, dir)
}
