package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/lukaszgryglicki/layernav/internal/layernav"
)

func main() {
	layernav.SetDebug(os.Getenv("DEBUG") != "")
	layernav.ForceBVH = os.Getenv("BVH") != ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := layernav.DefaultConfigPath
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := layernav.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		_ = layernav.Logger.Sync()
		os.Exit(1)
	}
	_ = layernav.Logger.Sync()
}
