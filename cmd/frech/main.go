package main

import (
	"flag"
	"log"
	"os"

	"github.com/Ingo60/frech/protocol"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var strategy string
	flag.StringVar(&strategy, "strategy", protocol.StrategyBest, "move strategy: best, first or resign")
	flag.Parse()

	switch strategy {
	case protocol.StrategyBest, protocol.StrategyFirst, protocol.StrategyResign:
	default:
		log.Printf("unknown strategy %q, falling back to %q", strategy, protocol.StrategyBest)
		strategy = protocol.StrategyBest
	}

	var d = protocol.NewDriver(strategy)
	os.Exit(d.Run())
}
