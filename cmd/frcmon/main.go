package main

import (
	"flag"
	"fmt"

	"github.com/frclab/gofrccan/pkg/annotate"
	"github.com/frclab/gofrccan/pkg/monitor"
	"github.com/frclab/gofrccan/pkg/registry"
	log "github.com/sirupsen/logrus"

	_ "github.com/frclab/gofrccan/pkg/can/socketcan"
	_ "github.com/frclab/gofrccan/pkg/can/virtual"
)

var DEFAULT_CAN_INTERFACE = "can0"

func main() {
	// Command line arguments
	canInterface := flag.String("i", DEFAULT_CAN_INTERFACE, "socketcan interface e.g. can0,vcan0")
	backend := flag.String("b", "socketcan", "bus backend : socketcan, virtualcan")
	tablePath := flag.String("t", "", "extra registry table file (ini), merged over the built-in FRC tables")
	anomaliesOnly := flag.Bool("a", false, "only print frames carrying anomalies")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	// Registry tables are loaded once, a bad table file is fatal
	set := registry.Default()
	if *tablePath != "" {
		err := set.Load(*tablePath)
		if err != nil {
			log.Fatalf("loading %v : %v", *tablePath, err)
		}
	}

	mon := monitor.NewMonitor(nil, set)
	mon.AddHandler(monitor.AnnotationHandlerFunc(func(frame annotate.AnnotatedFrame) {
		if *anomaliesOnly && len(frame.Anomalies) == 0 {
			return
		}
		fmt.Printf("%v x%08X %v\n", frame.Timestamp.Format("15:04:05.000000"), frame.Raw, frame.Summary)
		for _, anomaly := range frame.Anomalies {
			fmt.Printf("    ! %v\n", anomaly)
		}
	}))

	err := mon.Connect(*backend, *canInterface, 1_000_000)
	if err != nil {
		panic(err)
	}
	defer mon.Disconnect()

	select {}
}
