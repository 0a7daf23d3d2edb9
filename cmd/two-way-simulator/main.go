// Command two-way-simulator runs the PAR data link layer simulation with
// both hosts sending and receiving simultaneously. Grounded on
// TwoWaySimulator.java's main/simulate split.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ahmed-k-aly/Flow-control/config"
	"github.com/ahmed-k-aly/Flow-control/datalink/par" // registers the "PAR" data link layer variant
	"github.com/ahmed-k-aly/Flow-control/host"
	"github.com/ahmed-k-aly/Flow-control/medium"
	"github.com/ahmed-k-aly/Flow-control/monitor"
	"github.com/ahmed-k-aly/Flow-control/payloadsrc"
	"github.com/ahmed-k-aly/Flow-control/transcript"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: two-way-simulator <medium type> <data link layer type> <transmission data file A> <transmission data file B>")
}

func main() {
	var (
		configPath     string
		monitorAddr    string
		transcriptPath string
		watchDir       string
	)
	flag.StringVar(&configPath, "config", "", "path to a TOML configuration profile")
	flag.StringVar(&monitorAddr, "monitor", "", "address to serve live stats/events on, e.g. :8080")
	flag.StringVar(&transcriptPath, "transcript", "", "path to an append-only CBOR event log")
	flag.StringVar(&watchDir, "watch", "", "directory to watch for additional payload files to send from host A")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 4 {
		usage()
		os.Exit(1)
	}
	mediumType, dllType, pathA, pathB := args[0], args[1], args[2], args[3]

	var profile config.Profile
	if configPath != "" {
		var err error
		if profile, err = config.Load(configPath); err != nil {
			log.WithError(err).Fatal("two-way-simulator: failed to load configuration")
		}
	}
	profile.ApplyLogging()

	var rec *transcript.Recorder
	if transcriptPath != "" {
		var err error
		if rec, err = transcript.NewRecorder(transcriptPath); err != nil {
			log.WithError(err).Fatal("two-way-simulator: failed to open transcript")
		}
		defer rec.Close()
	}

	var mon *monitor.Server
	if monitorAddr != "" {
		mon = monitor.NewServer(monitorAddr)
		if err := mon.Start(); err != nil {
			log.WithError(err).Fatal("two-way-simulator: failed to start monitor")
		}
		defer mon.Close()
	}

	med, err := medium.Create(mediumType, medium.Config{NoiseProbability: profile.Medium.NoiseProbability})
	if err != nil {
		log.WithError(err).Fatal("two-way-simulator: failed to create medium")
	}

	timeout := profile.RetransmitTimeout(par.DefaultRetransmitTimeout)

	hostA, err := host.New(med, dllType, "hostA", timeout)
	if err != nil {
		log.WithError(err).Fatal("two-way-simulator: failed to create host A")
	}
	hostB, err := host.New(med, dllType, "hostB", timeout)
	if err != nil {
		log.WithError(err).Fatal("two-way-simulator: failed to create host B")
	}

	var sink transcript.Sink
	switch {
	case rec != nil && mon != nil:
		sink = transcript.Multi(rec, mon)
	case rec != nil:
		sink = rec
	case mon != nil:
		sink = mon
	}
	if sink != nil {
		hostA.SetSink(sink)
		hostB.SetSink(sink)
	}

	dataA, err := payloadsrc.Load(pathA)
	if err != nil {
		log.WithError(err).Fatal("two-way-simulator: failed to load payload A")
	}
	dataB, err := payloadsrc.Load(pathB)
	if err != nil {
		log.WithError(err).Fatal("two-way-simulator: failed to load payload B")
	}

	if watchDir != "" {
		extra := make(chan []byte)
		watcher, err := payloadsrc.Watch(watchDir, extra)
		if err != nil {
			log.WithError(err).Fatal("two-way-simulator: failed to watch directory")
		}
		defer watcher.Close()

		go func() {
			for data := range extra {
				hostA.Send(data)
			}
		}()
	}

	go hostA.Run()
	go hostB.Run()

	hostA.Send(dataA)
	hostB.Send(dataB)

	fmt.Printf("Pausing...")
	time.Sleep(5 * time.Second)
	fmt.Printf("done.\n")

	receivedA := hostA.Retrieve()
	receivedB := hostB.Retrieve()

	fmt.Println("Transmission from A to B received:")
	fmt.Println(string(receivedB))
	if string(dataA) == string(receivedB) {
		fmt.Println("Transmission match")
	} else {
		fmt.Println("Transmission mismatch")
		fmt.Printf("\tsent length = %d\treceived length = %d\n", len(dataA), len(receivedB))
	}

	fmt.Println()
	fmt.Println("Transmission from B to A received:")
	fmt.Println(string(receivedA))
	if string(dataB) == string(receivedA) {
		fmt.Println("Transmission match")
	} else {
		fmt.Println("Transmission mismatch")
		fmt.Printf("\tsent length = %d\treceived length = %d\n", len(dataB), len(receivedA))
	}

	hostA.Stop()
	hostB.Stop()
}
