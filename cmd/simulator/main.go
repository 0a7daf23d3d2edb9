// Command simulator runs the one-way two-host PAR data link layer
// simulation: host A sends a file's bytes to host B over a shared medium,
// and the result is compared against the original. Grounded on
// Simulator.java's main/simulate split and cmd/dtnd/main.go's flag-parsing,
// config-loading, logging-setup shape.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

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
	fmt.Fprintln(os.Stderr, "Usage: simulator <medium type> <data link layer type> <transmission data file>")
}

func main() {
	var (
		configPath     string
		monitorAddr    string
		transcriptPath string
	)
	flag.StringVar(&configPath, "config", "", "path to a TOML configuration profile")
	flag.StringVar(&monitorAddr, "monitor", "", "address to serve live stats/events on, e.g. :8080")
	flag.StringVar(&transcriptPath, "transcript", "", "path to an append-only CBOR event log")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		usage()
		os.Exit(1)
	}
	mediumType, dllType, payloadPath := args[0], args[1], args[2]

	var profile config.Profile
	if configPath != "" {
		var err error
		if profile, err = config.Load(configPath); err != nil {
			log.WithError(err).Fatal("simulator: failed to load configuration")
		}
	}
	profile.ApplyLogging()

	var rec *transcript.Recorder
	if transcriptPath != "" {
		var err error
		if rec, err = transcript.NewRecorder(transcriptPath); err != nil {
			log.WithError(err).Fatal("simulator: failed to open transcript")
		}
		defer rec.Close()
	}

	var mon *monitor.Server
	if monitorAddr != "" {
		mon = monitor.NewServer(monitorAddr)
		if err := mon.Start(); err != nil {
			log.WithError(err).Fatal("simulator: failed to start monitor")
		}
		defer mon.Close()
	}

	med, err := medium.Create(mediumType, medium.Config{NoiseProbability: profile.Medium.NoiseProbability})
	if err != nil {
		log.WithError(err).Fatal("simulator: failed to create medium")
	}

	timeout := profile.RetransmitTimeout(par.DefaultRetransmitTimeout)

	sender, err := host.New(med, dllType, "sender", timeout)
	if err != nil {
		log.WithError(err).Fatal("simulator: failed to create sending host")
	}
	receiver, err := host.New(med, dllType, "receiver", timeout)
	if err != nil {
		log.WithError(err).Fatal("simulator: failed to create receiving host")
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
		sender.SetSink(sink)
		receiver.SetSink(sink)
	}

	data, err := payloadsrc.Load(payloadPath)
	if err != nil {
		log.WithError(err).Fatal("simulator: failed to load payload")
	}

	go receiver.Run()
	go sender.Run()

	sender.Send(data)

	fmt.Print("Press enter to receive: ")
	bufio.NewReader(os.Stdin).ReadByte()

	received := receiver.Retrieve()

	fmt.Printf("Transmission received: %s\n", received)
	if string(data) == string(received) {
		fmt.Println("Transmission match")
	} else {
		fmt.Println("Transmission mismatch")
		fmt.Printf("\tsent length = %d\treceived length = %d\n", len(data), len(received))
	}

	receiver.Stop()
	sender.Stop()
}
