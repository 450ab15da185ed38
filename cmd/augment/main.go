package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ohowland/cgc_augment/internal/pkg/augment"
	"github.com/ohowland/cgc_augment/internal/pkg/caverns"
	"github.com/ohowland/cgc_augment/internal/pkg/config"
	"github.com/ohowland/cgc_augment/internal/pkg/costs"
	"github.com/ohowland/cgc_augment/internal/pkg/database"
	"github.com/ohowland/cgc_augment/internal/pkg/datastreams/natshandler"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"github.com/ohowland/cgc_augment/internal/pkg/report"
)

const ioTimeout = 2 * time.Minute

func main() {
	configPath := flag.String("config", "config/augment.yaml", "configuration file (.yaml or .json)")
	in := flag.String("in", "", "input network location")
	out := flag.String("out", "", "output network location")
	metricsPath := flag.String("metrics", "", "prometheus textfile to write, overrides Output.Metrics")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("[Main] Loading Configuration")
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if *metricsPath != "" {
		cfg.Output.Metrics = *metricsPath
	}

	log.Println("[Main] Reading Network")
	n, err := readNetwork(ctx, *in)
	if err != nil {
		panic(err)
	}
	log.Printf("[Main] Network %q: %d buses, %d lines, %d links\n",
		n.Name(), len(n.Buses()), len(n.Lines()), len(n.Links()))

	log.Println("[Main] Loading Costs")
	costTable, err := costs.Load(cfg.Costs.Path, costs.Options{Years: n.Years()})
	if err != nil {
		panic(err)
	}

	var sites *caverns.Table
	if cfg.Caverns.Path != "" {
		log.Println("[Main] Loading Cavern Potentials")
		sites, err = caverns.Load(cfg.Caverns.Path)
		if err != nil {
			panic(err)
		}
	}

	log.Println("[Main] Attaching Storage")
	summary, err := augment.Run(n, costTable, sites, cfg)
	if err != nil {
		panic(err)
	}
	log.Printf("[Main] Added %d components\n", summary.Total())

	log.Println("[Main] Writing Network")
	if err := writeNetwork(ctx, *out, n); err != nil {
		panic(err)
	}

	if cfg.Output.Metrics != "" {
		log.Println("[Main] Writing Metrics")
		m := report.NewMetrics()
		m.Observe(summary)
		if err := m.WriteTextfile(cfg.Output.Metrics); err != nil {
			panic(err)
		}
	}

	if cfg.Output.Publish.Server != "" {
		log.Println("[Main] Publishing Summary")
		if err := publish(cfg.Output.Publish, summary); err != nil {
			// the network is already written
			log.Printf("[Main] publish summary: %v\n", err)
		}
	}

	log.Println("[Main] Done")
}

func readNetwork(ctx context.Context, location string) (*network.Network, error) {
	ctx, cancel := context.WithTimeout(ctx, ioTimeout)
	defer cancel()
	return database.Read(ctx, location)
}

func writeNetwork(ctx context.Context, location string, n *network.Network) error {
	ctx, cancel := context.WithTimeout(ctx, ioTimeout)
	defer cancel()
	return database.Write(ctx, location, n)
}

func publish(cfg config.Publish, s report.Summary) error {
	h, err := natshandler.New(cfg.Server, cfg.Subject)
	if err != nil {
		return err
	}
	defer h.Close()
	return h.Publish(s)
}
