package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fluidsim/fluidsim/experiment"
	"github.com/fluidsim/fluidsim/logging"
	"github.com/fluidsim/fluidsim/metrics"
	"github.com/fluidsim/fluidsim/qlog"
)

func main() {
	scenario := flag.String("scenario", "dc", "scenario to run: dc or space")
	configPath := flag.String("config", "", "scenario YAML file (overrides the built-in scenario defaults)")
	seeds := flag.Int("seeds", 20, "number of seeds to sweep")
	out := flag.String("out", "", "output CSV path (default results/<scenario>_metrics.csv)")
	enableQlog := flag.Bool("qlog", false, "write one qlog file per run to $QLOGDIR")
	metricsAddr := flag.String("metrics", "", "expose Prometheus metrics on this address (e.g. :2112)")
	flag.Parse()

	cfg, shared, err := scenarioConfig(*scenario, *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var tracers []func(label string, seed uint64) logging.Tracer
	if *enableQlog {
		tracers = append(tracers, func(label string, _ uint64) logging.Tracer {
			return qlog.DefaultTracer(label)
		})
	}
	if *metricsAddr != "" {
		promTracer := metrics.NewTracer()
		tracers = append(tracers, func(string, uint64) logging.Tracer { return promTracer })
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				fmt.Fprintf(os.Stderr, "metrics server failed: %v\n", err)
			}
		}()
	}
	factory := newTracerFactory(tracers)

	fmt.Printf("running %s scenario: %d seeds, variants %v\n", *scenario, *seeds, cfg.Variants)
	var rows []experiment.SummaryRow
	if shared {
		rows, err = experiment.RunShared(cfg, *seeds, factory)
	} else {
		rows, err = experiment.RunMatrix(cfg, *seeds, factory)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		outPath = filepath.Join("results", *scenario+"_metrics.csv")
	}
	if err := writeCSV(outPath, rows); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("saved %s (%d rows)\n", outPath, len(rows))
}

// scenarioConfig resolves the scenario defaults and the optional YAML
// override. The data-center scenario runs all variants on a shared link, the
// space scenario sweeps each variant in isolation.
func scenarioConfig(scenario, configPath string) (cfg *experiment.Config, shared bool, err error) {
	switch scenario {
	case "dc":
		cfg, shared = experiment.DataCenter(), true
	case "space":
		cfg, shared = experiment.Space(), false
	default:
		return nil, false, fmt.Errorf("unknown scenario %q (want dc or space)", scenario)
	}
	if configPath != "" {
		cfg, err = experiment.Load(configPath)
		if err != nil {
			return nil, false, err
		}
	}
	return cfg, shared, nil
}

func newTracerFactory(tracers []func(label string, seed uint64) logging.Tracer) experiment.TracerFactory {
	if len(tracers) == 0 {
		return nil
	}
	return func(label string, seed uint64) logging.Tracer {
		active := make([]logging.Tracer, 0, len(tracers))
		for _, newTracer := range tracers {
			if tr := newTracer(label, seed); tr != nil {
				active = append(active, tr)
			}
		}
		return logging.NewMultiplexedTracer(active...)
	}
}

func writeCSV(path string, rows []experiment.SummaryRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return experiment.WriteCSV(f, rows)
}
