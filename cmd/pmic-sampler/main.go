// cmd/pmic-sampler/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/edaniels/golog"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"npm1300-go/bus"
	"npm1300-go/drivers/npm1300"
	"npm1300-go/drivers/npm1300/npm1300sim"
	"npm1300-go/services/pmic"
	"npm1300-go/services/pmic/config"
	"npm1300-go/x/timex"
)

func main() {
	cfgPath := flag.String("config", "pmic.yaml", "path to the YAML config")
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// --------------------
	// Open the I²C bus
	// --------------------

	i2c, closeBus, err := openBus(cfg.Bus)
	if err != nil {
		logger.Fatalw("bus open failed", "bus", cfg.Bus, "error", err)
	}
	defer closeBus()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Build per-device adaptors
	// --------------------

	b := bus.NewBus(64)
	svc := pmic.NewService(b.NewConnection("pmic"), logger)

	for _, d := range cfg.Devices {
		dcfg := npm1300.DefaultConfig()
		if d.Params.Addr != 0 {
			dcfg.Address = uint16(d.Params.Addr)
		}
		ad := pmic.NewAdaptor(d.ID, npm1300.New(i2c, dcfg), d.Params, logger)
		if err := ad.Init(); err != nil {
			logger.Fatalw("pmic init failed", "device", d.ID, "error", err)
		}
		if err := svc.Add(ad, pmic.SamplerConfig{Period: timex.Millis(d.Params.SampleEveryMS)}); err != nil {
			logger.Fatalw("pmic add failed", "device", d.ID, "error", err)
		}
	}

	// ---- bus monitor ----
	mon := b.NewConnection("monitor")
	sub := mon.Subscribe(bus.Topic{pmic.TopicRoot, "#"})
	defer mon.Disconnect()

	var grp errgroup.Group
	grp.Go(func() error { return svc.Run(ctx) })
	grp.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case m := <-sub.Channel():
				logger.Debugw(m.Topic.String(), "retained", m.Retained, "data", m.Payload)
			}
		}
	})

	if err := grp.Wait(); err != nil {
		logger.Errorw("pmic service exited", "error", err)
	}
	logger.Info("shutdown")
}

func newLogger(level string) (golog.Logger, error) {
	zc := golog.NewDevelopmentLoggerConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zc.Level = lvl
	zl, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return zl.Sugar().Named("pmic"), nil
}

// openBus returns the simulator for "sim" and a periph I²C bus otherwise.
func openBus(name string) (drivers.I2C, func(), error) {
	if name == config.BusSim {
		return npm1300sim.New(), func() {}, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return b, func() { _ = b.Close() }, nil
}
