// Command trustosdemo runs the simulated kernel through the same
// scenario the original firmware's main.c hard-coded: one periodic
// real-time task and three mutex-contending background tasks, each
// toggling what used to be a GPIO pin and is now a structured log
// field.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/M-aljawaheri/TrustOS"
)

func main() {
	runFor := flag.Duration("duration", 3*time.Second, "how long to run the simulation before stopping")
	tickHz := flag.Uint("tick-hz", 1000, "scheduler tick frequency in Hz")
	pretty := flag.Bool("pretty", true, "use a human-readable console log writer instead of JSON")
	flag.Parse()

	var writer zerolog.ConsoleWriter
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if *pretty {
		writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
		logger = zerolog.New(writer).With().Timestamp().Logger()
	}

	cfg := kernel.DefaultConfig()
	cfg.TickRateHz = uint32(*tickHz)

	const arenaSize = 1 << 16
	k := kernel.NewKernel(cfg, make([]byte, arenaSize), logger)

	globalMutex := kernel.NewMutex(k)

	spawnWorker := func(id, mutexPriority int, pin string) {
		_, err := k.Spawn(func(k *kernel.Kernel, self *kernel.Task) {
			for {
				globalMutex.Acquire(self, mutexPriority)
				for i := 0; i < 100; i++ {
					k.Logger().Debug().
						Int("task_id", id).
						Str("pin", pin).
						Bool("asserted", true).
						Msg("critical section")
					k.CheckPoint(self)
				}
				globalMutex.Release(self, mutexPriority)
				k.CheckPoint(self)
			}
		}, id, 1, cfg.MinStackBytes())
		if err != nil {
			logger.Fatal().Err(err).Int("task_id", id).Msg("failed to spawn worker")
		}
	}

	spawnWorker(1, 2, "PB0")
	spawnWorker(2, 1, "PB1")
	spawnWorker(3, 1, "PB2")

	_, err := k.SpawnPeriodic(func(k *kernel.Kernel, self *kernel.Task) {
		for {
			k.Logger().Info().Int("task_id", 0).Msg("realtime tick")
			k.CheckPoint(self)
		}
	}, 0, cfg.MinStackBytes(), 200)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to spawn realtime task")
	}

	logger.Info().Dur("duration", *runFor).Msg("starting kernel")
	k.Run()
	time.Sleep(*runFor)
	k.Stop()
	logger.Info().Msg("kernel stopped")
}
