// Command seeder posts example complaints to the intake endpoint at a fixed
// rate, the way a crowd of citizens scanning bus QR codes would.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/V4T54L/transit-complaints/internal/adapter/intake"
	"github.com/V4T54L/transit-complaints/internal/i18n"
	"github.com/V4T54L/transit-complaints/internal/pkg/logger"
	"github.com/V4T54L/transit-complaints/internal/qr"
)

// Roughly the Astana city bounding box.
const (
	minLat, maxLat = 51.05, 51.25
	minLon, maxLon = 71.30, 71.60
)

func main() {
	targetURL := flag.String("url", "http://localhost:8000/api/complaints", "Intake endpoint")
	lang := flag.String("lang", "ru", "Language of the example complaints (ru, kk)")
	concurrency := flag.Int("c", 4, "Number of concurrent workers")
	count := flag.Int("n", 100, "Total complaints to submit (0 = until duration elapses)")
	duration := flag.Duration("d", time.Minute, "Upper bound on the run time")
	rps := flag.Float64("rps", 5, "Submissions per second limit")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logger := logger.New(*logLevel).With("run_id", uuid.NewString())

	language, ok := i18n.ParseLanguage(*lang)
	if !ok {
		logger.Error("unsupported language", "lang", *lang)
		os.Exit(1)
	}
	examples := i18n.Examples(language)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *duration)
	defer cancel()

	logger.Info("starting seeder", "url", *targetURL, "workers", *concurrency, "rps", *rps, "count", *count)

	limiter := rate.NewLimiter(rate.Limit(*rps), *concurrency)
	client := intake.NewClient(*targetURL, language, 5*time.Second)

	var (
		wg                     sync.WaitGroup
		issued                 atomic.Int64
		accepted, failed, qrNo atomic.Int64
	)
	start := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))
			wlog := logger.With("worker", workerID)

			for {
				if *count > 0 && issued.Add(1) > int64(*count) {
					return
				}
				if err := limiter.Wait(ctx); err != nil {
					return
				}

				form := randomForm(rng, examples)
				if info, ok := qr.Parse(randomQRPayload(rng)); ok {
					form.RouteNumber = info.RouteNumber
					form.BusNumber = info.BusNumber
				} else {
					qrNo.Add(1)
				}

				ack, err := client.Submit(ctx, form)
				if err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return
					}
					failed.Add(1)
					wlog.Warn("submission failed", "error", err)
					continue
				}
				accepted.Add(1)
				wlog.Debug("submission accepted", "id", ack.ID, "route", form.RouteNumber)
			}
		}(i)
	}

	wg.Wait()

	elapsed := time.Since(start)
	total := accepted.Load() + failed.Load()
	logger.Info("seeder finished",
		"submitted", total,
		"accepted", accepted.Load(),
		"failed", failed.Load(),
		"without_qr", qrNo.Load(),
		"elapsed", elapsed.String(),
		"actual_rps", fmt.Sprintf("%.2f", float64(total)/elapsed.Seconds()),
	)
}

func randomForm(rng *rand.Rand, examples []string) intake.Form {
	f := intake.Form{Text: examples[rng.Intn(len(examples))]}
	// About a third of citizens deny geolocation.
	if rng.Intn(3) > 0 {
		f.Latitude = minLat + rng.Float64()*(maxLat-minLat)
		f.Longitude = minLon + rng.Float64()*(maxLon-minLon)
	}
	return f
}

// randomQRPayload mimics the codes found in buses: JSON stickers, plain text
// stickers and the occasional unrelated code.
func randomQRPayload(rng *rand.Rand) string {
	route := rng.Intn(99) + 1
	bus := rng.Intn(900) + 100
	switch rng.Intn(4) {
	case 0:
		return fmt.Sprintf(`{"route_number":"%d","bus_number":%d}`, route, bus)
	case 1:
		return fmt.Sprintf(`{"route_number":%d,"bus_number":"%d"}`, route, bus)
	case 2:
		return fmt.Sprintf("Маршрут %d, автобус %d", route, bus)
	default:
		return "WIFI:S:CityBus;T:nopass;;"
	}
}
