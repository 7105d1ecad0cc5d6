package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kchou/attend/internal/insights"
	"github.com/kchou/attend/internal/logger"
	"github.com/kchou/attend/internal/model"
	"github.com/kchou/attend/internal/source"
	"github.com/kchou/attend/internal/tracker"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the activity tracking and analysis loop",
		Long: "Capture activity events, analyze the trailing window on a fixed tick, and\n" +
			"log an intervention when the current activity warrants one. Without an\n" +
			"events file a synthetic event generator stands in for the browser shell.",
		Run: runRun,
	}

	cmd.Flags().String("events-file", "", "JSON-lines events file written by the browser/desktop shell")

	RootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) {
	log := logger.New("run")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	tr := tracker.New(s, logger.New("tracker"), cfg.ActivityCapacity)
	analyzer := insights.New(analysisThresholds())

	var src source.Source
	if path, _ := cmd.Flags().GetString("events-file"); path != "" {
		src, err = source.NewFile(path, logger.New("source"))
		if err != nil {
			exitErr("open events file", err)
		}
		log.Info().Str("path", path).Msg("tailing events file")
	} else {
		src = source.NewSynthetic(cfg.CaptureInterval)
		log.Info().Msg("no events file, using synthetic source")
	}
	defer src.Close()

	analyzeTicker := time.NewTicker(cfg.AnalyzeInterval)
	defer analyzeTicker.Stop()
	evictTicker := time.NewTicker(cfg.EvictInterval)
	defer evictTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev, ok := <-src.Events():
			if !ok {
				log.Info().Msg("event source closed")
				return
			}
			tr.Record(ev)
		case <-analyzeTicker.C:
			result := analyzer.Analyze(tr.Recent(cfg.AnalysisWindow))
			if result.RequiresIntervention {
				notifyIntervention(log, result)
			}
		case <-evictTicker.C:
			tr.CapAndEvict()
		case <-sig:
			log.Info().Msg("shutting down")
			return
		}
	}
}

// notifyIntervention is the default notifier: the chat/desktop surfaces that
// render real notifications consume the same insight payload.
func notifyIntervention(log zerolog.Logger, in model.ProductivityInsights) {
	log.Warn().
		Str("activity", in.CurrentActivity.Name).
		Str("time_spent", in.TimeSpent).
		Str("recommendation", in.RecommendedActivity).
		Msg("unproductive stretch detected, consider switching")
}
