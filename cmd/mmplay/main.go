// Command mmplay loads audio files as tracks, mixes them and plays the
// result through the default output device.
//
// Usage:
//
//	mmplay [flags] file [file ...]
//
// Each file becomes one track; WAV, MP3 and Ogg Vorbis are supported.
//
// Examples:
//
//	mmplay drums.wav bass.wav
//	mmplay -volume 0.8 -from 12.5 mix.mp3
//	mmplay -reverb -stats voice.ogg
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/metromuse/audiocore/dsp/effects"
	"github.com/metromuse/audiocore/engine"
	"github.com/metromuse/audiocore/formats"
	"github.com/metromuse/audiocore/perf"
)

func main() {
	volume := flag.Float64("volume", 1.0, "master volume in [0, 1]")
	from := flag.Float64("from", 0, "start position in seconds")
	reverb := flag.Bool("reverb", false, "apply a default reverb to every track")
	echo := flag.Bool("echo", false, "apply a default echo to every track")
	stats := flag.Bool("stats", false, "print mix callback statistics on exit")
	verbose := flag.Bool("verbose", false, "log engine activity to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mmplay [flags] file [file ...]\n\n")
		fmt.Fprintf(os.Stderr, "Loads each file as a track, mixes them and plays the result.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mmplay drums.wav bass.wav\n")
		fmt.Fprintf(os.Stderr, "  mmplay -volume 0.8 -from 12.5 mix.mp3\n")
		fmt.Fprintf(os.Stderr, "  mmplay -reverb -stats voice.ogg\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.DiscardHandler)
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	monitor := perf.NewMonitor(perf.WithLogger(logger))

	done := make(chan struct{})
	eng := engine.New(
		engine.WithLogger(logger),
		engine.WithGlobalVolume(*volume),
		engine.WithPerfReporter(monitor),
		engine.WithEvents(engine.Events{
			PlaybackStopped: func() { close(done) },
		}),
	)

	proc := effects.NewProcessor(logger)
	for _, path := range paths {
		if err := loadTrack(eng, proc, path, *reverb, *echo); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := eng.PlayFrom(*from); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if eng.State() != engine.Playing {
		fmt.Fprintf(os.Stderr, "error: nothing playable\n")
		os.Exit(1)
	}

	<-done

	if *stats {
		printStats(monitor)
	}
}

func loadTrack(eng *engine.Engine, proc *effects.Processor, path string, reverb, echo bool) error {
	buf, err := formats.Load(path)
	if err != nil {
		return err
	}

	if reverb {
		if buf, err = proc.Reverb(buf, effects.DefaultReverbParams()); err != nil {
			return err
		}
	}
	if echo {
		if buf, err = proc.Echo(buf, effects.DefaultEchoParams()); err != nil {
			return err
		}
	}

	name := filepath.Base(path)
	t := eng.AddTrack(name)
	t.SetAudioData(buf, path)

	fmt.Printf("%s: %d ch, %d Hz, %.2f s\n", name, buf.Channels(), buf.SampleRate(), buf.Duration())
	return nil
}

func printStats(m *perf.Monitor) {
	samples := m.History()
	if len(samples) == 0 {
		fmt.Println("no mix callbacks recorded")
		return
	}

	var worst float64
	for _, s := range samples {
		if u := s.Usage(); u > worst {
			worst = u
		}
	}
	fmt.Printf("mix callbacks: %d sampled, avg usage %.1f%%, worst %.1f%%\n",
		len(samples), 100*m.AverageUsage(), 100*worst)
}
