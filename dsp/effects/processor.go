package effects

import (
	"log/slog"

	"github.com/metromuse/audiocore/dsp/buffer"
)

// Processor applies the offline effects to sample buffers. Parameter errors
// are returned to the caller; any failure inside a kernel is absorbed: the
// processor logs it and hands back the unmodified input so an edit can never
// destroy audio.
type Processor struct {
	log *slog.Logger
}

// NewProcessor returns a processor logging through logger. A nil logger
// discards.
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{log: logger}
}

type channelKernel func(samples []float64, sampleRate int) []float64

// apply runs kernel over every channel with fresh state, recovering from
// panics by returning the input unchanged.
func (p *Processor) apply(name string, buf *buffer.Buffer, kernel channelKernel) (out *buffer.Buffer, err error) {
	if buf.Frames() == 0 {
		return buf.Clone(), nil
	}

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("effect failed, returning input unchanged",
				"effect", name, "panic", r)
			out, err = buf, nil
		}
	}()

	data := make([][]float64, buf.Channels())
	for ch := 0; ch < buf.Channels(); ch++ {
		data[ch] = kernel(buf.Channel(ch), buf.SampleRate())
	}

	return buffer.FromSlices(data, buf.SampleRate())
}

// Reverb applies a Schroeder reverb and returns a new buffer.
func (p *Processor) Reverb(buf *buffer.Buffer, params ReverbParams) (*buffer.Buffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return p.apply("reverb", buf, func(samples []float64, sampleRate int) []float64 {
		return applyReverb(samples, sampleRate, params)
	})
}

// Echo applies a feedback echo and returns a new buffer.
func (p *Processor) Echo(buf *buffer.Buffer, params EchoParams) (*buffer.Buffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return p.apply("echo", buf, func(samples []float64, sampleRate int) []float64 {
		return applyEcho(samples, sampleRate, params)
	})
}

// Chorus applies a multi-voice chorus and returns a new buffer.
func (p *Processor) Chorus(buf *buffer.Buffer, params ChorusParams) (*buffer.Buffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return p.apply("chorus", buf, func(samples []float64, sampleRate int) []float64 {
		return applyChorus(samples, sampleRate, params)
	})
}

// ParametricEQ applies the 3-band equalizer and returns a new buffer.
func (p *Processor) ParametricEQ(buf *buffer.Buffer, params EQParams) (*buffer.Buffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return p.apply("parametric_eq", buf, func(samples []float64, sampleRate int) []float64 {
		return applyEQ(samples, sampleRate, params)
	})
}

// Compressor applies dynamic range compression and returns a new buffer.
func (p *Processor) Compressor(buf *buffer.Buffer, params CompressorParams) (*buffer.Buffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return p.apply("compressor", buf, func(samples []float64, sampleRate int) []float64 {
		return applyCompressor(samples, sampleRate, params)
	})
}
