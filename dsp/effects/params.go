package effects

import (
	"errors"
	"fmt"

	"github.com/metromuse/audiocore/dsp/core"
)

// ErrInvalidParam is wrapped by all parameter validation failures.
var ErrInvalidParam = errors.New("effects: invalid parameter")

const (
	defaultReverbRoomSize = 0.5
	defaultReverbDamping  = 0.5
	defaultReverbWet      = 0.3

	defaultEchoDelayMs  = 300.0
	defaultEchoFeedback = 0.3
	defaultEchoWet      = 0.5
	maxEchoFeedback     = 0.9

	defaultChorusRate   = 1.5
	defaultChorusDepth  = 0.02
	defaultChorusVoices = 3
	maxChorusVoices     = 16

	defaultEQLowFreq  = 200.0
	defaultEQMidFreq  = 1000.0
	defaultEQHighFreq = 5000.0
	defaultEQQ        = 1.0
	maxEQGainDB       = 20.0
	eqGainEpsilonDB   = 0.1

	defaultCompThresholdDB = -12.0
	defaultCompRatio       = 4.0
	defaultCompAttackMs    = 5.0
	defaultCompReleaseMs   = 50.0
)

// ReverbParams configures the Schroeder reverb.
type ReverbParams struct {
	RoomSize float64 // 0..1
	Damping  float64 // 0..1
	WetLevel float64 // 0..1
}

// DefaultReverbParams returns the dialog defaults.
func DefaultReverbParams() ReverbParams {
	return ReverbParams{
		RoomSize: defaultReverbRoomSize,
		Damping:  defaultReverbDamping,
		WetLevel: defaultReverbWet,
	}
}

// Validate reports the first out-of-range field.
func (p ReverbParams) Validate() error {
	if err := unitRange("reverb room size", p.RoomSize); err != nil {
		return err
	}
	if err := unitRange("reverb damping", p.Damping); err != nil {
		return err
	}
	return unitRange("reverb wet level", p.WetLevel)
}

// EchoParams configures the feedback echo.
type EchoParams struct {
	DelayMs  float64 // > 0
	Feedback float64 // 0..0.9
	WetLevel float64 // 0..1
}

// DefaultEchoParams returns the dialog defaults.
func DefaultEchoParams() EchoParams {
	return EchoParams{
		DelayMs:  defaultEchoDelayMs,
		Feedback: defaultEchoFeedback,
		WetLevel: defaultEchoWet,
	}
}

func (p EchoParams) Validate() error {
	if !core.ValidParam(p.DelayMs) || p.DelayMs <= 0 {
		return fmt.Errorf("%w: echo delay must be positive ms, got %g", ErrInvalidParam, p.DelayMs)
	}
	if !core.ValidParam(p.Feedback) || p.Feedback < 0 || p.Feedback > maxEchoFeedback {
		return fmt.Errorf("%w: echo feedback out of range [0, %g]: %g", ErrInvalidParam, maxEchoFeedback, p.Feedback)
	}
	return unitRange("echo wet level", p.WetLevel)
}

// ChorusParams configures the multi-voice chorus.
type ChorusParams struct {
	Rate   float64 // LFO rate in Hz, > 0
	Depth  float64 // modulation depth in seconds, > 0
	Voices int     // 1..16
}

// DefaultChorusParams returns the dialog defaults.
func DefaultChorusParams() ChorusParams {
	return ChorusParams{
		Rate:   defaultChorusRate,
		Depth:  defaultChorusDepth,
		Voices: defaultChorusVoices,
	}
}

func (p ChorusParams) Validate() error {
	if !core.ValidParam(p.Rate) || p.Rate <= 0 {
		return fmt.Errorf("%w: chorus rate must be positive Hz, got %g", ErrInvalidParam, p.Rate)
	}
	if !core.ValidParam(p.Depth) || p.Depth <= 0 {
		return fmt.Errorf("%w: chorus depth must be positive seconds, got %g", ErrInvalidParam, p.Depth)
	}
	if p.Voices < 1 || p.Voices > maxChorusVoices {
		return fmt.Errorf("%w: chorus voices out of range [1, %d]: %d", ErrInvalidParam, maxChorusVoices, p.Voices)
	}
	return nil
}

// EQParams configures the 3-band parametric equalizer. Gains are in dB;
// bands with |gain| <= 0.1 dB are bypassed.
type EQParams struct {
	LowGainDB  float64
	MidGainDB  float64
	HighGainDB float64
	LowFreq    float64
	MidFreq    float64
	HighFreq   float64
	Q          float64
}

// DefaultEQParams returns flat gains at the dialog's band frequencies.
func DefaultEQParams() EQParams {
	return EQParams{
		LowFreq:  defaultEQLowFreq,
		MidFreq:  defaultEQMidFreq,
		HighFreq: defaultEQHighFreq,
		Q:        defaultEQQ,
	}
}

func (p EQParams) Validate() error {
	for _, g := range []struct {
		name string
		val  float64
	}{
		{"eq low gain", p.LowGainDB},
		{"eq mid gain", p.MidGainDB},
		{"eq high gain", p.HighGainDB},
	} {
		if !core.ValidParam(g.val) || g.val < -maxEQGainDB || g.val > maxEQGainDB {
			return fmt.Errorf("%w: %s out of range [%g, %g] dB: %g",
				ErrInvalidParam, g.name, -maxEQGainDB, maxEQGainDB, g.val)
		}
	}
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"eq low frequency", p.LowFreq},
		{"eq mid frequency", p.MidFreq},
		{"eq high frequency", p.HighFreq},
	} {
		if !core.ValidParam(f.val) || f.val <= 0 {
			return fmt.Errorf("%w: %s must be positive Hz, got %g", ErrInvalidParam, f.name, f.val)
		}
	}
	if !core.ValidParam(p.Q) || p.Q <= 0 {
		return fmt.Errorf("%w: eq q must be positive, got %g", ErrInvalidParam, p.Q)
	}
	return nil
}

// CompressorParams configures the dynamic range compressor.
type CompressorParams struct {
	ThresholdDB float64 // <= 0
	Ratio       float64 // >= 1
	AttackMs    float64 // > 0
	ReleaseMs   float64 // > 0
}

// DefaultCompressorParams returns the dialog defaults.
func DefaultCompressorParams() CompressorParams {
	return CompressorParams{
		ThresholdDB: defaultCompThresholdDB,
		Ratio:       defaultCompRatio,
		AttackMs:    defaultCompAttackMs,
		ReleaseMs:   defaultCompReleaseMs,
	}
}

func (p CompressorParams) Validate() error {
	if !core.ValidParam(p.ThresholdDB) || p.ThresholdDB > 0 {
		return fmt.Errorf("%w: compressor threshold must be <= 0 dB, got %g", ErrInvalidParam, p.ThresholdDB)
	}
	if !core.ValidParam(p.Ratio) || p.Ratio < 1 {
		return fmt.Errorf("%w: compressor ratio must be >= 1, got %g", ErrInvalidParam, p.Ratio)
	}
	if !core.ValidParam(p.AttackMs) || p.AttackMs <= 0 {
		return fmt.Errorf("%w: compressor attack must be positive ms, got %g", ErrInvalidParam, p.AttackMs)
	}
	if !core.ValidParam(p.ReleaseMs) || p.ReleaseMs <= 0 {
		return fmt.Errorf("%w: compressor release must be positive ms, got %g", ErrInvalidParam, p.ReleaseMs)
	}
	return nil
}

func unitRange(name string, v float64) error {
	if !core.ValidParam(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s out of range [0, 1]: %g", ErrInvalidParam, name, v)
	}
	return nil
}
