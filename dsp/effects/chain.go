package effects

import "github.com/metromuse/audiocore/dsp/buffer"

// Chain holds an enabled subset of effects and applies them in the fixed
// order reverb, echo, chorus, EQ, compressor. A nil field is skipped.
type Chain struct {
	Reverb     *ReverbParams
	Echo       *EchoParams
	Chorus     *ChorusParams
	EQ         *EQParams
	Compressor *CompressorParams
}

// Validate checks every enabled stage.
func (c Chain) Validate() error {
	if c.Reverb != nil {
		if err := c.Reverb.Validate(); err != nil {
			return err
		}
	}
	if c.Echo != nil {
		if err := c.Echo.Validate(); err != nil {
			return err
		}
	}
	if c.Chorus != nil {
		if err := c.Chorus.Validate(); err != nil {
			return err
		}
	}
	if c.EQ != nil {
		if err := c.EQ.Validate(); err != nil {
			return err
		}
	}
	if c.Compressor != nil {
		if err := c.Compressor.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs the enabled stages through p and returns the result. The chain
// is validated as a whole before any stage runs, so a bad parameter in a
// later stage cannot leave a half-processed result.
func (c Chain) Apply(p *Processor, buf *buffer.Buffer) (*buffer.Buffer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	out := buf
	var err error

	if c.Reverb != nil {
		if out, err = p.Reverb(out, *c.Reverb); err != nil {
			return nil, err
		}
	}
	if c.Echo != nil {
		if out, err = p.Echo(out, *c.Echo); err != nil {
			return nil, err
		}
	}
	if c.Chorus != nil {
		if out, err = p.Chorus(out, *c.Chorus); err != nil {
			return nil, err
		}
	}
	if c.EQ != nil {
		if out, err = p.ParametricEQ(out, *c.EQ); err != nil {
			return nil, err
		}
	}
	if c.Compressor != nil {
		if out, err = p.Compressor(out, *c.Compressor); err != nil {
			return nil, err
		}
	}

	if out == buf {
		out = buf.Clone()
	}
	return out, nil
}
