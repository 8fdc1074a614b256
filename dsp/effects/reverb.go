package effects

// Schroeder reverb: four parallel feedback combs followed by three series
// allpasses. Delay lengths are tuned in seconds and scaled by room size so
// the topology holds at any sample rate.

var (
	reverbCombTunings    = [4]float64{0.0297, 0.0371, 0.0411, 0.0437}
	reverbCombGains      = [4]float64{0.742, 0.733, 0.715, 0.697}
	reverbAllpassTunings = [3]float64{0.005, 0.0168, 0.0298}
)

const reverbAllpassGain = 0.7

type reverbComb struct {
	buffer   []float64
	index    int
	feedback float64 // gain * (1 - damping)
}

// process returns the delayed sample and stores input plus feedback.
func (c *reverbComb) process(input float64) float64 {
	delayed := c.buffer[c.index]
	c.buffer[c.index] = input + delayed*c.feedback
	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}
	return delayed
}

type reverbAllpass struct {
	buffer []float64
	index  int
}

func (a *reverbAllpass) process(input float64) float64 {
	delayed := a.buffer[a.index]
	a.buffer[a.index] = input + delayed*reverbAllpassGain
	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}
	return delayed - input*reverbAllpassGain
}

// reverbDelay converts a tuning in seconds to a room-scaled delay length.
func reverbDelay(tuning float64, sampleRate int, roomSize float64) int {
	base := int(float64(sampleRate) * tuning)
	return int(float64(base) * (0.5 + roomSize*0.5))
}

// applyReverb processes one channel with fresh delay-line state.
func applyReverb(samples []float64, sampleRate int, p ReverbParams) []float64 {
	out := make([]float64, len(samples))

	var combs []*reverbComb
	for i, tuning := range reverbCombTunings {
		delay := reverbDelay(tuning, sampleRate, p.RoomSize)
		if delay <= 0 {
			continue
		}
		combs = append(combs, &reverbComb{
			buffer:   make([]float64, delay),
			feedback: reverbCombGains[i] * (1 - p.Damping),
		})
	}

	var allpasses []*reverbAllpass
	for _, tuning := range reverbAllpassTunings {
		delay := reverbDelay(tuning, sampleRate, p.RoomSize)
		if delay <= 0 {
			continue
		}
		allpasses = append(allpasses, &reverbAllpass{buffer: make([]float64, delay)})
	}

	wet := p.WetLevel
	for i, x := range samples {
		var combSum float64
		for _, c := range combs {
			combSum += c.process(x)
		}

		acc := combSum
		for _, a := range allpasses {
			acc = a.process(acc)
		}

		out[i] = x*(1-wet) + acc*wet
	}

	return out
}
