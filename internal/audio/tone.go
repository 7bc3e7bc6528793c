package audio

import (
	"fmt"
	"sort"
	"time"
)

// Tone is a single oscillator tone.
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

// Step schedules a tone at an offset from the start of its sequence.
type Step struct {
	Offset time.Duration
	Tone   Tone
}

// Sequence is an ordered list of steps.
type Sequence []Step

// Duration returns the time from the first step until the last tone ends.
func (s Sequence) Duration() time.Duration {
	var end time.Duration
	for _, step := range s {
		if d := step.Offset + step.Tone.Duration; d > end {
			end = d
		}
	}
	return end
}

// Cue names a fixed feedback sequence.
type Cue string

const (
	CueClick        Cue = "click"
	CueHover        Cue = "hover"
	CueSuccess      Cue = "success"
	CueError        Cue = "error"
	CueNotification Cue = "notification"
	CueAlert        Cue = "alert"
	CueStartup      Cue = "startup"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func step(offset int, frequency float64, duration int) Step {
	return Step{Offset: ms(offset), Tone: Tone{Frequency: frequency, Duration: ms(duration)}}
}

var sequences = map[Cue]Sequence{
	CueClick: {step(0, 800, 100)},
	CueHover: {step(0, 600, 80)},
	CueSuccess: {
		step(0, 440, 150),
		step(100, 554, 150),
		step(200, 659, 200),
	},
	CueError: {
		step(0, 659, 150),
		step(100, 554, 150),
		step(200, 440, 200),
	},
	CueNotification: {
		step(0, 523, 120),
		step(150, 698, 120),
	},
	CueAlert: {
		step(0, 880, 100),
		step(150, 880, 100),
		step(300, 880, 100),
	},
	CueStartup: startupSequence(),
}

// startupSequence climbs eight tones at 100ms steps.
func startupSequence() Sequence {
	frequencies := []float64{220, 293, 369, 440, 554, 659, 784, 880}
	seq := make(Sequence, len(frequencies))
	for i, f := range frequencies {
		seq[i] = step(i*100, f, 200)
	}
	return seq
}

// Cues returns every known cue in name order.
func Cues() []Cue {
	cues := make([]Cue, 0, len(sequences))
	for cue := range sequences {
		cues = append(cues, cue)
	}
	sort.Slice(cues, func(i, j int) bool { return cues[i] < cues[j] })
	return cues
}

// ParseCue resolves a cue name.
func ParseCue(name string) (Cue, error) {
	cue := Cue(name)
	if _, ok := sequences[cue]; !ok {
		return "", fmt.Errorf("unknown cue %q", name)
	}
	return cue, nil
}

// SequenceFor returns a copy of the cue's sequence.
func SequenceFor(cue Cue) (Sequence, bool) {
	seq, ok := sequences[cue]
	if !ok {
		return nil, false
	}
	return append(Sequence(nil), seq...), true
}

// SequenceDuration reports how long the cue takes to finish playing, or zero
// for unknown cues.
func SequenceDuration(cue Cue) time.Duration {
	return sequences[cue].Duration()
}
