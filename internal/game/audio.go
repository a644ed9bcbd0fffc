package game

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundEat SoundKind = iota
	SoundNearMiss
	SoundTailCut
	SoundDeath
	SoundHighScore
	SoundExpire
	SoundMenuSelect
)

// AudioSystem plays procedural sound effects and background music. All of the
// audio is synthesized at play time; no sample assets ship with the game.
type AudioSystem struct {
	ctx         *oto.Context
	ready       chan struct{}
	musicPlayer oto.Player
	muted       atomic.Bool
	sfxVolume   float64
	musicVolume float64
}

// NewAudioSystem opens the audio device. A nil *AudioSystem is a valid no-op
// receiver for every method, so callers can run without sound.
func NewAudioSystem() (*AudioSystem, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &AudioSystem{
		ctx:       ctx,
		ready:     ready,
		sfxVolume: 0.58,
	}, nil
}

func (a *AudioSystem) Shutdown() {
	if a == nil {
		return
	}
	if a.musicPlayer != nil {
		a.musicPlayer.Close()
		a.musicPlayer = nil
	}
}

// ToggleMute flips the mute state and returns the new value.
func (a *AudioSystem) ToggleMute() bool {
	if a == nil {
		return true
	}
	m := !a.muted.Load()
	a.muted.Store(m)
	if a.musicPlayer != nil {
		if m {
			a.musicPlayer.SetVolume(0)
		} else {
			a.musicPlayer.SetVolume(a.musicVolume)
		}
	}
	return m
}

func (a *AudioSystem) Muted() bool { return a == nil || a.muted.Load() }

// Attach subscribes the audio system to gameplay events.
func (a *AudioSystem) Attach(bus *EventBus) {
	if a == nil {
		return
	}
	bus.Subscribe(EventFoodEaten, func(Event) { a.PlaySound(SoundEat) })
	bus.Subscribe(EventNearMiss, func(Event) { a.PlaySound(SoundNearMiss) })
	bus.Subscribe(EventTailCut, func(Event) { a.PlaySound(SoundTailCut) })
	bus.Subscribe(EventDeath, func(Event) { a.PlaySound(SoundDeath) })
	bus.Subscribe(EventNewHighScore, func(Event) { a.PlaySound(SoundHighScore) })
	bus.Subscribe(EventFoodExpired, func(Event) { a.PlaySound(SoundExpire) })
}

// PlaySound plays a procedurally generated sound effect.
func (a *AudioSystem) PlaySound(kind SoundKind) {
	if a == nil || a.muted.Load() {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(a.sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// StartMusic starts the background music loop. Restarting replaces the
// current player.
func (a *AudioSystem) StartMusic() {
	if a == nil {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	if a.musicPlayer != nil {
		a.musicPlayer.Close()
	}
	a.musicVolume = 0.14
	reader := &musicReader{seed: uint64(time.Now().UnixNano())}
	player := a.ctx.NewPlayer(reader)
	if a.muted.Load() {
		player.SetVolume(0)
	} else {
		player.SetVolume(a.musicVolume)
	}
	a.musicPlayer = player
	player.Play()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// putStereoF32LR writes independent left/right samples in [-1,1].
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}

// softSat applies gentle tanh-like saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundEat:
		return genEat()
	case SoundNearMiss:
		return genNearMiss()
	case SoundTailCut:
		return genTailCut()
	case SoundDeath:
		return genDeath()
	case SoundHighScore:
		return genHighScore()
	case SoundExpire:
		return genExpire()
	case SoundMenuSelect:
		return genMenuSelect()
	}
	return nil
}

// genEat: snappy FM pop with ascending pitch and a bell attack.
func genEat() []byte {
	n := int(0.09 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		freq := 480 + 720*p
		s := fm(t, freq, 2.0, 3.5*env) * env * 0.5
		// Thin harmonic layer for clarity.
		s += math.Sin(2*math.Pi*freq*3*t) * env * 0.06
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genNearMiss: quick upward glissando chime, a "phew" for a lucky dodge.
func genNearMiss() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.35, 0.2, 0.3)
		freq := 620 * math.Pow(2.2, p)
		s := fm(t, freq, 2.756, 3.0*env) * env * 0.34
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genTailCut: short chop transient plus a descending wet thud.
func genTailCut() []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x7A11C07)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		crack := 0.0
		if p < 0.12 {
			crack = lcg(&seed) * (1 - p/0.12) * 0.5
		}
		lp = lp*0.6 + lcg(&seed)*0.4
		body := lp * math.Exp(-p*12) * 0.3
		thump := fm(t, 140-80*p, 0.5, 1.0) * math.Exp(-p*14) * 0.42
		s := crack + body + thump
		putStereoF32(buf, i, softSat(s*0.8))
	}
	return buf
}

// genDeath: slow descending minor chord, staggered.
func genDeath() []byte {
	dur := 0.75
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025) // slight pitch drop
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1 // sub
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genHighScore: ascending FM bell staircase, each note rings over the next.
func genHighScore() []byte {
	notes := []float64{440, 554.37, 659.25, 880, 1108.73}
	noteStep := int(0.09 * SampleRate)
	total := len(notes)*noteStep + int(0.25*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			s := fm(t, freq, 3.5, 5.5*env) * env * 0.28
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genExpire: hollow downward blip for food fading off the board.
func genExpire() []byte {
	n := int(0.12 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.4, 0.1, 0.3)
		freq := 520 - 300*p
		s := fm(t, freq, 1.0, 1.4*(1-p)) * env * 0.26
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genMenuSelect: crisp click plus a brief high tone.
func genMenuSelect() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// ---- Music ---------------------------------------------------------------

// musicReader streams an endless chill synth loop: pad chords, a sparse sub
// bass and a plucked counter line.
type musicReader struct {
	t    float64
	seed uint64
}

func triWave(phase float64) float64 {
	return (2.0 / math.Pi) * math.Asin(math.Sin(phase))
}

func softSquareWave(phase float64) float64 {
	return math.Tanh(math.Sin(phase) * 3.4)
}

func (m *musicReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	if samples == 0 {
		return 0, nil
	}

	chords := [][]float64{
		{220.0, 277.2, 329.6}, // A
		{196.0, 246.9, 293.7}, // G
		{174.6, 220.0, 261.6}, // F
		{164.8, 207.7, 246.9}, // E
	}
	const tempo = 1.8 // 108 BPM
	const beatsPerChord = 4
	bassPattern := [8]bool{true, false, false, true, false, false, true, false}
	arpOrder := [8]int{0, 1, 2, 1, 0, 2, 1, 2}

	for i := 0; i < samples && i*8+7 < len(p); i++ {
		m.t += 1.0 / SampleRate
		beatLen := 1.0 / tempo
		beatTrig := math.Mod(m.t, beatLen)
		currentBeat := int(m.t * tempo)
		step8 := int(m.t*tempo*2) % 8

		chord := chords[(currentBeat/beatsPerChord)%len(chords)]

		s := 0.0

		// Detuned pad bed.
		for _, freq := range chord {
			ph := 2 * math.Pi * freq * m.t
			vox := math.Sin(ph)*0.66 + math.Sin(ph*2.0)*0.2 + triWave(ph*0.5)*0.1
			detune := math.Sin(2*math.Pi*freq*1.003*m.t) * 0.08
			s += (vox + detune) * 0.08
		}

		// Sparse sub bass.
		if bassPattern[step8] {
			bEnv := adsr(math.Mod(m.t*tempo*2, 1.0), 0.02, 0.5, 0.25, 0.2)
			bPh := 2 * math.Pi * chord[0] / 2 * m.t
			s += (triWave(bPh)*0.55 + softSquareWave(bPh*0.5)*0.2) * bEnv * 0.38
		}

		// Plucked counter line.
		arpFreq := chord[arpOrder[step8]]
		if step8%2 == 1 {
			arpFreq *= 2
		}
		arpEnv := adsr(math.Mod(m.t*tempo*2, 1.0), 0.01, 0.34, 0.12, 0.2)
		arpPh := 2 * math.Pi * arpFreq * m.t
		s += (softSquareWave(arpPh)*0.6 + math.Sin(arpPh*2.0)*0.2) * arpEnv * 0.18

		// Soft shaker on offbeats.
		if step8%2 == 1 {
			s += lcg(&m.seed) * math.Exp(-beatTrig*20.0) * 0.05
		}

		duck := 1.0 - 0.08*math.Exp(-beatTrig*12.0)
		s = softSat(s * duck * 0.9)
		pan := 0.1 * math.Sin(2*math.Pi*0.1*m.t)
		putStereoF32LR(p, i, softSat(s*(1-pan)), softSat(s*(1+pan)))
	}
	return len(p), nil
}
