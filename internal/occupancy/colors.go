package occupancy

import (
	"fmt"
	"image/color"
	"math/rand"
	"sync"
)

const (
	DefaultBrightnessThreshold = 500
	DefaultColorAttempts       = 1000

	channelMin = 128
	channelMax = 255
)

// FallbackColor is handed out when no class color can be derived.
var FallbackColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

type ColorTableOptions struct {
	// Reserved colors are never assigned to a class.
	Reserved            []color.RGBA
	BrightnessThreshold int
	MaxAttempts         int
}

// ColorTable assigns each class id a stable display color. Safe for concurrent use.
type ColorTable struct {
	reserved  []color.RGBA
	threshold int
	attempts  int

	mu     sync.RWMutex
	colors map[int]color.RGBA
}

func NewColorTable(opts ColorTableOptions) *ColorTable {
	if opts.BrightnessThreshold <= 0 {
		opts.BrightnessThreshold = DefaultBrightnessThreshold
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultColorAttempts
	}
	reserved := make([]color.RGBA, len(opts.Reserved))
	copy(reserved, opts.Reserved)

	return &ColorTable{
		reserved:  reserved,
		threshold: opts.BrightnessThreshold,
		attempts:  opts.MaxAttempts,
		colors:    make(map[int]color.RGBA),
	}
}

// ColorFor returns the color of classID, deriving it on first use from a
// generator seeded with the id. When no candidate is bright enough and free,
// FallbackColor is cached for the class and ErrClassColorExhausted is returned
// once.
func (t *ColorTable) ColorFor(classID int) (color.RGBA, error) {
	t.mu.RLock()
	c, ok := t.colors[classID]
	t.mu.RUnlock()
	if ok {
		return c, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.colors[classID]; ok {
		return c, nil
	}

	c, found := t.derive(classID)
	t.colors[classID] = c
	if !found {
		return c, fmt.Errorf("%w: class %d after %d attempts", ErrClassColorExhausted, classID, t.attempts)
	}
	return c, nil
}

// Len is the number of classes seen so far.
func (t *ColorTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.colors)
}

// derive must be called with t.mu held.
func (t *ColorTable) derive(classID int) (color.RGBA, bool) {
	rng := rand.New(rand.NewSource(int64(classID)))
	span := channelMax - channelMin + 1
	for i := 0; i < t.attempts; i++ {
		c := color.RGBA{
			R: uint8(channelMin + rng.Intn(span)),
			G: uint8(channelMin + rng.Intn(span)),
			B: uint8(channelMin + rng.Intn(span)),
			A: 255,
		}
		if int(c.R)+int(c.G)+int(c.B) <= t.threshold {
			continue
		}
		if t.taken(c) {
			continue
		}
		return c, true
	}
	return FallbackColor, false
}

func (t *ColorTable) taken(c color.RGBA) bool {
	for _, r := range t.reserved {
		if r.R == c.R && r.G == c.G && r.B == c.B {
			return true
		}
	}
	for _, used := range t.colors {
		if used == c {
			return true
		}
	}
	return false
}
