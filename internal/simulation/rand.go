package simulation

import (
	"math/rand"
	"sync"
	"time"
)

// Source abstrae la fuente de aleatoriedad del generador para que los tests
// puedan sustituirla por una secuencia fija.
type Source interface {
	Float64() float64
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource crea una fuente determinista a partir de una semilla.
func NewSeededSource(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSource crea la fuente de produccion, sembrada con el reloj.
func NewTimeSource() Source {
	return NewSeededSource(time.Now().UnixNano())
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// FixedSource devuelve siempre los mismos valores en orden, ciclando.
// Solo para tests.
type FixedSource struct {
	Values []float64
	idx    int
}

func (f *FixedSource) Float64() float64 {
	if len(f.Values) == 0 {
		return 0.5
	}
	v := f.Values[f.idx%len(f.Values)]
	f.idx++
	return v
}
