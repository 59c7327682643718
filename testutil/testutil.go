package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Point returns a point uniformly distributed on the sphere.
// Uses Gaussian coordinates, which are rotation invariant.
func (r *RNG) Point() s2.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pointLocked()
}

func (r *RNG) pointLocked() s2.Point {
	for {
		v := r3.Vector{X: r.rand.NormFloat64(), Y: r.rand.NormFloat64(), Z: r.rand.NormFloat64()}
		if n2 := v.Norm2(); n2 > 1e-30 {
			return s2.Point{Vector: v.Mul(1 / math.Sqrt(n2))}
		}
	}
}

// Points returns n points uniformly distributed on the sphere.
func (r *RNG) Points(n int) []s2.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]s2.Point, n)
	for i := range pts {
		pts[i] = r.pointLocked()
	}
	return pts
}

// PointsInCap returns n points uniformly distributed within radiusDegrees of
// center. The distribution is uniform by area.
func (r *RNG) PointsInCap(center s2.Point, radiusDegrees float64, n int) []s2.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := s2.Ortho(center).Vector
	v := center.Cross(u)
	h := 1 - math.Cos(radiusDegrees*math.Pi/180)

	pts := make([]s2.Point, n)
	for i := range pts {
		// Height above the cap plane is uniform for an area-uniform sample.
		z := 1 - h*r.rand.Float64()
		phi := 2 * math.Pi * r.rand.Float64()
		rho := math.Sqrt(math.Max(0, 1-z*z))
		w := u.Mul(rho * math.Cos(phi)).Add(v.Mul(rho * math.Sin(phi))).Add(center.Mul(z))
		pts[i] = s2.Point{Vector: w.Normalize()}
	}
	return pts
}

// Cap returns a cap with a random center and a radius in
// [minDegrees, maxDegrees).
func (r *RNG) Cap(minDegrees, maxDegrees float64) s2.Cap {
	r.mu.Lock()
	defer r.mu.Unlock()

	radius := minDegrees + (maxDegrees-minDegrees)*r.rand.Float64()
	return s2.CapFromCenterAngle(r.pointLocked(), s1.Angle(radius)*s1.Degree)
}

// CellID returns a random cell id at the given level.
func (r *RNG) CellID(level int) s2.CellID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return s2.CellFromPoint(r.pointLocked()).ID().Parent(level)
}

// LatLng returns the point at the given coordinates in degrees.
func LatLng(lat, lng float64) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
}

// ParsePoint parses a point written as "lat:lng" in degrees.
// It panics on malformed input.
func ParsePoint(s string) s2.Point {
	lat, lng, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		panic(fmt.Sprintf("testutil: malformed point %q", s))
	}
	return LatLng(mustFloat(lat), mustFloat(lng))
}

// ParsePoints parses a comma separated list of "lat:lng" points.
func ParsePoints(s string) []s2.Point {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var pts []s2.Point
	for _, part := range strings.Split(s, ",") {
		pts = append(pts, ParsePoint(part))
	}
	return pts
}

func mustFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		panic(fmt.Sprintf("testutil: %v", err))
	}
	return f
}
