package ciggurat

import (
	"fmt"
	"testing"
)

// benchComposition is the component set spawned and iterated by the
// benchmarks.
const benchComposition = "position, velocity"

func benchWorld(b *testing.B) *World {
	b.Helper()
	w := NewWorld()
	for _, d := range []TypeDesc{
		{Identifier: "position", Size: 8, Alignment: 4},
		{Identifier: "velocity", Size: 8, Alignment: 4},
		{Identifier: "health", Size: 8, Alignment: 8},
	} {
		if err := w.RegisterType(d); err != nil {
			b.Fatalf("RegisterType(%q): %v", d.Identifier, err)
		}
	}
	return w
}

func BenchmarkSpawn(b *testing.B) {
	sizes := []int{1000, 10000, 100000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dK", size/1000), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				w := benchWorld(b)
				if _, err := w.Spawn(size, benchComposition); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStep(b *testing.B) {
	sizes := []int{1000, 10000, 100000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dK", size/1000), func(b *testing.B) {
			w := benchWorld(b)
			err := w.RegisterSystem(SystemDesc{
				Identifier:   "integrate",
				Requirements: benchComposition,
				Func: func(ctx *SystemCtx, dt float64) {
					p := (*[2]float32)(ctx.Component(0))
					v := (*[2]float32)(ctx.Component(1))
					p[0] += v[0] * float32(dt)
					p[1] += v[1] * float32(dt)
				},
			})
			if err != nil {
				b.Fatal(err)
			}
			if _, err := w.Spawn(size, benchComposition); err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := w.Step(1.0 / 60.0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkComponentLookup(b *testing.B) {
	w := benchWorld(b)
	ents, err := w.Spawn(10000, benchComposition)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if w.Component(ents[i%len(ents)], "velocity") == nil {
			b.Fatal("missing component")
		}
	}
}
