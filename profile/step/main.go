// Profiling:
// go build ./profile/step
// go tool pprof -http=":8000" -nodefraction=0.001 ./step cpu.prof

package main

import (
	"log"
	"os"
	"runtime/pprof"

	"github.com/mattmurr/ciggurat"
)

func main() {
	f, err := os.Create("cpu.prof")
	if err != nil {
		log.Fatal(err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		log.Fatal(err)
	}
	defer pprof.StopCPUProfile()

	run(1000, 100000)
}

func run(steps, numEntities int) {
	w := ciggurat.NewWorld()
	must(w.RegisterType(ciggurat.TypeDesc{Identifier: "position", Size: 8, Alignment: 4}))
	must(w.RegisterType(ciggurat.TypeDesc{Identifier: "velocity", Size: 8, Alignment: 4}))

	must(w.RegisterSystem(ciggurat.SystemDesc{
		Identifier:   "integrate",
		Requirements: "position, velocity",
		Func: func(ctx *ciggurat.SystemCtx, dt float64) {
			p := (*[2]float32)(ctx.Component(0))
			v := (*[2]float32)(ctx.Component(1))
			p[0] += v[0] * float32(dt)
			p[1] += v[1] * float32(dt)
		},
	}))

	if _, err := w.Spawn(numEntities, "position, velocity"); err != nil {
		log.Fatal(err)
	}
	for range steps {
		must(w.Step(1.0 / 60.0))
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
