// Profiling:
// go build ./profile/spawn
// go tool pprof -http=":8000" -nodefraction=0.001 ./spawn mem.pprof

package main

import (
	"log"

	"github.com/mattmurr/ciggurat"
	"github.com/pkg/profile"
)

func main() {
	rounds := 50
	entities := 10000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, entities)
	p.Stop()
}

func run(rounds, numEntities int) {
	for range rounds {
		w := ciggurat.NewWorld()
		must(w.RegisterType(ciggurat.TypeDesc{Identifier: "position", Size: 8, Alignment: 4}))
		must(w.RegisterType(ciggurat.TypeDesc{Identifier: "velocity", Size: 8, Alignment: 4}))
		must(w.RegisterType(ciggurat.TypeDesc{Identifier: "health", Size: 4, Alignment: 4}))

		if _, err := w.Spawn(numEntities, "position, velocity"); err != nil {
			log.Fatal(err)
		}
		if _, err := w.Spawn(numEntities, "position, velocity, health"); err != nil {
			log.Fatal(err)
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
