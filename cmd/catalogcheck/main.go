// Command catalogcheck validates a catalog file and prints a short summary.
// Useful before deploying an updated eco_programs.json.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ecocenter/visit-platform/internal/catalog"
)

func main() {
	path := flag.String("catalog", "data/eco_programs.json", "path to the catalog file")
	flag.Parse()

	cat, err := catalog.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalogcheck: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("center: %s\n", cat.CenterName)
	fmt.Printf("rules: %d-%d people per team, deadline %dh before visit\n",
		cat.VisitRules.MinPeoplePerTeam,
		cat.VisitRules.MaxPeoplePerTeam,
		cat.VisitRules.ReservationDeadlineHours)
	fmt.Printf("programs: %d, faq entries: %d\n", len(cat.Programs), len(cat.FAQ))

	warnings := 0
	for _, p := range cat.Programs {
		fmt.Printf("  %s %-24s target=%s slots=%d\n", p.ProgramID, p.Name, p.Target, len(p.AvailableSlots))
		for _, s := range p.AvailableSlots {
			remain := s.Capacity - s.Reserved
			if remain < 0 {
				fmt.Printf("    WARN %s %s reserved %d exceeds capacity %d\n", s.Date, s.Time, s.Reserved, s.Capacity)
				warnings++
			}
		}
	}

	if warnings > 0 {
		fmt.Printf("%d warning(s)\n", warnings)
	}
}
