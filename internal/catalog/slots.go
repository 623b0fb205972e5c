package catalog

import "strings"

// SlotView is a denormalized slot record for a single date, as shown in the
// reservation form and returned by the slots API.
type SlotView struct {
	ProgramID   string `json:"programId"`
	ProgramName string `json:"programName"`
	Target      string `json:"target"`
	Time        string `json:"time"`
	Capacity    int    `json:"capacity"`
	Reserved    int    `json:"reserved"`
	Remain      int    `json:"remain"`
}

// SlotsForDate returns every slot on the given date (exact string equality,
// no timezone conversion), in catalog order: program order, then slot order
// within each program. Remain is capacity minus reserved and may be negative
// when upstream data is inconsistent; display layers treat negative remain as
// zero availability but the value is reported unclamped.
func (c *Catalog) SlotsForDate(date string) []SlotView {
	results := []SlotView{}
	for _, p := range c.Programs {
		for _, slot := range p.AvailableSlots {
			if slot.Date != date {
				continue
			}
			results = append(results, SlotView{
				ProgramID:   p.ProgramID,
				ProgramName: p.Name,
				Target:      p.Target,
				Time:        slot.Time,
				Capacity:    slot.Capacity,
				Reserved:    slot.Reserved,
				Remain:      slot.Capacity - slot.Reserved,
			})
		}
	}
	return results
}

// FindSlot looks up a slot by program name, date, and time range. Program
// names match case-insensitively after trimming; date and time must match
// exactly. Used to validate assistant-suggested auto-fill values before they
// reach the form.
func (c *Catalog) FindSlot(programName, date, timeRange string) (SlotView, bool) {
	want := strings.ToLower(strings.TrimSpace(programName))
	for _, p := range c.Programs {
		if strings.ToLower(strings.TrimSpace(p.Name)) != want {
			continue
		}
		for _, slot := range p.AvailableSlots {
			if slot.Date == date && slot.Time == timeRange {
				return SlotView{
					ProgramID:   p.ProgramID,
					ProgramName: p.Name,
					Target:      p.Target,
					Time:        slot.Time,
					Capacity:    slot.Capacity,
					Reserved:    slot.Reserved,
					Remain:      slot.Capacity - slot.Reserved,
				}, true
			}
		}
	}
	return SlotView{}, false
}

// ProgramByID returns the program with the given ID.
func (c *Catalog) ProgramByID(id string) (Program, bool) {
	for _, p := range c.Programs {
		if p.ProgramID == id {
			return p, true
		}
	}
	return Program{}, false
}

// ProgramByName returns the program whose name matches case-insensitively.
func (c *Catalog) ProgramByName(name string) (Program, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range c.Programs {
		if strings.ToLower(strings.TrimSpace(p.Name)) == want {
			return p, true
		}
	}
	return Program{}, false
}
