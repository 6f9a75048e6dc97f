package commands

import (
	"strings"

	"github.com/mamadbah2/farmsim/internal/domain/farm"
)

const helpText = `Commands (each action uses one of the day's actions):
  status                      show the farm
  feed                        share animal food among the animals
  water                       share water among the plants
  collect                     gather eggs, wool and milk
  harvest                     gather seeds and tubers from the plants
  buy <item> [quantity]       buy products, animals, plants or a building
  sell <product> <qty|all>    sell from storage
  sell <animal> [n]           sell the n-th animal of that kind
  build <barn|field>          add a building to the farm
  upgrade <building number>   raise a building's level
  sleep                       end the day (free)
  forget                      stop scheduled reports (WhatsApp only)`

func (s *Service) statusText(st farm.Status) string {
	var b strings.Builder
	b.WriteString(s.printer.Sprintf("Day %d | Balance %.2f | Actions %d/%d | Free lots %d\n",
		st.Day, st.Balance, st.ActionsLeft, st.ActionsPer, st.FreeLots))

	if len(st.Storage) == 0 {
		b.WriteString("Storage: empty\n")
	} else {
		parts := make([]string, 0, len(st.Storage))
		for _, stack := range st.Storage {
			parts = append(parts, stack.String())
		}
		b.WriteString("Storage: " + strings.Join(parts, ", ") + "\n")
	}

	for i, bs := range st.Buildings {
		upgrade := "max level"
		if !bs.MaxLevel {
			upgrade = s.printer.Sprintf("upgrade %.2f", bs.UpgradePrice)
		}
		b.WriteString(s.printer.Sprintf("#%d %s, level %d, %d/%d used, %s\n",
			i+1, bs.Name, bs.Level, bs.Slots-bs.Free, bs.Slots, upgrade))
		for _, c := range bs.Occupants {
			line := "  - " + c.Line
			if c.SellPrice != nil {
				line += s.printer.Sprintf(", sells for %.2f", *c.SellPrice)
			}
			b.WriteString(line + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (s *Service) nightText(result farm.DayResult, st farm.Status) string {
	var b strings.Builder
	b.WriteString(s.printer.Sprintf("The night passes. Day %d begins.", result.Day))
	for _, d := range result.Deaths {
		b.WriteString("\n" + d.String())
	}
	b.WriteString(s.printer.Sprintf("\nBalance %.2f, %d actions available.", st.Balance, st.ActionsLeft))
	return b.String()
}
