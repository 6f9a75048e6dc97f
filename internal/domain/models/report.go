package models

import "time"

// DayReport is the record written to the report sinks after every night.
type DayReport struct {
	Day        int            `bson:"day" json:"day"`
	Balance    float64        `bson:"balance" json:"balance"`
	Deaths     []DeathRecord  `bson:"deaths" json:"deaths"`
	Population map[string]int `bson:"population" json:"population"`
	Storage    []StockLine    `bson:"storage" json:"storage"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
}

// DeathRecord captures one creature lost during the night.
type DeathRecord struct {
	Kind  string `bson:"kind" json:"kind"`
	Cause string `bson:"cause" json:"cause"`
	Age   int    `bson:"age" json:"age"`
}

// StockLine is one storage stack at report time.
type StockLine struct {
	Kind     string  `bson:"kind" json:"kind"`
	Quantity float64 `bson:"quantity" json:"quantity"`
}

// TotalPopulation sums the population across kinds.
func (r DayReport) TotalPopulation() int {
	total := 0
	for _, n := range r.Population {
		total += n
	}
	return total
}
