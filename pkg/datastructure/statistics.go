package datastructure

// Statistics is the numeric output of the calculation engine for one
// configuration. fields are what the optimizer objectives consume, anything
// else the engine computes stays on the engine side.
type Statistics struct {
	TotalDPS     float64 `json:"total_dps"`
	EHP          float64 `json:"ehp"`
	Life         float64 `json:"life"`
	EnergyShield float64 `json:"energy_shield"`
	Armour       float64 `json:"armour"`
	Evasion      float64 `json:"evasion"`
}
