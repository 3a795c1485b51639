// Package calculator is the reference calculation engine: a deterministic
// stat-weight model that folds per-node modifiers into build statistics.
// the production game engine stays pluggable behind the optimizer's oracle
// interface, this model exists so the CLI, the HTTP server and the tests
// have an engine that needs no external process.
package calculator

import (
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/util"
)

// modifier ids recognized by the reference model. unknown ids on a node are
// ignored rather than rejected, the live tree carries stats this model does
// not simulate.
const (
	StatIncreasedDamage      = "increased_damage"
	StatIncreasedAttackSpeed = "increased_attack_speed"
	StatFlatLife             = "flat_life"
	StatIncreasedLife        = "increased_life"
	StatFlatEnergyShield     = "flat_energy_shield"
	StatIncreasedES          = "increased_energy_shield"
	StatFlatArmour           = "flat_armour"
	StatIncreasedArmour      = "increased_armour"
	StatFlatEvasion          = "flat_evasion"
	StatIncreasedEvasion     = "increased_evasion"
)

const (
	baseDamagePerSecond = 100.0
	baseLifePerLevel    = 12.0
	baseLife            = 40.0
	armourMitigationK   = 5000.0
)

type Calculator struct {
	graph *datastructure.TreeGraph
}

func NewCalculator(graph *datastructure.TreeGraph) *Calculator {
	return &Calculator{graph: graph}
}

// Factory yields one independent engine per evaluation worker. the
// reference model is stateless so instances share only the read-only tree.
type Factory struct {
	graph *datastructure.TreeGraph
}

func NewFactory(graph *datastructure.TreeGraph) *Factory {
	return &Factory{graph: graph}
}

func (f *Factory) NewOracle() *Calculator {
	return NewCalculator(f.graph)
}

// Evaluate computes build statistics for one configuration. a configuration
// referencing a node outside the tree fails with a recoverable calculation
// error.
func (c *Calculator) Evaluate(config *datastructure.Configuration) (*datastructure.Statistics, error) {
	var (
		incDamage, incSpeed          float64
		flatLife, incLife            float64
		flatES, incES                float64
		flatArmour, incArmour        float64
		flatEvasion, incEvasion      float64
	)

	for id := range config.Allocated() {
		node, err := c.graph.GetNode(id)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrCalculationFailure,
				"configuration references node %d outside the tree", id)
		}
		incDamage += node.GetStat(StatIncreasedDamage)
		incSpeed += node.GetStat(StatIncreasedAttackSpeed)
		flatLife += node.GetStat(StatFlatLife)
		incLife += node.GetStat(StatIncreasedLife)
		flatES += node.GetStat(StatFlatEnergyShield)
		incES += node.GetStat(StatIncreasedES)
		flatArmour += node.GetStat(StatFlatArmour)
		incArmour += node.GetStat(StatIncreasedArmour)
		flatEvasion += node.GetStat(StatFlatEvasion)
		incEvasion += node.GetStat(StatIncreasedEvasion)
	}

	level := float64(config.GetLevel())

	dps := baseDamagePerSecond * (1 + incDamage/100.0) * (1 + incSpeed/100.0)
	life := (baseLife + baseLifePerLevel*level + flatLife) * (1 + incLife/100.0)
	es := flatES * (1 + incES/100.0)
	armour := flatArmour * (1 + incArmour/100.0)
	evasion := flatEvasion * (1 + incEvasion/100.0)

	// physical mitigation from armour scales the hit pool into effective hp
	mitigation := armour / (armour + armourMitigationK)
	ehp := (life + es) / (1 - mitigation)

	return &datastructure.Statistics{
		TotalDPS:     dps,
		EHP:          ehp,
		Life:         life,
		EnergyShield: es,
		Armour:       armour,
		Evasion:      evasion,
	}, nil
}
