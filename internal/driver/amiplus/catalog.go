package amiplus

import (
	"fmt"

	"github.com/d21d3q/amiplus/internal/driver/wmbus"
)

const (
	registerTotalConsumption   = 0x0E03
	registerTariffBase         = 0x8E0003
	registerCurrentConsumption = 0x0B2B
	registerTotalProduction    = 0x0E833C
	registerCurrentProduction  = 0x0BAB3C
	registerPhaseVoltage       = 0x0AFDC9FC

	energyDivisor = 1000
	tariffDivisor = 100000
	powerDivisor  = 1000
)

var defaultCatalog = buildCatalog()

// Catalog returns a copy of the Amiplus register catalog.
func Catalog() wmbus.Catalog {
	return defaultCatalog.Clone()
}

func buildCatalog() wmbus.Catalog {
	cat := wmbus.Catalog{
		{Name: "total_energy_consumption_kwh", Code: registerTotalConsumption, Width: 2, Digits: 6, Divisor: energyDivisor},
	}
	for tariff := uint32(1); tariff <= 3; tariff++ {
		cat = append(cat, wmbus.FieldSpec{
			Name:    fmt.Sprintf("total_energy_consumption_tarrif_%d_kwh", tariff),
			Code:    tariffRegister(tariff),
			Width:   3,
			Digits:  6,
			Divisor: tariffDivisor,
		})
	}
	cat = append(cat,
		wmbus.FieldSpec{Name: "current_power_consumption_kw", Code: registerCurrentConsumption, Width: 2, Digits: 6, Divisor: powerDivisor},
		wmbus.FieldSpec{Name: "total_energy_production_kwh", Code: registerTotalProduction, Width: 3, Digits: 6, Divisor: energyDivisor},
		wmbus.FieldSpec{Name: "current_power_production_kw", Code: registerCurrentProduction, Width: 3, Digits: 6, Divisor: powerDivisor},
	)
	for phase := uint8(1); phase <= 3; phase++ {
		sel := phase
		cat = append(cat, wmbus.FieldSpec{
			Name:     fmt.Sprintf("voltage_at_phase_%d_v", phase),
			Code:     registerPhaseVoltage,
			Width:    4,
			Selector: &sel,
			Digits:   4,
			Divisor:  1,
		})
	}
	if err := cat.Validate(); err != nil {
		panic(err)
	}
	return cat
}

// tariffRegister embeds the tariff number into DIFE bits of the register.
func tariffRegister(tariff uint32) uint32 {
	return registerTariffBase | tariff<<12
}
