package technology

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestDefaultCarriers(t *testing.T) {
	assert.DeepEqual(t, Carriers()[:7], []string{"H2", "battery", "CAES", "LAES", "ETES", "NaS", "FeFlow"})
	for _, c := range Carriers() {
		assert.Assert(t, Known(c))
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("PHS")
	assert.Assert(t, errors.Is(err, ErrUnknownCarrier))
	assert.Assert(t, !Known("PHS"))
}

func TestDerivedNames(t *testing.T) {
	h2, err := Lookup(Hydrogen)
	assert.NilError(t, err)
	assert.Equal(t, h2.BusName("GB0 1"), "GB0 1 H2")
	assert.Equal(t, h2.UnitName("GB0 1"), "GB0 1 H2")
	assert.Equal(t, h2.ChargeName("GB0 1"), "GB0 1 H2 Electrolysis")
	assert.Equal(t, h2.DischargeName("GB0 1"), "GB0 1 H2 Fuel Cell")

	battery, _ := Lookup(Battery)
	assert.Equal(t, battery.ChargeName("A"), "A battery charger")
	assert.Equal(t, battery.DischargeName("A"), "A battery discharger")

	etes, _ := Lookup(Thermal)
	assert.Equal(t, etes.ChargeName("A"), "A ETES Charger")
	assert.Equal(t, etes.DischargeName("A"), "A ETES Turbine")
}

func TestAsymmetricDesigns(t *testing.T) {
	for _, c := range []string{Hydrogen, CompressedAir, LiquidAir, Thermal} {
		tech, _ := Lookup(c)
		assert.Assert(t, tech.Storage.Discharge.PerOutput, c)
	}
	for _, c := range []string{Battery, SodiumSulfur, IronFlow} {
		tech, _ := Lookup(c)
		assert.Assert(t, !tech.Storage.Discharge.PerOutput, c)
		assert.Equal(t, tech.Storage.Discharge.CapitalShare, 0., c)
	}
	for _, c := range []string{LiquidAir, Thermal} {
		tech, _ := Lookup(c)
		assert.Equal(t, tech.Storage.Charge.CapitalShare+tech.Storage.Discharge.CapitalShare, 1., c)
		assert.Assert(t, tech.Unit.StandingLoss != "", c)
	}
}

func TestCapPolicies(t *testing.T) {
	caes, _ := Lookup(CompressedAir)
	assert.Equal(t, caes.Storage.Cap, CapSitesOnly)
	assert.Assert(t, caes.Unit.SitesOnly)

	h2, _ := Lookup(Hydrogen)
	assert.Equal(t, h2.Storage.Cap, CapListedSites)

	assert.Equal(t, CapNone.String(), "none")
	assert.Equal(t, CapPolicy(9).String(), "CapPolicy(9)")
}

func TestRegister(t *testing.T) {
	err := Register(Technology{Carrier: Battery, Storage: Storage{Suffix: " b", Charge: LinkSpec{Suffix: " c"}, Discharge: LinkSpec{Suffix: " d"}}})
	assert.ErrorContains(t, err, "already registered")

	err = Register(Technology{Carrier: "Zn-air"})
	assert.ErrorContains(t, err, "suffixes are required")

	err = Register(Technology{})
	assert.ErrorContains(t, err, "without carrier")

	err = Register(Technology{
		Carrier: "gravity",
		Unit:    Unit{StoreEfficiency: "gravity", DispatchEfficiency: "gravity"},
		Storage: Storage{
			Suffix:    " gravity",
			Energy:    "gravity storage",
			Charge:    LinkSpec{Suffix: " lift", Carrier: "gravity lift", Cost: "gravity", CapitalShare: 1},
			Discharge: LinkSpec{Suffix: " drop", Carrier: "gravity drop", Cost: "gravity"},
		},
	})
	assert.NilError(t, err)

	tech, err := Lookup("gravity")
	assert.NilError(t, err)
	assert.Equal(t, tech.ChargeName("A"), "A gravity lift")
	assert.Equal(t, Carriers()[len(Carriers())-1], "gravity")
}
