package costs

import (
	"errors"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

const sample = `technology,parameter,value,unit,source
fuel cell,efficiency,0.5,per unit,DEA
fuel cell,capital_cost,100000,EUR/MW,DEA
H2 pipeline,capital_cost,267,EUR/MW/km,Welder
H2 pipeline,efficiency,0.98,per unit,Welder
`

func TestRead(t *testing.T) {
	table, err := Read(strings.NewReader(sample), Options{})
	assert.NilError(t, err)

	v, err := table.Get("fuel cell", Efficiency)
	assert.NilError(t, err)
	assert.Equal(t, v, 0.5)

	v, err = table.Get("H2 pipeline", CapitalCost)
	assert.NilError(t, err)
	assert.Equal(t, v, 267.)

	assert.DeepEqual(t, table.Technologies(), []string{"H2 pipeline", "fuel cell"})
}

func TestReadScalesCapitalCost(t *testing.T) {
	table, err := Read(strings.NewReader(sample), Options{Years: 0.5})
	assert.NilError(t, err)

	v, _ := table.Get("fuel cell", CapitalCost)
	assert.Equal(t, v, 50000.)

	v, _ = table.Get("fuel cell", Efficiency)
	assert.Equal(t, v, 0.5)
}

func TestGetMissing(t *testing.T) {
	table := New()
	table.Set("battery inverter", Efficiency, 0.96)

	_, err := table.Get("battery inverter", CapitalCost)
	assert.Assert(t, errors.Is(err, ErrMissingCost))
	assert.ErrorContains(t, err, `"battery inverter" "capital_cost"`)

	_, err = table.Get("NaS Inverter", Efficiency)
	assert.Assert(t, errors.Is(err, ErrMissingCost))
}

func TestDefault(t *testing.T) {
	table := New()
	table.Set("H2", CO2Emissions, 0)
	table.Set("gas", CO2Emissions, 0.2)

	assert.Equal(t, table.Default("gas", CO2Emissions, 1), 0.2)
	assert.Equal(t, table.Default("H2", CO2Emissions, 1), 0.)
	assert.Equal(t, table.Default("battery", CO2Emissions, 0), 0.)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("technology,value\nx,1\n"), Options{})
	assert.ErrorContains(t, err, `missing column "parameter"`)

	_, err = Read(strings.NewReader("technology,parameter,value\nx,efficiency,high\n"), Options{})
	assert.ErrorContains(t, err, "line 2")

	_, err = Read(strings.NewReader("technology,parameter,value\nx,efficiency,1\nx,efficiency,2\n"), Options{})
	assert.ErrorContains(t, err, "duplicate entry")

	_, err = Read(strings.NewReader(""), Options{})
	assert.ErrorContains(t, err, "read header")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.csv", Options{})
	assert.Assert(t, err != nil)
}
