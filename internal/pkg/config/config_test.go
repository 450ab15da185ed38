package config

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestLoadJSON(t *testing.T) {
	cfg, err := Load("testdata/augment.json")
	assert.NilError(t, err)

	ext := cfg.Electricity.ExtendableCarriers
	assert.DeepEqual(t, ext.StorageUnit, []string{"battery", "CAES"})
	assert.DeepEqual(t, ext.Store, []string{"H2", "battery"})
	assert.Assert(t, ext.Wants("Link", "H2 pipeline"))
	assert.Equal(t, cfg.Electricity.MaxHours["H2"], 168.)
	assert.Equal(t, cfg.Costs.Path, "data/costs.csv")
	assert.Equal(t, cfg.Plotting.TechColors["battery"], "#ace37f")
	assert.Equal(t, cfg.Output.Publish.Subject, DefaultSubject)
	assert.Equal(t, cfg.Output.Publish.Server, "")
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load("testdata/augment.yaml")
	assert.NilError(t, err)

	ext := cfg.Electricity.ExtendableCarriers
	assert.DeepEqual(t, ext.Store, []string{"H2", "battery"})
	assert.Assert(t, ext.Wants("StorageUnit", "CAES"))
	assert.Assert(t, !ext.Wants("Store", "CAES"))
	assert.Assert(t, !ext.Wants("Generator", "CAES"))
	assert.Equal(t, cfg.Electricity.MaxHours["battery"], 6.)
	assert.Equal(t, cfg.Plotting.NiceNames["H2"], "Hydrogen Storage")
	assert.Equal(t, cfg.Output.Metrics, "augment.prom")
	assert.Equal(t, cfg.Output.Publish.Subject, "networks.augmented")
}

func TestValidateUnknownCarrier(t *testing.T) {
	_, err := Parse([]byte(`{"Electricity": {"ExtendableCarriers": {"Store": ["PHS"]}}, "Costs": {"Path": "c.csv"}}`), "json")
	assert.ErrorContains(t, err, "Electricity.ExtendableCarriers.Store[0]: failed carrier")
}

func TestValidateUnknownLinkCarrier(t *testing.T) {
	_, err := Parse([]byte(`{"Electricity": {"ExtendableCarriers": {"Link": ["CO2 pipeline"]}}, "Costs": {"Path": "c.csv"}}`), "json")
	assert.ErrorContains(t, err, "failed oneof")
}

func TestValidateDuplicateCarrier(t *testing.T) {
	_, err := Parse([]byte(`{"Electricity": {"ExtendableCarriers": {"Store": ["H2", "H2"]}}, "Costs": {"Path": "c.csv"}}`), "json")
	assert.ErrorContains(t, err, "failed unique")
}

func TestValidateMissingMaxHours(t *testing.T) {
	_, err := Parse([]byte(`{"Electricity": {"ExtendableCarriers": {"StorageUnit": ["H2"]}}, "Costs": {"Path": "c.csv"}}`), "json")
	assert.ErrorContains(t, err, `no max hours for storage unit carrier "H2"`)
}

func TestValidateNonPositiveMaxHours(t *testing.T) {
	_, err := Parse([]byte(`{"Electricity": {"MaxHours": {"H2": 0}}, "Costs": {"Path": "c.csv"}}`), "json")
	assert.ErrorContains(t, err, "failed gt=0")
}

func TestValidateCostsRequired(t *testing.T) {
	_, err := Parse([]byte(`{}`), "json")
	assert.ErrorContains(t, err, "Costs.Path: failed required")
}

func TestValidateCavernsRequiredForCAES(t *testing.T) {
	_, err := Parse([]byte(`{"Electricity": {"ExtendableCarriers": {"Store": ["CAES"]}}, "Costs": {"Path": "c.csv"}}`), "json")
	assert.ErrorContains(t, err, "Caverns.Path")
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{`), "json")
	assert.ErrorContains(t, err, "parse config")

	_, err = Parse([]byte(`electricity: [`), "yaml")
	assert.ErrorContains(t, err, "parse config")

	_, err = Parse([]byte(``), "toml")
	assert.ErrorContains(t, err, "unknown config format")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, format("a/config.YAML"), "yaml")
	assert.Equal(t, format("config.yml"), "yaml")
	assert.Equal(t, format("config.json"), "json")
	assert.Equal(t, format("config"), "json")
}
