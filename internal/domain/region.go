package domain

// Region is an administrative unit (city or district) scored by a run.
type Region struct {
	Code     string `yaml:"code" json:"code"`
	Name     string `yaml:"name" json:"name"`
	Province string `yaml:"province" json:"province"`
}

// GridPoint is a KMA forecast grid cell (Lambert conformal projection indices).
type GridPoint struct {
	NX int `yaml:"nx" json:"nx"`
	NY int `yaml:"ny" json:"ny"`
}
