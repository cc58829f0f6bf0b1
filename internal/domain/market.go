package domain

// MarketPoint is one day of energy market history.
type MarketPoint struct {
	Date   string  `json:"date"`
	SMP    float64 `json:"smp"`    // system marginal price, KRW/kWh
	REC    int     `json:"rec"`    // renewable energy certificate, KRW
	Carbon int     `json:"carbon"` // emission allowance, KRW/tCO2
}

// MarketCurrent is the latest market reading.
type MarketCurrent struct {
	SMP          float64 `json:"smp"`
	REC          int     `json:"rec"`
	Carbon       int     `json:"carbon"`
	ReserveRatio float64 `json:"reserve_ratio"`
	UpdatedAt    string  `json:"updated_at"`
}

// EnergyShare is one slice of the generation mix, in percent.
type EnergyShare struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// MarketSnapshot is the market-data.json artifact.
type MarketSnapshot struct {
	Current MarketCurrent `json:"current"`
	History []MarketPoint `json:"history"`
	Shares  []EnergyShare `json:"shares"`
}

// PowerReading is one hourly supply/demand sample, in GW.
type PowerReading struct {
	Time      string  `json:"time"`
	Supply    float64 `json:"supply"`
	Demand    float64 `json:"demand"`
	Renewable float64 `json:"renewable"`
}

// PowerStatus is the latest supply/demand balance.
type PowerStatus struct {
	Supply         float64 `json:"supply"`
	Demand         float64 `json:"demand"`
	ReservePower   float64 `json:"reserve_power"`
	ReserveRatio   float64 `json:"reserve_ratio"`
	RenewableShare float64 `json:"renewable_share"`
	UpdatedAt      string  `json:"updated_at"`
}

// EnergyStatus is the energy-status.json artifact.
type EnergyStatus struct {
	Current   PowerStatus    `json:"current"`
	ChartData []PowerReading `json:"chart_data"`
}
