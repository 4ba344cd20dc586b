package skyops

import (
	"github.com/spf13/viper"
)

// Config carries everything the settlement pipeline reads from the
// environment: the economy rates, the security secret and the rejection
// threshold. Loaded once at startup.
type Config struct {
	PostgresUrl string `mapstructure:"POSTGRES_URL"`
	ListenAddr  string `mapstructure:"LISTEN_ADDR"`

	// Shared secret for the ACARS HMAC signature. When empty, signature
	// verification is disabled entirely.
	AppKey string `mapstructure:"APP_KEY"`

	TicketPricePerNm  float64 `mapstructure:"TICKET_PRICE_PER_NM"`
	CargoPricePerLbNm float64 `mapstructure:"CARGO_PRICE_PER_LB_NM"`
	FuelPricePerLb    float64 `mapstructure:"FUEL_PRICE_PER_LB"`
	BaseLandingFee    int     `mapstructure:"BASE_LANDING_FEE"`
	PilotPayRate      float64 `mapstructure:"PILOT_PAY_RATE"`
	FuelTaxPercent    float64 `mapstructure:"FUEL_TAX_PERCENT"`
	PenaltyMultiplier float64 `mapstructure:"PENALTY_MULTIPLIER"`

	GroundedHealthThreshold float64 `mapstructure:"GROUNDED_HEALTH_THRESHOLD"`
	RepairHoursPerPercent   float64 `mapstructure:"REPAIR_HOURS_PER_PERCENT"`

	// Landing rates strictly below this value auto-reject the PIREP.
	AutoRejectLandingRate float64 `mapstructure:"AUTO_PIREP_REJECT_LANDING_RATE"`

	// Bonus credit tuning (see credits.go).
	CrBaseFlight            int     `mapstructure:"CR_BASE_FLIGHT"`
	CrGreaserBonus          int     `mapstructure:"CR_GREASER_BONUS"`
	CrFirmBonus             int     `mapstructure:"CR_FIRM_BONUS"`
	CrHardLandingPenalty    int     `mapstructure:"CR_HARD_LANDING_PENALTY"`
	CrFuelEfficiencyBonus   int     `mapstructure:"CR_FUEL_EFFICIENCY_BONUS"`
	CrLongHaul4h            int     `mapstructure:"CR_LONG_HAUL_4H"`
	CrLongHaul8h            int     `mapstructure:"CR_LONG_HAUL_8H"`
	CrHubToHubBonus         int     `mapstructure:"CR_HUB_TO_HUB_BONUS"`
	CrNewRouteBonus         int     `mapstructure:"CR_NEW_ROUTE_BONUS"`
	CrTaxiSpeedPenalty      int     `mapstructure:"CR_TAXI_SPEED_PENALTY"`
	CrLightViolationPenalty int     `mapstructure:"CR_LIGHT_VIOLATION_PENALTY"`
	CrOverspeedPenalty      int     `mapstructure:"CR_OVERSPEED_PENALTY"`
	CrFirstFlightMultiplier float64 `mapstructure:"CR_FIRST_FLIGHT_MULTIPLIER"`
	CrEventMultiplier       float64 `mapstructure:"CR_EVENT_MULTIPLIER"`
}

func setConfigDefaults() {
	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("TICKET_PRICE_PER_NM", 0.1)
	viper.SetDefault("CARGO_PRICE_PER_LB_NM", 0.005)
	viper.SetDefault("FUEL_PRICE_PER_LB", 0.75)
	viper.SetDefault("BASE_LANDING_FEE", 150)
	viper.SetDefault("PILOT_PAY_RATE", 120.0)
	viper.SetDefault("FUEL_TAX_PERCENT", 5.0)
	viper.SetDefault("PENALTY_MULTIPLIER", 10.0)
	viper.SetDefault("GROUNDED_HEALTH_THRESHOLD", 20.0)
	viper.SetDefault("REPAIR_HOURS_PER_PERCENT", 2.0)
	viper.SetDefault("AUTO_PIREP_REJECT_LANDING_RATE", -700.0)
	viper.SetDefault("CR_BASE_FLIGHT", 100)
	viper.SetDefault("CR_GREASER_BONUS", 50)
	viper.SetDefault("CR_FIRM_BONUS", 25)
	viper.SetDefault("CR_HARD_LANDING_PENALTY", -50)
	viper.SetDefault("CR_FUEL_EFFICIENCY_BONUS", 30)
	viper.SetDefault("CR_LONG_HAUL_4H", 100)
	viper.SetDefault("CR_LONG_HAUL_8H", 250)
	viper.SetDefault("CR_HUB_TO_HUB_BONUS", 50)
	viper.SetDefault("CR_NEW_ROUTE_BONUS", 50)
	viper.SetDefault("CR_TAXI_SPEED_PENALTY", -10)
	viper.SetDefault("CR_LIGHT_VIOLATION_PENALTY", -15)
	viper.SetDefault("CR_OVERSPEED_PENALTY", -50)
	viper.SetDefault("CR_FIRST_FLIGHT_MULTIPLIER", 1.2)
	viper.SetDefault("CR_EVENT_MULTIPLIER", 2.0)
}

func LoadConfig() (Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	setConfigDefaults()
	viper.AutomaticEnv()

	// A missing .env is fine, the environment still applies.
	_ = viper.ReadInConfig()

	c := Config{}
	err := viper.Unmarshal(&c)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
