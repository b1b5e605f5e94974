package model

// AlgorithmConfig is the single strongly typed row of tunable lottery knobs.
// A missing row is created from column defaults on first read, so processing
// never fails on absent configuration.
type AlgorithmConfig struct {
	Singleton               bool `gorm:"primaryKey;default:true"   json:"-"`
	FastThresholdMinutes    int  `gorm:"not null;default:210"      json:"fast_threshold_minutes"`    // avg <= fast -> FAST
	AverageThresholdMinutes int  `gorm:"not null;default:240"      json:"average_threshold_minutes"` // avg <= average -> AVERAGE, else SLOW
	FairnessWeight          int  `gorm:"not null;default:10"       json:"fairness_weight"`
	SpeedBiasWeight         int  `gorm:"not null;default:2"        json:"speed_bias_weight"`
	DeniedStreakWeight      int  `gorm:"not null;default:5"        json:"denied_streak_weight"`
	BaseModel
}

func (AlgorithmConfig) TableName() string { return "algorithm_config" }

// DefaultAlgorithmConfig mirrors the column defaults for code paths that need
// a config value before the row exists.
func DefaultAlgorithmConfig() *AlgorithmConfig {
	return &AlgorithmConfig{
		Singleton:               true,
		FastThresholdMinutes:    210,
		AverageThresholdMinutes: 240,
		FairnessWeight:          10,
		SpeedBiasWeight:         2,
		DeniedStreakWeight:      5,
	}
}
