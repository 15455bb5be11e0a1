package entitlements

// Limits represents the entitlements derived from a subscription tier.
// Keep this small and stable: other services rely on these limits to
// enforce behavior.
type Limits struct {
	Tier                   string `json:"tier"`
	MaxStaff               int32  `json:"max_staff"`
	MaxMonthlyAppointments int32  `json:"max_monthly_appointments"`
}

func LimitsForTier(tier string) Limits {
	switch tier {
	case "starter":
		return Limits{
			Tier:                   "starter",
			MaxStaff:               5,
			MaxMonthlyAppointments: 500,
		}
	case "pro":
		return Limits{
			Tier:                   "pro",
			MaxStaff:               25,
			MaxMonthlyAppointments: 2000,
		}
	default:
		return Limits{
			Tier:                   "free",
			MaxStaff:               3,
			MaxMonthlyAppointments: 200,
		}
	}
}
