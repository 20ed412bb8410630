package profit

// BlockAllowances are fixed ground and buffer times added to every flight,
// independent of distance.
type BlockAllowances struct {
	TaxiMinutes        float64
	ContingencyMinutes float64
}

// DefaultAllowances is 30 minutes of taxi and 15 minutes of contingency.
var DefaultAllowances = BlockAllowances{TaxiMinutes: 30, ContingencyMinutes: 15}

// BlockTime returns cruise time plus the default allowances, in hours.
func BlockTime(distanceNM, cruiseSpeedKts float64) float64 {
	return BlockTimeWith(distanceNM, cruiseSpeedKts, DefaultAllowances)
}

// BlockTimeWith returns cruise time plus the given allowances, in hours.
// A zero cruise speed yields +Inf; callers must supply a positive speed.
func BlockTimeWith(distanceNM, cruiseSpeedKts float64, a BlockAllowances) float64 {
	flightTimeH := distanceNM / cruiseSpeedKts
	taxiH := a.TaxiMinutes / 60.0
	contingencyH := a.ContingencyMinutes / 60.0
	return flightTimeH + taxiH + contingencyH
}
